package models

import (
	"sync"
	"time"
)

// Person and gift ids are millisecond timestamps, kept strictly increasing
// under rapid successive creation by bumping past the last issued value.
var idMu sync.Mutex
var lastID int64

// NextID returns a process-wide-unique id. Values sort by creation time as a
// bonus, not a guarantee.
func NextID() int64 {
	idMu.Lock()
	defer idMu.Unlock()
	id := time.Now().UnixMilli()
	if id <= lastID {
		id = lastID + 1
	}
	lastID = id
	return id
}
