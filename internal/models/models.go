package models

import (
	"net/url"
	"strings"
)

// Status is the lifecycle state of a gift. It advances through a fixed
// forward-only cycle: idea -> bought -> wrapped -> idea.
type Status string

const (
	StatusIdea    Status = "idea"
	StatusBought  Status = "bought"
	StatusWrapped Status = "wrapped"
)

// Next returns the status that follows in the cycle. Unknown values re-enter
// the cycle at idea, so corrupt data recovers on the next advance.
func (s Status) Next() Status {
	switch s {
	case StatusIdea:
		return StatusBought
	case StatusBought:
		return StatusWrapped
	default:
		return StatusIdea
	}
}

// Valid reports whether s is one of the three known statuses.
func (s Status) Valid() bool {
	return s == StatusIdea || s == StatusBought || s == StatusWrapped
}

// Purchased reports whether the gift has actually been acquired.
func (s Status) Purchased() bool {
	return s == StatusBought || s == StatusWrapped
}

// Categories offered by default. The set is open; these are the ones the
// presentation layer suggests.
const (
	CategoryFun       = "Fun"
	CategoryEducation = "Education"
	CategoryHealth    = "Health"
	CategoryPractical = "Practical"
)

// DefaultCategory is applied when promoting an AI idea into a gift.
const DefaultCategory = CategoryFun

// Project is a named, isolated plan. The ID is generated at creation time
// and never changes; the per-project data bundle is keyed by it.
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProjectData is the persisted bundle for one project.
type ProjectData struct {
	People []Person `json:"people"`
	Gifts  []Gift   `json:"gifts"`
	Limit  float64  `json:"limit"`
}

// Person is a gift recipient.
//
// GeneratedIdeas and Strategy are ephemeral AI output: both are replaced
// wholesale on refresh, never merged.
type Person struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Budget         float64 `json:"budget"`
	GeneratedIdeas []Idea  `json:"generatedIdeas"`
	Strategy       string  `json:"strategy"`
	Profile        Profile `json:"profile"`
}

// Profile holds free-text attributes used to personalize AI suggestions.
// Absent values are empty strings, never omitted, so form binding stays total.
type Profile struct {
	Age            string `json:"age"`
	Relationship   string `json:"relationship"`
	Sex            string `json:"sex"`
	ShirtSize      string `json:"shirtSize"`
	ShoeSize       string `json:"shoeSize"`
	OtherSize      string `json:"otherSize"`
	Aesthetics     string `json:"aesthetics"`
	Obsession      string `json:"obsession"`
	ProblemToSolve string `json:"problemToSolve"`
	DoNotBuy       string `json:"doNotBuy"`
	GiftHistory    string `json:"giftHistory"`
	ShoppingLinks  string `json:"shoppingLinks"`
}

// Merge copies every non-empty field of extracted over p. Empty extracted
// fields never clobber existing data.
func (p *Profile) Merge(extracted Profile) {
	fields := []struct {
		dst *string
		src string
	}{
		{&p.Age, extracted.Age},
		{&p.Relationship, extracted.Relationship},
		{&p.Sex, extracted.Sex},
		{&p.ShirtSize, extracted.ShirtSize},
		{&p.ShoeSize, extracted.ShoeSize},
		{&p.OtherSize, extracted.OtherSize},
		{&p.Aesthetics, extracted.Aesthetics},
		{&p.Obsession, extracted.Obsession},
		{&p.ProblemToSolve, extracted.ProblemToSolve},
		{&p.DoNotBuy, extracted.DoNotBuy},
		{&p.GiftHistory, extracted.GiftHistory},
		{&p.ShoppingLinks, extracted.ShoppingLinks},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.src) != "" {
			*f.dst = f.src
		}
	}
}

// IsEmpty reports whether every profile field is blank.
func (p Profile) IsEmpty() bool {
	return p == Profile{}
}

// Gift is a planned or purchased item for one person.
type Gift struct {
	ID       int64   `json:"id"`
	PersonID int64   `json:"personId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Status   Status  `json:"status"`
	Category string  `json:"category"`
	Notes    string  `json:"notes"`
	Analysis string  `json:"analysis"`
}

// Idea is an AI-suggested gift candidate that has not been committed yet.
type Idea struct {
	Name           string  `json:"name"`
	EstimatedPrice float64 `json:"estimatedPrice"`
	Reason         string  `json:"reason"`
	SearchQuery    string  `json:"searchQuery"`
}

// Alternative is an AI-suggested replacement for a gift being considered.
type Alternative struct {
	Name           string  `json:"name"`
	EstimatedPrice float64 `json:"estimatedPrice"`
	Category       string  `json:"category"`
}

// SearchURL builds a web-search link for the idea, preferring its dedicated
// search query and falling back to the product name. The link is constructed,
// never fetched.
func (i Idea) SearchURL() string {
	q := i.SearchQuery
	if q == "" {
		q = i.Name
	}
	return SearchURL(q)
}

// SearchURL builds a Google search link for an arbitrary query.
func SearchURL(query string) string {
	return "https://www.google.com/search?q=" + url.QueryEscape(query)
}

// ToGift promotes the idea into a persisted gift for the given person. The
// notes field embeds the AI's stated reason plus a search link so the
// provenance survives the promotion.
func (i Idea) ToGift(id, personID int64) Gift {
	return Gift{
		ID:       id,
		PersonID: personID,
		Name:     i.Name,
		Price:    i.EstimatedPrice,
		Status:   StatusIdea,
		Category: DefaultCategory,
		Notes:    "Generated: " + i.Reason + "\nSearch: " + i.SearchURL(),
	}
}

// NewPerson builds a person with the given id, defaulting the budget to 100
// when unset and initializing the ephemeral AI fields.
func NewPerson(id int64, name string, budget float64) Person {
	if budget <= 0 {
		budget = 100
	}
	return Person{
		ID:             id,
		Name:           name,
		Budget:         budget,
		GeneratedIdeas: []Idea{},
	}
}
