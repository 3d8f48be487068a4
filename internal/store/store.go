// Package store owns the multi-project planner state: the project index, the
// active project selection, and the active project's data bundle. Every
// mutation persists immediately, so switching projects never needs a save
// step and a crash loses at most the write in flight.
package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/giftwise/giftwise-cli/internal/config"
	"github.com/giftwise/giftwise-cli/internal/models"
	"github.com/giftwise/giftwise-cli/internal/storage"
)

const (
	indexKey     = "gift_planner_projects"
	bundlePrefix = "gift_planner_data_"
)

var (
	ErrEmptyName       = errors.New("name is required")
	ErrProjectNotFound = errors.New("project not found")
	ErrNoActiveProject = errors.New("no active project")
	ErrPersonNotFound  = errors.New("person not found")
	ErrGiftNotFound    = errors.New("gift not found")
	ErrIdeaNotFound    = errors.New("idea not found")
	ErrInvalidBackup   = errors.New("invalid backup document: missing projects list")
)

// BundleKey returns the storage key for a project's data bundle.
func BundleKey(projectID string) string {
	return bundlePrefix + projectID
}

// Store is the single owner of planner state. The presentation layer (CLI,
// REST handlers, MCP tools) goes through it rather than touching storage
// directly.
type Store struct {
	kv  *storage.Store
	cfg *config.Config

	projects []models.Project
	data     models.ProjectData
}

// Open loads the project index, runs the one-time migration, and loads the
// active project's bundle.
func Open(kv *storage.Store, cfg *config.Config) (*Store, error) {
	s := &Store{kv: kv, cfg: cfg, data: emptyData()}
	s.kv.Load(indexKey, &s.projects)
	if err := s.migrate(); err != nil {
		return nil, err
	}
	s.loadActiveBundle()
	return s, nil
}

func emptyData() models.ProjectData {
	return models.ProjectData{People: []models.Person{}, Gifts: []models.Gift{}}
}

// loadActiveBundle replaces the in-memory view with the active project's
// persisted bundle, or empty defaults when the bundle key is missing.
func (s *Store) loadActiveBundle() {
	s.data = emptyData()
	if s.cfg.ActiveProjectID == "" {
		return
	}
	s.kv.Load(BundleKey(s.cfg.ActiveProjectID), &s.data)
	if s.data.People == nil {
		s.data.People = []models.Person{}
	}
	if s.data.Gifts == nil {
		s.data.Gifts = []models.Gift{}
	}
}

func (s *Store) saveIndex() error {
	return s.kv.Save(indexKey, s.projects)
}

// saveBundle persists the in-memory view under the active project's key.
func (s *Store) saveBundle() error {
	if s.cfg.ActiveProjectID == "" {
		return ErrNoActiveProject
	}
	return s.kv.Save(BundleKey(s.cfg.ActiveProjectID), s.data)
}

func (s *Store) setActive(id string) error {
	s.cfg.ActiveProjectID = id
	if err := config.SaveConfig(s.cfg); err != nil {
		return fmt.Errorf("failed to persist active project: %w", err)
	}
	return nil
}

// Projects returns the project index in order.
func (s *Store) Projects() []models.Project {
	return s.projects
}

// Active returns the active project, if any.
func (s *Store) Active() (models.Project, bool) {
	for _, p := range s.projects {
		if p.ID == s.cfg.ActiveProjectID {
			return p, true
		}
	}
	return models.Project{}, false
}

// ActiveID returns the active project id, empty when none is active.
func (s *Store) ActiveID() string {
	return s.cfg.ActiveProjectID
}

// Data returns the active project's current bundle.
func (s *Store) Data() models.ProjectData {
	return s.data
}

// FindProject resolves a project by exact id, id prefix, or name.
func (s *Store) FindProject(ref string) (models.Project, bool) {
	for _, p := range s.projects {
		if p.ID == ref {
			return p, true
		}
	}
	for _, p := range s.projects {
		if strings.EqualFold(p.Name, ref) || strings.HasPrefix(p.ID, ref) {
			return p, true
		}
	}
	return models.Project{}, false
}

// Create appends a new project to the index and activates it. The bundle is
// not written until the first mutation; a missing bundle loads as empty.
func (s *Store) Create(name string) (models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Project{}, ErrEmptyName
	}
	p := models.Project{ID: uuid.NewString(), Name: name}
	s.projects = append(s.projects, p)
	if err := s.saveIndex(); err != nil {
		return models.Project{}, err
	}
	if err := s.setActive(p.ID); err != nil {
		return models.Project{}, err
	}
	s.data = emptyData()
	return p, nil
}

// Rename updates a project's name in place.
func (s *Store) Rename(id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	for i := range s.projects {
		if s.projects[i].ID == id {
			s.projects[i].Name = name
			return s.saveIndex()
		}
	}
	return ErrProjectNotFound
}

// Delete removes a project and its bundle. Irreversible. When the deleted
// project was active, the first remaining project takes over; with none
// left the in-memory view is cleared.
func (s *Store) Delete(id string) error {
	idx := -1
	for i, p := range s.projects {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrProjectNotFound
	}

	s.projects = append(s.projects[:idx], s.projects[idx+1:]...)
	if err := s.saveIndex(); err != nil {
		return err
	}
	if err := s.kv.Delete(BundleKey(id)); err != nil {
		return err
	}

	if s.cfg.ActiveProjectID == id {
		next := ""
		if len(s.projects) > 0 {
			next = s.projects[0].ID
		}
		if err := s.setActive(next); err != nil {
			return err
		}
		s.loadActiveBundle()
	}
	return nil
}

// SwitchTo activates another project and loads its bundle. The previous
// project needs no save; every mutation already persisted it.
func (s *Store) SwitchTo(id string) error {
	if _, ok := s.findProjectByID(id); !ok {
		return ErrProjectNotFound
	}
	if err := s.setActive(id); err != nil {
		return err
	}
	s.loadActiveBundle()
	return nil
}

func (s *Store) findProjectByID(id string) (models.Project, bool) {
	for _, p := range s.projects {
		if p.ID == id {
			return p, true
		}
	}
	return models.Project{}, false
}

// Document is the backup format: the project index plus every project's
// bundle keyed by its storage key.
type Document struct {
	Projects    []models.Project              `json:"projects"`
	ProjectData map[string]models.ProjectData `json:"projectData"`
}

// Export assembles a backup document, reading every bundle fresh from
// storage rather than from the in-memory view.
func (s *Store) Export() (Document, error) {
	doc := Document{
		Projects:    s.projects,
		ProjectData: make(map[string]models.ProjectData, len(s.projects)),
	}
	if doc.Projects == nil {
		doc.Projects = []models.Project{}
	}
	for _, p := range s.projects {
		data := emptyData()
		s.kv.Load(BundleKey(p.ID), &data)
		doc.ProjectData[BundleKey(p.ID)] = data
	}
	return doc, nil
}

// Import replaces the project index and every bundle named in the document,
// then activates the first imported project. It does not merge: existing
// projects not present in the document disappear from the index.
func (s *Store) Import(doc Document) error {
	if doc.Projects == nil {
		return ErrInvalidBackup
	}

	s.projects = doc.Projects
	if err := s.saveIndex(); err != nil {
		return err
	}

	// Deterministic write order; the document map carries bundle keys as-is.
	keys := make([]string, 0, len(doc.ProjectData))
	for k := range doc.ProjectData {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := s.kv.Save(k, doc.ProjectData[k]); err != nil {
			return err
		}
	}

	next := ""
	if len(s.projects) > 0 {
		next = s.projects[0].ID
	}
	if err := s.setActive(next); err != nil {
		return err
	}
	s.loadActiveBundle()
	return nil
}
