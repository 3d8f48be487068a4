package store

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/giftwise/giftwise-cli/internal/models"
)

const defaultProjectName = "My First Plan"

// Legacy un-projectized storage keys, current generation first. Consulted
// only when the project index is empty.
var (
	legacyPeopleKeys = []string{"gift_planner_people_v1", "xmas_people_v8"}
	legacyGiftsKeys  = []string{"gift_planner_gifts_v1", "xmas_gifts_v8"}
	legacyLimitKeys  = []string{"gift_planner_limit_v1", "xmas_global_limit_v8"}
)

// migrate runs once at startup and is idempotent. An empty project index
// gets a default project, populated from legacy keys when any are present;
// a non-empty index with no active selection activates the first project.
func (s *Store) migrate() error {
	if len(s.projects) == 0 {
		p := models.Project{ID: uuid.NewString(), Name: defaultProjectName}
		s.projects = []models.Project{p}

		if data, found := s.loadLegacyData(); found {
			if err := s.kv.Save(BundleKey(p.ID), data); err != nil {
				return err
			}
			slog.Info("migrated legacy planner data", "project", p.Name,
				"people", len(data.People), "gifts", len(data.Gifts))
		}

		if err := s.saveIndex(); err != nil {
			return err
		}
		return s.setActive(p.ID)
	}

	if _, ok := s.findProjectByID(s.cfg.ActiveProjectID); !ok {
		return s.setActive(s.projects[0].ID)
	}
	return nil
}

// loadLegacyData assembles a bundle from whichever legacy keys decode,
// reporting whether anything was found at all.
func (s *Store) loadLegacyData() (models.ProjectData, bool) {
	data := emptyData()
	found := false

	for _, key := range legacyPeopleKeys {
		if s.kv.Load(key, &data.People) {
			found = true
			break
		}
	}
	for _, key := range legacyGiftsKeys {
		if s.kv.Load(key, &data.Gifts) {
			found = true
			break
		}
	}
	for _, key := range legacyLimitKeys {
		if s.kv.Load(key, &data.Limit) {
			found = true
			break
		}
	}
	if data.People == nil {
		data.People = []models.Person{}
	}
	if data.Gifts == nil {
		data.Gifts = []models.Gift{}
	}
	return data, found
}
