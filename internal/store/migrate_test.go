package store

import (
	"testing"

	"github.com/giftwise/giftwise-cli/internal/config"
	"github.com/giftwise/giftwise-cli/internal/models"
	"github.com/giftwise/giftwise-cli/internal/storage"
)

func TestMigratePromotesLegacyData(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	kv, err := storage.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	people := []models.Person{{ID: 1, Name: "Sam", Budget: 50}}
	gifts := []models.Gift{{ID: 2, PersonID: 1, Name: "Mug", Price: 8, Status: models.StatusIdea}}
	if err := kv.Save("xmas_people_v8", people); err != nil {
		t.Fatal(err)
	}
	if err := kv.Save("xmas_gifts_v8", gifts); err != nil {
		t.Fatal(err)
	}
	if err := kv.Save("xmas_global_limit_v8", 150); err != nil {
		t.Fatal(err)
	}

	s, err := Open(kv, &config.Config{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	data := s.Data()
	if len(data.People) != 1 || data.People[0].Name != "Sam" {
		t.Errorf("people = %+v", data.People)
	}
	if len(data.Gifts) != 1 {
		t.Errorf("gifts = %+v", data.Gifts)
	}
	if data.Limit != 150 {
		t.Errorf("limit = %v, want 150", data.Limit)
	}
}

func TestMigratePrefersCurrentGenerationKeys(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	kv, err := storage.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := kv.Save("gift_planner_people_v1", []models.Person{{ID: 1, Name: "New"}}); err != nil {
		t.Fatal(err)
	}
	if err := kv.Save("xmas_people_v8", []models.Person{{ID: 2, Name: "Old"}}); err != nil {
		t.Fatal(err)
	}

	s, err := Open(kv, &config.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Data().People; len(got) != 1 || got[0].Name != "New" {
		t.Errorf("people = %+v, want current-generation data", got)
	}
}

func TestMigrateWithoutLegacyDataLeavesBundleAbsent(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	kv, err := storage.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	s, err := Open(kv, &config.Config{})
	if err != nil {
		t.Fatal(err)
	}
	p, ok := s.Active()
	if !ok {
		t.Fatal("no active project")
	}
	if kv.Has(BundleKey(p.ID)) {
		t.Error("bundle written despite no legacy data")
	}
	if got := s.Data(); len(got.People) != 0 || len(got.Gifts) != 0 || got.Limit != 0 {
		t.Errorf("view = %+v, want empty defaults", got)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	kv, err := storage.Open(dir)
	if err != nil {
		t.Fatal(err)
	}

	s, err := Open(kv, &config.Config{})
	if err != nil {
		t.Fatal(err)
	}
	first := s.Projects()[0]

	// Reopen against the same storage: no second project appears and the
	// same project stays active.
	cfg := &config.Config{ActiveProjectID: first.ID}
	s2, err := Open(kv, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(s2.Projects()) != 1 {
		t.Fatalf("projects after reopen = %d, want 1", len(s2.Projects()))
	}
	if s2.ActiveID() != first.ID {
		t.Errorf("active changed across reopen: %q -> %q", first.ID, s2.ActiveID())
	}
}

func TestMigrateActivatesFirstWhenNoneActive(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	kv, err := storage.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	projects := []models.Project{{ID: "p1", Name: "One"}, {ID: "p2", Name: "Two"}}
	if err := kv.Save("gift_planner_projects", projects); err != nil {
		t.Fatal(err)
	}

	s, err := Open(kv, &config.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if s.ActiveID() != "p1" {
		t.Errorf("active = %q, want p1", s.ActiveID())
	}
	if len(s.Projects()) != 2 {
		t.Errorf("projects = %d, want 2 (migration must not add)", len(s.Projects()))
	}
}
