package store

import (
	"testing"

	"github.com/giftwise/giftwise-cli/internal/config"
	"github.com/giftwise/giftwise-cli/internal/models"
	"github.com/giftwise/giftwise-cli/internal/storage"
)

// newTestStore opens a store against a throwaway storage dir and home, so
// config writes stay inside the test sandbox.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	kv, err := storage.Open(t.TempDir())
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	s, err := Open(kv, &config.Config{})
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	return s
}

func TestOpenSynthesizesDefaultProject(t *testing.T) {
	s := newTestStore(t)

	if len(s.Projects()) != 1 {
		t.Fatalf("projects = %d, want 1", len(s.Projects()))
	}
	p, ok := s.Active()
	if !ok {
		t.Fatal("no active project after init")
	}
	if p.Name != "My First Plan" {
		t.Errorf("default project name = %q", p.Name)
	}
}

func TestCreateRejectsBlankName(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Create("   "); err != ErrEmptyName {
		t.Errorf("Create blank = %v, want ErrEmptyName", err)
	}
}

func TestCreateActivatesNewProject(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.AddPerson("Sam", 50); err != nil {
		t.Fatal(err)
	}

	p, err := s.Create("Birthday 2025")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s.ActiveID() != p.ID {
		t.Error("new project not activated")
	}
	if len(s.Data().People) != 0 {
		t.Error("new project view not empty")
	}
}

func TestRenameValidation(t *testing.T) {
	s := newTestStore(t)
	p := s.Projects()[0]

	if err := s.Rename(p.ID, "  "); err != ErrEmptyName {
		t.Errorf("Rename blank = %v, want ErrEmptyName", err)
	}
	if err := s.Rename("missing", "X"); err != ErrProjectNotFound {
		t.Errorf("Rename missing = %v, want ErrProjectNotFound", err)
	}
	if err := s.Rename(p.ID, "Xmas"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if s.Projects()[0].Name != "Xmas" {
		t.Errorf("name = %q, want Xmas", s.Projects()[0].Name)
	}
}

func TestDeletePersonCascadesGifts(t *testing.T) {
	s := newTestStore(t)
	sam, _ := s.AddPerson("Sam", 50)
	alex, _ := s.AddPerson("Alex", 60)
	if _, err := s.AddGift(sam.ID, "Headphones", 60, "", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddGift(sam.ID, "Book", 10, "", ""); err != nil {
		t.Fatal(err)
	}
	keep, err := s.AddGift(alex.ID, "Mug", 8, "", "")
	if err != nil {
		t.Fatal(err)
	}

	if err := s.DeletePerson(sam.ID); err != nil {
		t.Fatalf("DeletePerson: %v", err)
	}

	gifts := s.Data().Gifts
	if len(gifts) != 1 {
		t.Fatalf("gifts after cascade = %d, want 1", len(gifts))
	}
	if gifts[0].ID != keep.ID {
		t.Error("cascade removed another person's gift")
	}
}

func TestAddGiftRequiresExistingPerson(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.AddGift(999, "Mug", 8, "", ""); err != ErrPersonNotFound {
		t.Errorf("AddGift orphan = %v, want ErrPersonNotFound", err)
	}
}

func TestAdvanceGiftStatusCycles(t *testing.T) {
	s := newTestStore(t)
	sam, _ := s.AddPerson("Sam", 50)
	g, _ := s.AddGift(sam.ID, "Mug", 8, "", "")

	want := []models.Status{models.StatusBought, models.StatusWrapped, models.StatusIdea}
	for _, w := range want {
		got, err := s.AdvanceGiftStatus(g.ID)
		if err != nil {
			t.Fatalf("AdvanceGiftStatus: %v", err)
		}
		if got.Status != w {
			t.Fatalf("status = %q, want %q", got.Status, w)
		}
	}
}

func TestDeleteProjectFallsBackToFirstRemaining(t *testing.T) {
	s := newTestStore(t)
	first := s.Projects()[0]
	second, _ := s.Create("Second")

	if err := s.Delete(second.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if s.ActiveID() != first.ID {
		t.Errorf("active = %q, want fallback to %q", s.ActiveID(), first.ID)
	}
}

func TestDeleteOnlyProjectClearsView(t *testing.T) {
	s := newTestStore(t)
	p := s.Projects()[0]
	if _, err := s.AddPerson("Sam", 50); err != nil {
		t.Fatal(err)
	}

	if err := s.Delete(p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if s.ActiveID() != "" {
		t.Errorf("active = %q, want none", s.ActiveID())
	}
	if len(s.Data().People) != 0 || len(s.Data().Gifts) != 0 {
		t.Error("view not cleared after deleting only project")
	}

	// Re-adding a project must not resurrect the deleted project's data.
	if _, err := s.Create("Fresh"); err != nil {
		t.Fatal(err)
	}
	if len(s.Data().People) != 0 {
		t.Error("deleted project's data resurrected")
	}
}

func TestMutationsWithoutActiveProject(t *testing.T) {
	s := newTestStore(t)
	if err := s.Delete(s.Projects()[0].ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddPerson("Sam", 10); err != ErrNoActiveProject {
		t.Errorf("AddPerson = %v, want ErrNoActiveProject", err)
	}
	if err := s.SetLimit(100); err != ErrNoActiveProject {
		t.Errorf("SetLimit = %v, want ErrNoActiveProject", err)
	}
}

func TestSwitchToLoadsEachBundle(t *testing.T) {
	s := newTestStore(t)
	first := s.Projects()[0]
	if _, err := s.AddPerson("Sam", 50); err != nil {
		t.Fatal(err)
	}

	second, _ := s.Create("Second")
	if _, err := s.AddPerson("Alex", 75); err != nil {
		t.Fatal(err)
	}

	if err := s.SwitchTo(first.ID); err != nil {
		t.Fatalf("SwitchTo: %v", err)
	}
	if got := s.Data().People; len(got) != 1 || got[0].Name != "Sam" {
		t.Errorf("first bundle = %+v", got)
	}

	if err := s.SwitchTo(second.ID); err != nil {
		t.Fatal(err)
	}
	if got := s.Data().People; len(got) != 1 || got[0].Name != "Alex" {
		t.Errorf("second bundle = %+v", got)
	}

	if err := s.SwitchTo("missing"); err != ErrProjectNotFound {
		t.Errorf("SwitchTo missing = %v, want ErrProjectNotFound", err)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	s := newTestStore(t)
	sam, _ := s.AddPerson("Sam", 50)
	if _, err := s.AddGift(sam.ID, "Headphones", 60, "", ""); err != nil {
		t.Fatal(err)
	}
	if err := s.SetLimit(200); err != nil {
		t.Fatal(err)
	}

	doc, err := s.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(doc.Projects) != 1 || len(doc.ProjectData) != 1 {
		t.Fatalf("doc = %+v", doc)
	}

	if err := s.Import(doc); err != nil {
		t.Fatalf("Import: %v", err)
	}

	again, err := s.Export()
	if err != nil {
		t.Fatal(err)
	}
	if len(again.Projects) != len(doc.Projects) {
		t.Errorf("projects after round trip = %d, want %d", len(again.Projects), len(doc.Projects))
	}
	key := BundleKey(doc.Projects[0].ID)
	if got := again.ProjectData[key]; got.Limit != 200 || len(got.People) != 1 || len(got.Gifts) != 1 {
		t.Errorf("bundle after round trip = %+v", got)
	}
}

func TestImportRejectsMissingProjects(t *testing.T) {
	s := newTestStore(t)
	before := len(s.Projects())

	if err := s.Import(Document{}); err != ErrInvalidBackup {
		t.Fatalf("Import = %v, want ErrInvalidBackup", err)
	}
	if len(s.Projects()) != before {
		t.Error("rejected import mutated state")
	}
}

func TestImportRejectsTraversalBundleKeys(t *testing.T) {
	s := newTestStore(t)
	doc := Document{
		Projects: []models.Project{{ID: "p1", Name: "Crafted"}},
		ProjectData: map[string]models.ProjectData{
			"../escape": {},
		},
	}
	if err := s.Import(doc); err == nil {
		t.Fatal("Import accepted a bundle key with a path separator")
	}
}

func TestImportEmptyListDeactivates(t *testing.T) {
	s := newTestStore(t)
	doc := Document{Projects: []models.Project{}, ProjectData: map[string]models.ProjectData{}}
	if err := s.Import(doc); err != nil {
		t.Fatalf("Import: %v", err)
	}
	if s.ActiveID() != "" {
		t.Errorf("active = %q, want none", s.ActiveID())
	}
}

func TestPromoteIdea(t *testing.T) {
	s := newTestStore(t)
	sam, _ := s.AddPerson("Sam", 50)
	ideas := []models.Idea{
		{Name: "Chess Set", EstimatedPrice: 25, Reason: "Loves chess", SearchQuery: "chess set"},
		{Name: "Scarf", EstimatedPrice: 15, Reason: "Cold office"},
	}
	if err := s.SetIdeas(sam.ID, ideas); err != nil {
		t.Fatal(err)
	}

	g, err := s.PromoteIdea(sam.ID, 0)
	if err != nil {
		t.Fatalf("PromoteIdea: %v", err)
	}
	if g.Name != "Chess Set" || g.Status != models.StatusIdea {
		t.Errorf("promoted gift = %+v", g)
	}

	p, _ := s.Person(sam.ID)
	if len(p.GeneratedIdeas) != 1 || p.GeneratedIdeas[0].Name != "Scarf" {
		t.Errorf("ideas after promote = %+v", p.GeneratedIdeas)
	}
	if len(s.GiftsFor(sam.ID)) != 1 {
		t.Error("promoted gift not in gift list")
	}

	if _, err := s.PromoteIdea(sam.ID, 5); err != ErrIdeaNotFound {
		t.Errorf("PromoteIdea out of range = %v, want ErrIdeaNotFound", err)
	}
}

func TestMergeProfileThroughStore(t *testing.T) {
	s := newTestStore(t)
	sam, _ := s.AddPerson("Sam", 50)
	if err := s.UpdateProfile(sam.ID, models.Profile{Obsession: "chess"}); err != nil {
		t.Fatal(err)
	}
	if err := s.MergeProfile(sam.ID, models.Profile{Obsession: "", DoNotBuy: "ties"}); err != nil {
		t.Fatal(err)
	}
	p, _ := s.Person(sam.ID)
	if p.Profile.Obsession != "chess" || p.Profile.DoNotBuy != "ties" {
		t.Errorf("merged profile = %+v", p.Profile)
	}
}

func TestMovePerson(t *testing.T) {
	s := newTestStore(t)
	a, _ := s.AddPerson("A", 10)
	b, _ := s.AddPerson("B", 10)
	c, _ := s.AddPerson("C", 10)

	if err := s.MovePerson(c.ID, 0); err != nil {
		t.Fatalf("MovePerson: %v", err)
	}
	got := s.Data().People
	if got[0].ID != c.ID || got[1].ID != a.ID || got[2].ID != b.ID {
		t.Errorf("order = %v, %v, %v", got[0].Name, got[1].Name, got[2].Name)
	}
}
