package models

import (
	"strings"
	"testing"
)

func TestStatusCycle(t *testing.T) {
	s := StatusIdea
	want := []Status{StatusBought, StatusWrapped, StatusIdea}
	for i, w := range want {
		s = s.Next()
		if s != w {
			t.Fatalf("step %d: got %q, want %q", i+1, s, w)
		}
	}

	// Three advances of any multiple return to the starting point.
	s = StatusIdea
	for i := 0; i < 9; i++ {
		s = s.Next()
	}
	if s != StatusIdea {
		t.Errorf("after 9 advances got %q, want idea", s)
	}
}

func TestStatusNextRecoversFromUnknown(t *testing.T) {
	// A corrupt status re-enters the cycle at its start.
	for _, s := range []Status{"", "shipped", "IDEA"} {
		if got := s.Next(); got != StatusIdea {
			t.Errorf("Next(%q) = %q, want idea", s, got)
		}
	}
}

func TestStatusPurchased(t *testing.T) {
	if StatusIdea.Purchased() {
		t.Error("idea should not count as purchased")
	}
	if !StatusBought.Purchased() || !StatusWrapped.Purchased() {
		t.Error("bought and wrapped should count as purchased")
	}
}

func TestProfileMergeKeepsExistingOnEmpty(t *testing.T) {
	existing := Profile{Obsession: "chess"}
	existing.Merge(Profile{Obsession: "", DoNotBuy: "ties"})

	if existing.Obsession != "chess" {
		t.Errorf("Obsession = %q, want chess", existing.Obsession)
	}
	if existing.DoNotBuy != "ties" {
		t.Errorf("DoNotBuy = %q, want ties", existing.DoNotBuy)
	}
}

func TestProfileMergeOverwritesWithNonEmpty(t *testing.T) {
	existing := Profile{Age: "30", Aesthetics: "minimalist"}
	existing.Merge(Profile{Age: "31", ShoeSize: "42"})

	if existing.Age != "31" {
		t.Errorf("Age = %q, want 31", existing.Age)
	}
	if existing.Aesthetics != "minimalist" {
		t.Errorf("Aesthetics = %q, want minimalist", existing.Aesthetics)
	}
	if existing.ShoeSize != "42" {
		t.Errorf("ShoeSize = %q, want 42", existing.ShoeSize)
	}
}

func TestProfileMergeIgnoresWhitespaceOnly(t *testing.T) {
	existing := Profile{Obsession: "chess"}
	existing.Merge(Profile{Obsession: "   "})
	if existing.Obsession != "chess" {
		t.Errorf("whitespace-only value clobbered field: %q", existing.Obsession)
	}
}

func TestIdeaSearchURL(t *testing.T) {
	i := Idea{Name: "Chess Set", SearchQuery: "wooden chess set tournament"}
	if got := i.SearchURL(); !strings.Contains(got, "wooden+chess+set+tournament") {
		t.Errorf("SearchURL = %q, want encoded search query", got)
	}

	// Falls back to the name when no query was supplied.
	i.SearchQuery = ""
	if got := i.SearchURL(); !strings.Contains(got, "Chess+Set") {
		t.Errorf("SearchURL = %q, want encoded name", got)
	}
}

func TestIdeaToGift(t *testing.T) {
	i := Idea{Name: "Chess Set", EstimatedPrice: 25, Reason: "Loves chess", SearchQuery: "chess set"}
	g := i.ToGift(42, 7)

	if g.ID != 42 || g.PersonID != 7 {
		t.Errorf("ids = (%d, %d), want (42, 7)", g.ID, g.PersonID)
	}
	if g.Status != StatusIdea {
		t.Errorf("Status = %q, want idea", g.Status)
	}
	if g.Category != DefaultCategory {
		t.Errorf("Category = %q, want %q", g.Category, DefaultCategory)
	}
	if g.Price != 25 {
		t.Errorf("Price = %v, want 25", g.Price)
	}
	if !strings.Contains(g.Notes, "Loves chess") {
		t.Errorf("Notes missing reason: %q", g.Notes)
	}
	if !strings.Contains(g.Notes, "https://www.google.com/search?q=chess+set") {
		t.Errorf("Notes missing search link: %q", g.Notes)
	}
}

func TestNextIDMonotonic(t *testing.T) {
	prev := NextID()
	for i := 0; i < 1000; i++ {
		id := NextID()
		if id <= prev {
			t.Fatalf("NextID not strictly increasing: %d then %d", prev, id)
		}
		prev = id
	}
}

func TestNewPersonDefaults(t *testing.T) {
	p := NewPerson(1, "Sam", 0)
	if p.Budget != 100 {
		t.Errorf("Budget = %v, want default 100", p.Budget)
	}
	if p.GeneratedIdeas == nil {
		t.Error("GeneratedIdeas should be initialized")
	}
	if !p.Profile.IsEmpty() {
		t.Error("new person should have an empty profile")
	}
}
