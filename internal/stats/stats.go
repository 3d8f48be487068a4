// Package stats computes budget figures over a project's data bundle. All
// functions are pure; callers pass the current bundle and get numbers back.
package stats

import "github.com/giftwise/giftwise-cli/internal/models"

// Totals are the project-wide aggregate figures.
type Totals struct {
	TotalPeopleBudget float64
	TotalSpent        float64
	TotalPlanned      float64
	GiftsBought       int
	GiftsWrapped      int
	TotalGifts        int
}

// PersonTotals are the figures for one recipient. Spent counts only
// purchased gifts; Planned counts every gift regardless of status.
type PersonTotals struct {
	Spent      float64
	Planned    float64
	BudgetLeft float64
}

// Compute derives the aggregate figures for a bundle.
func Compute(data models.ProjectData) Totals {
	t := Totals{TotalGifts: len(data.Gifts)}
	for _, p := range data.People {
		t.TotalPeopleBudget += p.Budget
	}
	for _, g := range data.Gifts {
		t.TotalPlanned += g.Price
		if g.Status.Purchased() {
			t.TotalSpent += g.Price
			t.GiftsBought++
		}
		if g.Status == models.StatusWrapped {
			t.GiftsWrapped++
		}
	}
	return t
}

// ForPerson derives the per-person figures. BudgetLeft subtracts spent (not
// planned) from the personal budget, so ideas do not count against it.
func ForPerson(data models.ProjectData, person models.Person) PersonTotals {
	var t PersonTotals
	for _, g := range data.Gifts {
		if g.PersonID != person.ID {
			continue
		}
		t.Planned += g.Price
		if g.Status != models.StatusIdea {
			t.Spent += g.Price
		}
	}
	t.BudgetLeft = person.Budget - t.Spent
	return t
}

// BudgetLeft is the headroom used when asking for gift ideas: the personal
// budget minus everything already planned for that person.
func BudgetLeft(data models.ProjectData, person models.Person) float64 {
	var planned float64
	for _, g := range data.Gifts {
		if g.PersonID == person.ID {
			planned += g.Price
		}
	}
	return person.Budget - planned
}

// ProjectedTotal is the total planned spend as it would be after committing
// a gift at newPrice. When editingGiftID matches an existing gift its old
// price is backed out first, so the projection can warn before the edit is
// committed.
func ProjectedTotal(data models.ProjectData, editingGiftID int64, newPrice float64) float64 {
	total := Compute(data).TotalPlanned
	if editingGiftID != 0 {
		for _, g := range data.Gifts {
			if g.ID == editingGiftID {
				total -= g.Price
				break
			}
		}
	}
	return total + newPrice
}

// IsOverBudget reports whether projectedTotal exceeds the limit. A limit of
// zero is a real (degenerate) ceiling, not "unlimited": any positive spend
// is over it.
func IsOverBudget(projectedTotal, limit float64) bool {
	return projectedTotal > limit
}

// OverBudgetAmount is how far projectedTotal exceeds the limit. Negative
// when under.
func OverBudgetAmount(projectedTotal, limit float64) float64 {
	return projectedTotal - limit
}

// RemainingBudget is the project headroom against everything planned.
func RemainingBudget(data models.ProjectData) float64 {
	return data.Limit - Compute(data).TotalPlanned
}

// UnallocatedBudget is the slice of the project ceiling not yet assigned to
// any person's budget.
func UnallocatedBudget(data models.ProjectData) float64 {
	return data.Limit - Compute(data).TotalPeopleBudget
}
