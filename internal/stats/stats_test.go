package stats

import (
	"testing"

	"github.com/giftwise/giftwise-cli/internal/models"
)

func bundle(limit float64, people []models.Person, gifts []models.Gift) models.ProjectData {
	return models.ProjectData{People: people, Gifts: gifts, Limit: limit}
}

func TestCompute(t *testing.T) {
	data := bundle(200,
		[]models.Person{
			{ID: 1, Name: "Sam", Budget: 50},
			{ID: 2, Name: "Alex", Budget: 75},
		},
		[]models.Gift{
			{ID: 10, PersonID: 1, Price: 20, Status: models.StatusIdea},
			{ID: 11, PersonID: 1, Price: 30, Status: models.StatusBought},
			{ID: 12, PersonID: 2, Price: 40, Status: models.StatusWrapped},
		},
	)

	got := Compute(data)
	if got.TotalPeopleBudget != 125 {
		t.Errorf("TotalPeopleBudget = %v, want 125", got.TotalPeopleBudget)
	}
	if got.TotalSpent != 70 {
		t.Errorf("TotalSpent = %v, want 70", got.TotalSpent)
	}
	if got.TotalPlanned != 90 {
		t.Errorf("TotalPlanned = %v, want 90", got.TotalPlanned)
	}
	if got.GiftsBought != 2 {
		t.Errorf("GiftsBought = %v, want 2", got.GiftsBought)
	}
	if got.GiftsWrapped != 1 {
		t.Errorf("GiftsWrapped = %v, want 1", got.GiftsWrapped)
	}
	if got.TotalSpent > got.TotalPlanned {
		t.Error("TotalSpent exceeds TotalPlanned")
	}
}

// Personal and project budget warnings are independent: a gift can blow a
// person's budget while staying well under the project ceiling.
func TestPersonalAndProjectWarningsAreIndependent(t *testing.T) {
	sam := models.Person{ID: 1, Name: "Sam", Budget: 50}
	data := bundle(200,
		[]models.Person{sam},
		[]models.Gift{{ID: 10, PersonID: 1, Name: "Headphones", Price: 60, Status: models.StatusBought}},
	)

	projected := ProjectedTotal(data, 0, 0)
	if IsOverBudget(projected, data.Limit) {
		t.Errorf("project over budget at %v/%v, want under", projected, data.Limit)
	}

	pt := ForPerson(data, sam)
	if pt.BudgetLeft != -10 {
		t.Errorf("BudgetLeft = %v, want -10", pt.BudgetLeft)
	}
}

func TestProjectedTotalWhileEditing(t *testing.T) {
	data := bundle(100,
		[]models.Person{{ID: 1, Budget: 100}},
		[]models.Gift{{ID: 10, PersonID: 1, Price: 80, Status: models.StatusIdea}},
	)

	projected := ProjectedTotal(data, 10, 130)
	if projected != 130 {
		t.Errorf("ProjectedTotal = %v, want 130", projected)
	}
	if !IsOverBudget(projected, data.Limit) {
		t.Error("expected over budget")
	}
	if got := OverBudgetAmount(projected, data.Limit); got != 30 {
		t.Errorf("OverBudgetAmount = %v, want 30", got)
	}
}

func TestProjectedTotalAddingNewGift(t *testing.T) {
	data := bundle(100, nil, []models.Gift{{ID: 10, Price: 80, Status: models.StatusIdea}})
	if got := ProjectedTotal(data, 0, 15); got != 95 {
		t.Errorf("ProjectedTotal = %v, want 95", got)
	}
}

// A zero limit is a real ceiling: the first penny of spend is over it.
func TestZeroLimitIsARealCeiling(t *testing.T) {
	data := bundle(0, nil, []models.Gift{{ID: 10, Price: 1, Status: models.StatusIdea}})
	projected := ProjectedTotal(data, 0, 0)
	if !IsOverBudget(projected, data.Limit) {
		t.Error("zero limit with spend should be over budget")
	}
	if IsOverBudget(0, 0) {
		t.Error("zero spend against zero limit should not be over budget")
	}
}

func TestForPersonCountsOnlyTheirGifts(t *testing.T) {
	sam := models.Person{ID: 1, Budget: 100}
	data := bundle(0,
		[]models.Person{sam, {ID: 2, Budget: 100}},
		[]models.Gift{
			{ID: 10, PersonID: 1, Price: 25, Status: models.StatusIdea},
			{ID: 11, PersonID: 1, Price: 10, Status: models.StatusBought},
			{ID: 12, PersonID: 2, Price: 99, Status: models.StatusBought},
		},
	)

	pt := ForPerson(data, sam)
	if pt.Planned != 35 {
		t.Errorf("Planned = %v, want 35", pt.Planned)
	}
	if pt.Spent != 10 {
		t.Errorf("Spent = %v, want 10", pt.Spent)
	}
	if pt.BudgetLeft != 90 {
		t.Errorf("BudgetLeft = %v, want 90", pt.BudgetLeft)
	}
}

func TestBudgetLeftSubtractsAllPlanned(t *testing.T) {
	sam := models.Person{ID: 1, Budget: 100}
	data := bundle(0,
		[]models.Person{sam},
		[]models.Gift{
			{ID: 10, PersonID: 1, Price: 25, Status: models.StatusIdea},
			{ID: 11, PersonID: 1, Price: 10, Status: models.StatusBought},
		},
	)
	if got := BudgetLeft(data, sam); got != 65 {
		t.Errorf("BudgetLeft = %v, want 65", got)
	}
}

func TestUnallocatedAndRemaining(t *testing.T) {
	data := bundle(300,
		[]models.Person{{ID: 1, Budget: 100}, {ID: 2, Budget: 120}},
		[]models.Gift{{ID: 10, PersonID: 1, Price: 50, Status: models.StatusBought}},
	)
	if got := UnallocatedBudget(data); got != 80 {
		t.Errorf("UnallocatedBudget = %v, want 80", got)
	}
	if got := RemainingBudget(data); got != 250 {
		t.Errorf("RemainingBudget = %v, want 250", got)
	}
}
