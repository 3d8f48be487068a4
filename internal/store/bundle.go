package store

import (
	"strconv"
	"strings"

	"github.com/giftwise/giftwise-cli/internal/models"
)

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// Bundle mutators. Each one edits the active project's in-memory view and
// persists it before returning, so storage always reflects the last
// completed operation.

// Person returns a person in the active project by id.
func (s *Store) Person(id int64) (models.Person, bool) {
	for _, p := range s.data.People {
		if p.ID == id {
			return p, true
		}
	}
	return models.Person{}, false
}

// FindPerson resolves a person by exact name (case-insensitive) or id string
// prefix, for command-line references.
func (s *Store) FindPerson(ref string) (models.Person, bool) {
	for _, p := range s.data.People {
		if strings.EqualFold(p.Name, ref) {
			return p, true
		}
	}
	for _, p := range s.data.People {
		if strings.HasPrefix(formatID(p.ID), ref) {
			return p, true
		}
	}
	return models.Person{}, false
}

// Gift returns a gift in the active project by id.
func (s *Store) Gift(id int64) (models.Gift, bool) {
	for _, g := range s.data.Gifts {
		if g.ID == id {
			return g, true
		}
	}
	return models.Gift{}, false
}

// GiftsFor returns every gift belonging to the given person.
func (s *Store) GiftsFor(personID int64) []models.Gift {
	var gifts []models.Gift
	for _, g := range s.data.Gifts {
		if g.PersonID == personID {
			gifts = append(gifts, g)
		}
	}
	return gifts
}

// AddPerson appends a new recipient. A blank name blocks the operation.
func (s *Store) AddPerson(name string, budget float64) (models.Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Person{}, ErrEmptyName
	}
	if s.cfg.ActiveProjectID == "" {
		return models.Person{}, ErrNoActiveProject
	}
	p := models.NewPerson(models.NextID(), name, budget)
	s.data.People = append(s.data.People, p)
	return p, s.saveBundle()
}

// DeletePerson removes a recipient and cascades to every gift assigned to
// them.
func (s *Store) DeletePerson(id int64) error {
	idx := -1
	for i, p := range s.data.People {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrPersonNotFound
	}
	s.data.People = append(s.data.People[:idx], s.data.People[idx+1:]...)

	kept := s.data.Gifts[:0]
	for _, g := range s.data.Gifts {
		if g.PersonID != id {
			kept = append(kept, g)
		}
	}
	s.data.Gifts = kept
	return s.saveBundle()
}

// MovePerson reorders the people list. newIndex is clamped to the list
// bounds.
func (s *Store) MovePerson(id int64, newIndex int) error {
	idx := -1
	for i, p := range s.data.People {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrPersonNotFound
	}
	if newIndex < 0 {
		newIndex = 0
	}
	if newIndex >= len(s.data.People) {
		newIndex = len(s.data.People) - 1
	}
	p := s.data.People[idx]
	s.data.People = append(s.data.People[:idx], s.data.People[idx+1:]...)
	s.data.People = append(s.data.People[:newIndex], append([]models.Person{p}, s.data.People[newIndex:]...)...)
	return s.saveBundle()
}

func (s *Store) mutatePerson(id int64, fn func(*models.Person)) error {
	for i := range s.data.People {
		if s.data.People[i].ID == id {
			fn(&s.data.People[i])
			return s.saveBundle()
		}
	}
	return ErrPersonNotFound
}

// SetPersonBudget updates a recipient's personal ceiling.
func (s *Store) SetPersonBudget(id int64, budget float64) error {
	return s.mutatePerson(id, func(p *models.Person) { p.Budget = budget })
}

// UpdateProfile replaces a recipient's profile wholesale.
func (s *Store) UpdateProfile(id int64, profile models.Profile) error {
	return s.mutatePerson(id, func(p *models.Person) { p.Profile = profile })
}

// MergeProfile folds extracted fields into a recipient's profile. Only
// non-empty extracted values land; existing data is never cleared.
func (s *Store) MergeProfile(id int64, extracted models.Profile) error {
	return s.mutatePerson(id, func(p *models.Person) { p.Profile.Merge(extracted) })
}

// SetStrategy overwrites a recipient's AI gifting strategy.
func (s *Store) SetStrategy(id int64, strategy string) error {
	return s.mutatePerson(id, func(p *models.Person) { p.Strategy = strategy })
}

// SetIdeas replaces a recipient's generated ideas wholesale.
func (s *Store) SetIdeas(id int64, ideas []models.Idea) error {
	if ideas == nil {
		ideas = []models.Idea{}
	}
	return s.mutatePerson(id, func(p *models.Person) { p.GeneratedIdeas = ideas })
}

// ClearIdeas drops every generated idea for a recipient.
func (s *Store) ClearIdeas(id int64) error {
	return s.SetIdeas(id, nil)
}

// DeleteIdea removes a single generated idea by position.
func (s *Store) DeleteIdea(personID int64, index int) error {
	p, ok := s.Person(personID)
	if !ok {
		return ErrPersonNotFound
	}
	if index < 0 || index >= len(p.GeneratedIdeas) {
		return ErrIdeaNotFound
	}
	return s.mutatePerson(personID, func(p *models.Person) {
		p.GeneratedIdeas = append(p.GeneratedIdeas[:index], p.GeneratedIdeas[index+1:]...)
	})
}

// PromoteIdea converts a generated idea into a real gift for the person and
// removes it from the idea list.
func (s *Store) PromoteIdea(personID int64, index int) (models.Gift, error) {
	p, ok := s.Person(personID)
	if !ok {
		return models.Gift{}, ErrPersonNotFound
	}
	if index < 0 || index >= len(p.GeneratedIdeas) {
		return models.Gift{}, ErrIdeaNotFound
	}
	gift := p.GeneratedIdeas[index].ToGift(models.NextID(), personID)
	s.data.Gifts = append(s.data.Gifts, gift)
	err := s.mutatePerson(personID, func(p *models.Person) {
		p.GeneratedIdeas = append(p.GeneratedIdeas[:index], p.GeneratedIdeas[index+1:]...)
	})
	if err != nil {
		return models.Gift{}, err
	}
	return gift, nil
}

// AddGift creates a gift for an existing person. The person must exist in
// the active project; a blank name blocks the operation.
func (s *Store) AddGift(personID int64, name string, price float64, category, notes string) (models.Gift, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Gift{}, ErrEmptyName
	}
	if _, ok := s.Person(personID); !ok {
		return models.Gift{}, ErrPersonNotFound
	}
	if category == "" {
		category = models.DefaultCategory
	}
	g := models.Gift{
		ID:       models.NextID(),
		PersonID: personID,
		Name:     name,
		Price:    price,
		Status:   models.StatusIdea,
		Category: category,
		Notes:    notes,
	}
	s.data.Gifts = append(s.data.Gifts, g)
	return g, s.saveBundle()
}

func (s *Store) mutateGift(id int64, fn func(*models.Gift)) error {
	for i := range s.data.Gifts {
		if s.data.Gifts[i].ID == id {
			fn(&s.data.Gifts[i])
			return s.saveBundle()
		}
	}
	return ErrGiftNotFound
}

// EditGift updates a gift's editable fields. Empty name keeps the old one;
// a negative price keeps the old price.
func (s *Store) EditGift(id int64, name string, price float64, category, notes string) error {
	return s.mutateGift(id, func(g *models.Gift) {
		if strings.TrimSpace(name) != "" {
			g.Name = strings.TrimSpace(name)
		}
		if price >= 0 {
			g.Price = price
		}
		if category != "" {
			g.Category = category
		}
		if notes != "" {
			g.Notes = notes
		}
	})
}

// DeleteGift removes a gift.
func (s *Store) DeleteGift(id int64) error {
	idx := -1
	for i, g := range s.data.Gifts {
		if g.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrGiftNotFound
	}
	s.data.Gifts = append(s.data.Gifts[:idx], s.data.Gifts[idx+1:]...)
	return s.saveBundle()
}

// AdvanceGiftStatus cycles a gift's status one step forward and returns the
// updated gift.
func (s *Store) AdvanceGiftStatus(id int64) (models.Gift, error) {
	var updated models.Gift
	err := s.mutateGift(id, func(g *models.Gift) {
		g.Status = g.Status.Next()
		updated = *g
	})
	return updated, err
}

// SetAnalysis overwrites a gift's AI fit-score text.
func (s *Store) SetAnalysis(id int64, analysis string) error {
	return s.mutateGift(id, func(g *models.Gift) { g.Analysis = analysis })
}

// SetLimit updates the project's total budget ceiling.
func (s *Store) SetLimit(limit float64) error {
	if s.cfg.ActiveProjectID == "" {
		return ErrNoActiveProject
	}
	s.data.Limit = limit
	return s.saveBundle()
}
