package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/giftwise/giftwise-cli/internal/gemini"
	"github.com/giftwise/giftwise-cli/internal/models"
	"github.com/giftwise/giftwise-cli/internal/stats"
	"github.com/giftwise/giftwise-cli/internal/store"
)

// writeError maps store sentinel errors to HTTP statuses.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrProjectNotFound),
		errors.Is(err, store.ErrPersonNotFound),
		errors.Is(err, store.ErrGiftNotFound),
		errors.Is(err, store.ErrIdeaNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrEmptyName),
		errors.Is(err, store.ErrNoActiveProject),
		errors.Is(err, store.ErrInvalidBackup):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a number"})
		return 0, false
	}
	return id, true
}

// --- projects ---

func (s *Server) listProjects(c *gin.Context) {
	type projectView struct {
		models.Project
		Active bool `json:"active"`
	}
	out := make([]projectView, 0)
	for _, p := range s.store.Projects() {
		out = append(out, projectView{Project: p, Active: p.ID == s.store.ActiveID()})
	}
	c.JSON(http.StatusOK, out)
}

// CreateProjectInput DTO for creating a new project.
type CreateProjectInput struct {
	Name string `json:"name" binding:"required"`
}

func (s *Server) createProject(c *gin.Context) {
	var input CreateProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := s.store.Create(input.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (s *Server) renameProject(c *gin.Context) {
	var input CreateProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.store.Rename(c.Param("id"), input.Name); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "name": input.Name})
}

func (s *Server) deleteProject(c *gin.Context) {
	if err := s.store.Delete(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) activateProject(c *gin.Context) {
	if err := s.store.SwitchTo(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": c.Param("id")})
}

// LimitInput DTO for the project budget ceiling.
type LimitInput struct {
	Limit float64 `json:"limit"`
}

func (s *Server) setLimit(c *gin.Context) {
	var input LimitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.store.SetLimit(input.Limit); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"limit": input.Limit})
}

// --- people ---

func (s *Server) listPeople(c *gin.Context) {
	people := s.store.Data().People
	if people == nil {
		people = []models.Person{}
	}
	c.JSON(http.StatusOK, people)
}

// CreatePersonInput DTO for adding a recipient.
type CreatePersonInput struct {
	Name   string  `json:"name" binding:"required"`
	Budget float64 `json:"budget"`
}

func (s *Server) createPerson(c *gin.Context) {
	var input CreatePersonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := s.store.AddPerson(input.Name, input.Budget)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (s *Server) deletePerson(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.store.DeletePerson(id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// BudgetInput DTO for a recipient's personal budget.
type BudgetInput struct {
	Budget float64 `json:"budget"`
}

func (s *Server) setBudget(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input BudgetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.store.SetPersonBudget(id, input.Budget); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "budget": input.Budget})
}

func (s *Server) updateProfile(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var profile models.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.store.UpdateProfile(id, profile); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// --- gifts ---

func (s *Server) listGifts(c *gin.Context) {
	gifts := s.store.Data().Gifts
	if q := c.Query("person"); q != "" {
		pid, err := strconv.ParseInt(q, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "person must be a number"})
			return
		}
		gifts = s.store.GiftsFor(pid)
	}
	if gifts == nil {
		gifts = []models.Gift{}
	}
	c.JSON(http.StatusOK, gifts)
}

// GiftInput DTO for creating or editing a gift.
type GiftInput struct {
	PersonID int64   `json:"personId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Notes    string  `json:"notes"`
}

func (s *Server) createGift(c *gin.Context) {
	var input GiftInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	g, err := s.store.AddGift(input.PersonID, input.Name, input.Price, input.Category, input.Notes)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, g)
}

func (s *Server) updateGift(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	input := GiftInput{Price: -1}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.store.EditGift(id, input.Name, input.Price, input.Category, input.Notes); err != nil {
		writeError(c, err)
		return
	}
	g, _ := s.store.Gift(id)
	c.JSON(http.StatusOK, g)
}

func (s *Server) deleteGift(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.store.DeleteGift(id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) cycleStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	g, err := s.store.AdvanceGiftStatus(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

// --- stats ---

func (s *Server) projectStats(c *gin.Context) {
	data := s.store.Data()
	t := stats.Compute(data)
	c.JSON(http.StatusOK, gin.H{
		"limit":             data.Limit,
		"totalPeopleBudget": t.TotalPeopleBudget,
		"totalSpent":        t.TotalSpent,
		"totalPlanned":      t.TotalPlanned,
		"giftsBought":       t.GiftsBought,
		"giftsWrapped":      t.GiftsWrapped,
		"totalGifts":        t.TotalGifts,
		"remainingBudget":   stats.RemainingBudget(data),
		"overBudget":        stats.IsOverBudget(t.TotalPlanned, data.Limit),
	})
}

// --- backup ---

func (s *Server) exportBackup(c *gin.Context) {
	doc, err := s.store.Export()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (s *Server) importBackup(c *gin.Context) {
	var doc store.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.store.Import(doc); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": len(doc.Projects)})
}

// --- AI ---

func (s *Server) requireAI(c *gin.Context) bool {
	if s.ai == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no Gemini API key configured"})
		return false
	}
	return true
}

func (s *Server) generateIdeas(c *gin.Context) {
	if !s.requireAI(c) {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, found := s.store.Person(id)
	if !found {
		writeError(c, store.ErrPersonNotFound)
		return
	}
	left := stats.BudgetLeft(s.store.Data(), p)
	ideas, err := s.ai.GenerateGiftIdeas(c.Request.Context(), p, left)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if err := s.store.SetIdeas(p.ID, ideas); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ideas)
}

func (s *Server) generateStrategy(c *gin.Context) {
	if !s.requireAI(c) {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, found := s.store.Person(id)
	if !found {
		writeError(c, store.ErrPersonNotFound)
		return
	}
	strategy, err := s.ai.GenerateStrategy(c.Request.Context(), p)
	if err != nil {
		slog.Warn("strategy generation failed", "person", p.Name, "error", err)
		strategy = gemini.FallbackStrategy
	}
	if err := s.store.SetStrategy(p.ID, strategy); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"strategy": strategy})
}

// ExtractInput DTO carrying free-form notes about a recipient.
type ExtractInput struct {
	Text string `json:"text" binding:"required"`
}

func (s *Server) extractProfile(c *gin.Context) {
	if !s.requireAI(c) {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input ExtractInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	profile, err := s.ai.ExtractProfile(c.Request.Context(), input.Text)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not extract profile details, please try again"})
		return
	}
	if err := s.store.MergeProfile(id, *profile); err != nil {
		writeError(c, err)
		return
	}
	p, _ := s.store.Person(id)
	c.JSON(http.StatusOK, p.Profile)
}

func (s *Server) analyzeGift(c *gin.Context) {
	if !s.requireAI(c) {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	g, found := s.store.Gift(id)
	if !found {
		writeError(c, store.ErrGiftNotFound)
		return
	}
	p, found := s.store.Person(g.PersonID)
	if !found {
		writeError(c, store.ErrPersonNotFound)
		return
	}
	analysis, err := s.ai.AnalyzeGiftMatch(c.Request.Context(), p, g.Name)
	if err != nil {
		slog.Warn("gift analysis failed", "gift", g.Name, "error", err)
		analysis = gemini.FallbackAnalysis
	}
	if err := s.store.SetAnalysis(g.ID, analysis); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"analysis": analysis})
}
