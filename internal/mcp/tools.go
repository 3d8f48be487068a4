package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/giftwise/giftwise-cli/internal/gemini"
	"github.com/giftwise/giftwise-cli/internal/models"
	"github.com/giftwise/giftwise-cli/internal/stats"
	"github.com/giftwise/giftwise-cli/internal/store"
)

// toolEnv carries the shared dependencies into tool handlers.
type toolEnv struct {
	store *store.Store
	ai    *gemini.Client
}

func registerTools(server *mcp.Server, s *store.Store, ai *gemini.Client) {
	env := &toolEnv{store: s, ai: ai}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_projects",
		Description: "List all gift plans. The active plan is marked; every other tool operates on the active plan.",
		Annotations: &mcp.ToolAnnotations{
			Title:         "List Plans",
			ReadOnlyHint:  true,
			OpenWorldHint: boolPtr(false),
		},
	}, env.handleListProjects)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "switch_project",
		Description: "Switch the active gift plan by name or id prefix.",
		Annotations: &mcp.ToolAnnotations{
			Title:          "Switch Plan",
			IdempotentHint: true,
			OpenWorldHint:  boolPtr(false),
		},
	}, env.handleSwitchProject)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_people",
		Description: "List the active plan's recipients with their budgets, spending and pending idea counts.",
		Annotations: &mcp.ToolAnnotations{
			Title:         "List Recipients",
			ReadOnlyHint:  true,
			OpenWorldHint: boolPtr(false),
		},
	}, env.handleListPeople)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_person",
		Description: "Add a recipient to the active plan. REQUIRED: name. OPTIONAL: budget (defaults to 100).",
		Annotations: &mcp.ToolAnnotations{
			Title:           "Add Recipient",
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(false),
		},
	}, env.handleAddPerson)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_gifts",
		Description: "List gifts in the active plan. OPTIONAL: person (name or id) to filter.",
		Annotations: &mcp.ToolAnnotations{
			Title:         "List Gifts",
			ReadOnlyHint:  true,
			OpenWorldHint: boolPtr(false),
		},
	}, env.handleListGifts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_gift",
		Description: "Add a gift for a recipient. REQUIRED: person (name or id), name. OPTIONAL: price, category, notes. The response includes budget warnings when the gift pushes totals over a limit.",
		Annotations: &mcp.ToolAnnotations{
			Title:           "Add Gift",
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(false),
		},
	}, env.handleAddGift)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "cycle_gift_status",
		Description: "Advance a gift one step through idea -> bought -> wrapped -> idea. REQUIRED: giftId.",
		Annotations: &mcp.ToolAnnotations{
			Title:         "Cycle Gift Status",
			OpenWorldHint: boolPtr(false),
		},
	}, env.handleCycleStatus)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "project_stats",
		Description: "Budget position of the active plan: ceiling, allocated, planned, spent and gift counts.",
		Annotations: &mcp.ToolAnnotations{
			Title:         "Plan Stats",
			ReadOnlyHint:  true,
			OpenWorldHint: boolPtr(false),
		},
	}, env.handleStats)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_ideas",
		Description: "Generate AI gift ideas for a recipient within their remaining budget. REQUIRED: person. The ideas replace any previous pending list; promote one with promote_idea.",
		Annotations: &mcp.ToolAnnotations{
			Title:         "Generate Ideas",
			OpenWorldHint: boolPtr(true),
		},
	}, env.handleGenerateIdeas)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "promote_idea",
		Description: "Turn a pending AI idea into a real gift. REQUIRED: person, number (1-based position from generate_ideas).",
		Annotations: &mcp.ToolAnnotations{
			Title:           "Promote Idea",
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(false),
		},
	}, env.handlePromoteIdea)
}

// --- handlers ---

type emptyInput struct{}

func (e *toolEnv) handleListProjects(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, interface{}, error) {
	type projectView struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Active bool   `json:"active"`
	}
	out := make([]projectView, 0)
	for _, p := range e.store.Projects() {
		out = append(out, projectView{ID: p.ID, Name: p.Name, Active: p.ID == e.store.ActiveID()})
	}
	res, err := textResult(out)
	return res, nil, err
}

type switchProjectInput struct {
	Project string `json:"project"`
}

func (e *toolEnv) handleSwitchProject(ctx context.Context, req *mcp.CallToolRequest, input switchProjectInput) (*mcp.CallToolResult, interface{}, error) {
	p, ok := e.store.FindProject(input.Project)
	if !ok {
		return nil, nil, fmt.Errorf("no plan matching %q", input.Project)
	}
	if err := e.store.SwitchTo(p.ID); err != nil {
		return nil, nil, err
	}
	res, err := textResult(map[string]string{"active": p.Name})
	return res, nil, err
}

func (e *toolEnv) handleListPeople(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, interface{}, error) {
	data := e.store.Data()
	type personView struct {
		ID           int64   `json:"id"`
		Name         string  `json:"name"`
		Budget       float64 `json:"budget"`
		Spent        float64 `json:"spent"`
		BudgetLeft   float64 `json:"budgetLeft"`
		PendingIdeas int     `json:"pendingIdeas"`
	}
	out := make([]personView, 0, len(data.People))
	for _, p := range data.People {
		pt := stats.ForPerson(data, p)
		out = append(out, personView{
			ID: p.ID, Name: p.Name, Budget: p.Budget,
			Spent: pt.Spent, BudgetLeft: pt.BudgetLeft,
			PendingIdeas: len(p.GeneratedIdeas),
		})
	}
	res, err := textResult(out)
	return res, nil, err
}

type addPersonInput struct {
	Name   string  `json:"name"`
	Budget float64 `json:"budget,omitempty"`
}

func (e *toolEnv) handleAddPerson(ctx context.Context, req *mcp.CallToolRequest, input addPersonInput) (*mcp.CallToolResult, interface{}, error) {
	p, err := e.store.AddPerson(input.Name, input.Budget)
	if err != nil {
		return nil, nil, err
	}
	res, err := textResult(p)
	return res, nil, err
}

type listGiftsInput struct {
	Person string `json:"person,omitempty"`
}

func (e *toolEnv) handleListGifts(ctx context.Context, req *mcp.CallToolRequest, input listGiftsInput) (*mcp.CallToolResult, interface{}, error) {
	gifts := e.store.Data().Gifts
	if input.Person != "" {
		p, ok := e.store.FindPerson(input.Person)
		if !ok {
			return nil, nil, fmt.Errorf("no recipient matching %q", input.Person)
		}
		gifts = e.store.GiftsFor(p.ID)
	}
	if gifts == nil {
		gifts = []models.Gift{}
	}
	res, err := textResult(gifts)
	return res, nil, err
}

type addGiftInput struct {
	Person   string  `json:"person"`
	Name     string  `json:"name"`
	Price    float64 `json:"price,omitempty"`
	Category string  `json:"category,omitempty"`
	Notes    string  `json:"notes,omitempty"`
}

func (e *toolEnv) handleAddGift(ctx context.Context, req *mcp.CallToolRequest, input addGiftInput) (*mcp.CallToolResult, interface{}, error) {
	p, ok := e.store.FindPerson(input.Person)
	if !ok {
		return nil, nil, fmt.Errorf("no recipient matching %q", input.Person)
	}
	projected := stats.ProjectedTotal(e.store.Data(), 0, input.Price)
	g, err := e.store.AddGift(p.ID, input.Name, input.Price, input.Category, input.Notes)
	if err != nil {
		return nil, nil, err
	}

	data := e.store.Data()
	var warnings []string
	pt := stats.ForPerson(data, p)
	if pt.Planned > p.Budget {
		warnings = append(warnings, fmt.Sprintf("%s's planned gifts (%.2f) exceed their budget (%.2f)", p.Name, pt.Planned, p.Budget))
	}
	if stats.IsOverBudget(projected, data.Limit) {
		warnings = append(warnings, fmt.Sprintf("plan total %.2f is over the %.2f ceiling", projected, data.Limit))
	}
	res, err := textResult(map[string]interface{}{"gift": g, "warnings": warnings})
	return res, nil, err
}

type cycleStatusInput struct {
	GiftID int64 `json:"giftId"`
}

func (e *toolEnv) handleCycleStatus(ctx context.Context, req *mcp.CallToolRequest, input cycleStatusInput) (*mcp.CallToolResult, interface{}, error) {
	g, err := e.store.AdvanceGiftStatus(input.GiftID)
	if err != nil {
		return nil, nil, err
	}
	res, err := textResult(g)
	return res, nil, err
}

func (e *toolEnv) handleStats(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, interface{}, error) {
	data := e.store.Data()
	t := stats.Compute(data)
	res, err := textResult(map[string]interface{}{
		"limit":             data.Limit,
		"totalPeopleBudget": t.TotalPeopleBudget,
		"totalPlanned":      t.TotalPlanned,
		"totalSpent":        t.TotalSpent,
		"remainingBudget":   stats.RemainingBudget(data),
		"giftsBought":       t.GiftsBought,
		"giftsWrapped":      t.GiftsWrapped,
		"totalGifts":        t.TotalGifts,
	})
	return res, nil, err
}

type generateIdeasInput struct {
	Person string `json:"person"`
}

func (e *toolEnv) handleGenerateIdeas(ctx context.Context, req *mcp.CallToolRequest, input generateIdeasInput) (*mcp.CallToolResult, interface{}, error) {
	if e.ai == nil {
		return nil, nil, errors.New("no Gemini API key configured; run 'giftwise setup key' first")
	}
	p, ok := e.store.FindPerson(input.Person)
	if !ok {
		return nil, nil, fmt.Errorf("no recipient matching %q", input.Person)
	}
	left := stats.BudgetLeft(e.store.Data(), p)
	ideas, err := e.ai.GenerateGiftIdeas(ctx, p, left)
	if err != nil {
		return nil, nil, err
	}
	if err := e.store.SetIdeas(p.ID, ideas); err != nil {
		return nil, nil, err
	}
	res, err := textResult(ideas)
	return res, nil, err
}

type promoteIdeaInput struct {
	Person string `json:"person"`
	Number int    `json:"number"`
}

func (e *toolEnv) handlePromoteIdea(ctx context.Context, req *mcp.CallToolRequest, input promoteIdeaInput) (*mcp.CallToolResult, interface{}, error) {
	p, ok := e.store.FindPerson(input.Person)
	if !ok {
		return nil, nil, fmt.Errorf("no recipient matching %q", input.Person)
	}
	g, err := e.store.PromoteIdea(p.ID, input.Number-1)
	if err != nil {
		return nil, nil, err
	}
	res, err := textResult(g)
	return res, nil, err
}
