package gemini

import (
	"context"
	"strings"

	"github.com/giftwise/giftwise-cli/internal/models"
)

// The six planner operations. Each issues exactly one request; callers
// substitute the package fallbacks on error and log the cause.

// GenerateGiftIdeas asks for five gift suggestions tailored to the person's
// profile and remaining budget. Fallback on failure: an empty list.
func (c *Client) GenerateGiftIdeas(ctx context.Context, person models.Person, budgetLeft float64) ([]models.Idea, error) {
	text, err := c.generate(ctx, c.ideasPrompt(person, budgetLeft), true)
	if err != nil {
		return nil, err
	}
	return decodeIdeas(text)
}

// ExtractProfile pulls structured profile fields out of a free-form blurb.
// There is no fallback: a nil result must not be merged, and the caller
// surfaces an explicit try-again error instead.
func (c *Client) ExtractProfile(ctx context.Context, text string) (*models.Profile, error) {
	generated, err := c.generate(ctx, extractProfilePrompt(text), true)
	if err != nil {
		return nil, err
	}
	return decodeProfile(generated)
}

// GenerateStrategy produces a two-sentence gifting strategy for the person.
// Fallback on failure: FallbackStrategy.
func (c *Client) GenerateStrategy(ctx context.Context, person models.Person) (string, error) {
	text, err := c.generate(ctx, strategyPrompt(person), false)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// AnalyzeGiftMatch rates how well a gift fits the person, returning text in
// "Score: X/10. <reasoning>" form. Fallback on failure: FallbackAnalysis.
func (c *Client) AnalyzeGiftMatch(ctx context.Context, person models.Person, giftName string) (string, error) {
	text, err := c.generate(ctx, analyzePrompt(person, giftName), false)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// GenerateAlternatives suggests three gifts similar in spirit and price to
// the candidate. Fallback on failure: an empty list.
func (c *Client) GenerateAlternatives(ctx context.Context, person models.Person, giftName string, price float64) ([]models.Alternative, error) {
	text, err := c.generate(ctx, c.alternativesPrompt(person, giftName, price), true)
	if err != nil {
		return nil, err
	}
	return decodeAlternatives(text)
}

// WriteCardMessage writes a short greeting-card message to accompany the
// gift. Fallback on failure: FallbackCardMessage.
func (c *Client) WriteCardMessage(ctx context.Context, person models.Person, giftName string) (string, error) {
	text, err := c.generate(ctx, cardMessagePrompt(person, giftName), false)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
