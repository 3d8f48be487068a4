package gemini

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/giftwise/giftwise-cli/internal/models"
)

// extractJSON pulls the JSON payload out of generated text that may wrap it
// in markdown fencing or conversational filler. It returns the slice from
// the first opening bracket to the matching last closing bracket.
func extractJSON(text string) (string, error) {
	s := strings.TrimSpace(text)

	// Strip a markdown fence if the whole payload is inside one.
	if idx := strings.Index(s, "```"); idx >= 0 {
		s = s[idx+3:]
		s = strings.TrimPrefix(s, "json")
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
		s = strings.TrimSpace(s)
	}

	objStart := strings.IndexByte(s, '{')
	arrStart := strings.IndexByte(s, '[')

	var start int
	var closer byte
	switch {
	case arrStart >= 0 && (objStart < 0 || arrStart < objStart):
		start, closer = arrStart, ']'
	case objStart >= 0:
		start, closer = objStart, '}'
	default:
		return "", fmt.Errorf("no JSON payload in response")
	}

	end := strings.LastIndexByte(s, closer)
	if end <= start {
		return "", fmt.Errorf("unterminated JSON payload in response")
	}
	return s[start : end+1], nil
}

// decodeIdeas strictly parses a generated idea list. Any entry with a blank
// name or negative price rejects the whole payload, so malformed suggestions
// never reach the domain model.
func decodeIdeas(text string) ([]models.Idea, error) {
	payload, err := extractJSON(text)
	if err != nil {
		return nil, err
	}
	var ideas []models.Idea
	if err := json.Unmarshal([]byte(payload), &ideas); err != nil {
		return nil, fmt.Errorf("failed to parse ideas: %w", err)
	}
	if len(ideas) == 0 {
		return nil, fmt.Errorf("ideas payload was empty")
	}
	for i, idea := range ideas {
		if strings.TrimSpace(idea.Name) == "" {
			return nil, fmt.Errorf("idea %d has no name", i)
		}
		if idea.EstimatedPrice < 0 {
			return nil, fmt.Errorf("idea %d has negative price", i)
		}
	}
	return ideas, nil
}

// decodeAlternatives strictly parses a generated alternatives list.
func decodeAlternatives(text string) ([]models.Alternative, error) {
	payload, err := extractJSON(text)
	if err != nil {
		return nil, err
	}
	var alts []models.Alternative
	if err := json.Unmarshal([]byte(payload), &alts); err != nil {
		return nil, fmt.Errorf("failed to parse alternatives: %w", err)
	}
	if len(alts) == 0 {
		return nil, fmt.Errorf("alternatives payload was empty")
	}
	for i, alt := range alts {
		if strings.TrimSpace(alt.Name) == "" {
			return nil, fmt.Errorf("alternative %d has no name", i)
		}
		if alt.EstimatedPrice < 0 {
			return nil, fmt.Errorf("alternative %d has negative price", i)
		}
	}
	return alts, nil
}

// decodeProfile parses an extracted profile object. Missing keys stay empty
// strings, keeping the merge contract total.
func decodeProfile(text string) (*models.Profile, error) {
	payload, err := extractJSON(text)
	if err != nil {
		return nil, err
	}
	var profile models.Profile
	if err := json.Unmarshal([]byte(payload), &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	return &profile, nil
}
