// Package gemini orchestrates the planner's calls to the Gemini
// generateContent endpoint: prompt building, one request per operation, and
// best-effort parsing of the generated text into typed results.
//
// Operations do not retry and carry no timeout beyond the transport default.
// Each has a documented fallback value the caller substitutes on failure.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	appconfig "github.com/giftwise/giftwise-cli/internal/config"
	"github.com/giftwise/giftwise-cli/internal/keys"
	"github.com/giftwise/giftwise-cli/pkg/config"
)

// Fallback values substituted when an operation fails. Profile extraction
// has no fallback: a nil result must not be merged.
const (
	FallbackStrategy    = "Could not generate strategy. Please try again."
	FallbackAnalysis    = "Analysis failed."
	FallbackCardMessage = "Hope you love it!"
)

// Client calls the generative endpoint. The API key travels as a query
// parameter; a missing or invalid key surfaces as a generic request failure,
// not a distinguished unauthorized case.
type Client struct {
	BaseURL    string
	Model      string
	APIKey     string
	Currency   string
	HTTPClient *http.Client
}

// NewClient builds a client from runtime settings. The API key is resolved
// in order: environment, system keyring, config file.
func NewClient() (*Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	apiKey := cfg.Gemini.APIKey
	if apiKey == "" {
		if k, err := keys.Retrieve(); err == nil {
			apiKey = k
		}
	}
	if apiKey == "" {
		if stored, err := appconfig.LoadConfig(); err == nil {
			apiKey = stored.APIKey
		}
	}

	return &Client{
		BaseURL:  cfg.Gemini.BaseURL,
		Model:    cfg.Gemini.Model,
		APIKey:   apiKey,
		Currency: cfg.Currency,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// Wire format of the generateContent endpoint.

type generateRequest struct {
	Contents         []requestContent  `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type requestContent struct {
	Parts []requestPart `json:"parts"`
}

type requestPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string `json:"responseMimeType"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// generate issues one request and returns the generated text. jsonMode asks
// the provider for an application/json payload.
func (c *Client) generate(ctx context.Context, prompt string, jsonMode bool) (string, error) {
	reqBody := generateRequest{
		Contents: []requestContent{{Parts: []requestPart{{Text: prompt}}}},
	}
	if jsonMode {
		reqBody.GenerationConfig = &generationConfig{ResponseMIMEType: "application/json"}
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.BaseURL, c.Model, url.QueryEscape(c.APIKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var envelope generateResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(envelope.Candidates) == 0 || len(envelope.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("response contained no generated text")
	}
	return envelope.Candidates[0].Content.Parts[0].Text, nil
}
