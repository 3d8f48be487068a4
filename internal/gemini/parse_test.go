package gemini

import (
	"strings"
	"testing"
)

func TestExtractJSONPlainArray(t *testing.T) {
	got, err := extractJSON(`[{"name":"Mug"}]`)
	if err != nil {
		t.Fatalf("extractJSON: %v", err)
	}
	if got != `[{"name":"Mug"}]` {
		t.Errorf("got %q", got)
	}
}

func TestExtractJSONMarkdownFence(t *testing.T) {
	text := "```json\n[{\"name\":\"Mug\"}]\n```"
	got, err := extractJSON(text)
	if err != nil {
		t.Fatalf("extractJSON: %v", err)
	}
	if got != `[{"name":"Mug"}]` {
		t.Errorf("got %q", got)
	}
}

func TestExtractJSONConversationalWrapping(t *testing.T) {
	text := `Sure! Here are some ideas:

[{"name":"Mug","estimatedPrice":8}]

Let me know if you want more.`
	got, err := extractJSON(text)
	if err != nil {
		t.Fatalf("extractJSON: %v", err)
	}
	if !strings.HasPrefix(got, "[") || !strings.HasSuffix(got, "]") {
		t.Errorf("got %q", got)
	}
}

func TestExtractJSONObjectPayload(t *testing.T) {
	got, err := extractJSON("The profile is: {\"age\":\"30\"} hope that helps")
	if err != nil {
		t.Fatalf("extractJSON: %v", err)
	}
	if got != `{"age":"30"}` {
		t.Errorf("got %q", got)
	}
}

func TestExtractJSONNoPayload(t *testing.T) {
	if _, err := extractJSON("I could not produce a suggestion."); err == nil {
		t.Error("expected error for payload-free response")
	}
}

func TestDecodeIdeas(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
		wantLen int
	}{
		{
			name:    "valid list",
			text:    `[{"name":"Chess Set","estimatedPrice":25,"reason":"Loves chess","searchQuery":"chess set"}]`,
			wantLen: 1,
		},
		{
			name:    "fenced list",
			text:    "```json\n[{\"name\":\"Mug\",\"estimatedPrice\":8}]\n```",
			wantLen: 1,
		},
		{
			name:    "object instead of array",
			text:    `{"name":"Mug"}`,
			wantErr: true,
		},
		{
			name:    "entry missing name",
			text:    `[{"name":"Mug"},{"estimatedPrice":10}]`,
			wantErr: true,
		},
		{
			name:    "negative price",
			text:    `[{"name":"Mug","estimatedPrice":-5}]`,
			wantErr: true,
		},
		{
			name:    "empty array",
			text:    `[]`,
			wantErr: true,
		},
		{
			name:    "not json at all",
			text:    `no ideas today`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ideas, err := decodeIdeas(tt.text)
			if tt.wantErr {
				if err == nil {
					t.Errorf("decodeIdeas(%q) succeeded, want error", tt.text)
				}
				return
			}
			if err != nil {
				t.Fatalf("decodeIdeas: %v", err)
			}
			if len(ideas) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(ideas), tt.wantLen)
			}
		})
	}
}

func TestDecodeAlternativesRejectsMalformed(t *testing.T) {
	if _, err := decodeAlternatives(`[{"estimatedPrice":10}]`); err == nil {
		t.Error("expected error for alternative without name")
	}
	alts, err := decodeAlternatives(`[{"name":"Tea Set","estimatedPrice":20,"category":"Practical"}]`)
	if err != nil {
		t.Fatalf("decodeAlternatives: %v", err)
	}
	if alts[0].Category != "Practical" {
		t.Errorf("category = %q", alts[0].Category)
	}
}

func TestDecodeProfileMissingKeysStayEmpty(t *testing.T) {
	p, err := decodeProfile(`{"obsession":"chess"}`)
	if err != nil {
		t.Fatalf("decodeProfile: %v", err)
	}
	if p.Obsession != "chess" {
		t.Errorf("Obsession = %q", p.Obsession)
	}
	if p.Age != "" || p.DoNotBuy != "" {
		t.Errorf("missing keys not empty: %+v", p)
	}
}

func TestDecodeProfileRejectsArray(t *testing.T) {
	if _, err := decodeProfile(`[{"obsession":"chess"}]`); err == nil {
		t.Error("expected error for array payload")
	}
}
