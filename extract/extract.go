// Package extract turns free text into structured entity and relationship
// records by prompting an LLM and recovering a JSON object from its reply.
package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"textgraph/llm"
)

var (
	// ErrAPICall is returned when the generation call itself failed
	// (network, auth, quota, unusable response). The raw provider error is
	// wrapped, never propagated bare.
	ErrAPICall = errors.New("extract: API call failed")

	// ErrResponseParse is returned when no JSON object could be recovered
	// from the model's response text.
	ErrResponseParse = errors.New("extract: parsing AI response failed")
)

// Entity is a named thing extracted from text.
type Entity struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Relationship is a labeled assertion between two entity names.
type Relationship struct {
	Source       string `json:"source"`
	Target       string `json:"target"`
	Relationship string `json:"relationship"`
	Description  string `json:"description"`
}

// Result is the structured output of one extraction. Both slices are always
// non-nil, each possibly empty.
type Result struct {
	Entities      []Entity       `json:"entities"`
	Relationships []Relationship `json:"relationships"`
}

// Empty returns the empty-but-valid result used as the fallback on any
// extraction failure.
func Empty() *Result {
	return &Result{Entities: []Entity{}, Relationships: []Relationship{}}
}

// jsonObjectRe matches from the first '{' to the last '}' in the response,
// greedy, across newlines. This is intentionally NOT balanced-brace aware:
// when the model wraps the JSON in commentary, the match can span trailing
// prose containing braces. Several observed behaviours depend on exactly
// this rule, so it stays the primary recovery path.
var jsonObjectRe = regexp.MustCompile(`(?s)\{.*\}`)

// Extractor runs the prompt-and-parse pipeline against a provider.
type Extractor struct {
	provider    llm.Provider
	temperature float64
	maxTokens   int
}

// New creates an Extractor on the given provider.
func New(provider llm.Provider, temperature float64, maxTokens int) *Extractor {
	return &Extractor{
		provider:    provider,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

// Extract builds the prompt, issues one synchronous generation call, and
// recovers the entity/relationship record from the response.
//
// The returned Result is never nil. On failure it is the empty structure and
// the error distinguishes the failure kind: errors.Is(err, ErrAPICall) for
// generation failures, errors.Is(err, ErrResponseParse) for malformed JSON.
func (e *Extractor) Extract(ctx context.Context, text string) (*Result, error) {
	prompt := BuildPrompt(text)

	resp, err := e.provider.Chat(ctx, llm.ChatRequest{
		Messages: []llm.Message{
			{Role: "user", Content: prompt},
		},
		Temperature: e.temperature,
		MaxTokens:   e.maxTokens,
	})
	if err != nil {
		slog.Warn("extract: generation call failed", "error", err)
		return Empty(), fmt.Errorf("%w: %v", ErrAPICall, err)
	}

	result, err := Parse(resp.Content)
	if err != nil {
		slog.Warn("extract: response parse failed", "error", err)
		return Empty(), err
	}

	slog.Debug("extract: parsed response",
		"entities", len(result.Entities), "relationships", len(result.Relationships))
	return result, nil
}

// Parse recovers a Result from raw model output.
//
// The recovery order is fixed: trim whitespace, take the greedy
// first-'{'-to-last-'}' substring if one exists, otherwise fall back to the
// whole trimmed response, then JSON-decode. On decode failure the empty
// structure is returned together with ErrResponseParse.
func Parse(raw string) (*Result, error) {
	trimmed := strings.TrimSpace(raw)

	jsonStr := jsonObjectRe.FindString(trimmed)
	if jsonStr == "" {
		jsonStr = trimmed
	}

	var result Result
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return Empty(), fmt.Errorf("%w: %v", ErrResponseParse, err)
	}

	// Absent arrays decode to nil; the contract is non-nil, possibly empty.
	if result.Entities == nil {
		result.Entities = []Entity{}
	}
	if result.Relationships == nil {
		result.Relationships = []Relationship{}
	}
	return &result, nil
}

// IsEmpty reports whether the result carries no entities and no
// relationships.
func (r *Result) IsEmpty() bool {
	return len(r.Entities) == 0 && len(r.Relationships) == 0
}
