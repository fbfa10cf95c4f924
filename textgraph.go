// Package textgraph generates knowledge graphs from free text: it prompts an
// LLM to extract entities and relationships as JSON, assembles them into an
// undirected graph, and computes the layout, figure, and statistics the
// display needs.
package textgraph

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"textgraph/extract"
	"textgraph/graph"
	"textgraph/llm"
	"textgraph/parser"
	"textgraph/viz"
)

// Result is the outcome of one generate action. The graph and everything
// derived from it are rebuilt from scratch on every call; nothing is cached
// between runs.
type Result struct {
	Extraction *extract.Result        `json:"extraction"`
	Nodes      []graph.Node           `json:"nodes"`
	Edges      []graph.Edge           `json:"edges"`
	Layout     map[string]graph.Point `json:"layout"`
	Figure     *viz.Figure            `json:"figure"`
	Stats      graph.Stats            `json:"stats"`
}

// Generator runs the text-to-graph pipeline. It is a short-lived value: the
// caller constructs one per session or request from an explicit Config and
// discards it afterwards. It holds no mutable state.
type Generator struct {
	cfg       Config
	extractor *extract.Extractor
	parsers   *parser.Registry
}

// New creates a Generator from configuration. Hosted providers require an
// API key; a missing one is reported as ErrMissingAPIKey before any call is
// attempted.
func New(cfg Config) (*Generator, error) {
	if cfg.LLM.requiresAPIKey() && cfg.LLM.APIKey == "" {
		return nil, fmt.Errorf("%w: provider %q needs a credential", ErrMissingAPIKey, cfg.LLM.Provider)
	}

	provider, err := llm.NewProvider(llm.Config{
		Provider: cfg.LLM.Provider,
		Model:    cfg.LLM.Model,
		BaseURL:  cfg.LLM.BaseURL,
		APIKey:   cfg.LLM.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &Generator{
		cfg:       cfg,
		extractor: extract.New(provider, cfg.Temperature, cfg.MaxTokens),
		parsers:   parser.NewRegistry(),
	}, nil
}

// Generate runs the full pipeline on the given text.
//
// Blank or whitespace-only input is rejected with ErrEmptyInput before any
// generation call. Extraction failures (extract.ErrAPICall,
// extract.ErrResponseParse) are returned together with a Result carrying the
// empty extraction record. A successful extraction that yields no entities
// and no relationships, or a graph with zero nodes, is ErrEmptyExtraction;
// no partial graph is rendered in that case.
func (g *Generator) Generate(ctx context.Context, text string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	start := time.Now()
	extraction, err := g.extractor.Extract(ctx, text)
	if err != nil {
		return &Result{Extraction: extraction}, err
	}

	if extraction.IsEmpty() {
		return &Result{Extraction: extraction},
			fmt.Errorf("%w: no entities or relationships could be extracted", ErrEmptyExtraction)
	}

	gr := graph.Build(extraction)
	if gr.NodeCount() == 0 {
		return &Result{Extraction: extraction},
			fmt.Errorf("%w: extracted data produced no graph nodes", ErrEmptyExtraction)
	}

	layoutOpts := graph.LayoutOptions{
		Iterations: g.cfg.Layout.Iterations,
		K:          g.cfg.Layout.K,
		Seed:       g.cfg.Layout.Seed,
	}
	pos := graph.SpringLayout(gr, layoutOpts)

	slog.Info("generate: graph built",
		"entities", len(extraction.Entities),
		"relationships", len(extraction.Relationships),
		"nodes", gr.NodeCount(),
		"edges", gr.EdgeCount(),
		"elapsed", time.Since(start).Round(time.Millisecond))

	return &Result{
		Extraction: extraction,
		Nodes:      gr.Nodes(),
		Edges:      gr.Edges(),
		Layout:     pos,
		Figure:     viz.BuildFigure(gr, pos),
		Stats:      graph.ComputeStats(gr),
	}, nil
}

// GenerateFromFile reads an input file through the format registry and runs
// Generate on its text. The format is taken from the file extension.
func (g *Generator) GenerateFromFile(ctx context.Context, path string) (*Result, error) {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))

	p, err := g.parsers.Get(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	text, err := p.Parse(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}

	return g.Generate(ctx, text)
}

// Parsers exposes the input format registry so callers can extend it.
func (g *Generator) Parsers() *parser.Registry {
	return g.parsers
}
