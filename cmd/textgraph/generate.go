package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"textgraph"
	"textgraph/extract"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	valueStyle = lipgloss.NewStyle().Bold(true)
	edgeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

var generateCmd = &cobra.Command{
	Use:     "generate [file]",
	Aliases: []string{"gen"},
	Short:   "Extract a knowledge graph from a file or from --text",
	Long: `Generate runs one extraction pass: the input text goes to the configured
LLM, the returned entities and relationships become an undirected graph,
and the graph is printed as a summary or as JSON.

Supported input formats: txt, md, pdf, xlsx. With --text the argument is
used directly and no file is read.

Examples:
  textgraph generate notes.txt
  textgraph generate report.pdf --json > graph.json
  textgraph generate --text "Marie Curie studied radioactivity in Paris."`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("text", "", "analyze this text instead of a file")
	generateCmd.Flags().Bool("json", false, "print the full result as JSON")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	text, _ := cmd.Flags().GetString("text")
	asJSON, _ := cmd.Flags().GetBool("json")

	if text == "" && len(args) == 0 {
		return errors.New("provide an input file or --text")
	}
	if text != "" && len(args) > 0 {
		return errors.New("--text and a file argument are mutually exclusive")
	}

	g, err := textgraph.New(loadConfig())
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	var res *textgraph.Result
	if text != "" {
		res, err = g.Generate(ctx, text)
	} else {
		res, err = g.GenerateFromFile(ctx, args[0])
	}
	if err != nil {
		if errors.Is(err, textgraph.ErrEmptyExtraction) {
			fmt.Fprintln(os.Stderr, warnStyle.Render("No entities or relationships found in the input."))
		}
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	printSummary(os.Stdout, res)
	return nil
}

func printSummary(w io.Writer, res *textgraph.Result) {
	fmt.Fprintln(w, titleStyle.Render("Knowledge Graph"))
	fmt.Fprintf(w, "%s %s   %s %s   %s %s   %s %s\n",
		labelStyle.Render("nodes:"), valueStyle.Render(fmt.Sprintf("%d", res.Stats.Nodes)),
		labelStyle.Render("edges:"), valueStyle.Render(fmt.Sprintf("%d", res.Stats.Edges)),
		labelStyle.Render("density:"), valueStyle.Render(fmt.Sprintf("%.3f", res.Stats.Density)),
		labelStyle.Render("avg degree:"), valueStyle.Render(fmt.Sprintf("%.2f", res.Stats.AvgDegree)))

	if len(res.Stats.TypeCounts) > 0 {
		types := make([]string, 0, len(res.Stats.TypeCounts))
		for t := range res.Stats.TypeCounts {
			types = append(types, t)
		}
		sort.Strings(types)

		parts := make([]string, 0, len(types))
		for _, t := range types {
			parts = append(parts, fmt.Sprintf("%s=%d", t, res.Stats.TypeCounts[t]))
		}
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("types:"), strings.Join(parts, " "))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Render("Entities"))
	for _, n := range res.Nodes {
		line := fmt.Sprintf("  %s (%s)", valueStyle.Render(n.Name), n.Type)
		if n.Description != "" {
			line += labelStyle.Render("  " + n.Description)
		}
		fmt.Fprintln(w, line)
	}

	if len(res.Edges) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, titleStyle.Render("Relationships"))
		for _, e := range res.Edges {
			fmt.Fprintf(w, "  %s %s %s\n",
				e.Source, edgeStyle.Render("--["+e.Relationship+"]--"), e.Target)
		}
	}
}

// exitCodeFor maps pipeline error kinds to distinct exit codes so scripts
// can tell a bad credential from a bad response.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, textgraph.ErrEmptyInput):
		return 2
	case errors.Is(err, textgraph.ErrMissingAPIKey):
		return 3
	case errors.Is(err, extract.ErrAPICall):
		return 4
	case errors.Is(err, extract.ErrResponseParse):
		return 5
	case errors.Is(err, textgraph.ErrEmptyExtraction):
		return 6
	default:
		return 1
	}
}
