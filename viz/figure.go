// Package viz turns a laid-out graph into the visual primitives the front
// end plots: colored node markers with hover text and null-separated edge
// segments.
package viz

import (
	"fmt"
	"strings"

	"textgraph/graph"
)

// typeColors is the fixed lookup table for node colors, keyed by lower-cased
// entity type.
var typeColors = map[string]string{
	"person":       "#FF6B6B",
	"organization": "#4ECDC4",
	"location":     "#45B7D1",
	"concept":      "#96CEB4",
	"event":        "#FFEAA7",
	"unknown":      "#DDA0DD",
}

// unknownColor is used for any entity type not in the table.
const unknownColor = "#DDA0DD"

// ColorFor returns the display color for an entity type. The lookup is
// case-insensitive and unrecognized types get the "unknown" color.
func ColorFor(entityType string) string {
	if c, ok := typeColors[strings.ToLower(entityType)]; ok {
		return c
	}
	return unknownColor
}

// TypeColors returns a copy of the color table for building legends.
func TypeColors() map[string]string {
	out := make(map[string]string, len(typeColors))
	for k, v := range typeColors {
		out[k] = v
	}
	return out
}

// NodeTrace is one scatter trace of node markers. Slices are parallel, one
// entry per node.
type NodeTrace struct {
	X      []float64 `json:"x"`
	Y      []float64 `json:"y"`
	Labels []string  `json:"labels"`
	Hover  []string  `json:"hover"`
	Colors []string  `json:"colors"`
}

// EdgeTrace is one line trace of edge segments. Each edge contributes its
// two endpoints followed by a null separator, the convention line plots use
// to break segments.
type EdgeTrace struct {
	X     []*float64 `json:"x"`
	Y     []*float64 `json:"y"`
	Hover []string   `json:"hover"` // one entry per edge, not per point
}

// Figure is the JSON-serialisable plot description consumed by the page.
type Figure struct {
	Nodes NodeTrace `json:"nodes"`
	Edges EdgeTrace `json:"edges"`
}

// BuildFigure converts a graph and its layout into plot traces. Nodes and
// edges are emitted in graph iteration order, so identical inputs produce
// identical figures.
func BuildFigure(g *graph.Graph, pos map[string]graph.Point) *Figure {
	fig := &Figure{
		Nodes: NodeTrace{
			X:      []float64{},
			Y:      []float64{},
			Labels: []string{},
			Hover:  []string{},
			Colors: []string{},
		},
		Edges: EdgeTrace{
			X:     []*float64{},
			Y:     []*float64{},
			Hover: []string{},
		},
	}

	for _, n := range g.Nodes() {
		p := pos[n.Name]
		fig.Nodes.X = append(fig.Nodes.X, p.X)
		fig.Nodes.Y = append(fig.Nodes.Y, p.Y)
		fig.Nodes.Labels = append(fig.Nodes.Labels, n.Name)
		fig.Nodes.Hover = append(fig.Nodes.Hover,
			fmt.Sprintf("<b>%s</b><br>Type: %s<br>Description: %s", n.Name, n.Type, n.Description))
		fig.Nodes.Colors = append(fig.Nodes.Colors, ColorFor(n.Type))
	}

	for _, e := range g.Edges() {
		p0 := pos[e.Source]
		p1 := pos[e.Target]
		x0, y0 := p0.X, p0.Y
		x1, y1 := p1.X, p1.Y
		fig.Edges.X = append(fig.Edges.X, &x0, &x1, nil)
		fig.Edges.Y = append(fig.Edges.Y, &y0, &y1, nil)
		fig.Edges.Hover = append(fig.Edges.Hover,
			fmt.Sprintf("%s → %s → %s<br>%s", e.Source, e.Relationship, e.Target, e.Description))
	}

	return fig
}
