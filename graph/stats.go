package graph

// Stats holds the summary statistics shown alongside the graph.
type Stats struct {
	Nodes     int     `json:"nodes"`
	Edges     int     `json:"edges"`
	Density   float64 `json:"density"`
	AvgDegree float64 `json:"avg_degree"`

	// TypeCounts maps entity type (as stored on nodes) to node count,
	// for the type-distribution chart.
	TypeCounts map[string]int `json:"type_counts"`
}

// ComputeStats derives display statistics from a graph.
//
// Density is edges divided by the maximum possible edge count for a simple
// undirected graph, n*(n-1)/2; it is 0 for fewer than two nodes. Average
// degree is 2e/n, 0 for an empty graph.
func ComputeStats(g *Graph) Stats {
	n := g.NodeCount()
	e := g.EdgeCount()

	s := Stats{
		Nodes:      n,
		Edges:      e,
		TypeCounts: make(map[string]int),
	}

	if n >= 2 {
		s.Density = float64(e) / (float64(n) * float64(n-1) / 2)
	}
	if n > 0 {
		s.AvgDegree = 2 * float64(e) / float64(n)
	}

	for _, node := range g.Nodes() {
		s.TypeCounts[node.Type]++
	}

	return s
}
