package graph

import (
	"math"
	"testing"
)

func testGraph() *Graph {
	g := New()
	for _, n := range []string{"A", "B", "C", "D", "E"} {
		g.AddNode(n, "concept", "")
	}
	g.AddEdge("A", "B", "x", "")
	g.AddEdge("B", "C", "x", "")
	g.AddEdge("C", "D", "x", "")
	g.AddEdge("D", "A", "x", "")
	g.AddEdge("A", "E", "x", "")
	return g
}

func TestSpringLayoutCoversAllNodes(t *testing.T) {
	g := testGraph()
	pos := SpringLayout(g, DefaultLayoutOptions())

	if len(pos) != g.NodeCount() {
		t.Fatalf("positions = %d, want %d", len(pos), g.NodeCount())
	}
	for _, n := range g.Nodes() {
		p, ok := pos[n.Name]
		if !ok {
			t.Fatalf("no position for node %q", n.Name)
		}
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			t.Fatalf("position for %q is not finite: %+v", n.Name, p)
		}
		if math.Abs(p.X) > 1+1e-9 || math.Abs(p.Y) > 1+1e-9 {
			t.Errorf("position for %q outside [-1,1]: %+v", n.Name, p)
		}
	}
}

func TestSpringLayoutDeterministic(t *testing.T) {
	opts := DefaultLayoutOptions()
	a := SpringLayout(testGraph(), opts)
	b := SpringLayout(testGraph(), opts)

	for name, pa := range a {
		pb := b[name]
		if pa != pb {
			t.Fatalf("layout differs for %q: %+v vs %+v", name, pa, pb)
		}
	}
}

func TestSpringLayoutDifferentSeeds(t *testing.T) {
	o1 := DefaultLayoutOptions()
	o2 := DefaultLayoutOptions()
	o2.Seed = 99

	a := SpringLayout(testGraph(), o1)
	b := SpringLayout(testGraph(), o2)

	same := true
	for name, pa := range a {
		if pa != b[name] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical layouts")
	}
}

func TestSpringLayoutDegenerateGraphs(t *testing.T) {
	empty := New()
	if pos := SpringLayout(empty, DefaultLayoutOptions()); len(pos) != 0 {
		t.Errorf("empty graph layout = %v, want empty", pos)
	}

	single := New()
	single.AddNode("only", "concept", "")
	pos := SpringLayout(single, DefaultLayoutOptions())
	if len(pos) != 1 {
		t.Fatalf("single node layout = %v", pos)
	}
	if p := pos["only"]; p.X != 0 || p.Y != 0 {
		t.Errorf("single node position = %+v, want origin", p)
	}
}

func TestSpringLayoutSeparatesNodes(t *testing.T) {
	g := New()
	g.AddNode("A", "concept", "")
	g.AddNode("B", "concept", "")
	pos := SpringLayout(g, DefaultLayoutOptions())

	d := math.Hypot(pos["A"].X-pos["B"].X, pos["A"].Y-pos["B"].Y)
	if d < 1e-6 {
		t.Errorf("two nodes ended up coincident (distance %v)", d)
	}
}
