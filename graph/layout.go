package graph

import (
	"math"
	"math/rand"
)

// Point is a 2D coordinate in the layout.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LayoutOptions control the spring layout.
type LayoutOptions struct {
	// Iterations is the number of simulation steps.
	Iterations int

	// K is the optimal distance between connected nodes.
	K float64

	// Seed fixes the initial random placement, making the layout
	// reproducible for identical graphs.
	Seed int64
}

// DefaultLayoutOptions mirror the parameters the display was tuned with.
func DefaultLayoutOptions() LayoutOptions {
	return LayoutOptions{Iterations: 50, K: 3.0, Seed: 1}
}

// SpringLayout computes a force-directed (Fruchterman–Reingold) layout for
// the graph: all node pairs repel with k²/d, connected pairs attract with
// d²/k, and displacement is capped by a temperature that cools linearly to
// zero over the iterations. Coordinates are rescaled to roughly [-1, 1].
//
// The layout is deterministic for a given graph and seed.
func SpringLayout(g *Graph, opts LayoutOptions) map[string]Point {
	nodes := g.Nodes()
	n := len(nodes)

	pos := make(map[string]Point, n)
	if n == 0 {
		return pos
	}
	if n == 1 {
		pos[nodes[0].Name] = Point{0, 0}
		return pos
	}

	if opts.Iterations <= 0 {
		opts.Iterations = 50
	}
	if opts.K <= 0 {
		opts.K = math.Sqrt(1.0 / float64(n))
	}

	rng := rand.New(rand.NewSource(opts.Seed))

	x := make([]float64, n)
	y := make([]float64, n)
	index := make(map[string]int, n)
	for i, node := range nodes {
		x[i] = rng.Float64()*2 - 1
		y[i] = rng.Float64()*2 - 1
		index[node.Name] = i
	}

	edges := g.Edges()
	type pair struct{ a, b int }
	links := make([]pair, 0, len(edges))
	for _, e := range edges {
		links = append(links, pair{index[e.Source], index[e.Target]})
	}

	k := opts.K
	temp := 0.1 * float64(n)
	cool := temp / float64(opts.Iterations+1)

	dx := make([]float64, n)
	dy := make([]float64, n)

	for iter := 0; iter < opts.Iterations; iter++ {
		for i := range dx {
			dx[i], dy[i] = 0, 0
		}

		// Repulsion between all pairs.
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				ddx := x[i] - x[j]
				ddy := y[i] - y[j]
				dist := math.Hypot(ddx, ddy)
				if dist < 1e-9 {
					// Coincident nodes get a deterministic nudge.
					ddx, ddy = 1e-4, 1e-4
					dist = math.Hypot(ddx, ddy)
				}
				force := k * k / dist
				ux, uy := ddx/dist, ddy/dist
				dx[i] += ux * force
				dy[i] += uy * force
				dx[j] -= ux * force
				dy[j] -= uy * force
			}
		}

		// Attraction along edges.
		for _, l := range links {
			ddx := x[l.a] - x[l.b]
			ddy := y[l.a] - y[l.b]
			dist := math.Hypot(ddx, ddy)
			if dist < 1e-9 {
				continue
			}
			force := dist * dist / k
			ux, uy := ddx/dist, ddy/dist
			dx[l.a] -= ux * force
			dy[l.a] -= uy * force
			dx[l.b] += ux * force
			dy[l.b] += uy * force
		}

		// Apply displacement, capped by temperature.
		for i := 0; i < n; i++ {
			disp := math.Hypot(dx[i], dy[i])
			if disp < 1e-9 {
				continue
			}
			limited := math.Min(disp, temp)
			x[i] += dx[i] / disp * limited
			y[i] += dy[i] / disp * limited
		}

		temp -= cool
		if temp < 0 {
			temp = 0
		}
	}

	rescale(x)
	rescale(y)

	for i, node := range nodes {
		pos[node.Name] = Point{X: x[i], Y: y[i]}
	}
	return pos
}

// rescale centres values and scales the largest magnitude to 1.
func rescale(v []float64) {
	mean := 0.0
	for _, val := range v {
		mean += val
	}
	mean /= float64(len(v))

	maxAbs := 0.0
	for i := range v {
		v[i] -= mean
		if a := math.Abs(v[i]); a > maxAbs {
			maxAbs = a
		}
	}
	if maxAbs < 1e-9 {
		return
	}
	for i := range v {
		v[i] /= maxAbs
	}
}
