// Package graph assembles extracted entity and relationship records into an
// undirected graph and computes display statistics and a 2D layout for it.
package graph

import "textgraph/extract"

// DefaultEntityType is assigned to nodes whose entity record carried no type.
const DefaultEntityType = "unknown"

// DefaultRelationship is assigned to edges whose relationship record carried
// no label.
const DefaultRelationship = "related_to"

// Node is a graph node keyed by entity name.
type Node struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Edge is an undirected edge between two node names. Source and Target keep
// the orientation of the first relationship record that created the edge;
// the pair is treated as unordered for identity.
type Edge struct {
	Source       string `json:"source"`
	Target       string `json:"target"`
	Relationship string `json:"relationship"`
	Description  string `json:"description"`
}

// edgeKey is the canonical unordered identity of an edge.
type edgeKey struct {
	a, b string
}

func keyFor(source, target string) edgeKey {
	if source <= target {
		return edgeKey{source, target}
	}
	return edgeKey{target, source}
}

// Graph is an undirected graph with nodes keyed by entity name and no
// multi-edges. Iteration order is insertion order, so identical inputs
// produce identical layouts and figures.
type Graph struct {
	nodes     map[string]*Node
	nodeOrder []string
	edges     map[edgeKey]*Edge
	edgeOrder []edgeKey
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
		edges: make(map[edgeKey]*Edge),
	}
}

// AddNode inserts or overwrites the node keyed by name. A repeated name
// keeps its original position in iteration order but takes the new
// attributes (last write wins).
func (g *Graph) AddNode(name, entityType, description string) {
	if existing, ok := g.nodes[name]; ok {
		existing.Type = entityType
		existing.Description = description
		return
	}
	g.nodes[name] = &Node{Name: name, Type: entityType, Description: description}
	g.nodeOrder = append(g.nodeOrder, name)
}

// AddEdge inserts or overwrites the undirected edge between source and
// target. A repeated pair, in either orientation, keeps the original edge's
// endpoints and takes the new relationship attributes.
func (g *Graph) AddEdge(source, target, relationship, description string) {
	key := keyFor(source, target)
	if existing, ok := g.edges[key]; ok {
		existing.Relationship = relationship
		existing.Description = description
		return
	}
	g.edges[key] = &Edge{
		Source:       source,
		Target:       target,
		Relationship: relationship,
		Description:  description,
	}
	g.edgeOrder = append(g.edgeOrder, key)
}

// HasNode reports whether a node with the given name exists.
func (g *Graph) HasNode(name string) bool {
	_, ok := g.nodes[name]
	return ok
}

// Node returns the node with the given name, or nil.
func (g *Graph) Node(name string) *Node {
	return g.nodes[name]
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Nodes returns the nodes in insertion order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.nodeOrder))
	for _, name := range g.nodeOrder {
		out = append(out, *g.nodes[name])
	}
	return out
}

// Edges returns the edges in insertion order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, len(g.edgeOrder))
	for _, key := range g.edgeOrder {
		out = append(out, *g.edges[key])
	}
	return out
}

// Degree returns the number of edges incident to the named node.
func (g *Graph) Degree(name string) int {
	n := 0
	for key := range g.edges {
		if key.a == name || key.b == name {
			n++
		}
	}
	return n
}

// Build converts an extraction result into a graph.
//
// Every entity record becomes a node keyed by its name, including entities
// with an empty name (inserted under the empty key, never rejected).
// Missing type and description default to
// DefaultEntityType and "". A relationship record becomes an edge only when
// both endpoints are non-empty and already exist as nodes; anything else is
// dropped silently. Missing relationship labels default to
// DefaultRelationship.
func Build(res *extract.Result) *Graph {
	g := New()

	for _, e := range res.Entities {
		entityType := e.Type
		if entityType == "" {
			entityType = DefaultEntityType
		}
		g.AddNode(e.Name, entityType, e.Description)
	}

	for _, r := range res.Relationships {
		if r.Source == "" || r.Target == "" {
			continue
		}
		if !g.HasNode(r.Source) || !g.HasNode(r.Target) {
			continue
		}
		relationship := r.Relationship
		if relationship == "" {
			relationship = DefaultRelationship
		}
		g.AddEdge(r.Source, r.Target, relationship, r.Description)
	}

	return g
}
