package graph

import (
	"math"
	"slices"

	"github.com/matzehuels/pathviz/pkg/errors"
)

// Graph is an immutable weighted undirected graph with a precomputed
// adjacency mapping.
//
// The zero value is an empty graph. Use [New] to build a populated one.
type Graph struct {
	nodes []Node
	edges []Edge
	index map[string]int        // node ID -> position in nodes
	adj   map[string][]Neighbor // node ID -> neighbors in edge declaration order
}

// New validates nodes and edges and builds the adjacency mapping.
//
// It returns an ErrCodeInvalidGraph error if a node ID is empty or repeated,
// an edge references an unknown node, or a weight is negative or not finite.
// The input slices are copied; later changes to them do not affect the graph.
func New(nodes []Node, edges []Edge) (*Graph, error) {
	g := &Graph{
		nodes: slices.Clone(nodes),
		edges: slices.Clone(edges),
		index: make(map[string]int, len(nodes)),
		adj:   make(map[string][]Neighbor, len(nodes)),
	}

	for i, n := range g.nodes {
		if err := errors.ValidateNodeID(n.ID); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "node %d", i)
		}
		if math.IsNaN(n.X) || math.IsNaN(n.Y) {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "node %q has NaN position", n.ID)
		}
		if _, dup := g.index[n.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "duplicate node id %q", n.ID)
		}
		g.index[n.ID] = i
		g.adj[n.ID] = nil
	}

	for _, e := range g.edges {
		if !g.Has(e.From) {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "edge %s-%s: unknown node %q", e.From, e.To, e.From)
		}
		if !g.Has(e.To) {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "edge %s-%s: unknown node %q", e.From, e.To, e.To)
		}
		if err := errors.ValidateWeight(e.Weight); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "edge %s-%s", e.From, e.To)
		}
		g.adj[e.From] = append(g.adj[e.From], Neighbor{ID: e.To, Weight: e.Weight})
		g.adj[e.To] = append(g.adj[e.To], Neighbor{ID: e.From, Weight: e.Weight})
	}

	return g, nil
}

// MustNew is like [New] but panics on error. It is intended for graph literals
// known to be valid at compile time.
func MustNew(nodes []Node, edges []Edge) *Graph {
	g, err := New(nodes, edges)
	if err != nil {
		panic(err)
	}
	return g
}

// Has reports whether id names a node in g.
func (g *Graph) Has(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[i], true
}

// Nodes returns a copy of all nodes in declaration order.
func (g *Graph) Nodes() []Node { return slices.Clone(g.nodes) }

// Edges returns a copy of all edges in declaration order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// IDs returns all node IDs in declaration order.
func (g *Graph) IDs() []string {
	ids := make([]string, len(g.nodes))
	for i, n := range g.nodes {
		ids[i] = n.ID
	}
	return ids
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Neighbors returns the adjacency entries of id in edge declaration order.
// Querying an unknown id returns nil; callers are expected to check [Graph.Has]
// first since every query id is known in advance.
func (g *Graph) Neighbors(id string) []Neighbor {
	return slices.Clone(g.adj[id])
}

// Weight returns the weight of the lightest edge joining a and b.
// The second result is false if no such edge exists.
func (g *Graph) Weight(a, b string) (float64, bool) {
	best, found := math.Inf(1), false
	for _, nb := range g.adj[a] {
		if nb.ID == b && nb.Weight < best {
			best, found = nb.Weight, true
		}
	}
	return best, found
}

// PathWeight sums the edge weights along path.
// It returns false if two consecutive ids are not adjacent.
func (g *Graph) PathWeight(path []string) (float64, bool) {
	total := 0.0
	for i := 1; i < len(path); i++ {
		w, ok := g.Weight(path[i-1], path[i])
		if !ok {
			return 0, false
		}
		total += w
	}
	return total, true
}
