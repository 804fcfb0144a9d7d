package graph

// Reference node and query ids.
const (
	ReferenceStart = "A"
	ReferenceEnd   = "E"
)

// ReferenceNodes returns the node literal of the reference scenario.
func ReferenceNodes() []Node {
	return []Node{
		{ID: "A", X: 100, Y: 100},
		{ID: "B", X: 200, Y: 50},
		{ID: "C", X: 300, Y: 100},
		{ID: "D", X: 200, Y: 200},
		{ID: "E", X: 400, Y: 150},
	}
}

// ReferenceEdges returns the edge literal of the reference scenario.
func ReferenceEdges() []Edge {
	return []Edge{
		{From: "A", To: "B", Weight: 2},
		{From: "A", To: "C", Weight: 5},
		{From: "B", To: "C", Weight: 1},
		{From: "B", To: "D", Weight: 2},
		{From: "C", To: "E", Weight: 3},
		{From: "D", To: "E", Weight: 1},
	}
}

// Reference returns the five-node, six-edge scenario graph.
func Reference() *Graph {
	return MustNew(ReferenceNodes(), ReferenceEdges())
}

// WithIsolated returns a copy of g with one extra node that has no edges.
// It is used to exercise unreachable queries.
func WithIsolated(g *Graph, id string, x, y float64) (*Graph, error) {
	return New(append(g.Nodes(), Node{ID: id, X: x, Y: y}), g.Edges())
}
