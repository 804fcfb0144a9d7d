package graph

// Node is a vertex with a 2D drawing position.
// X and Y are rendering metadata only; the search never reads them.
type Node struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Edge is an undirected weighted connection between two nodes.
// From and To only record declaration order; traversal is symmetric.
type Edge struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Weight float64 `json:"weight"`
}

// Other returns the endpoint of e opposite to id.
// The result is meaningless if id is not an endpoint of e.
func (e Edge) Other(id string) string {
	if e.From == id {
		return e.To
	}
	return e.From
}

// Connects reports whether e joins a and b, in either direction.
func (e Edge) Connects(a, b string) bool {
	return (e.From == a && e.To == b) || (e.From == b && e.To == a)
}

// Neighbor is one adjacency entry: a reachable node and the cost to get there.
type Neighbor struct {
	ID     string
	Weight float64
}
