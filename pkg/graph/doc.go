// Package graph holds the static weighted undirected graphs that pathviz
// searches and draws.
//
// A [Graph] is built once from a literal list of [Node] and [Edge] values and
// never mutated afterwards. Construction derives an adjacency mapping in which
// every edge contributes an entry to both endpoints, so the graph is
// traversable in either direction with identical weight.
//
// # Neighbor Order
//
// [Graph.Neighbors] returns entries in edge declaration order. For each edge,
// the From endpoint receives To, then the To endpoint receives From. Search
// behavior (tie-breaking, visit order) depends on this order, so it is part of
// the contract.
//
// # Reference Scenario
//
// [Reference] returns the fixed five-node scenario:
//
//	A(100,100)  B(200,50)  C(300,100)  D(200,200)  E(400,150)
//	A-B=2  A-C=5  B-C=1  B-D=2  C-E=3  D-E=1
//
// # Serialization
//
// [Export] produces the node-link wire format used by the json output format
// and the HTTP API:
//
//	{
//	  "nodes": [{"id": "A", "x": 100, "y": 100}],
//	  "edges": [{"from": "A", "to": "B", "weight": 2}]
//	}
//
// # Concurrency
//
// A Graph is immutable after [New] returns and is safe for concurrent reads.
package graph
