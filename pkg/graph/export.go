package graph

import (
	"encoding/json"
	"io"
)

// Document is the node-link serialization of a [Graph].
type Document struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Export converts g to its serialization form. Order is declaration order.
func Export(g *Graph) Document {
	return Document{Nodes: g.Nodes(), Edges: g.Edges()}
}

// Import builds a Graph from a Document, applying the same validation as [New].
func Import(doc Document) (*Graph, error) {
	return New(doc.Nodes, doc.Edges)
}

// Marshal serializes g to indented JSON.
func Marshal(g *Graph) ([]byte, error) {
	return json.MarshalIndent(Export(g), "", "  ")
}

// Write serializes g as indented JSON to w.
func Write(g *Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Export(g))
}
