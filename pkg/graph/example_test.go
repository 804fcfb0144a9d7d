package graph_test

import (
	"fmt"

	"github.com/matzehuels/pathviz/pkg/graph"
)

func ExampleGraph_Neighbors() {
	g := graph.Reference()
	for _, nb := range g.Neighbors("B") {
		fmt.Printf("%s %.0f\n", nb.ID, nb.Weight)
	}
	// Output:
	// A 2
	// C 1
	// D 2
}

func ExampleNew() {
	g, err := graph.New(
		[]graph.Node{{ID: "x"}, {ID: "y"}},
		[]graph.Edge{{From: "x", To: "y", Weight: 1.5}},
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	w, _ := g.Weight("y", "x")
	fmt.Println(w)
	// Output:
	// 1.5
}
