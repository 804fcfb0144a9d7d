package search_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/pathviz/pkg/graph"
	"github.com/matzehuels/pathviz/pkg/search"
)

func ExampleEngine_ShortestPath() {
	marker := search.MarkerFunc(func(id, state string) {
		fmt.Println(state, id)
	})
	e := search.New(graph.Reference(), search.WithMarker(marker))

	res, err := e.ShortestPath(context.Background(), "A", "E")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(res.Path, res.Distance)
	// Output:
	// visited A
	// visited B
	// visited C
	// visited D
	// visited E
	// [A B D E] 5
}
