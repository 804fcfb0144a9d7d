package svg_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/matzehuels/pathviz/pkg/graph"
	"github.com/matzehuels/pathviz/pkg/render/svg"
	"github.com/matzehuels/pathviz/pkg/search"
)

func ExampleCanvas() {
	g := graph.Reference()
	c := svg.NewCanvas(svg.WithLabelOffset("A", "C", 10, -5))
	c.Draw(g.Nodes(), g.Edges())

	res, _ := search.New(g, search.WithMarker(c)).ShortestPath(context.Background(), "A", "E")
	for _, st := range res.Animation {
		c.Mark(st.Node, st.State)
	}

	for _, line := range strings.Split(string(c.Bytes()), "\n") {
		if strings.Contains(line, "<circle") {
			fmt.Println(strings.TrimSpace(line))
		}
	}
	// Output:
	// <circle id="node-A" class="node visited path" cx="100" cy="100" r="20"/>
	// <circle id="node-B" class="node visited path" cx="200" cy="50" r="20"/>
	// <circle id="node-C" class="node visited" cx="300" cy="100" r="20"/>
	// <circle id="node-D" class="node visited path" cx="200" cy="200" r="20"/>
	// <circle id="node-E" class="node visited path" cx="400" cy="150" r="20"/>
}
