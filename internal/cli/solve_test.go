package cli

import (
	"bytes"
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/pathviz/pkg/graph"
	"github.com/matzehuels/pathviz/pkg/search"
)

func solveReference(t *testing.T, g *graph.Graph, start, end string) *search.Result {
	t.Helper()
	res, err := search.New(g).ShortestPath(context.Background(), start, end)
	require.NoError(t, err)
	return res
}

func TestFormatDistance(t *testing.T) {
	assert.Equal(t, "5", formatDistance(5))
	assert.Equal(t, "2.5", formatDistance(2.5))
	assert.Equal(t, "∞", formatDistance(math.Inf(1)))
}

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	printResult(&buf, solveReference(t, graph.Reference(), "A", "E"))
	out := buf.String()

	assert.Contains(t, out, "A → B → D → E")
	assert.Contains(t, out, "3 hops")
	for _, id := range []string{"A", "B", "C", "D", "E"} {
		assert.Contains(t, out, id)
	}
}

func TestPrintResultUnreachable(t *testing.T) {
	g, err := graph.WithIsolated(graph.Reference(), "F", 600, 100)
	require.NoError(t, err)

	var buf bytes.Buffer
	printResult(&buf, solveReference(t, g, "A", "F"))
	assert.Contains(t, buf.String(), "F is unreachable from A")
	assert.Contains(t, buf.String(), "∞")
}

func TestVisitTableMarksPath(t *testing.T) {
	res := solveReference(t, graph.Reference(), "A", "E")
	out := visitTable(res).Render()

	lines := strings.Split(out, "\n")
	var cRow string
	for _, l := range lines {
		if strings.Contains(l, " C ") {
			cRow = l
		}
	}
	require.NotEmpty(t, cRow, "table has no row for C:\n%s", out)
	assert.NotContains(t, cRow, iconSuccess, "C is visited but not on the path")
}
