package cli

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/matzehuels/pathviz/pkg/history"
)

func sampleRuns() []history.Run {
	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	return []history.Run{
		{ID: "0123456789abcdef", At: at, GraphHash: "feedbeef00", Start: "A", End: "E",
			Path: []string{"A", "B", "D", "E"}, Distance: 5, Visited: 5, Formats: []string{"svg", "dot"}, CacheHit: true},
		{ID: "short", At: at, Start: "A", End: "F", Path: []string{"F"}, Distance: math.Inf(1), Visited: 6},
	}
}

func TestHistoryTable(t *testing.T) {
	out := historyTable(sampleRuns()).Render()

	assert.Contains(t, out, "01234567")
	assert.NotContains(t, out, "0123456789abcdef")
	assert.Contains(t, out, "A → E")
	assert.Contains(t, out, "svg,dot")
	assert.Contains(t, out, iconCached)
	assert.Contains(t, out, "∞")
}

func TestPrintRun(t *testing.T) {
	runs := sampleRuns()

	var buf bytes.Buffer
	printRun(&buf, runs[0])
	assert.Contains(t, buf.String(), "Run 0123456789abcdef")
	assert.Contains(t, buf.String(), "A → B → D → E")
	assert.Contains(t, buf.String(), "feedbeef")

	buf.Reset()
	printRun(&buf, runs[1])
	assert.Contains(t, buf.String(), "unreachable")
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "abc", shortID("abc"))
	assert.Equal(t, "12345678", shortID("123456789"))
}
