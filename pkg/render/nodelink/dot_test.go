package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/pathviz/pkg/graph"
)

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(graph.Reference(), Options{})

	if !strings.HasPrefix(dot, "graph G {") {
		t.Error("ToDOT() output missing undirected graph declaration")
	}
	if strings.Contains(dot, "->") {
		t.Error("ToDOT() should not emit directed edges")
	}
	for _, id := range []string{"A", "B", "C", "D", "E"} {
		if !strings.Contains(dot, `"`+id+`" [`) {
			t.Errorf("ToDOT() output missing node %s", id)
		}
	}
	if !strings.Contains(dot, `"A" -- "C" [label="5"]`) {
		t.Error("ToDOT() output missing weighted A-C edge")
	}
	if strings.Contains(dot, "penwidth=3") {
		t.Error("no edge should be highlighted without a path")
	}
}

func TestToDOT_Path(t *testing.T) {
	dot := ToDOT(graph.Reference(), Options{
		Path:    []string{"A", "B", "D", "E"},
		Visited: []string{"A", "B", "C", "D", "E"},
	})

	for _, e := range []string{`"A" -- "B"`, `"B" -- "D"`, `"D" -- "E"`} {
		line := lineWith(dot, e)
		if !strings.Contains(line, "penwidth=3") {
			t.Errorf("path edge %s not highlighted: %q", e, line)
		}
	}
	if strings.Contains(lineWith(dot, `"C" -- "E"`), "penwidth=3") {
		t.Error("C-E is not on the path")
	}
	if !strings.Contains(lineWith(dot, `"C" [`), "#add8e6") {
		t.Error("C should use the visited fill")
	}
	if !strings.Contains(lineWith(dot, `"D" [`), "#ffa500") {
		t.Error("D should use the path fill")
	}
}

func TestToDOT_Pinned(t *testing.T) {
	dot := ToDOT(graph.Reference(), Options{Pinned: true})
	if !strings.Contains(lineWith(dot, `"E" [`), `pos="5.556,-2.083!"`) {
		t.Errorf("E position not pinned: %q", lineWith(dot, `"E" [`))
	}
}

func TestPathEdges(t *testing.T) {
	got := pathEdges([]string{"A", "B", "D"})
	if len(got) != 2 || !got[[2]string{"A", "B"}] || !got[[2]string{"B", "D"}] {
		t.Errorf("pathEdges() = %v", got)
	}
	if len(pathEdges([]string{"A"})) != 0 {
		t.Error("single-node path has no edges")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50">`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg>")); string(got) != "<svg>" {
		t.Error("input without viewBox should pass through")
	}
}

func lineWith(s, substr string) string {
	for _, l := range strings.Split(s, "\n") {
		if strings.Contains(l, substr) {
			return l
		}
	}
	return ""
}
