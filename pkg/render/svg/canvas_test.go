package svg

import (
	"context"
	"encoding/xml"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/pathviz/pkg/anim"
	"github.com/matzehuels/pathviz/pkg/graph"
	"github.com/matzehuels/pathviz/pkg/search"
)

func drawReference(opts ...Option) *Canvas {
	g := graph.Reference()
	c := NewCanvas(opts...)
	c.Draw(g.Nodes(), g.Edges())
	return c
}

func TestCanvasImplementsSurfaceAndMarker(t *testing.T) {
	var _ Surface = (*Canvas)(nil)
	var _ search.Marker = (*Canvas)(nil)
}

func TestMarkAdditiveAndIdempotent(t *testing.T) {
	c := NewCanvas()
	c.Mark("A", anim.StateVisited)
	c.Mark("A", anim.StatePath)
	c.Mark("A", anim.StateVisited)

	got := c.States("A")
	if len(got) != 2 || got[0] != anim.StateVisited || got[1] != anim.StatePath {
		t.Errorf("States(A) = %v, want [visited path]", got)
	}
	if !c.Has("A", anim.StatePath) || c.Has("B", anim.StatePath) {
		t.Error("Has() mismatch")
	}
}

func TestBytesGeometry(t *testing.T) {
	out := string(drawReference().Bytes())

	checks := []string{
		`<circle id="node-A" class="node" cx="100" cy="100" r="20"/>`,
		`<text class="label" x="100" y="104" text-anchor="middle">A</text>`,
		`<line class="edge" data-from="A" data-to="B" x1="100" y1="100" x2="200" y2="50"/>`,
		`<text class="weight" x="150" y="75">2</text>`,
		// D-E midpoint
		`<text class="weight" x="300" y="175">1</text>`,
	}
	for _, want := range checks {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s", want)
		}
	}
	if strings.Count(out, "<line ") != 6 {
		t.Errorf("want 6 edges, got %d", strings.Count(out, "<line "))
	}
	if strings.Count(out, "<circle ") != 5 {
		t.Errorf("want 5 nodes, got %d", strings.Count(out, "<circle "))
	}
}

func TestLabelOffset(t *testing.T) {
	out := string(drawReference(WithLabelOffset("C", "A", 10, -5)).Bytes())
	// A-C midpoint is (200,100); shifted by (+10,-5).
	if !strings.Contains(out, `<text class="weight" x="210" y="95">5</text>`) {
		t.Errorf("A-C label not offset:\n%s", out)
	}
}

func TestDimensions(t *testing.T) {
	out := string(drawReference().Bytes())
	if !strings.Contains(out, `viewBox="0 0 460 260"`) {
		t.Errorf("fitted viewBox wrong:\n%s", out[:200])
	}
	out = string(drawReference(WithSize(800, 600)).Bytes())
	if !strings.Contains(out, `width="800" height="600"`) {
		t.Error("WithSize not applied")
	}
}

func TestSearchMarksRendered(t *testing.T) {
	g := graph.Reference()
	c := NewCanvas()
	c.Draw(g.Nodes(), g.Edges())

	res, err := search.New(g, search.WithMarker(c)).ShortestPath(context.Background(), "A", "E")
	if err != nil {
		t.Fatalf("ShortestPath() error: %v", err)
	}
	anim.Play(anim.NewManualClock(time.Time{}), res.Animation, func(st anim.Step) {
		c.Mark(st.Node, st.State)
	})

	out := string(c.Bytes())
	if !strings.Contains(out, `id="node-D" class="node visited path"`) {
		t.Error("D should be visited and on path")
	}
	if !strings.Contains(out, `id="node-C" class="node visited"`) {
		t.Error("C should be visited only")
	}
}

func TestTimeline(t *testing.T) {
	timeline := anim.Immediate([]string{"A", "B"}, anim.StateVisited).
		Then(anim.PathSchedule([]string{"A", "B"}, 500*time.Millisecond), 0).
		Delay(3 * time.Second)

	out := string(drawReference(WithTimeline(timeline)).Bytes())

	if !strings.Contains(out, "@keyframes visited") || !strings.Contains(out, "@keyframes path") {
		t.Error("keyframes missing")
	}
	if !strings.Contains(out, "#node-A { animation: visited 0.2s ease-in 3s forwards, path 0.2s ease-in 3s forwards; }") {
		t.Errorf("node A animation wrong:\n%s", out)
	}
	if !strings.Contains(out, "#node-B { animation: visited 0.2s ease-in 3s forwards, path 0.2s ease-in 3.5s forwards; }") {
		t.Errorf("node B animation wrong:\n%s", out)
	}
	if strings.Contains(out, "#node-C {") {
		t.Error("C has no steps and should not be animated")
	}
}

func TestWellFormedXML(t *testing.T) {
	g := graph.MustNew(
		[]graph.Node{{ID: "<a&b>", X: 10, Y: 10}, {ID: "c", X: 50, Y: 50}},
		[]graph.Edge{{From: "<a&b>", To: "c", Weight: 1.25}},
	)
	c := NewCanvas(WithStyle(StyleDark), WithTimeline(anim.PathSchedule([]string{"<a&b>"}, time.Second)))
	c.Draw(g.Nodes(), g.Edges())
	c.Mark("<a&b>", anim.StateVisited)

	dec := xml.NewDecoder(strings.NewReader(string(c.Bytes())))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("invalid XML: %v", err)
		}
	}
}

func TestValidateStyle(t *testing.T) {
	for _, s := range Styles() {
		if err := ValidateStyle(s); err != nil {
			t.Errorf("ValidateStyle(%q) error = %v", s, err)
		}
	}
	if err := ValidateStyle("neon"); err == nil {
		t.Error("ValidateStyle(neon) should fail")
	}
	if PaletteFor("neon") != PaletteFor(StyleSimple) {
		t.Error("unknown style should fall back to simple")
	}
}

func TestCSSIdent(t *testing.T) {
	tests := []struct{ in, want string }{
		{"A", "A"},
		{"node-1", "node-1"},
		{"a.b", `a\2e b`},
	}
	for _, tt := range tests {
		if got := cssIdent(tt.in); got != tt.want {
			t.Errorf("cssIdent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
