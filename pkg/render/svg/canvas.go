package svg

import (
	"bytes"
	"fmt"
	"html"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/pathviz/pkg/anim"
	"github.com/matzehuels/pathviz/pkg/graph"
)

const (
	nodeRadius  = 20.0
	labelShift  = 4.0  // baseline offset that vertically centers the id
	frameMargin = 40.0 // space around the outermost node
)

// Surface is the drawing capability the search harness needs.
type Surface interface {
	Draw(nodes []graph.Node, edges []graph.Edge)
	Mark(id, state string)
}

// Offset moves an edge weight label away from the edge midpoint.
type Offset struct{ DX, DY float64 }

type edgeKey struct{ a, b string }

func keyFor(a, b string) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// Option configures a Canvas.
type Option func(*Canvas)

// WithStyle selects a palette by name. Unknown names fall back to StyleSimple.
func WithStyle(name string) Option {
	return func(c *Canvas) { c.palette = PaletteFor(name) }
}

// WithSize fixes the document size instead of fitting it to the nodes.
func WithSize(width, height float64) Option {
	return func(c *Canvas) { c.width, c.height = width, height }
}

// WithLabelOffset shifts the weight label of the edge joining a and b.
func WithLabelOffset(a, b string, dx, dy float64) Option {
	return func(c *Canvas) { c.offsets[keyFor(a, b)] = Offset{DX: dx, DY: dy} }
}

// WithTimeline animates node states in the browser following s.
func WithTimeline(s anim.Schedule) Option {
	return func(c *Canvas) { c.timeline = s.Sorted() }
}

// Canvas accumulates a drawing and renders it as an SVG document.
// It is not safe for concurrent use.
type Canvas struct {
	nodes    []graph.Node
	edges    []graph.Edge
	states   map[string][]string // node id -> states in first-mark order
	offsets  map[edgeKey]Offset
	timeline anim.Schedule
	palette  Palette
	width    float64
	height   float64
}

// NewCanvas creates an empty canvas.
func NewCanvas(opts ...Option) *Canvas {
	c := &Canvas{
		states:  make(map[string][]string),
		offsets: make(map[edgeKey]Offset),
		palette: PaletteFor(StyleSimple),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Draw sets the static content. Calling it again replaces the previous
// drawing but keeps node states.
func (c *Canvas) Draw(nodes []graph.Node, edges []graph.Edge) {
	c.nodes = slices.Clone(nodes)
	c.edges = slices.Clone(edges)
}

// Mark adds state to node id. Marking the same state twice has no effect.
func (c *Canvas) Mark(id, state string) {
	if !slices.Contains(c.states[id], state) {
		c.states[id] = append(c.states[id], state)
	}
}

// States returns the states of id in the order they were first added.
func (c *Canvas) States(id string) []string {
	return slices.Clone(c.states[id])
}

// Has reports whether id carries state.
func (c *Canvas) Has(id, state string) bool {
	return slices.Contains(c.states[id], state)
}

// Bytes renders the document.
func (c *Canvas) Bytes() []byte {
	width, height := c.dimensions()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" id="graph" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		num(width), num(height), num(width), num(height))

	c.renderStyle(&buf)
	fmt.Fprintf(&buf, `  <rect class="background" width="100%%" height="100%%" fill="%s"/>`+"\n", c.palette.Background)

	pos := make(map[string]graph.Node, len(c.nodes))
	for _, n := range c.nodes {
		pos[n.ID] = n
	}

	buf.WriteString("  <g class=\"edges\">\n")
	for _, e := range c.edges {
		c.renderEdge(&buf, pos[e.From], pos[e.To], e)
	}
	buf.WriteString("  </g>\n")

	buf.WriteString("  <g class=\"nodes\">\n")
	for _, n := range c.nodes {
		c.renderNode(&buf, n)
	}
	buf.WriteString("  </g>\n")

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (c *Canvas) dimensions() (float64, float64) {
	if c.width > 0 && c.height > 0 {
		return c.width, c.height
	}
	var maxX, maxY float64
	for _, n := range c.nodes {
		maxX = math.Max(maxX, n.X)
		maxY = math.Max(maxY, n.Y)
	}
	return maxX + nodeRadius + frameMargin, maxY + nodeRadius + frameMargin
}

func (c *Canvas) renderStyle(buf *bytes.Buffer) {
	p := c.palette
	buf.WriteString("  <style>\n")
	fmt.Fprintf(buf, "    .edge { stroke: %s; stroke-width: 2; }\n", p.Edge)
	fmt.Fprintf(buf, "    .weight { fill: %s; font: 14px sans-serif; }\n", p.Weight)
	fmt.Fprintf(buf, "    .node { fill: %s; stroke: %s; stroke-width: 2; }\n", p.NodeFill, p.NodeStroke)
	fmt.Fprintf(buf, "    .node.visited { fill: %s; }\n", p.VisitedFill)
	fmt.Fprintf(buf, "    .node.path { fill: %s; stroke: %s; stroke-width: 3; }\n", p.PathFill, p.PathStroke)
	fmt.Fprintf(buf, "    .label { fill: %s; font: bold 14px sans-serif; pointer-events: none; }\n", p.Label)

	if len(c.timeline) > 0 {
		fmt.Fprintf(buf, "    @keyframes %s { to { fill: %s; } }\n", anim.StateVisited, p.VisitedFill)
		fmt.Fprintf(buf, "    @keyframes %s { to { fill: %s; stroke: %s; stroke-width: 3; } }\n", anim.StatePath, p.PathFill, p.PathStroke)
		for _, id := range c.timelineNodes() {
			fmt.Fprintf(buf, "    #node-%s { animation: %s; }\n", cssIdent(id), c.animationFor(id))
		}
	}
	buf.WriteString("  </style>\n")
}

// timelineNodes lists ids in order of their first timeline step.
func (c *Canvas) timelineNodes() []string {
	var ids []string
	for _, st := range c.timeline {
		if !slices.Contains(ids, st.Node) {
			ids = append(ids, st.Node)
		}
	}
	return ids
}

// animationFor builds the CSS animation list for id. Later entries win when
// two animations touch the same property, and steps are sorted by offset, so
// the most recent state is the one shown.
func (c *Canvas) animationFor(id string) string {
	var parts []string
	for _, st := range c.timeline {
		if st.Node != id {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s 0.2s ease-in %s forwards", st.State, seconds(st.At)))
	}
	return strings.Join(parts, ", ")
}

func (c *Canvas) renderEdge(buf *bytes.Buffer, a, b graph.Node, e graph.Edge) {
	fmt.Fprintf(buf, `    <line class="edge" data-from="%s" data-to="%s" x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n",
		esc(e.From), esc(e.To), num(a.X), num(a.Y), num(b.X), num(b.Y))

	off := c.offsets[keyFor(e.From, e.To)]
	lx := (a.X+b.X)/2 + off.DX
	ly := (a.Y+b.Y)/2 + off.DY
	fmt.Fprintf(buf, `    <text class="weight" x="%s" y="%s">%s</text>`+"\n", num(lx), num(ly), num(e.Weight))
}

func (c *Canvas) renderNode(buf *bytes.Buffer, n graph.Node) {
	class := "node"
	for _, s := range c.states[n.ID] {
		class += " " + s
	}
	fmt.Fprintf(buf, `    <circle id="node-%s" class="%s" cx="%s" cy="%s" r="%s"/>`+"\n",
		esc(n.ID), esc(class), num(n.X), num(n.Y), num(nodeRadius))
	fmt.Fprintf(buf, `    <text class="label" x="%s" y="%s" text-anchor="middle">%s</text>`+"\n",
		num(n.X), num(n.Y+labelShift), esc(n.ID))
}

// num formats v without trailing zeros: 100 -> "100", 2.5 -> "2.5".
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func seconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64) + "s"
}

func esc(s string) string { return html.EscapeString(s) }

// cssIdent escapes characters that are not valid in a CSS id selector.
func cssIdent(s string) string {
	var b bytes.Buffer
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r > 0x7f:
			b.WriteRune(r)
		default:
			fmt.Fprintf(&b, `\%x `, r)
		}
	}
	return b.String()
}
