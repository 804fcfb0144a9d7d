package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/pathviz/pkg/graph"
)

// pointsPerInch converts canvas pixels to Graphviz inches for pinned layouts.
const pointsPerInch = 72.0

// Options configures node-link diagram generation.
type Options struct {
	// Path is highlighted: its nodes are filled and the edges between
	// consecutive path nodes are drawn bold.
	Path []string
	// Visited nodes not on Path get a lighter fill.
	Visited []string
	// Pinned fixes node positions to the graph's X/Y coordinates.
	Pinned bool
}

// ToDOT converts g to Graphviz DOT source.
func ToDOT(g *graph.Graph, opts Options) string {
	onPath := pathEdges(opts.Path)

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fixedsize=true, width=0.55, fontsize=14];\n")
	buf.WriteString("  edge [fontsize=12, color=\"#555555\"];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n, opts), ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		attrs := []string{fmt.Sprintf("label=%q", strconv.FormatFloat(e.Weight, 'f', -1, 64))}
		if onPath[[2]string{e.From, e.To}] || onPath[[2]string{e.To, e.From}] {
			attrs = append(attrs, "penwidth=3", `color="#c05000"`)
		}
		fmt.Fprintf(&buf, "  %q -- %q [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n graph.Node, opts Options) []string {
	var attrs []string
	switch {
	case slices.Contains(opts.Path, n.ID):
		attrs = append(attrs, `fillcolor="#ffa500"`, "penwidth=2")
	case slices.Contains(opts.Visited, n.ID):
		attrs = append(attrs, `fillcolor="#add8e6"`)
	}
	if opts.Pinned {
		// Graphviz puts the origin bottom-left; the canvas puts it top-left.
		attrs = append(attrs, fmt.Sprintf(`pos="%s,%s!"`,
			strconv.FormatFloat(n.X/pointsPerInch, 'f', 3, 64),
			strconv.FormatFloat(-n.Y/pointsPerInch, 'f', 3, 64)))
	}
	return attrs
}

// pathEdges returns the set of consecutive (from, to) pairs on path.
func pathEdges(path []string) map[[2]string]bool {
	out := make(map[[2]string]bool, len(path))
	for i := 1; i < len(path); i++ {
		out[[2]string{path[i-1], path[i]}] = true
	}
	return out
}

// RenderSVG renders DOT source to SVG using the neato engine.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-based root element with a plain
// pixel-sized one so the output scales like the canvas SVG.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
