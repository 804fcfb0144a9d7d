package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/matzehuels/pathviz/pkg/anim"
	"github.com/matzehuels/pathviz/pkg/graph"
	"github.com/matzehuels/pathviz/pkg/render"
	"github.com/matzehuels/pathviz/pkg/render/nodelink"
	"github.com/matzehuels/pathviz/pkg/render/svg"
	"github.com/matzehuels/pathviz/pkg/search"
)

// Document is the json format: the graph plus the query outcome.
type Document struct {
	Graph  graph.Document `json:"graph"`
	Result *search.Result `json:"result"`
}

// Render produces one artifact. opts must already be validated.
func Render(ctx context.Context, g *graph.Graph, res *search.Result, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return RenderCanvas(g, res, opts), nil
	case FormatDOT:
		return []byte(nodelink.ToDOT(g, nodelinkOptions(res, opts))), nil
	case FormatNodelink:
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(g, nodelinkOptions(res, opts)))
	case FormatJSON:
		return json.MarshalIndent(Document{Graph: graph.Export(g), Result: res}, "", "  ")
	case FormatPDF:
		return render.ToPDF(ctx, RenderCanvas(g, res, static(opts)))
	case FormatPNG:
		return render.ToPNG(ctx, RenderCanvas(g, res, static(opts)), opts.Scale)
	default:
		return nil, ValidateFormat(format)
	}
}

// RenderCanvas draws g on an SVG canvas. With opts.Animated the node states
// follow Timeline; otherwise they are shown in their final form.
func RenderCanvas(g *graph.Graph, res *search.Result, opts Options) []byte {
	canvasOpts := []svg.Option{svg.WithStyle(opts.Style)}
	for _, lo := range opts.LabelOffsets {
		canvasOpts = append(canvasOpts, svg.WithLabelOffset(lo.From, lo.To, lo.DX, lo.DY))
	}
	if opts.Animated {
		canvasOpts = append(canvasOpts, svg.WithTimeline(Timeline(res, opts.StartupDelay)))
	}

	c := svg.NewCanvas(canvasOpts...)
	c.Draw(g.Nodes(), g.Edges())
	if !opts.Animated {
		Apply(c, res)
	}
	return c.Bytes()
}

// Apply marks the final visited and path states of res on m.
func Apply(m search.Marker, res *search.Result) {
	for _, id := range res.Visited {
		m.Mark(id, anim.StateVisited)
	}
	for _, id := range res.Path {
		m.Mark(id, anim.StatePath)
	}
}

// Timeline is the full playback of a query: the static drawing is held for
// startup, then every visited node lights up at once and the path follows
// one interval per node.
func Timeline(res *search.Result, startup time.Duration) anim.Schedule {
	visited := anim.Immediate(res.Visited, anim.StateVisited)
	return append(visited, res.Animation...).Delay(startup)
}

func nodelinkOptions(res *search.Result, opts Options) nodelink.Options {
	return nodelink.Options{Path: res.Path, Visited: res.Visited, Pinned: opts.Pinned}
}

func static(opts Options) Options {
	opts.Animated = false
	return opts
}

// renderError tags a render failure with its format.
func renderError(format string, err error) error {
	return fmt.Errorf("render %s: %w", format, err)
}
