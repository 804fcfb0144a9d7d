// Package pipeline runs a shortest-path query and turns it into output
// artifacts.
//
// Every surface (the CLI commands, the HTTP server, and the MCP tool) goes
// through [Runner.Execute] so that validation, caching, and history logging
// behave the same everywhere.
//
// # Stages
//
//  1. Search: run the engine from Start to End on the graph
//  2. Render: produce each requested format concurrently
//  3. Record: append the run to the history store, if one is configured
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, store, logger)
//	res, err := runner.Execute(ctx, graph.Reference(), pipeline.Options{
//	    Start:   "A",
//	    End:     "E",
//	    Formats: []string{"svg", "json"},
//	})
//	svg := res.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pathviz/pkg/anim"
	"github.com/matzehuels/pathviz/pkg/cache"
	"github.com/matzehuels/pathviz/pkg/errors"
	"github.com/matzehuels/pathviz/pkg/graph"
	"github.com/matzehuels/pathviz/pkg/render/svg"
	"github.com/matzehuels/pathviz/pkg/search"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultStart and DefaultEnd are the reference query.
	DefaultStart = graph.ReferenceStart
	DefaultEnd   = graph.ReferenceEnd

	// DefaultStyle is the default canvas palette.
	DefaultStyle = svg.StyleSimple

	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG      = "svg"
	FormatDOT      = "dot"
	FormatNodelink = "nodelink"
	FormatJSON     = "json"
	FormatPDF      = "pdf"
	FormatPNG      = "png"
)

// Formats lists every supported output format in a stable order.
var Formats = []string{FormatSVG, FormatDOT, FormatNodelink, FormatJSON, FormatPDF, FormatPNG}

// FormatExt returns the file extension used when writing format to disk.
func FormatExt(format string) string {
	switch format {
	case FormatDOT:
		return "dot"
	case FormatNodelink:
		return "nodelink.svg"
	default:
		return format
	}
}

// LabelOffset moves the weight label of one edge.
type LabelOffset struct {
	From string  `json:"from" toml:"from"`
	To   string  `json:"to" toml:"to"`
	DX   float64 `json:"dx" toml:"dx"`
	DY   float64 `json:"dy" toml:"dy"`
}

// ReferenceLabelOffsets nudges the A-C label of the reference drawing off
// the B-C edge it would otherwise overlap.
var ReferenceLabelOffsets = []LabelOffset{{From: "A", To: "C", DX: 10, DY: -5}}

// =============================================================================
// Options
// =============================================================================

// Options configures one pipeline run.
type Options struct {
	Start   string   `json:"start"`
	End     string   `json:"end"`
	Formats []string `json:"formats,omitempty"`
	Style   string   `json:"style,omitempty"`

	// Interval spaces path highlights; StartupDelay holds the static drawing
	// before the animated SVG starts highlighting.
	Interval     time.Duration `json:"interval,omitempty"`
	StartupDelay time.Duration `json:"startup_delay,omitempty"`

	// Animated emits CSS keyframes in the svg format instead of final states.
	Animated bool `json:"animated,omitempty"`
	// Pinned fixes nodelink coordinates to the graph's positions.
	Pinned bool `json:"pinned,omitempty"`

	LabelOffsets []LabelOffset `json:"label_offsets,omitempty"`
	Scale        float64       `json:"scale,omitempty"`

	// Refresh skips cache reads but still writes fresh artifacts.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults fills zero values and rejects unknown formats and
// styles. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Start == "" {
		o.Start = DefaultStart
	}
	if o.End == "" {
		o.End = DefaultEnd
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Interval <= 0 {
		o.Interval = anim.DefaultInterval
	}
	if o.StartupDelay < 0 {
		o.StartupDelay = 0
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.Formats = dedupe(o.Formats)
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return svg.ValidateStyle(o.Style)
}

// ArtifactKeyOpts returns cache key options for one format. Options that do
// not affect a format's bytes are left out of its key.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Start: o.Start, End: o.End, Format: format}
	switch format {
	case FormatSVG, FormatPDF, FormatPNG:
		k.Style = o.Style
		if len(o.LabelOffsets) > 0 {
			k.Labels = fmt.Sprint(o.LabelOffsets)
		}
	case FormatDOT, FormatNodelink:
		k.Pinned = o.Pinned
	}
	if format == FormatSVG && o.Animated {
		k.Animated = true
		k.Interval, k.StartupDelay = o.Interval, o.StartupDelay
	}
	if format == FormatJSON {
		// The serialized result carries the path schedule.
		k.Interval = o.Interval
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(Formats, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated list, trimming blanks.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies the run in logs and history.
	RunID string

	// GraphHash is the content hash of the graph.
	GraphHash string

	// Search is the engine result.
	Search *search.Result

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// CacheHit is true when every artifact came from the cache.
	CacheHit bool

	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	SearchTime time.Duration
	RenderTime time.Duration
}
