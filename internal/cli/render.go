package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pathviz/pkg/graph"
	"github.com/matzehuels/pathviz/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string  // output file path (or base path for multiple outputs), "-" for stdout
	formats string  // comma-separated output formats
	animate bool    // emit CSS animation in the svg format
	pinned  bool    // pin nodelink coordinates to the graph positions
	scale   float64 // png scale factor
	noCache bool
	refresh bool
}

// renderCommand creates the render command for writing output files.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		q    queryFlags
		opts renderOpts
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the shortest path to SVG, DOT, JSON, PDF, or PNG",
		Long: `Render the shortest path to one or more output files.

Formats:
  svg       hand-placed drawing; with --animate it replays the search in a browser
  dot       Graphviz source with the path in bold
  nodelink  Graphviz-rendered SVG (neato layout, --pinned keeps graph positions)
  json      graph plus search result
  pdf, png  svg converted with rsvg-convert (requires librsvg)

Results are cached locally for faster subsequent runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, popts, err := q.resolve(cmd, c.cfg)
			if err != nil {
				return err
			}
			popts.Formats = c.cfg.Formats
			if cmd.Flags().Changed("format") {
				popts.Formats = pipeline.ParseFormats(opts.formats)
			}
			if err := pipeline.ValidateFormats(popts.Formats); err != nil {
				return err
			}
			popts.Animated = opts.animate
			popts.Pinned = opts.pinned
			popts.Scale = opts.scale
			popts.Refresh = opts.refresh
			return c.runRender(cmd.Context(), g, popts, opts)
		},
	}

	q.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple), - for stdout")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): "+strings.Join(pipeline.Formats, ", ")+" (comma-separated)")
	cmd.Flags().BoolVar(&opts.animate, "animate", false, "animate the svg with CSS keyframes")
	cmd.Flags().BoolVar(&opts.pinned, "pinned", false, "keep graph coordinates in nodelink output")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "png scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached outputs and re-render")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, g *graph.Graph, popts pipeline.Options, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	runner, closeRunner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer closeRunner()

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", strings.Join(popts.Formats, ", ")))
	spinner.Start()

	res, err := runner.Execute(ctx, g, popts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Rendered %d output(s)", len(res.Artifacts)))

	if opts.output == "-" {
		if len(popts.Formats) != 1 {
			return fmt.Errorf("stdout output needs exactly one format, got %d", len(popts.Formats))
		}
		_, err := stdout.Write(res.Artifacts[popts.Formats[0]])
		return err
	}

	paths := outputPaths(opts.output, defaultBase(res.Search.Start, res.Search.End), popts.Formats)
	printSuccess("%s %s %s", res.Search.Start, iconArrow, res.Search.End)
	printStats(g.NodeCount(), g.EdgeCount(), res.CacheHit)
	for _, format := range popts.Formats {
		if err := writeFile(paths[format], res.Artifacts[format]); err != nil {
			return err
		}
		printFile(paths[format])
	}
	return nil
}

// defaultBase names outputs after the query, e.g. "path-A-E".
func defaultBase(start, end string) string {
	return fmt.Sprintf("path-%s-%s", start, end)
}

// basePath derives the base output path. If output carries a known format
// extension, it is stripped.
func basePath(output, fallback string) string {
	if output == "" {
		return fallback
	}
	ext := filepath.Ext(output)
	if slices.Contains(pipeline.Formats, strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPaths maps each format to its file. A single format with an explicit
// output path is written exactly there.
func outputPaths(output, fallback string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, fallback)
	for _, f := range formats {
		paths[f] = base + "." + pipeline.FormatExt(f)
	}
	return paths
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = out.Write(data)
	return err
}

// openOutput returns stdout for an empty path and creates path otherwise.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
