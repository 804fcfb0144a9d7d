package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pathviz/internal/server"
	"github.com/matzehuels/pathviz/pkg/buildinfo"
)

// serveCommand creates the serve command, which hosts the animated page.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		q       queryFlags
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the animated shortest-path page over HTTP",
		Long: `Serve the animated shortest-path page over HTTP.

Routes:
  /                 animated drawing, ?from=&to=&style= pick the query
  /render/{format}  a single artifact (svg, dot, nodelink, json, pdf, png)
  /api/graph        the graph as JSON
  /api/path         the search result as JSON
  /healthz          liveness probe`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, opts, err := q.resolve(cmd, c.cfg)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") {
				addr = c.cfg.Serve.Addr
			}
			return c.runServe(cmd.Context(), func(s *server.Server) error {
				printSuccess("Serving %s", StyleLink.Render("http://"+addr))
				printDetail("Press Ctrl+C to stop")
				return s.ListenAndServe(cmd.Context(), addr)
			}, server.Config{Graph: g, Defaults: opts}, noCache)
		},
	}

	q.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, localhost:8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe builds a server around a fresh runner and hands it to serve.
// Cancellation is a clean exit.
func (c *CLI) runServe(ctx context.Context, serve func(*server.Server) error, cfg server.Config, noCache bool) error {
	runner, closeRunner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer closeRunner()

	cfg.Runner = runner
	cfg.Logger = loggerFromContext(ctx)
	cfg.Version = buildinfo.Version

	err = serve(server.New(cfg))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
