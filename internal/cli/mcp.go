package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/pathviz/internal/server"
)

// mcpCommand creates the mcp command, which serves the query tools over stdio.
func (c *CLI) mcpCommand() *cobra.Command {
	var (
		q       queryFlags
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run an MCP server on stdin/stdout",
		Long: `Run a Model Context Protocol server on stdin/stdout.

Tools:
  shortest_path  path, distance and visit order as JSON
  render_graph   svg, dot or json artifact
  list_nodes     node ids of the graph

Resources:
  pathviz://graph                the graph as JSON
  pathviz://schemas/{tool_name}  argument schema of a tool

Logs go to stderr so they never corrupt the protocol stream.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, opts, err := q.resolve(cmd, c.cfg)
			if err != nil {
				return err
			}
			return c.runServe(cmd.Context(), func(s *server.Server) error {
				return s.ServeStdio(cmd.Context())
			}, server.Config{Graph: g, Defaults: opts}, noCache)
		},
	}

	q.register(cmd)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
