package cli

import (
	"context"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pathviz/pkg/graph"
	"github.com/matzehuels/pathviz/pkg/pipeline"
	"github.com/matzehuels/pathviz/pkg/search"
)

// solveCommand creates the solve command, which prints the query result.
func (c *CLI) solveCommand() *cobra.Command {
	var (
		q       queryFlags
		asJSON  bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "solve [from] [to]",
		Short: "Print the shortest path between two nodes",
		Long: `Print the shortest path between two nodes.

Without arguments the reference query A -> E on the built-in graph is solved.
Positional arguments override --from and --to.`,
		Args:              cobra.MaximumNArgs(2),
		ValidArgsFunction: q.completePositionalNodes,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, opts, err := q.resolve(cmd, c.cfg)
			if err != nil {
				return err
			}
			if len(args) > 0 {
				opts.Start = args[0]
			}
			if len(args) > 1 {
				opts.End = args[1]
			}
			opts.Formats = []string{pipeline.FormatJSON}
			return c.runSolve(cmd.Context(), g, opts, noCache, asJSON)
		},
	}

	q.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the graph and result as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runSolve(ctx context.Context, g *graph.Graph, opts pipeline.Options, noCache, asJSON bool) error {
	runner, closeRunner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer closeRunner()

	res, err := runner.Execute(ctx, g, opts)
	if err != nil {
		return err
	}

	if asJSON {
		_, err := stdout.Write(res.Artifacts[pipeline.FormatJSON])
		return err
	}
	printResult(stdout, res.Search)
	return nil
}

// printResult writes a human-readable summary of r followed by a table of
// the visit order.
func printResult(w io.Writer, r *search.Result) {
	fmt.Fprintln(w, StyleTitle.Render(fmt.Sprintf("%s %s %s", r.Start, iconArrow, r.End)))
	if r.Found() {
		fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" path     "+StyleHighlight.Render(strings.Join(r.Path, " "+iconArrow+" ")))
		fmt.Fprintln(w, "  "+StyleDim.Render("distance ")+StyleNumber.Render(formatDistance(r.Distance))+
			StyleDim.Render(fmt.Sprintf(" · %d hops", r.Hops())))
	} else {
		fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf("%s is unreachable from %s", r.End, r.Start)))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, visitTable(r).Render())
}

func visitTable(r *search.Result) *table.Table {
	rows := make([][]string, len(r.Visited))
	for i, id := range r.Visited {
		onPath := ""
		if r.Found() && slices.Contains(r.Path, id) {
			onPath = iconSuccess
		}
		rows[i] = []string{strconv.Itoa(i + 1), id, formatDistance(r.Distances[id]), onPath}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Node", "Distance", "Path").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			if row < len(rows) && rows[row][3] != "" {
				return base.Foreground(colorGreen)
			}
			return base.Foreground(colorWhite)
		})
}

func formatDistance(d float64) string {
	if math.IsInf(d, 1) {
		return "∞"
	}
	return strconv.FormatFloat(d, 'f', -1, 64)
}
