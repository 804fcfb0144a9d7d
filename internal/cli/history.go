package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pathviz/pkg/history"
)

// historyCommand creates the history command for inspecting past runs.
func (c *CLI) historyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect past queries",
	}

	cmd.AddCommand(c.historyListCommand())
	cmd.AddCommand(c.historyShowCommand())
	cmd.AddCommand(c.historyClearCommand())

	return cmd
}

func (c *CLI) historyListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withHistory(cmd.Context(), func(store history.Log) error {
				runs, err := store.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if len(runs) == 0 {
					printInfo("No runs recorded yet")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), historyTable(runs).Render())
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of runs to show")
	return cmd
}

func (c *CLI) historyShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one run; an id prefix is enough",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withHistory(cmd.Context(), func(store history.Log) error {
				run, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printRun(cmd.OutOrStdout(), run)
				return nil
			})
		},
	}
}

func (c *CLI) historyClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withHistory(cmd.Context(), func(store history.Log) error {
				n, err := store.Clear(cmd.Context())
				if err != nil {
					return err
				}
				printSuccess("Deleted %d runs", n)
				return nil
			})
		},
	}
}

func (c *CLI) withHistory(ctx context.Context, fn func(history.Log) error) error {
	if c.cfg.History.Disabled {
		printWarning("History is disabled in the config file")
		return nil
	}
	store, err := c.openHistory(ctx)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer store.Close()
	return fn(store)
}

func historyTable(runs []history.Run) *table.Table {
	rows := make([][]string, len(runs))
	for i, r := range runs {
		cached := ""
		if r.CacheHit {
			cached = iconCached
		}
		rows[i] = []string{
			shortID(r.ID),
			r.At.Local().Format(time.DateTime),
			r.Start + " " + iconArrow + " " + r.End,
			formatDistance(r.Distance),
			strconv.Itoa(r.Visited),
			strings.Join(r.Formats, ","),
			cached,
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Run", "When", "Query", "Distance", "Visited", "Formats", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return headerStyle.Padding(0, 1)
			case col == 0:
				return base.Foreground(colorCyan)
			case col == 6:
				return base.Foreground(colorGreen)
			case row < len(runs) && !runs[row].Found():
				return base.Foreground(colorYellow)
			}
			return base.Foreground(colorWhite)
		})
}

func printRun(w io.Writer, r history.Run) {
	fmt.Fprintln(w, StyleTitle.Render(fmt.Sprintf("Run %s", r.ID)))
	path := strings.Join(r.Path, " "+iconArrow+" ")
	if !r.Found() {
		path = StyleWarning.Render("unreachable")
	}
	for _, kv := range [][2]string{
		{"When", r.At.Local().Format(time.DateTime)},
		{"Query", r.Start + " " + iconArrow + " " + r.End},
		{"Path", path},
		{"Distance", formatDistance(r.Distance)},
		{"Visited", strconv.Itoa(r.Visited)},
		{"Formats", strings.Join(r.Formats, ", ")},
		{"Duration", r.Duration.String()},
		{"Cached", strconv.FormatBool(r.CacheHit)},
		{"Graph", shortID(r.GraphHash)},
	} {
		fmt.Fprintln(w, keyValue(kv[0], kv[1]))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
