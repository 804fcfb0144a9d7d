package cli

import (
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pathviz/pkg/graph"
	"github.com/matzehuels/pathviz/pkg/pipeline"
)

// queryFlags are shared by every command that runs a search. Unset flags
// fall back to the config file.
type queryFlags struct {
	from         string
	to           string
	graph        string
	style        string
	interval     time.Duration
	startupDelay time.Duration
}

func (q *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&q.from, "from", "", "start node (default from config, A)")
	cmd.Flags().StringVar(&q.to, "to", "", "end node (default from config, E)")
	cmd.Flags().StringVarP(&q.graph, "graph", "g", "", "graph JSON file or http(s) URL (default: built-in reference graph)")
	cmd.Flags().StringVar(&q.style, "style", "", "visual style: simple (default), dark")
	cmd.Flags().DurationVar(&q.interval, "interval", 0, "delay between path highlights (default 500ms)")
	cmd.Flags().DurationVar(&q.startupDelay, "startup-delay", 0, "delay before the search is shown (default 3s)")

	_ = cmd.RegisterFlagCompletionFunc("from", q.completeNodes)
	_ = cmd.RegisterFlagCompletionFunc("to", q.completeNodes)
	_ = cmd.MarkFlagFilename("graph", "json")
}

// resolve merges flags over cfg and loads the graph.
func (q *queryFlags) resolve(cmd *cobra.Command, cfg Config) (*graph.Graph, pipeline.Options, error) {
	flags := cmd.Flags()
	pick := func(name, flag, fallback string) string {
		if flags.Changed(name) {
			return flag
		}
		return fallback
	}

	opts := pipeline.Options{
		Start:        pick("from", q.from, cfg.Start),
		End:          pick("to", q.to, cfg.End),
		Style:        pick("style", q.style, cfg.Style),
		Interval:     cfg.Interval.Duration,
		StartupDelay: cfg.StartupDelay.Duration,
	}
	if flags.Changed("interval") {
		opts.Interval = q.interval
	}
	if flags.Changed("startup-delay") {
		opts.StartupDelay = q.startupDelay
	}

	g, offsets, err := loadGraph(cmd.Context(), pick("graph", q.graph, cfg.Graph))
	if err != nil {
		return nil, opts, err
	}
	opts.LabelOffsets = slices.Concat(offsets, cfg.LabelOffsets)
	return g, opts, nil
}
