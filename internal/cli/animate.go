package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pathviz/pkg/anim"
	"github.com/matzehuels/pathviz/pkg/graph"
	"github.com/matzehuels/pathviz/pkg/pipeline"
	"github.com/matzehuels/pathviz/pkg/search"
)

// animateCommand creates the animate command, which replays a search in the
// terminal with the same timing as the browser page.
func (c *CLI) animateCommand() *cobra.Command {
	var q queryFlags

	cmd := &cobra.Command{
		Use:   "animate",
		Short: "Replay the search in the terminal",
		Long: `Replay the search in the terminal.

The graph is shown unmarked for the startup delay, then every node the search
finalized is marked visited and the shortest path lights up one node per
interval. Press q to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, opts, err := q.resolve(cmd, c.cfg)
			if err != nil {
				return err
			}
			return c.runAnimate(cmd.Context(), g, opts)
		},
	}

	q.register(cmd)
	return cmd
}

func (c *CLI) runAnimate(ctx context.Context, g *graph.Graph, opts pipeline.Options) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	res, err := search.New(g, search.WithInterval(opts.Interval)).ShortestPath(ctx, opts.Start, opts.End)
	if err != nil {
		return err
	}
	timeline := pipeline.Timeline(res, opts.StartupDelay)

	p := tea.NewProgram(newAnimateModel(g, res, timeline.End()), tea.WithContext(ctx))
	done := anim.Go(anim.RealClock{}, timeline, func(st anim.Step) {
		p.Send(stepMsg(st))
	})
	go func() {
		<-done
		p.Send(playbackDoneMsg{})
	}()

	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// stepMsg delivers one timeline step to the model.
type stepMsg anim.Step

// playbackDoneMsg arrives after the last step.
type playbackDoneMsg struct{}

// animateModel is the bubbletea model for the terminal animation. It
// implements search.Marker so the same marking code drives it and the SVG
// canvas.
type animateModel struct {
	graph    *graph.Graph
	result   *search.Result
	states   map[string]map[string]bool
	total    time.Duration
	elapsed  time.Duration
	finished bool
}

func newAnimateModel(g *graph.Graph, res *search.Result, total time.Duration) *animateModel {
	return &animateModel{
		graph:  g,
		result: res,
		states: make(map[string]map[string]bool),
		total:  total,
	}
}

// Mark records state for id.
func (m *animateModel) Mark(id, state string) {
	if m.states[id] == nil {
		m.states[id] = make(map[string]bool)
	}
	m.states[id][state] = true
}

func (m *animateModel) Init() tea.Cmd {
	return nil
}

func (m *animateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case stepMsg:
		m.Mark(msg.Node, msg.State)
		m.elapsed = msg.At
	case playbackDoneMsg:
		m.finished = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *animateModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("%s %s %s", m.result.Start, iconArrow, m.result.End)))
	b.WriteString("\n\n")

	boxes := make([]string, 0, m.graph.NodeCount())
	for _, id := range m.graph.IDs() {
		boxes = append(boxes, m.nodeStyle(id).Render(id))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	b.WriteString("\n\n")

	switch {
	case m.finished && m.result.Found():
		b.WriteString(styleIconSuccess.Render(iconSuccess) + " " +
			StyleHighlight.Render(strings.Join(m.result.Path, " "+iconArrow+" ")) +
			StyleDim.Render(" · distance ") + StyleNumber.Render(formatDistance(m.result.Distance)))
	case m.finished:
		b.WriteString(StyleWarning.Render(fmt.Sprintf("%s is unreachable", m.result.End)))
	default:
		b.WriteString(StyleDim.Render(fmt.Sprintf("%s / %s  q quit", m.elapsed, m.total)))
	}
	b.WriteString("\n")
	return b.String()
}

func (m *animateModel) nodeStyle(id string) lipgloss.Style {
	switch {
	case m.states[id][anim.StatePath]:
		return nodePathStyle
	case m.states[id][anim.StateVisited]:
		return nodeVisitedStyle
	default:
		return nodeIdleStyle
	}
}

var _ search.Marker = (*animateModel)(nil)
