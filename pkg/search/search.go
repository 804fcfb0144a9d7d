package search

import (
	"context"
	"math"
	"slices"
	"time"

	"github.com/matzehuels/pathviz/pkg/anim"
	"github.com/matzehuels/pathviz/pkg/errors"
	"github.com/matzehuels/pathviz/pkg/graph"
	"github.com/matzehuels/pathviz/pkg/observability"
)

// Marker receives per-node visual state updates.
// Implementations must treat states as additive: marking a node "path" does
// not clear "visited".
type Marker interface {
	Mark(id, state string)
}

// MarkerFunc adapts a function to the Marker interface.
type MarkerFunc func(id, state string)

// Mark calls f(id, state).
func (f MarkerFunc) Mark(id, state string) { f(id, state) }

// Relaxation describes one successful edge relaxation: Node's tentative
// distance dropped from Old to New through Via.
type Relaxation struct {
	Node string
	Via  string
	Old  float64
	New  float64
}

// Option configures an [Engine].
type Option func(*Engine)

// WithMarker sets the marker notified of each finalized node.
func WithMarker(m Marker) Option {
	return func(e *Engine) { e.marker = m }
}

// WithInterval sets the spacing of path highlight steps in [Result.Animation].
func WithInterval(d time.Duration) Option {
	return func(e *Engine) { e.interval = d }
}

// WithTrace registers fn to be called on every successful relaxation.
func WithTrace(fn func(Relaxation)) Option {
	return func(e *Engine) { e.trace = fn }
}

// Engine runs shortest-path queries against one immutable graph.
// An Engine holds no per-query state and may be reused; it is safe for
// concurrent use if its Marker and trace function are.
type Engine struct {
	graph    *graph.Graph
	marker   Marker
	interval time.Duration
	trace    func(Relaxation)
}

// New creates an engine for g.
func New(g *graph.Graph, opts ...Option) *Engine {
	e := &Engine{
		graph:    g,
		marker:   MarkerFunc(func(string, string) {}),
		interval: anim.DefaultInterval,
		trace:    func(Relaxation) {},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Graph returns the graph the engine searches.
func (e *Engine) Graph() *graph.Graph { return e.graph }

// ShortestPath computes the minimum-weight path from start to end.
//
// Both ids must exist in the graph; otherwise an ErrCodeUnknownNode error is
// returned and no marker calls are made. The search itself never blocks; ctx
// is only forwarded to observability hooks.
func (e *Engine) ShortestPath(ctx context.Context, start, end string) (*Result, error) {
	hooks := observability.Search()
	hooks.OnSearchStart(ctx, start, end)
	began := time.Now()

	res, err := e.run(ctx, start, end)

	var visited int
	var found bool
	if res != nil {
		visited, found = len(res.Visited), res.Found()
	}
	hooks.OnSearchComplete(ctx, start, end, visited, found, time.Since(began), err)
	return res, err
}

func (e *Engine) run(ctx context.Context, start, end string) (*Result, error) {
	for _, id := range []string{start, end} {
		if !e.graph.Has(id) {
			return nil, errors.New(errors.ErrCodeUnknownNode, "unknown node %q", id)
		}
	}

	ids := e.graph.IDs()
	s := newState(ids, start)
	hooks := observability.Search()

	for len(s.frontier) > 0 {
		cur := s.extractMin()
		s.visit(cur)
		e.marker.Mark(cur, anim.StateVisited)
		hooks.OnNodeVisited(ctx, cur, s.dist[cur])

		if cur == end {
			break
		}

		for _, nb := range e.graph.Neighbors(cur) {
			if s.visited[nb.ID] {
				continue
			}
			if r, ok := s.relax(cur, nb); ok {
				e.trace(r)
			}
		}
	}

	path := s.reconstruct(end)
	return &Result{
		Start:     start,
		End:       end,
		Path:      path,
		Distance:  s.dist[end],
		Distances: s.snapshot(),
		Visited:   s.order,
		Animation: anim.PathSchedule(path, e.interval),
	}, nil
}

// state is the per-query working set. It is discarded once the result is built.
type state struct {
	dist     map[string]float64
	prev     map[string]string
	visited  map[string]bool
	frontier []string // unfinalized ids, declaration order
	order    []string // finalization order
}

func newState(ids []string, start string) *state {
	s := &state{
		dist:     make(map[string]float64, len(ids)),
		prev:     make(map[string]string, len(ids)),
		visited:  make(map[string]bool, len(ids)),
		frontier: slices.Clone(ids),
		order:    make([]string, 0, len(ids)),
	}
	for _, id := range ids {
		s.dist[id] = math.Inf(1)
	}
	s.dist[start] = 0
	return s
}

// extractMin removes and returns the first frontier id with the minimum
// tentative distance. Later ids only win on a strictly smaller distance.
func (s *state) extractMin() string {
	best := 0
	for i := 1; i < len(s.frontier); i++ {
		if s.dist[s.frontier[i]] < s.dist[s.frontier[best]] {
			best = i
		}
	}
	id := s.frontier[best]
	s.frontier = slices.Delete(s.frontier, best, best+1)
	return id
}

func (s *state) visit(id string) {
	s.visited[id] = true
	s.order = append(s.order, id)
}

func (s *state) relax(from string, nb graph.Neighbor) (Relaxation, bool) {
	candidate := s.dist[from] + nb.Weight
	old := s.dist[nb.ID]
	if candidate >= old {
		return Relaxation{}, false
	}
	s.dist[nb.ID] = candidate
	s.prev[nb.ID] = from
	return Relaxation{Node: nb.ID, Via: from, Old: old, New: candidate}, true
}

// reconstruct walks predecessor links back from end. Without a link for end
// the result is just [end].
func (s *state) reconstruct(end string) []string {
	var path []string
	for step, ok := end, true; ok; step, ok = s.prev[step] {
		path = append(path, step)
	}
	slices.Reverse(path)
	return path
}

func (s *state) snapshot() map[string]float64 {
	out := make(map[string]float64, len(s.dist))
	for id, d := range s.dist {
		out[id] = d
	}
	return out
}
