// Package anim models timed visual updates as plain data.
//
// The search engine never touches a timer. It returns a [Schedule], a list of
// (offset, node, state) steps, and the harness decides how to play it: the
// terminal UI drives it with a real [Clock], the SVG renderer turns offsets
// into CSS animation delays, and tests use a [ManualClock] so nothing sleeps.
//
// Steps are not cancellable. Once [Play] starts, every step fires in order.
package anim

import (
	"slices"
	"time"
)

// Visual states a node can carry. States accumulate: a node on the
// shortest path is also visited.
const (
	StateVisited = "visited"
	StatePath    = "path"
)

// DefaultInterval is the spacing between consecutive path highlights.
const DefaultInterval = 500 * time.Millisecond

// DefaultStartupDelay is how long the static graph is shown before the search runs.
const DefaultStartupDelay = 3 * time.Second

// Step is a single deferred visual update.
type Step struct {
	At    time.Duration `json:"at"`    // offset from the start of playback
	Node  string        `json:"node"`  // node id
	State string        `json:"state"` // StateVisited or StatePath
}

// Schedule is an ordered list of steps.
type Schedule []Step

// PathSchedule spaces path highlights interval apart, in path order:
// step i fires at i*interval.
func PathSchedule(path []string, interval time.Duration) Schedule {
	s := make(Schedule, len(path))
	for i, id := range path {
		s[i] = Step{At: time.Duration(i) * interval, Node: id, State: StatePath}
	}
	return s
}

// Immediate returns one step per id at offset zero, all with the same state.
func Immediate(ids []string, state string) Schedule {
	s := make(Schedule, len(ids))
	for i, id := range ids {
		s[i] = Step{Node: id, State: state}
	}
	return s
}

// Delay returns a copy of s with every offset shifted by d.
func (s Schedule) Delay(d time.Duration) Schedule {
	out := slices.Clone(s)
	for i := range out {
		out[i].At += d
	}
	return out
}

// Then appends next after s, shifting next so it starts at s's last offset plus gap.
func (s Schedule) Then(next Schedule, gap time.Duration) Schedule {
	return append(slices.Clone(s), next.Delay(s.End()+gap)...)
}

// End returns the offset of the last step, or zero for an empty schedule.
func (s Schedule) End() time.Duration {
	var end time.Duration
	for _, st := range s {
		end = max(end, st.At)
	}
	return end
}

// Sorted returns a copy ordered by offset. Steps with equal offsets keep
// their relative order.
func (s Schedule) Sorted() Schedule {
	out := slices.Clone(s)
	slices.SortStableFunc(out, func(a, b Step) int {
		switch {
		case a.At < b.At:
			return -1
		case a.At > b.At:
			return 1
		}
		return 0
	})
	return out
}

// Nodes returns the node ids of s in step order.
func (s Schedule) Nodes() []string {
	ids := make([]string, len(s))
	for i, st := range s {
		ids[i] = st.Node
	}
	return ids
}
