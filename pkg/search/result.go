package search

import (
	"encoding/json"
	"math"
	"slices"

	"github.com/matzehuels/pathviz/pkg/anim"
)

// Result is the outcome of one shortest-path query.
type Result struct {
	Start string
	End   string

	// Path runs from Start to End when a path exists. Otherwise it holds a
	// single element that is not Start; see Found.
	Path []string

	// Distance is the final distance of End, or +Inf if End was not reached.
	Distance float64

	// Distances holds the tentative distance of every node when the search
	// stopped. Nodes finalized before End carry their final value.
	Distances map[string]float64

	// Visited lists nodes in the order they were finalized.
	Visited []string

	// Animation highlights each path node in path order, one interval apart.
	Animation anim.Schedule
}

// Found reports whether Path actually starts at Start.
func (r *Result) Found() bool {
	return len(r.Path) > 0 && r.Path[0] == r.Start
}

// Hops returns the number of edges on the path, or -1 if no path was found.
func (r *Result) Hops() int {
	if !r.Found() {
		return -1
	}
	return len(r.Path) - 1
}

// Equal reports whether two results describe the same query outcome,
// including visit order.
func (r *Result) Equal(o *Result) bool {
	if r == nil || o == nil {
		return r == o
	}
	return r.Start == o.Start && r.End == o.End &&
		slices.Equal(r.Path, o.Path) &&
		slices.Equal(r.Visited, o.Visited) &&
		sameDistance(r.Distance, o.Distance)
}

func sameDistance(a, b float64) bool {
	return a == b || (math.IsInf(a, 1) && math.IsInf(b, 1))
}

// resultJSON is the wire form of Result. JSON has no infinity, so unreached
// distances are encoded as null.
type resultJSON struct {
	Start     string              `json:"start"`
	End       string              `json:"end"`
	Found     bool                `json:"found"`
	Path      []string            `json:"path"`
	Distance  *float64            `json:"distance"`
	Distances map[string]*float64 `json:"distances"`
	Visited   []string            `json:"visited"`
	Animation anim.Schedule       `json:"animation"`
}

// MarshalJSON encodes r with unreached distances as null.
func (r *Result) MarshalJSON() ([]byte, error) {
	out := resultJSON{
		Start:     r.Start,
		End:       r.End,
		Found:     r.Found(),
		Path:      r.Path,
		Distance:  finite(r.Distance),
		Distances: make(map[string]*float64, len(r.Distances)),
		Visited:   r.Visited,
		Animation: r.Animation,
	}
	for id, d := range r.Distances {
		out.Distances[id] = finite(d)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the form written by MarshalJSON, restoring null
// distances as +Inf.
func (r *Result) UnmarshalJSON(data []byte) error {
	var in resultJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*r = Result{
		Start:     in.Start,
		End:       in.End,
		Path:      in.Path,
		Distance:  infinite(in.Distance),
		Distances: make(map[string]float64, len(in.Distances)),
		Visited:   in.Visited,
		Animation: in.Animation,
	}
	for id, d := range in.Distances {
		r.Distances[id] = infinite(d)
	}
	return nil
}

func finite(d float64) *float64 {
	if math.IsInf(d, 0) || math.IsNaN(d) {
		return nil
	}
	return &d
}

func infinite(d *float64) float64 {
	if d == nil {
		return math.Inf(1)
	}
	return *d
}
