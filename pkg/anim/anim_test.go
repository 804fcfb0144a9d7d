package anim

import (
	"reflect"
	"sync"
	"testing"
	"time"
)

// elapsed records when a step actually fired, relative to playback start.
type elapsed struct {
	Step  Step
	Fired time.Duration
}

func TestPathSchedule(t *testing.T) {
	s := PathSchedule([]string{"A", "B", "D", "E"}, 500*time.Millisecond)

	want := Schedule{
		{At: 0, Node: "A", State: StatePath},
		{At: 500 * time.Millisecond, Node: "B", State: StatePath},
		{At: time.Second, Node: "D", State: StatePath},
		{At: 1500 * time.Millisecond, Node: "E", State: StatePath},
	}
	if !reflect.DeepEqual(s, want) {
		t.Errorf("PathSchedule() = %v, want %v", s, want)
	}
	if s.End() != 1500*time.Millisecond {
		t.Errorf("End() = %v", s.End())
	}
}

func TestPathScheduleEmpty(t *testing.T) {
	s := PathSchedule(nil, time.Second)
	if len(s) != 0 || s.End() != 0 {
		t.Errorf("PathSchedule(nil) = %v", s)
	}
}

func TestDelayDoesNotMutate(t *testing.T) {
	s := PathSchedule([]string{"A", "B"}, time.Second)
	d := s.Delay(3 * time.Second)

	if s[0].At != 0 {
		t.Errorf("Delay mutated receiver: %v", s)
	}
	if d[0].At != 3*time.Second || d[1].At != 4*time.Second {
		t.Errorf("Delay() = %v", d)
	}
}

func TestThen(t *testing.T) {
	visited := Immediate([]string{"A", "B"}, StateVisited)
	path := PathSchedule([]string{"A", "B"}, time.Second)

	got := visited.Then(path, 2*time.Second)
	want := []time.Duration{0, 0, 2 * time.Second, 3 * time.Second}
	for i, st := range got {
		if st.At != want[i] {
			t.Errorf("step %d At = %v, want %v", i, st.At, want[i])
		}
	}
	if got.Nodes()[3] != "B" || got[3].State != StatePath {
		t.Errorf("last step = %+v", got[3])
	}
}

func TestSortedStable(t *testing.T) {
	s := Schedule{
		{At: time.Second, Node: "late"},
		{At: 0, Node: "first"},
		{At: 0, Node: "second"},
	}
	got := s.Sorted().Nodes()
	want := []string{"first", "second", "late"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Sorted() = %v, want %v", got, want)
	}
}

func TestPlayManualClock(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewManualClock(start)
	s := PathSchedule([]string{"A", "B", "D", "E"}, 500*time.Millisecond)

	var fired []elapsed
	Play(clock, s, func(st Step) {
		fired = append(fired, elapsed{Step: st, Fired: clock.Now().Sub(start)})
	})

	if len(fired) != len(s) {
		t.Fatalf("fired %d steps, want %d", len(fired), len(s))
	}
	for i, f := range fired {
		if f.Step != s[i] {
			t.Errorf("step %d = %+v, want %+v", i, f.Step, s[i])
		}
		if f.Fired != s[i].At {
			t.Errorf("step %d fired at %v, want %v", i, f.Fired, s[i].At)
		}
	}
}

func TestPlayOrdersOutOfOrderSchedule(t *testing.T) {
	clock := NewManualClock(time.Time{})
	s := Schedule{
		{At: 2 * time.Second, Node: "C"},
		{At: time.Second, Node: "B"},
		{At: 0, Node: "A"},
	}

	var got []string
	Play(clock, s, func(st Step) { got = append(got, st.Node) })

	if !reflect.DeepEqual(got, []string{"A", "B", "C"}) {
		t.Errorf("Play order = %v", got)
	}
}

func TestGoRealClock(t *testing.T) {
	s := PathSchedule([]string{"A", "B", "C"}, time.Millisecond)

	var mu sync.Mutex
	var got []string
	done := Go(RealClock{}, s, func(st Step) {
		mu.Lock()
		got = append(got, st.Node)
		mu.Unlock()
	})

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Go() did not finish")
	}

	mu.Lock()
	defer mu.Unlock()
	if !reflect.DeepEqual(got, []string{"A", "B", "C"}) {
		t.Errorf("Go() fired %v", got)
	}
}

func TestRealClock(t *testing.T) {
	var c Clock = RealClock{}
	before := c.Now()
	select {
	case fired := <-c.After(time.Millisecond):
		if fired.Before(before) {
			t.Errorf("After fired at %v, before %v", fired, before)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("After(1ms) never fired")
	}
	if !c.Now().After(before) {
		t.Error("Now() did not advance")
	}
}
