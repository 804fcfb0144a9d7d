package anim

// Play fires every step of s in offset order, calling apply for each one once
// its offset has elapsed on clock. It blocks until the last step has fired.
//
// There is no cancellation: steps scheduled for playback always fire.
func Play(clock Clock, s Schedule, apply func(Step)) {
	start := clock.Now()
	for _, st := range s.Sorted() {
		if wait := st.At - clock.Now().Sub(start); wait > 0 {
			<-clock.After(wait)
		}
		apply(st)
	}
}

// Go runs [Play] on its own goroutine and returns a channel closed after the
// last step fires.
func Go(clock Clock, s Schedule, apply func(Step)) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		Play(clock, s, apply)
	}()
	return done
}
