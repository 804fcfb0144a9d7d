package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestSpinner(ctx context.Context, msg string) (*Spinner, *syncBuffer) {
	buf := &syncBuffer{}
	s := newSpinnerWithContext(ctx, msg)
	s.w = buf
	return s, buf
}

func TestSpinnerRendersMessage(t *testing.T) {
	s, buf := newTestSpinner(context.Background(), "Rendering svg...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !strings.Contains(buf.String(), "Rendering svg...") {
		t.Errorf("spinner output %q lacks message", buf.String())
	}
}

func TestSpinnerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s, _ := newTestSpinner(ctx, "Testing with context...")
	s.Start()
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner did not stop after context cancellation")
	}
	s.Stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s, _ := newTestSpinner(context.Background(), "Testing idempotent stop...")
	s.Start()
	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithError(t *testing.T) {
	s, buf := newTestSpinner(context.Background(), "Testing error...")
	s.Start()
	s.StopWithError("Render failed")

	if !strings.Contains(buf.String(), "Render failed") {
		t.Errorf("output %q lacks failure line", buf.String())
	}
}
