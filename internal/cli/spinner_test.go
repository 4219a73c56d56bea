package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for concurrent writes.
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

func TestSpinnerRendersAndStops(t *testing.T) {
	var out syncBuffer
	s := startSpinner(context.Background(), &out, "Loading fonts...")
	time.Sleep(200 * time.Millisecond)
	s.stop()

	if !strings.Contains(out.String(), "Loading fonts...") {
		t.Errorf("spinner output missing message: %q", out.String())
	}
	if !strings.HasSuffix(out.String(), "\r") {
		t.Error("spinner should clear its line on stop")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := startSpinner(context.Background(), &syncBuffer{}, "x")
	s.stop()
	s.stop()
}

func TestSpinnerContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := startSpinner(ctx, &syncBuffer{}, "x")
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner did not stop after context cancellation")
	}
	s.stop()
}
