package heartbeat

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeSender) Heartbeat(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.err
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestEmitterPingsImmediatelyThenOnInterval(t *testing.T) {
	s := &fakeSender{}
	e := New(s, 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		e.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return s.count() >= 3 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	<-done
}

func TestEmitterKeepsCadenceThroughFailures(t *testing.T) {
	s := &fakeSender{err: errors.New("server returned 500")}
	e := New(s, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		e.Run(ctx)
		close(done)
	}()

	// failures are swallowed: the emitter keeps pinging on the same interval
	require.Eventually(t, func() bool { return s.count() >= 3 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	<-done
}

func TestEmitterStopsOnCancel(t *testing.T) {
	s := &fakeSender{}
	e := New(s, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		e.Run(ctx)
		close(done)
	}()

	// only the immediate ping happens before cancellation
	require.Eventually(t, func() bool { return s.count() == 1 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("emitter did not stop after cancellation")
	}
	assert.Equal(t, 1, s.count())
}
