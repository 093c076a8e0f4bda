package poller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"labfleet/internal/agent/api"
	"labfleet/internal/agent/command"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type report struct {
	id     uint
	status string
	result string
}

type fakeBackend struct {
	mu      sync.Mutex
	batches [][]api.PendingCommand
	errs    []error
	fetches int
	reports []report
}

func (f *fakeBackend) FetchPending(context.Context) ([]api.PendingCommand, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.fetches
	f.fetches++
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	if i < len(f.batches) {
		return f.batches[i], nil
	}
	return nil, nil
}

func (f *fakeBackend) ReportResult(_ context.Context, id uint, status, result string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reports = append(f.reports, report{id, status, result})
	return nil
}

func (f *fakeBackend) snapshot() []report {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]report(nil), f.reports...)
}

type fakeRunner struct {
	mu  sync.Mutex
	ran []string
}

func (f *fakeRunner) Execute(_ context.Context, name, _ string) command.Outcome {
	f.mu.Lock()
	f.ran = append(f.ran, name)
	f.mu.Unlock()
	return command.Outcome{Status: "done", Result: name + " ok"}
}

func TestLoopExecutesAndReportsEachCommand(t *testing.T) {
	backend := &fakeBackend{
		batches: [][]api.PendingCommand{{
			{ID: 1, Command: "screenshot"},
			{ID: 2, Command: "restart"},
		}},
	}
	runner := &fakeRunner{}
	loop := New(backend, runner, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return len(backend.snapshot()) == 2
	}, 2*time.Second, 10*time.Millisecond)
	cancel()
	<-done

	got := backend.snapshot()
	seen := map[uint]report{}
	for _, r := range got {
		seen[r.id] = r
	}
	assert.Equal(t, "done", seen[1].status)
	assert.Equal(t, "screenshot ok", seen[1].result)
	assert.Equal(t, "done", seen[2].status)
	assert.Equal(t, "restart ok", seen[2].result)
}

func TestLoopBacksOffOnFetchFailure(t *testing.T) {
	errDown := errors.New("connection refused")
	backend := &fakeBackend{errs: []error{errDown, errDown}}
	loop := New(backend, &fakeRunner{}, time.Millisecond)
	// tight schedule so the test observes several retries quickly
	loop.backoff = NewBackoff(time.Millisecond, 4*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(done)
	}()

	// failures retried, then the loop recovers and keeps polling
	require.Eventually(t, func() bool {
		backend.mu.Lock()
		defer backend.mu.Unlock()
		return backend.fetches >= 4
	}, 2*time.Second, time.Millisecond)
	cancel()
	<-done

	// recovery reset the schedule back to the base delay
	assert.Equal(t, time.Millisecond, loop.backoff.Next())
}

func TestLoopStopsOnCancel(t *testing.T) {
	backend := &fakeBackend{}
	loop := New(backend, &fakeRunner{}, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop after cancellation")
	}
}
