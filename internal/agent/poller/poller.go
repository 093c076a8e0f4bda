package poller

import (
	"context"
	"sync"
	"time"

	"labfleet/internal/agent/api"
	"labfleet/internal/agent/command"
	"labfleet/internal/agent/logger"
)

// Backend is the slice of the api client the loop needs.
type Backend interface {
	FetchPending(ctx context.Context) ([]api.PendingCommand, error)
	ReportResult(ctx context.Context, id uint, status, result string) error
}

// Runner executes one command to a terminal outcome.
type Runner interface {
	Execute(ctx context.Context, name, args string) command.Outcome
}

// Loop is the agent's polling loop: fetch pending commands, dispatch each in
// its own goroutine, report outcomes. Fetch failures back off exponentially;
// nothing in steady state is fatal.
type Loop struct {
	backend  Backend
	runner   Runner
	interval time.Duration
	backoff  *Backoff

	wg sync.WaitGroup
}

func New(backend Backend, runner Runner, interval time.Duration) *Loop {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Loop{
		backend:  backend,
		runner:   runner,
		interval: interval,
		backoff:  NewBackoff(1*time.Second, 60*time.Second),
	}
}

// Run polls until ctx is cancelled, then waits briefly for in-flight command
// goroutines. Commands abandoned at shutdown stay pending server-side and are
// redelivered on the next start.
func (l *Loop) Run(ctx context.Context) {
	for {
		cmds, err := l.backend.FetchPending(ctx)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			delay := l.backoff.Next()
			logger.Errorf("Poll failed: %v (retrying in %v)", err, delay)
			if !sleep(ctx, delay) {
				break
			}
			continue
		}
		l.backoff.Reset()

		for _, cmd := range cmds {
			l.wg.Add(1)
			go func(cmd api.PendingCommand) {
				defer l.wg.Done()
				l.handle(ctx, cmd)
			}(cmd)
		}

		if !sleep(ctx, l.interval) {
			break
		}
	}
	l.drain()
}

// handle runs one command's fetch->execute->report sequence. Exactly one
// goroutine owns a command, so no two reports for the same id race.
func (l *Loop) handle(ctx context.Context, cmd api.PendingCommand) {
	logger.Infof("Executing command id=%d name=%s", cmd.ID, cmd.Command)
	outcome := l.runner.Execute(ctx, cmd.Command, cmd.Args)
	if err := l.backend.ReportResult(ctx, cmd.ID, outcome.Status, outcome.Result); err != nil {
		// The command stays pending server-side and will be redelivered;
		// at-least-once delivery absorbs the lost report.
		logger.Errorf("Report failed for command id=%d: %v", cmd.ID, err)
		return
	}
	logger.Infof("Command id=%d %s: %s", cmd.ID, outcome.Status, outcome.Result)
}

func (l *Loop) drain() {
	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		logger.Warnf("Shutdown with command handlers still in flight")
	}
}

// sleep waits for d or until ctx is cancelled; false means cancelled.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
