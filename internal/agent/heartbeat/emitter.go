package heartbeat

import (
	"context"
	"time"

	"labfleet/internal/agent/logger"
)

// Sender posts one liveness ping.
type Sender interface {
	Heartbeat(ctx context.Context) error
}

// Emitter pings the backend on a fixed interval. Heartbeats are cheap and
// idempotent, so a failed ping is just logged and retried on the next tick;
// no backoff.
type Emitter struct {
	sender   Sender
	interval time.Duration
}

func New(sender Sender, interval time.Duration) *Emitter {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &Emitter{sender: sender, interval: interval}
}

func (e *Emitter) Run(ctx context.Context) {
	// first ping immediately so the server marks us online without waiting
	// a full interval
	e.ping(ctx)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.ping(ctx)
		}
	}
}

func (e *Emitter) ping(ctx context.Context) {
	if err := e.sender.Heartbeat(ctx); err != nil {
		if ctx.Err() == nil {
			logger.Warnf("Heartbeat failed: %v", err)
		}
	}
}
