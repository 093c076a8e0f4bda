package services

import (
	"sync"
	"time"
)

const (
	StatusUnknown = "Unknown"
	StatusOnline  = "Online"
	StatusOffline = "Offline"
)

// LivenessTracker keeps the last heartbeat per client in process memory.
// The map starts empty at boot and is discarded at shutdown; liveness is a
// point-in-time signal, not history.
type LivenessTracker struct {
	mu        sync.RWMutex
	lastSeen  map[string]time.Time
	threshold time.Duration
	now       func() time.Time
}

func NewLivenessTracker(threshold time.Duration) *LivenessTracker {
	if threshold <= 0 {
		threshold = 60 * time.Second
	}
	return &LivenessTracker{
		lastSeen:  make(map[string]time.Time),
		threshold: threshold,
		now:       time.Now,
	}
}

// RecordHeartbeat upserts the last-seen timestamp for a client. Any id that
// heartbeats is implicitly known.
func (t *LivenessTracker) RecordHeartbeat(clientID string) {
	t.mu.Lock()
	t.lastSeen[clientID] = t.now()
	t.mu.Unlock()
}

// Status classifies a client by heartbeat age.
func (t *LivenessTracker) Status(clientID string) string {
	t.mu.RLock()
	seen, ok := t.lastSeen[clientID]
	t.mu.RUnlock()
	if !ok {
		return StatusUnknown
	}
	if t.now().Sub(seen) < t.threshold {
		return StatusOnline
	}
	return StatusOffline
}

// Seen returns a snapshot of every client that has ever heartbeat this
// process, with the age of its last heartbeat.
func (t *LivenessTracker) Seen() map[string]time.Duration {
	t.mu.RLock()
	defer t.mu.RUnlock()
	now := t.now()
	out := make(map[string]time.Duration, len(t.lastSeen))
	for id, seen := range t.lastSeen {
		out[id] = now.Sub(seen)
	}
	return out
}
