package poller

import "time"

// Backoff paces fetch retries when the backend is unreachable: double per
// consecutive failure, hold at the cap, snap back to the base on success.
type Backoff struct {
	base time.Duration
	max  time.Duration
	cur  time.Duration
}

func NewBackoff(base, max time.Duration) *Backoff {
	if base <= 0 {
		base = time.Second
	}
	if max < base {
		max = base
	}
	return &Backoff{base: base, max: max, cur: base}
}

// Next returns the delay to wait before the next attempt and advances the
// schedule.
func (b *Backoff) Next() time.Duration {
	d := b.cur
	b.cur *= 2
	if b.cur > b.max {
		b.cur = b.max
	}
	return d
}

func (b *Backoff) Reset() {
	b.cur = b.base
}
