package backend

import (
	"context"
	"sync"
	"time"
)

// throttle spaces successive fetches by at least interval. A retry hammered
// from the failure screen therefore cannot flood the endpoint.
type throttle struct {
	interval time.Duration

	mu   sync.Mutex
	next time.Time
}

func newThrottle(interval time.Duration) *throttle {
	if interval < 0 {
		interval = 0
	}
	return &throttle{interval: interval}
}

// reserve claims the next free slot and returns how long until it opens.
func (t *throttle) reserve() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := time.Now()
	slot := t.next
	if slot.Before(now) {
		slot = now
	}
	t.next = slot.Add(t.interval)
	return slot.Sub(now)
}

// wait blocks until the caller's slot opens or ctx is done. A cancelled
// caller still consumes its slot.
func (t *throttle) wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if t == nil || t.interval == 0 {
		return nil
	}
	delay := t.reserve()
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
