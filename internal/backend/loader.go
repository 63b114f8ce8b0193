package backend

import (
	"context"
	"sync"
	"time"

	"github.com/atomicstack/list-creation/internal/source"
)

// Kind represents the type of data emitted by the backend loader.
type Kind int

const (
	KindLists Kind = iota
)

// Event conveys a completed fetch or its error. Seq echoes the sequence
// number passed to Request so consumers can drop superseded results.
type Event struct {
	Kind Kind
	Seq  int
	Data []source.Record
	Err  error
}

// Loader runs fetches on demand and publishes their results.
type Loader struct {
	fetcher  source.Fetcher
	throttle *throttle

	ctx    context.Context
	cancel context.CancelFunc

	events    chan Event
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewLoader creates a loader that spaces successive fetches by at least
// minInterval.
func NewLoader(fetcher source.Fetcher, minInterval time.Duration) *Loader {
	ctx, cancel := context.WithCancel(context.Background())
	return &Loader{
		fetcher:  fetcher,
		throttle: newThrottle(minInterval),
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 4),
	}
}

// Events returns a channel of backend events. It is closed by Wait.
func (l *Loader) Events() <-chan Event {
	return l.events
}

// Request starts a fetch tagged with seq. Requests after Stop are ignored.
func (l *Loader) Request(seq int) {
	if l.ctx.Err() != nil {
		return
	}
	l.wg.Add(1)
	go l.run(seq)
}

// Stop cancels in-flight fetches. Use Wait if a clean drain is required
// (e.g. in tests).
func (l *Loader) Stop() {
	l.cancel()
}

// Wait blocks until every fetch goroutine has exited and then closes the
// events channel. Call after Stop.
func (l *Loader) Wait() {
	l.wg.Wait()
	l.closeOnce.Do(func() { close(l.events) })
}

func (l *Loader) run(seq int) {
	defer l.wg.Done()

	if err := l.throttle.wait(l.ctx); err != nil {
		return
	}
	data, err := l.fetcher.Fetch(l.ctx)
	evt := Event{Kind: KindLists, Seq: seq, Data: data, Err: err}
	select {
	case <-l.ctx.Done():
	case l.events <- evt:
	}
}
