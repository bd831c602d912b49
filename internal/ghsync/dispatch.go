package ghsync

import (
	"context"
	"sync"
	"time"
)

// pushTimeout bounds one asynchronous push across all of a card's links.
const pushTimeout = time.Minute

// ErrorSink receives failures from asynchronous pushes. A completion toggle
// must never block or roll back on sync failure, so errors are reported here
// instead of to the caller.
type ErrorSink interface {
	SyncFailed(cardID string, errs []string)
}

// Dispatcher runs outbound pushes without blocking the mutation that
// triggered them.
type Dispatcher struct {
	sync *Synchronizer
	sink ErrorSink
	wg   sync.WaitGroup
}

// NewDispatcher creates a Dispatcher reporting failures to sink.
func NewDispatcher(s *Synchronizer, sink ErrorSink) *Dispatcher {
	return &Dispatcher{sync: s, sink: sink}
}

// Enqueue starts a push for one card in the background and returns
// immediately. Request-level and per-link failures both reach the sink.
func (d *Dispatcher) Enqueue(cardID string, completed bool) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
		defer cancel()

		rep, err := d.sync.Push(ctx, cardID, completed)
		switch {
		case err != nil:
			d.sink.SyncFailed(cardID, []string{err.Error()})
		case len(rep.Errors) > 0:
			d.sink.SyncFailed(cardID, rep.Errors)
		}
	}()
}

// Wait blocks until all enqueued pushes have finished. Used on shutdown and
// in tests.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
