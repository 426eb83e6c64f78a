package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Watcher drives one store's lifecycle: a rotation tick that advances the
// cursors and a refresh tick that pulls fresh data. Both timers feed a
// single goroutine, so a rotation can never run concurrently with a refresh
// and Stop leaves the store untouched afterwards.
type Watcher struct {
	store        *Store
	refresh      func(ctx context.Context) error
	rotateEvery  time.Duration
	refreshEvery time.Duration
	log          logrus.FieldLogger

	started  bool
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewWatcher wires a watcher to a store. refresh fetches new data and feeds
// it into the store; a returned error means the previous dataset stays live.
func NewWatcher(store *Store, refresh func(ctx context.Context) error, rotateEvery, refreshEvery time.Duration, log logrus.FieldLogger) *Watcher {
	return &Watcher{
		store:        store,
		refresh:      refresh,
		rotateEvery:  rotateEvery,
		refreshEvery: refreshEvery,
		log:          log,
		stop:         make(chan struct{}),
		done:         make(chan struct{}),
	}
}

// Start performs one synchronous refresh so callers begin with data, then
// launches the tick loop.
func (w *Watcher) Start(ctx context.Context) {
	w.started = true
	w.doRefresh(ctx)
	go w.run(ctx)
}

// Stop halts the tick loop and returns only after it has fully exited, so
// no rotation or refresh happens after Stop returns. Calling Stop on a
// watcher that was never started is a no-op.
func (w *Watcher) Stop() {
	if !w.started {
		return
	}
	w.stopOnce.Do(func() { close(w.stop) })
	<-w.done
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)

	rotate := time.NewTicker(w.rotateEvery)
	defer rotate.Stop()
	refresh := time.NewTicker(w.refreshEvery)
	defer refresh.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		case <-rotate.C:
			w.store.Advance()
		case <-refresh.C:
			w.doRefresh(ctx)
		}
	}
}

func (w *Watcher) doRefresh(ctx context.Context) {
	if err := w.refresh(ctx); err != nil {
		w.log.WithError(err).Warn("telemetry refresh failed, keeping previous data")
		return
	}
	w.log.WithFields(logrus.Fields{
		"trucks": len(w.store.TruckIDs()),
	}).Debug("telemetry refreshed")
}
