package telemetry

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"truckpro/internal/models"
)

func testLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestWatcherStartRefreshesImmediately(t *testing.T) {
	store := NewStore()
	refresh := func(ctx context.Context) error {
		store.ReplaceAll(map[string][]models.TruckReading{"TRK-001": readingsFor("TRK-001", 2)})
		return nil
	}

	w := NewWatcher(store, refresh, time.Hour, time.Hour, testLogger())
	w.Start(context.Background())
	defer w.Stop()

	assert.True(t, store.Contains("TRK-001"), "initial refresh runs before Start returns")
}

func TestWatcherRotationAdvancesCursors(t *testing.T) {
	store := NewStore()
	store.ReplaceAll(map[string][]models.TruckReading{"TRK-001": readingsFor("TRK-001", 5)})

	w := NewWatcher(store, func(ctx context.Context) error { return nil }, 10*time.Millisecond, time.Hour, testLogger())
	w.Start(context.Background())

	require.Eventually(t, func() bool {
		entry, ok := store.Current("TRK-001")
		return ok && entry.Position > 0
	}, time.Second, 5*time.Millisecond)
	w.Stop()
}

func TestWatcherFailedRefreshKeepsPreviousData(t *testing.T) {
	store := NewStore()
	store.ReplaceAll(map[string][]models.TruckReading{"TRK-001": readingsFor("TRK-001", 3)})
	before := store.Generation()

	var calls atomic.Int32
	refreshErr := func(ctx context.Context) error {
		calls.Add(1)
		return errors.New("feed down")
	}

	w := NewWatcher(store, refreshErr, time.Hour, 10*time.Millisecond, testLogger())
	w.Start(context.Background())

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	w.Stop()

	assert.True(t, store.Contains("TRK-001"))
	assert.Equal(t, before, store.Generation(), "failed refreshes never touch the store")
}

func TestWatcherStopIsDeterministic(t *testing.T) {
	store := NewStore()
	store.ReplaceAll(map[string][]models.TruckReading{"TRK-001": readingsFor("TRK-001", 10)})

	w := NewWatcher(store, func(ctx context.Context) error { return nil }, time.Millisecond, time.Hour, testLogger())
	w.Start(context.Background())
	time.Sleep(20 * time.Millisecond)
	w.Stop()

	entry, _ := store.Current("TRK-001")
	posAfterStop := entry.Position

	time.Sleep(30 * time.Millisecond)
	entry, _ = store.Current("TRK-001")
	assert.Equal(t, posAfterStop, entry.Position, "no tick may land after Stop returns")
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	w := NewWatcher(NewStore(), func(ctx context.Context) error { return nil }, time.Hour, time.Hour, testLogger())
	w.Start(context.Background())
	w.Stop()
	assert.NotPanics(t, func() { w.Stop() })
}

func TestWatcherStopBeforeStartReturns(t *testing.T) {
	w := NewWatcher(NewStore(), func(ctx context.Context) error { return nil }, time.Hour, time.Hour, testLogger())

	returned := make(chan struct{})
	go func() {
		w.Stop()
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Stop on a never-started watcher must not block")
	}
}
