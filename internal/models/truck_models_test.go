package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadingTimeAcceptedLayouts(t *testing.T) {
	want := time.Date(2026, 8, 30, 10, 15, 0, 0, time.UTC)

	for _, ts := range []string{
		"2026-08-30T10:15:00Z",
		"2026-08-30 10:15:00",
		"2026-08-30T10:15:00",
	} {
		r := TruckReading{Timestamp: ts}
		got, ok := r.Time()
		require.True(t, ok, "timestamp %q", ts)
		assert.Equal(t, want, got.UTC())
	}
}

func TestReadingTimeUnparseable(t *testing.T) {
	for _, ts := range []string{"", "not a time", "30/08/2026"} {
		r := TruckReading{Timestamp: ts}
		_, ok := r.Time()
		assert.False(t, ok, "timestamp %q", ts)
	}
}
