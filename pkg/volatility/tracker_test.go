package volatility

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReconcileSubmittedMarksRecord(t *testing.T) {
	cache := NewMemoryCache(time.Hour)
	tracker := NewTracker(cache)

	record, err := tracker.ReconcileSubmitted(context.Background(), NewRecord("k1", "worker"))

	assert.NoError(t, err)
	assert.True(t, record.Submitted)
	assert.False(t, record.LastSubmitted.IsZero())

	stored, found, err := cache.Get(context.Background(), "k1")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.True(t, stored.Submitted)
}

func TestReconcileSubmittedAdoptsExistingRecord(t *testing.T) {
	cache := NewMemoryCache(time.Hour)
	tracker := NewTracker(cache)

	entered := time.Now().Add(-30 * time.Minute)
	existing := &Record{Key: "k1", Username: "worker", EnteredAt: entered}
	assert.NoError(t, cache.Put(context.Background(), "k1", existing))

	record, err := tracker.ReconcileSubmitted(context.Background(), NewRecord("k1", "worker"))

	assert.NoError(t, err)
	assert.True(t, record.Submitted)
	// The original entry time survives the retry.
	assert.WithinDuration(t, entered, record.EnteredAt, time.Second)
}

func TestReconcileSubmittedIgnoresForeignRecord(t *testing.T) {
	cache := NewMemoryCache(time.Hour)
	tracker := NewTracker(cache)

	foreign := &Record{Key: "k1", Username: "someone-else", Submitted: true}
	assert.NoError(t, cache.Put(context.Background(), "k1", foreign))

	record, err := tracker.ReconcileSubmitted(context.Background(), NewRecord("k1", "worker"))

	assert.NoError(t, err)
	assert.Equal(t, "worker", record.Username)

	stored, found, err := cache.Get(context.Background(), "k1")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "worker", stored.Username)
}

func TestReconcileSubmittedDisabled(t *testing.T) {
	tests := []struct {
		name    string
		tracker *Tracker
		record  *Record
	}{
		{name: "nil cache", tracker: NewTracker(nil), record: NewRecord("k1", "worker")},
		{name: "empty key", tracker: NewTracker(NewMemoryCache(time.Hour)), record: NewRecord("", "worker")},
		{name: "nil record", tracker: NewTracker(NewMemoryCache(time.Hour)), record: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.tracker.ReconcileSubmitted(context.Background(), tt.record)
			assert.NoError(t, err)
		})
	}
}

func TestMarkSubmittedNeverRewinds(t *testing.T) {
	future := time.Now().Add(time.Hour)
	record := &Record{Key: "k1", Username: "worker", LastSubmitted: future}

	record.MarkSubmitted(time.Now())

	assert.True(t, record.Submitted)
	assert.Equal(t, future, record.LastSubmitted)
}
