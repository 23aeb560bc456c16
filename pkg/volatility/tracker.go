package volatility

import (
	"context"
	"time"
)

// Tracker reconciles submission attempts against their dedup record. A nil
// cache or an empty key means tracking is disabled, not an error.
type Tracker struct {
	cache Cache
}

func NewTracker(cache Cache) *Tracker {
	return &Tracker{cache: cache}
}

func (t *Tracker) Enabled() bool {
	return t != nil && t.cache != nil
}

// ReconcileSubmitted records that the form behind the record's key has been
// submitted. If a record already exists under the key for the same user it is
// adopted as the base, so a retried submission within the retention window
// lands on the same marker instead of a fresh one. The write is unconditional.
func (t *Tracker) ReconcileSubmitted(ctx context.Context, record *Record) (*Record, error) {
	if !t.Enabled() || record == nil || record.Key == "" {
		return record, nil
	}

	existing, found, err := t.cache.Get(ctx, record.Key)
	if err != nil {
		return record, err
	}
	if found && existing.MatchesUser(record.Username) {
		record = existing
	}

	record.MarkSubmitted(time.Now())
	if err := t.cache.Put(ctx, record.Key, record); err != nil {
		return record, err
	}
	return record, nil
}
