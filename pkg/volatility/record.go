package volatility

import "time"

// Record tracks whether a logical form-fill has already produced a submission.
// Keyed by the session's volatility key; overwritten on every attempt and left
// to expire via the cache's own eviction policy.
type Record struct {
	Key           string    `json:"key"`
	Username      string    `json:"username"`
	EnteredAt     time.Time `json:"entered_at"`
	Submitted     bool      `json:"submitted"`
	LastSubmitted time.Time `json:"last_submitted"`
}

func NewRecord(key, username string) *Record {
	return &Record{
		Key:       key,
		Username:  username,
		EnteredAt: time.Now(),
	}
}

func (r *Record) MatchesUser(username string) bool {
	return r.Username == username
}

// MarkSubmitted flips the submitted marker. The timestamp only moves forward,
// so a stale retry can never rewind a fresher record.
func (r *Record) MarkSubmitted(now time.Time) {
	r.Submitted = true
	if now.After(r.LastSubmitted) {
		r.LastSubmitted = now
	}
}
