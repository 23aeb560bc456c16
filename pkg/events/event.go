package events

import (
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "FORM_SUBMITTED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent carries the common fields; concrete events are constructed through
// the helpers below.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewFormSubmitted is emitted after a submission pipeline run completed and
// the session was destroyed. Downstream consumers use it for audit trails.
func NewFormSubmitted(sessionId uuid.UUID, username, domain, appId, title string) Event {
	return BaseEvent{
		Type: "FORM_SUBMITTED",
		Data: map[string]interface{}{
			"session_id": sessionId.String(),
			"username":   username,
			"domain":     domain,
			"app_id":     appId,
			"title":      title,
		},
		OccurredAt: time.Now(),
	}
}

// NewSessionsPurged is emitted by the scheduled purge job.
func NewSessionsPurged(cutoff time.Time, removed int64) Event {
	return BaseEvent{
		Type: "SESSIONS_PURGED",
		Data: map[string]interface{}{
			"cutoff":  cutoff.Format(time.RFC3339),
			"removed": removed,
		},
		OccurredAt: time.Now(),
	}
}
