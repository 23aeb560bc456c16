package lock

import "context"

// Handle releases a held lock. Release must be called on every exit path.
type Handle interface {
	Release(ctx context.Context) error
}

// Locker hands out named exclusive locks. Submissions for the same user are
// serialized under one lock for the full duration of the pipeline call.
type Locker interface {
	Acquire(ctx context.Context, name string) (Handle, error)
}
