package lock

import (
	"context"
	"sync"
)

// LocalLocker serializes lock holders within one process. Suitable for
// single-node deployments and tests; multi-node deployments need RedisLocker.
type LocalLocker struct {
	mu     sync.Mutex
	byName map[string]*sync.Mutex
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{
		byName: make(map[string]*sync.Mutex),
	}
}

func (l *LocalLocker) Acquire(ctx context.Context, name string) (Handle, error) {
	l.mu.Lock()
	m, ok := l.byName[name]
	if !ok {
		m = &sync.Mutex{}
		l.byName[name] = m
	}
	l.mu.Unlock()

	// Named mutexes are never evicted; the name space is bounded by the active
	// user population of a single node.
	acquired := make(chan struct{})
	go func() {
		m.Lock()
		close(acquired)
	}()

	select {
	case <-acquired:
		return &localHandle{m: m}, nil
	case <-ctx.Done():
		// The goroutine will eventually take the mutex; release it again so the
		// abandoned acquisition does not wedge the name.
		go func() {
			<-acquired
			m.Unlock()
		}()
		return nil, ctx.Err()
	}
}

type localHandle struct {
	m *sync.Mutex
}

func (h *localHandle) Release(ctx context.Context) error {
	h.m.Unlock()
	return nil
}
