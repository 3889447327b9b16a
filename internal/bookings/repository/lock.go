package repository

import (
	"context"
	"sync"
)

// RoomLocker serializes mutations of one room's booking set.
// The returned release func must be called exactly once.
type RoomLocker interface {
	Lock(ctx context.Context, roomID string) (release func(), err error)
}

type keyedEntry struct {
	sem  chan struct{}
	refs int
}

type keyedMutexLocker struct {
	mu      sync.Mutex
	entries map[string]*keyedEntry
}

// NewKeyedMutexLocker returns an in-process locker with one mutex per room id.
// Entries are dropped once no goroutine holds or waits on them.
func NewKeyedMutexLocker() RoomLocker {
	return &keyedMutexLocker{
		entries: make(map[string]*keyedEntry),
	}
}

func (l *keyedMutexLocker) Lock(ctx context.Context, roomID string) (func(), error) {
	l.mu.Lock()
	e, ok := l.entries[roomID]
	if !ok {
		e = &keyedEntry{sem: make(chan struct{}, 1)}
		l.entries[roomID] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		l.done(roomID, e)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.sem
			l.done(roomID, e)
		})
	}, nil
}

func (l *keyedMutexLocker) done(roomID string, e *keyedEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.entries, roomID)
	}
}
