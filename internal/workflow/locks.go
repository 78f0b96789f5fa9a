package workflow

import (
	"sync"

	"github.com/google/uuid"
)

// versionLocks serializes mutating operations per document version. Entries
// are reference counted and removed once the last holder releases, so the
// map does not grow with the number of versions ever touched.
type versionLocks struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newVersionLocks() *versionLocks {
	return &versionLocks{entries: make(map[uuid.UUID]*lockEntry)}
}

// Acquire blocks until the caller holds the lock for id and returns the
// release function.
func (l *versionLocks) Acquire(id uuid.UUID) func() {
	l.mu.Lock()
	entry, ok := l.entries[id]
	if !ok {
		entry = &lockEntry{}
		l.entries[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.entries, id)
		}
		l.mu.Unlock()
	}
}
