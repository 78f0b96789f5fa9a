package workflow

import (
	"sync"
	"testing"

	"github.com/google/uuid"
)

func TestVersionLocksSerializeSameVersion(t *testing.T) {
	locks := newVersionLocks()
	id := uuid.New()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		active  int
		maximum int
	)

	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release := locks.Acquire(id)
			defer release()

			mu.Lock()
			active++
			if active > maximum {
				maximum = active
			}
			mu.Unlock()

			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()

	if maximum != 1 {
		t.Errorf("max concurrent holders = %d, want 1", maximum)
	}
}

func TestVersionLocksIndependentVersions(t *testing.T) {
	locks := newVersionLocks()

	releaseA := locks.Acquire(uuid.New())
	defer releaseA()

	// A held lock on one version must not block another version.
	done := make(chan struct{})
	go func() {
		release := locks.Acquire(uuid.New())
		release()
		close(done)
	}()
	<-done
}

func TestVersionLocksCleanup(t *testing.T) {
	locks := newVersionLocks()
	id := uuid.New()

	release := locks.Acquire(id)
	release()

	locks.mu.Lock()
	defer locks.mu.Unlock()
	if len(locks.entries) != 0 {
		t.Errorf("entries remaining after release = %d, want 0", len(locks.entries))
	}
}
