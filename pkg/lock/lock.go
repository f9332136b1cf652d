// Package lock provides the advisory lock serializing mutating operations on
// one (cluster-type, application) pair. Two promotions racing on the same
// application would otherwise interleave their copy/delete sequences.
package lock

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	errUtils "github.com/fleetops/fleetctl/errors"
	log "github.com/fleetops/fleetctl/pkg/logger"
)

const (
	// maxLockRetries is the number of times to retry acquiring a lock.
	maxLockRetries = 50
	// lockRetryDelay is the delay between lock retry attempts.
	lockRetryDelay = 10 * time.Millisecond
)

// Locker serializes a critical section under a named advisory lock.
type Locker interface {
	WithLock(name string, fn func() error) error
}

// flockLocker implements Locker with flock-backed lock files in a directory.
type flockLocker struct {
	dir string
}

// NewFlockLocker creates a Locker placing its lock files in dir.
func NewFlockLocker(dir string) Locker {
	return &flockLocker{dir: dir}
}

// WithLock executes fn while holding an exclusive lock on name.
func (l *flockLocker) WithLock(name string, fn func() error) error {
	lockPath := filepath.Join(l.dir, name+".lock")
	fileLock := flock.New(lockPath)

	var locked bool
	var err error
	for i := 0; i < maxLockRetries; i++ {
		locked, err = fileLock.TryLock()
		if err != nil {
			return fmt.Errorf("%w: %s", errUtils.ErrLockTimeout, err)
		}
		if locked {
			break
		}
		time.Sleep(lockRetryDelay)
	}
	if !locked {
		return fmt.Errorf("%w: `%s` is locked by another process", errUtils.ErrLockTimeout, lockPath)
	}

	defer func() {
		if err := fileLock.Unlock(); err != nil {
			log.Warn("Failed to release lock", "path", lockPath, "error", err)
		}
	}()

	return fn()
}

// nopLocker is a Locker without any locking, for in-memory document trees.
type nopLocker struct{}

// NewNopLocker returns a Locker that runs fn without locking.
func NewNopLocker() Locker {
	return nopLocker{}
}

func (nopLocker) WithLock(_ string, fn func() error) error {
	return fn()
}
