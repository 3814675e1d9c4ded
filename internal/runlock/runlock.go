// Package runlock serializes mutating commands per target directory with an
// advisory file lock.
package runlock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// ErrBusy is returned when another process holds the lock.
var ErrBusy = errors.New("another mia run is already working on this directory")

// Lock is a held per-directory lock.
type Lock struct {
	flock  *flock.Flock
	path   string
	target string
}

// PathFor returns the lock file used for target inside lockDir. The name is a
// stable UUID derived from the absolute target path.
func PathFor(lockDir, target string) string {
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+filepath.Clean(target)))
	return filepath.Join(lockDir, id.String()+".lock")
}

// Acquire takes the lock for target without blocking. It fails with ErrBusy
// when another holder exists.
func Acquire(lockDir, target string) (*Lock, error) {
	if err := os.MkdirAll(lockDir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}
	path := PathFor(lockDir, target)
	fl := flock.New(path)

	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBusy, target)
	}
	return &Lock{flock: fl, path: path, target: target}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.path
}

// Release unlocks and removes the lock file.
func (l *Lock) Release() error {
	if l == nil || l.flock == nil {
		return nil
	}
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("release lock %s: %w", l.path, err)
	}
	if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove lock %s: %w", l.path, err)
	}
	return nil
}
