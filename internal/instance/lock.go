// Package instance ensures a single daemon per display.
package instance

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

// LockPath returns the lock file for the given X display inside dir, so
// daemons on different displays do not exclude each other.
func LockPath(dir, display string) string {
	name := strings.NewReplacer(":", "", "/", "_").Replace(display)
	if name == "" {
		name = "default"
	}
	return filepath.Join(dir, "montile-"+name+".lock")
}

// Lock acquires an exclusive file lock for single-instance enforcement.
// Returns the flock handle (caller must defer Cleanup) or an error if
// another daemon already holds the lock.
func Lock(dir, display string) (*flock.Flock, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock dir: %w", err)
	}
	fl := flock.New(LockPath(dir, display))
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another montile daemon is already running on display %q", display)
	}
	return fl, nil
}

// Cleanup releases the lock and removes the lock file.
func Cleanup(fl *flock.Flock) {
	if fl == nil {
		return
	}
	_ = fl.Unlock()
	_ = os.Remove(fl.Path())
}
