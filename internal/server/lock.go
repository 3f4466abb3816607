package server

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another daemon holds the lock.
var ErrLocked = errors.New("another mpplugd is running")

// Lock is the single-instance lock kept next to the database.
type Lock struct {
	path string
	fl   *flock.Flock
}

// LockPath returns the lock file path for a database path.
func LockPath(dbPath string) string {
	return filepath.Join(filepath.Dir(dbPath), "mpplugd.lock")
}

// AcquireLock takes the daemon lock for dbPath without blocking.
func AcquireLock(dbPath string) (*Lock, error) {
	path := LockPath(dbPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock %s)", ErrLocked, path)
	}
	return &Lock{path: path, fl: fl}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string { return l.path }

// Release unlocks. It is safe to call more than once.
func (l *Lock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}
	return l.fl.Unlock()
}
