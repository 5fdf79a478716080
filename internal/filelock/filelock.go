// Package filelock provides advisory locks that keep concurrent tasklist
// processes from interleaving reads and writes of the same storage directory.
package filelock

import "os"

const lockFileMode = 0o600

// Lock is a held advisory lock.
type Lock struct {
	f *os.File
}

// Exclusive blocks until it holds the only lock on path, creating the lock
// file if needed.
func Exclusive(path string) (*Lock, error) {
	return acquire(path, true)
}

// Shared blocks until it holds a lock on path that excludes writers but not
// other readers.
func Shared(path string) (*Lock, error) {
	return acquire(path, false)
}

func acquire(path string, exclusive bool) (*Lock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, lockFileMode) //nolint:gosec // path derived from the data directory
	if err != nil {
		return nil, err
	}
	if err := lockFile(f, exclusive); err != nil {
		_ = f.Close()
		return nil, err
	}
	return &Lock{f: f}, nil
}

// Unlock releases the lock and closes the lock file.
func (l *Lock) Unlock() error {
	unlockErr := unlockFile(l.f)
	closeErr := l.f.Close()
	if unlockErr != nil {
		return unlockErr
	}
	return closeErr
}

// WithExclusive runs fn while holding an exclusive lock on path.
func WithExclusive(path string, fn func() error) (err error) {
	l, err := Exclusive(path)
	if err != nil {
		return err
	}
	defer func() {
		if uerr := l.Unlock(); err == nil {
			err = uerr
		}
	}()
	return fn()
}

// WithShared runs fn while holding a shared lock on path.
func WithShared(path string, fn func() error) (err error) {
	l, err := Shared(path)
	if err != nil {
		return err
	}
	defer func() {
		if uerr := l.Unlock(); err == nil {
			err = uerr
		}
	}()
	return fn()
}
