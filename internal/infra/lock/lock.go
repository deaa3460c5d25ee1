package lock

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"

	appErrors "phorg/internal/errors"
)

// FileName is the advisory lock created in the library root. It is a
// dotfile, so the organizer never treats it as media.
const FileName = ".phorg.lock"

type LibraryLock struct {
	path string
	lock *flock.Flock
}

// Acquire takes the lock for libraryDir without blocking.
func Acquire(libraryDir string) (*LibraryLock, error) {
	path := filepath.Join(libraryDir, FileName)
	l := flock.New(path)

	ok, err := l.TryLock()
	if err != nil {
		return nil, appErrors.Wrap(appErrors.IOFailure, "lock", path, err)
	}
	if !ok {
		return nil, appErrors.Wrap(appErrors.Locked, "lock", path,
			fmt.Errorf("another phorg process is organizing %s", libraryDir))
	}
	return &LibraryLock{path: path, lock: l}, nil
}

func (l *LibraryLock) Path() string {
	return l.path
}

// Release unlocks the library. The lock file stays in place so every
// holder locks the same inode.
func (l *LibraryLock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	l.lock = nil
	return nil
}
