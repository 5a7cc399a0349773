// Package lock keeps two migrations from writing to the same database at once.
package lock

import (
	"fmt"
	"os"

	"github.com/ankideku/deku-migrate/internal/domain"
	"github.com/ankideku/deku-migrate/internal/logging"
)

// Suffix is appended to the database path to name its lock file
const Suffix = ".migrate.lock"

// FileLock is an exclusive advisory lock held on a file next to the database
type FileLock struct {
	file *os.File
	path string
}

// Path returns the lock file path for the database at dbPath
func Path(dbPath string) string {
	return dbPath + Suffix
}

// Acquire takes the lock for the database at dbPath without waiting.
// It returns domain.ErrMigrationLocked when another process holds it.
func Acquire(dbPath string) (*FileLock, error) {
	path := Path(dbPath)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	if err := tryLockFile(file); err != nil {
		file.Close()
		if isLockHeld(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrMigrationLocked, path)
		}
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}

	// Best effort, the content is only informational
	if err := file.Truncate(0); err == nil {
		fmt.Fprintf(file, "%d\n", os.Getpid())
	}

	logging.Logger.Debug("Acquired migration lock", "path", path)
	return &FileLock{file: file, path: path}, nil
}

// Release unlocks and removes the lock file
func (l *FileLock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}

	unlockErr := unlockFile(l.file)
	closeErr := l.file.Close()
	l.file = nil

	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		logging.Logger.Warn("Failed to remove lock file", "path", l.path, "error", err)
	}

	if unlockErr != nil {
		return fmt.Errorf("failed to release lock: %w", unlockErr)
	}
	return closeErr
}
