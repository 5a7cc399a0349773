//go:build unix

package lock

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankideku/deku-migrate/internal/domain"
)

func TestAcquire_SecondHolderIsRejected(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ankideku.db")

	first, err := Acquire(dbPath)
	require.NoError(t, err)
	assert.FileExists(t, Path(dbPath))

	_, err = Acquire(dbPath)
	assert.ErrorIs(t, err, domain.ErrMigrationLocked)

	require.NoError(t, first.Release())
	assert.NoFileExists(t, Path(dbPath))
}

func TestAcquire_AfterRelease(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ankideku.db")

	first, err := Acquire(dbPath)
	require.NoError(t, err)
	require.NoError(t, first.Release())

	second, err := Acquire(dbPath)
	require.NoError(t, err)
	require.NoError(t, second.Release())
}

func TestRelease_NilLock(t *testing.T) {
	var l *FileLock
	assert.NoError(t, l.Release())
}
