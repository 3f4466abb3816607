package server

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireLock(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "data", "mpplug.db")

	lock, err := AcquireLock(dbPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(dbPath), "mpplugd.lock"), lock.Path())

	_, err = AcquireLock(dbPath)
	require.ErrorIs(t, err, ErrLocked)

	require.NoError(t, lock.Release())
	require.NoError(t, lock.Release())

	again, err := AcquireLock(dbPath)
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestLock_NilRelease(t *testing.T) {
	var l *Lock
	assert.NoError(t, l.Release())
}
