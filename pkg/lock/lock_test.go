package lock

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlockLockerRunsCriticalSection(t *testing.T) {
	dir := t.TempDir()
	locker := NewFlockLocker(dir)

	ran := false
	err := locker.WithLock("fleet-mc-vpn", func() error {
		ran = true
		// The lock file exists while the section runs.
		_, statErr := os.Stat(filepath.Join(dir, "fleet-mc-vpn.lock"))
		assert.NoError(t, statErr)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)
}

func TestFlockLockerPropagatesError(t *testing.T) {
	locker := NewFlockLocker(t.TempDir())

	sentinel := errors.New("boom")
	err := locker.WithLock("fleet-mc-vpn", func() error { return sentinel })
	assert.True(t, errors.Is(err, sentinel))
}

func TestFlockLockerReacquires(t *testing.T) {
	locker := NewFlockLocker(t.TempDir())

	for i := 0; i < 3; i++ {
		require.NoError(t, locker.WithLock("fleet-mc-vpn", func() error { return nil }))
	}
}

func TestFlockLockerSeparateNamesDoNotBlock(t *testing.T) {
	locker := NewFlockLocker(t.TempDir())

	err := locker.WithLock("fleet-mc-vpn", func() error {
		return locker.WithLock("fleet-mc-dns", func() error { return nil })
	})
	assert.NoError(t, err)
}

func TestNopLocker(t *testing.T) {
	ran := false
	err := NewNopLocker().WithLock("anything", func() error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)
}
