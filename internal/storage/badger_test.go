package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBadgerConformance(t *testing.T) {
	runConformance(t, func(t *testing.T) kvStore {
		s, err := OpenBadger(InMemoryBadgerConfig())
		require.NoError(t, err)
		t.Cleanup(func() { s.Close() })
		return s
	})
}

func TestBadgerRequiresPath(t *testing.T) {
	_, err := OpenBadger(BadgerConfig{})
	assert.Error(t, err)
}

func TestBadgerPersistence(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "badger")

	cfg := DefaultBadgerConfig()
	cfg.Path = dir
	cfg.GCInterval = 10 * time.Millisecond

	s, err := OpenBadger(cfg)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "gameState", []byte("saved")))
	time.Sleep(30 * time.Millisecond)
	require.NoError(t, s.Close())

	s, err = OpenBadger(cfg)
	require.NoError(t, err)
	defer s.Close()

	v, err := s.Get(ctx, "gameState")
	require.NoError(t, err)
	assert.Equal(t, "saved", string(v))
}

func TestBadgerRejectsBadGCRatio(t *testing.T) {
	cfg := DefaultBadgerConfig()
	cfg.Path = t.TempDir()
	cfg.GCDiscardRatio = 1.5

	_, err := OpenBadger(cfg)
	assert.Error(t, err)
}

func TestBadgerCancelledContext(t *testing.T) {
	s, err := OpenBadger(InMemoryBadgerConfig())
	require.NoError(t, err)
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Put(ctx, "k", []byte("v")), context.Canceled)
}
