package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-2048/internal/leaderboard"
)

// Default slot names, shared with existing saves.
const (
	DefaultStateKey       = "gameState"
	DefaultLeaderboardKey = "leaderboard"
)

// Bridge reads and writes game state and the leaderboard under two
// independent keys of a KV.
type Bridge struct {
	kv             KV
	stateKey       string
	leaderboardKey string
}

// BridgeOption configures a Bridge.
type BridgeOption func(*Bridge)

// WithStateKey overrides the game state slot.
func WithStateKey(key string) BridgeOption {
	return func(b *Bridge) {
		if key != "" {
			b.stateKey = key
		}
	}
}

// WithLeaderboardKey overrides the leaderboard slot.
func WithLeaderboardKey(key string) BridgeOption {
	return func(b *Bridge) {
		if key != "" {
			b.leaderboardKey = key
		}
	}
}

// NewBridge creates a bridge over kv.
func NewBridge(kv KV, opts ...BridgeOption) *Bridge {
	b := &Bridge{
		kv:             kv,
		stateKey:       DefaultStateKey,
		leaderboardKey: DefaultLeaderboardKey,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ForState returns a bridge sharing the KV and leaderboard slot but
// writing game state under key.
func (b *Bridge) ForState(key string) *Bridge {
	clone := *b
	if key != "" {
		clone.stateKey = key
	}
	return &clone
}

// StateKey returns the game state slot name.
func (b *Bridge) StateKey() string {
	return b.stateKey
}

// LeaderboardKey returns the leaderboard slot name.
func (b *Bridge) LeaderboardKey() string {
	return b.leaderboardKey
}

// SaveState overwrites the stored game state.
func (b *Bridge) SaveState(ctx context.Context, st GameState) error {
	data, err := EncodeState(st)
	if err != nil {
		return err
	}
	if err := b.kv.Put(ctx, b.stateKey, data); err != nil {
		return fmt.Errorf("persist: cannot save state %q: %w", b.stateKey, err)
	}
	return nil
}

// LoadState reads the stored game state. It returns false when nothing is
// stored, and an error wrapping ErrMalformed when the blob is unusable.
func (b *Bridge) LoadState(ctx context.Context) (GameState, bool, error) {
	data, err := b.kv.Get(ctx, b.stateKey)
	if errors.Is(err, ErrNotFound) {
		return GameState{}, false, nil
	}
	if err != nil {
		return GameState{}, false, fmt.Errorf("persist: cannot load state %q: %w", b.stateKey, err)
	}

	st, err := DecodeState(data)
	if err != nil {
		return GameState{}, false, err
	}
	return st, true, nil
}

// ClearState removes the stored game state.
func (b *Bridge) ClearState(ctx context.Context) error {
	if err := b.kv.Delete(ctx, b.stateKey); err != nil {
		return fmt.Errorf("persist: cannot clear state %q: %w", b.stateKey, err)
	}
	return nil
}

// LoadLeaderboard implements leaderboard.Store.
func (b *Bridge) LoadLeaderboard(ctx context.Context) ([]leaderboard.Record, error) {
	data, err := b.kv.Get(ctx, b.leaderboardKey)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("persist: cannot load leaderboard: %w", err)
	}
	return DecodeLeaderboard(data)
}

// SaveLeaderboard implements leaderboard.Store.
func (b *Bridge) SaveLeaderboard(ctx context.Context, records []leaderboard.Record) error {
	data, err := EncodeLeaderboard(records)
	if err != nil {
		return err
	}
	if err := b.kv.Put(ctx, b.leaderboardKey, data); err != nil {
		return fmt.Errorf("persist: cannot save leaderboard: %w", err)
	}
	return nil
}

var _ leaderboard.Store = (*Bridge)(nil)
