// Package persist bridges game sessions and the leaderboard to an opaque
// key-value store. It owns the on-disk JSON layout of both records.
package persist

import (
	"context"
	"errors"
)

// ErrNotFound is returned by KV.Get when the key has no value.
var ErrNotFound = errors.New("persist: key not found")

// KV is the blob store the bridge writes through.
// Implementations live in internal/storage.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Store is a KV that owns an underlying resource.
type Store interface {
	KV
	Close() error
}

// Lister is implemented by stores that can enumerate their keys.
type Lister interface {
	Keys(ctx context.Context, prefix string) ([]string, error)
}
