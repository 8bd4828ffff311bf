package store

import (
	"context"
	"errors"
)

// ErrNotFound signals an absent key. A miss is part of the normal protocol
// (fresh session, cleared cart), not a failure.
var ErrNotFound = errors.New("snapshot not found")

// SnapshotStore is the durable key-value mirror for cart snapshots.
// Consumers define this interface, not the Redis implementation.
type SnapshotStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
