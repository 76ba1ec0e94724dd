package repositories

import (
	"context"
	"errors"

	"gatepass/internal/core/domain"
)

// ErrSnapshotMissing is returned by a store that holds no snapshot yet
var ErrSnapshotMissing = errors.New("snapshot not found")

// SnapshotStore persists the serialized snapshot as a single blob.
// Write replaces the whole blob.
type SnapshotStore interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Ping(ctx context.Context) error
}

// SnapshotRepository loads and saves the whole database snapshot
type SnapshotRepository interface {
	// Load never fails: a missing or unreadable snapshot yields the seed data
	Load(ctx context.Context) *domain.Snapshot
	Save(ctx context.Context, snapshot *domain.Snapshot) error
	// Update runs load, fn, save. Nothing is saved when fn returns an error.
	Update(ctx context.Context, fn func(snapshot *domain.Snapshot) error) error
	Ping(ctx context.Context) error
}
