// Package repository defines the session batch store interface and errors.
package repository

import (
	"context"

	"github.com/okian/expertlens/internal/domain/model"
)

// Store keeps the profile batch produced by each upload session.
// Batches are stored by reference; callers must treat a fetched batch as
// immutable and replace it with Put rather than mutate it.
type Store interface {
	// Put stores batch under key, replacing any previous batch.
	Put(ctx context.Context, key string, batch []model.Profile) error

	// Get returns the batch stored under key.
	// Returns ErrNotFound if the key is unknown or has expired.
	Get(ctx context.Context, key string) ([]model.Profile, error)

	// Len returns the number of live sessions.
	Len(ctx context.Context) int

	// Close stops background work.
	Close() error
}
