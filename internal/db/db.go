// Package db defines the storage facade backing the occurrence repository.
package db

import (
	"context"
	"time"
)

// Store is the database facade combining all sub-interfaces. Consumers should
// depend on the narrow sub-interfaces they actually use.
type Store interface {
	Pinger
	SetStore
	HashStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SetStore provides set membership operations.
type SetStore interface {
	// SAdd adds members to a set and returns how many were newly added.
	SAdd(ctx context.Context, key string, members ...string) (int64, error)
	// SCard returns the cardinality of a set; zero for a missing key.
	SCard(ctx context.Context, key string) (int64, error)
}

// HashStore provides hash-based key-value operations.
type HashStore interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Exists(ctx context.Context, key string) (bool, error)
}
