// Package metadata is a key/value repository over the local SQLite database.
// The Persistent Profile Store keeps the "user" and "settings" entries here.
package metadata

import (
	"context"
	"time"
)

// Entry is one stored value with the time it was last written.
type Entry struct {
	Key       string
	Value     []byte
	UpdatedAt time.Time
}

// Repository stores opaque values by key. Get returns (nil, nil) for a
// missing key. Entries lists every stored value ordered by key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Entries(ctx context.Context) ([]Entry, error)
}
