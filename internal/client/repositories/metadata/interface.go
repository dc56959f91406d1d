// Package metadata stores small key/value facts about the local client:
// the local identity and persisted options.
package metadata

import (
	"context"
)

// Repository is a key/value store. Get on a missing key returns (nil, nil).
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	// ListPrefix returns the entries whose key starts with prefix, with the
	// prefix stripped from the returned keys.
	ListPrefix(ctx context.Context, prefix string) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
