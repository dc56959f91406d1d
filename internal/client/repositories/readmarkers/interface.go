// Package readmarkers persists the fact that a message has been read. Each
// marker carries an expiry; expired markers behave as if absent and are
// removed by Prune.
package readmarkers

import (
	"context"
	"time"
)

// Marker says message Key is read until ExpiresAt.
type Marker struct {
	Key       string
	ExpiresAt time.Time
}

type Repository interface {
	// Set upserts one marker.
	Set(ctx context.Context, m Marker) error
	// SetMany upserts markers atomically.
	SetMany(ctx context.Context, ms []Marker) error
	// Has reports whether key has a marker that is still live at now.
	Has(ctx context.Context, key string, now time.Time) (bool, error)
	Remove(ctx context.Context, key string) error
	// Keys lists the keys of markers live at now.
	Keys(ctx context.Context, now time.Time) ([]string, error)
	// Prune deletes markers expired at now and returns how many went.
	Prune(ctx context.Context, now time.Time) (int64, error)
}
