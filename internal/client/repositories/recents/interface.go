// Package recents persists the recipient groups that have been messaged
// before, keyed by recipients.Group.Key.
package recents

import "context"

type Repository interface {
	// Add records key; adding an existing key keeps its original position.
	Add(ctx context.Context, key string) error
	Remove(ctx context.Context, key string) error
	// Keys returns every key in the order it was first added.
	Keys(ctx context.Context) ([]string, error)
}
