package network

import "context"

// Client is an opaque handle to the peer-network client. The engine never
// calls it directly; it discovers what the handle can do by asserting the
// capability interfaces below and degrades (logs and skips) when one is
// missing.
type Client interface{}

// NameResolver looks up the display name currently chosen for an identity.
type NameResolver interface {
	Name(ctx context.Context, id string) (string, error)
}

// NameHistoryResolver returns every name that any author has assigned to id,
// keyed by the assigning author.
type NameHistoryResolver interface {
	Names(ctx context.Context, id string) (map[string]string, error)
}

// FriendsSource fetches the relation map of source: true = following,
// false = blocking, nil or absent = neither.
type FriendsSource interface {
	Friends(ctx context.Context, source string) (map[string]*bool, error)
}

// AsNameResolver returns c as a NameResolver or a sentinel error saying why
// it cannot be used.
func AsNameResolver(c Client) (NameResolver, error) {
	if c == nil {
		return nil, ErrNotConfigured
	}
	r, ok := c.(NameResolver)
	if !ok {
		return nil, ErrCapabilityMissing
	}
	return r, nil
}

// AsNameHistoryResolver is AsNameResolver for NameHistoryResolver.
func AsNameHistoryResolver(c Client) (NameHistoryResolver, error) {
	if c == nil {
		return nil, ErrNotConfigured
	}
	r, ok := c.(NameHistoryResolver)
	if !ok {
		return nil, ErrCapabilityMissing
	}
	return r, nil
}

// AsFriendsSource is AsNameResolver for FriendsSource.
func AsFriendsSource(c Client) (FriendsSource, error) {
	if c == nil {
		return nil, ErrNotConfigured
	}
	r, ok := c.(FriendsSource)
	if !ok {
		return nil, ErrCapabilityMissing
	}
	return r, nil
}
