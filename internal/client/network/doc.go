// Package network describes what the chat engine needs from the peer-network
// client.
//
// # Overview
//
// The network client is an external collaborator that resolves identities to
// names, serves the follow graph and transports messages. This package does
// not implement any of that. It defines:
//  1. An opaque handle type (Client) that the engine stores.
//  2. Narrow capability interfaces (NameResolver, NameHistoryResolver,
//     FriendsSource) the engine asserts before use.
//  3. Helpers (AsNameResolver, ...) that turn a failed assertion into a
//     sentinel error so callers can log why an action was skipped.
//
// # Error Handling
//
// ErrNotConfigured means no client has been set yet; ErrCapabilityMissing
// means the client does not offer the requested capability. Both are matched
// with errors.Is. The engine treats them, and any error returned by the
// capabilities themselves, as transient: it logs and leaves state unchanged.
//
// Concurrency & Contexts
//
// Implementations must be safe for concurrent use; the engine resolves names
// in parallel. All calls accept context.Context.
package network
