// Package collection keeps a client-side copy of a remote REST collection in
// sync with the server.
//
// The pieces compose as: a Remote issues requests, a Store holds the
// normalized collection plus sync state, a Reconciler sequences each
// mutation against server confirmation, and Project derives the
// filtered/sorted view that callers render.
package collection

import "context"

// Remote issues CRUD requests against a single REST resource.
//
// Every call is at-most-once: implementations must not retry on their own.
type Remote[K comparable, T any] interface {
	// FetchAll reads the whole collection.
	FetchAll(ctx context.Context) ([]T, error)
	// Create writes item without an identifier; the server assigns one and
	// may normalize other fields.
	Create(ctx context.Context, item T) (T, error)
	// Update fully replaces the entity at id.
	Update(ctx context.Context, id K, item T) (T, error)
	// Delete removes the entity at id and returns the confirmed id.
	Delete(ctx context.Context, id K) (K, error)
}

// KeyFunc extracts the identifier of an entity.
type KeyFunc[K comparable, T any] func(T) K
