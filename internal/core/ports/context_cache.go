package ports

import "context"

// ContextCache caches principal snapshots served by the context endpoint.
// The authentication gate never consults it; every request re-resolves its
// principal against the credential store.
type ContextCache interface {
	// Get returns the cached snapshot, or (nil, nil) on a miss.
	Get(ctx context.Context, email string) (*UserContext, error)
	Set(ctx context.Context, email string, uc *UserContext) error
	// Invalidate drops the entry after a user mutation.
	Invalidate(ctx context.Context, email string) error
}
