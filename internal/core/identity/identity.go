// Package identity carries the authenticated principal through a request's
// context.Context. Each request owns an independent value; nothing here is
// shared or mutated across requests.
package identity

import (
	"context"

	"github.com/simplesdental/product-api/internal/core/domain"
)

type ctxKey struct{}

// WithPrincipal returns a child context carrying user as the authenticated
// principal.
func WithPrincipal(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, user)
}

// FromContext returns the authenticated principal, or ok=false for an
// anonymous request.
func FromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(ctxKey{}).(*domain.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

// HasRole reports whether the context carries a principal whose role is in
// the permitted set. An anonymous context never has a role.
func HasRole(ctx context.Context, roles ...string) bool {
	user, ok := FromContext(ctx)
	if !ok {
		return false
	}
	for _, r := range roles {
		if user.Role == r {
			return true
		}
	}
	return false
}
