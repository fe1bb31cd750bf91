package identity

import (
	"context"
	"testing"

	"github.com/simplesdental/product-api/internal/core/domain"
)

func TestFromContext(t *testing.T) {
	if _, ok := FromContext(context.Background()); ok {
		t.Fatal("empty context must be anonymous")
	}

	user := &domain.User{ID: "u1", Email: "ada@example.com", Role: domain.RoleUser}
	ctx := WithPrincipal(context.Background(), user)

	got, ok := FromContext(ctx)
	if !ok || got != user {
		t.Fatalf("expected the stored principal, got %v (ok=%v)", got, ok)
	}

	// A nil principal does not count as authenticated.
	if _, ok := FromContext(WithPrincipal(context.Background(), nil)); ok {
		t.Fatal("nil principal must read as anonymous")
	}
}

func TestHasRole(t *testing.T) {
	admin := WithPrincipal(context.Background(), &domain.User{Role: domain.RoleAdmin})
	user := WithPrincipal(context.Background(), &domain.User{Role: domain.RoleUser})

	if !HasRole(admin, domain.RoleAdmin) {
		t.Fatal("admin should satisfy the admin gate")
	}
	if HasRole(user, domain.RoleAdmin) {
		t.Fatal("user must not satisfy the admin gate")
	}
	if !HasRole(user, domain.RoleAdmin, domain.RoleUser) {
		t.Fatal("user should satisfy a shared gate")
	}
	if HasRole(context.Background(), domain.RoleAdmin, domain.RoleUser) {
		t.Fatal("anonymous context must never satisfy a gate")
	}
}
