package ports

import (
	"context"

	"github.com/simplesdental/product-api/internal/core/domain"
)

// UserContext is the principal snapshot returned by the context endpoint and
// stored in the context cache. It never carries credential material.
type UserContext struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// AuthService implements registration, login and principal introspection.
type AuthService interface {
	// Register creates a new account. An empty role defaults to user.
	Register(ctx context.Context, firstName, lastName, email, password, role string) (string, *domain.User, error)
	// Login verifies credentials and returns a signed token. All credential
	// failures surface as domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Context returns the snapshot for an authenticated principal.
	Context(ctx context.Context, email string) (*UserContext, error)
}
