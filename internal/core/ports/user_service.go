package ports

import (
	"context"

	"github.com/simplesdental/product-api/internal/core/domain"
)

// CreateUserInput carries the fields for creating a user through the
// management endpoints.
type CreateUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      string
}

// UpdateUserInput carries the mutable user fields. Password is not updated
// through this path.
type UpdateUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Role      string
}

// UserService implements user management. Delete and role demotion are
// protected by the last-administrator guard: the operation fails with
// domain.ErrLastAdmin instead of leaving the system without an admin.
type UserService interface {
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
