package ports

import (
	"context"

	"github.com/simplesdental/product-api/internal/core/domain"
)

// ListUsersFilter carries pagination for listing users.
type ListUsersFilter struct {
	Page  int // 1-based
	Limit int // max rows per page (capped by the service)
}

// UserRepository defines persistence for principals. It is the credential
// store consulted by authentication and by the admin-invariant guard.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// CountByRole returns the number of users holding the given role.
	CountByRole(ctx context.Context, role string) (int64, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	// List returns a page of users ordered by email and the total count.
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
}
