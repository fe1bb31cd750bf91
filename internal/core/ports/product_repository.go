package ports

import (
	"context"

	"github.com/simplesdental/product-api/internal/core/domain"
)

// ListProductsFilter carries query parameters for listing products.
type ListProductsFilter struct {
	CategoryID string // optional: scope to one category
	Page       int    // 1-based
	Limit      int
}

// ProductRepository defines persistence for products.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListProductsFilter) ([]*domain.Product, int64, error)
}

// CategoryRepository defines persistence for categories.
type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) (*domain.Category, error)
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	Update(ctx context.Context, c *domain.Category) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, page, limit int) ([]*domain.Category, int64, error)
}
