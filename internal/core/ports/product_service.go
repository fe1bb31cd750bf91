package ports

import (
	"context"

	"github.com/simplesdental/product-api/internal/core/domain"
)

// ProductInput carries the writable fields of a product. Code is only
// accepted on the v2 surface.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Status      bool
	Code        int
	CategoryID  string
}

// ProductService implements catalog operations for products.
type ProductService interface {
	List(ctx context.Context, filter ListProductsFilter) ([]*domain.Product, int64, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, input ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, input ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

// CategoryInput carries the writable fields of a category.
type CategoryInput struct {
	Name        string
	Description string
}

// CategoryService implements catalog operations for categories.
type CategoryService interface {
	List(ctx context.Context, page, limit int) ([]*domain.Category, int64, error)
	Get(ctx context.Context, id string) (*domain.Category, error)
	Create(ctx context.Context, input CategoryInput) (*domain.Category, error)
	Update(ctx context.Context, id string, input CategoryInput) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}
