package port

import (
	"context"

	"github.com/rl1809/shopping-cart/internal/core/domain"
)

type ProductStorage interface {
	// Save persists the product's current count, creating it when absent
	Save(ctx context.Context, product *domain.Product) error

	// GetAll returns every known product
	GetAll(ctx context.Context) ([]*domain.Product, error)

	// GetByName returns the product with the given name, or nil if none exists
	GetByName(ctx context.Context, name string) (*domain.Product, error)
}
