package repository

import (
	"context"

	"github.com/sangkips/shopflow/internal/domain/entity"
)

// ProductRepository defines the interface for catalog data operations
type ProductRepository interface {
	// List returns the catalog in storage order
	List(ctx context.Context) ([]entity.Product, error)
	// GetByID returns nil when no product has the id
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	ReplaceAll(ctx context.Context, products []entity.Product) error
}
