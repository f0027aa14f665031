package repository

import (
	"context"

	"github.com/sangkips/shopflow/internal/domain/entity"
	domainRepo "github.com/sangkips/shopflow/internal/domain/repository"
)

type productRepository struct {
	kv domainRepo.KeyValueStore
}

// NewProductRepository creates a new product repository
func NewProductRepository(kv domainRepo.KeyValueStore) domainRepo.ProductRepository {
	return &productRepository{kv: kv}
}

func (r *productRepository) List(ctx context.Context) ([]entity.Product, error) {
	return loadDocument(ctx, r.kv, KeyProducts, entity.SeedProducts)
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	products, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, nil
}

func (r *productRepository) ReplaceAll(ctx context.Context, products []entity.Product) error {
	return saveDocument(ctx, r.kv, KeyProducts, products)
}
