package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sangkips/shopflow/internal/domain/entity"
	domainRepo "github.com/sangkips/shopflow/internal/domain/repository"
)

type customerRepository struct {
	kv domainRepo.KeyValueStore
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(kv domainRepo.KeyValueStore) domainRepo.CustomerRepository {
	return &customerRepository{kv: kv}
}

func (r *customerRepository) List(ctx context.Context) ([]entity.Customer, error) {
	return loadDocument(ctx, r.kv, KeyCustomers, entity.SeedCustomers)
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	customers, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range customers {
		if customers[i].ID == id {
			return &customers[i], nil
		}
	}
	return nil, nil
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return r.kv.Update(ctx, []string{KeyCustomers}, func(current map[string][]byte) (map[string][]byte, error) {
		customers, err := decodeDocument(KeyCustomers, current[KeyCustomers], entity.SeedCustomers)
		if err != nil {
			return nil, err
		}
		customers = append(customers, *customer)

		raw, err := json.Marshal(customers)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", KeyCustomers, err)
		}
		return map[string][]byte{KeyCustomers: raw}, nil
	})
}

func (r *customerRepository) ReplaceAll(ctx context.Context, customers []entity.Customer) error {
	return saveDocument(ctx, r.kv, KeyCustomers, customers)
}
