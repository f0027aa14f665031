package repository

import (
	"context"

	"github.com/sangkips/shopflow/internal/domain/entity"
)

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	// List returns the directory in storage order
	List(ctx context.Context) ([]entity.Customer, error)
	// GetByID returns nil when no customer has the id
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	// Create appends the customer to the end of the directory
	Create(ctx context.Context, customer *entity.Customer) error
	ReplaceAll(ctx context.Context, customers []entity.Customer) error
}
