package repository

import (
	"context"

	"github.com/sangkips/shopflow/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// Reserve claims ikey for its user in one store transaction. When an
	// unexpired record already holds the key it is returned and nothing is
	// written.
	Reserve(ctx context.Context, ikey *entity.IdempotencyKey) (*entity.IdempotencyKey, error)
	// Create stores the finished response until it expires
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	// Release drops a claim whose request did not succeed
	Release(ctx context.Context, key, username string) error
}
