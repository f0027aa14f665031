package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sangkips/shopflow/internal/domain/entity"
	domainRepo "github.com/sangkips/shopflow/internal/domain/repository"
)

type idempotencyRepository struct {
	kv domainRepo.KeyValueStore
}

// NewIdempotencyRepository creates a new idempotency repository
func NewIdempotencyRepository(kv domainRepo.KeyValueStore) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{kv: kv}
}

func idempotencyKey(key, username string) string {
	return keyIdempotencyPrefix + username + ":" + key
}

func (r *idempotencyRepository) Reserve(ctx context.Context, ikey *entity.IdempotencyKey) (*entity.IdempotencyKey, error) {
	storeKey := idempotencyKey(ikey.Key, ikey.Username)

	var existing *entity.IdempotencyKey
	err := r.kv.Update(ctx, []string{storeKey}, func(current map[string][]byte) (map[string][]byte, error) {
		existing = nil
		if raw, ok := current[storeKey]; ok {
			var held entity.IdempotencyKey
			if err := json.Unmarshal(raw, &held); err != nil {
				return nil, fmt.Errorf("decode idempotency key: %w", err)
			}
			if !held.IsExpired() {
				existing = &held
				return nil, nil
			}
		}

		raw, err := json.Marshal(ikey)
		if err != nil {
			return nil, fmt.Errorf("encode idempotency key: %w", err)
		}
		return map[string][]byte{storeKey: raw}, nil
	})
	if err != nil {
		return nil, err
	}
	return existing, nil
}

func (r *idempotencyRepository) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	raw, err := json.Marshal(ikey)
	if err != nil {
		return fmt.Errorf("encode idempotency key: %w", err)
	}
	ttl := time.Until(ikey.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	return r.kv.Set(ctx, idempotencyKey(ikey.Key, ikey.Username), raw, ttl)
}

func (r *idempotencyRepository) Release(ctx context.Context, key, username string) error {
	return r.kv.Delete(ctx, idempotencyKey(key, username))
}
