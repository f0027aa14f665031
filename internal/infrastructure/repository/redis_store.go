package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	domainRepo "github.com/sangkips/shopflow/internal/domain/repository"
)

const redisMaxRetries = 10

type redisStore struct {
	client *redis.Client
}

// NewRedisStore creates a key/value store backed by Redis strings
func NewRedisStore(client *redis.Client) domainRepo.KeyValueStore {
	return &redisStore{client: client}
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

func (s *redisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

// Update watches keys and writes the result in a MULTI/EXEC block, retrying
// when another client touched a watched key in between.
func (s *redisStore) Update(ctx context.Context, keys []string, fn domainRepo.UpdateFunc) error {
	txf := func(tx *redis.Tx) error {
		current := make(map[string][]byte, len(keys))
		for _, key := range keys {
			value, err := tx.Get(ctx, key).Bytes()
			if errors.Is(err, redis.Nil) {
				continue
			}
			if err != nil {
				return fmt.Errorf("get %s: %w", key, err)
			}
			current[key] = value
		}

		next, err := fn(current)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for key, value := range next {
				pipe.Set(ctx, key, value, 0)
			}
			return nil
		})
		return err
	}

	for i := 0; i < redisMaxRetries; i++ {
		err := s.client.Watch(ctx, txf, keys...)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return domainRepo.ErrConcurrentUpdate
}

func (s *redisStore) Close() error {
	return s.client.Close()
}
