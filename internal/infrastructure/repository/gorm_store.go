package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sangkips/shopflow/internal/domain/entity"
	domainRepo "github.com/sangkips/shopflow/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a key/value store backed by the store_entries table
func NewGormStore(db *gorm.DB) domainRepo.KeyValueStore {
	return &gormStore{db: db}
}

func (s *gormStore) Get(ctx context.Context, key string) ([]byte, error) {
	var e entity.StoreEntry
	err := s.db.WithContext(ctx).
		Where("entry_key = ?", key).
		Where("expires_at IS NULL OR expires_at > ?", time.Now()).
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return []byte(e.Value), nil
}

func (s *gormStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return upsertEntry(s.db.WithContext(ctx), key, value, ttl)
}

func (s *gormStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).
		Where("entry_key = ?", key).
		Delete(&entity.StoreEntry{}).Error
}

func (s *gormStore) Update(ctx context.Context, keys []string, fn domainRepo.UpdateFunc) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Where("entry_key IN ?", keys).
			Where("expires_at IS NULL OR expires_at > ?", time.Now())
		if tx.Dialector.Name() == "postgres" {
			// Row locks miss keys that do not exist yet; advisory locks
			// serialize their first writers. Sorted to keep lock order fixed.
			locked := append([]string(nil), keys...)
			sort.Strings(locked)
			for _, key := range locked {
				if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error; err != nil {
					return fmt.Errorf("lock %s: %w", key, err)
				}
			}
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var entries []entity.StoreEntry
		if err := q.Find(&entries).Error; err != nil {
			return fmt.Errorf("load entries: %w", err)
		}

		current := make(map[string][]byte, len(entries))
		for _, e := range entries {
			current[e.Key] = []byte(e.Value)
		}

		next, err := fn(current)
		if err != nil {
			return err
		}
		for key, value := range next {
			if err := upsertEntry(tx, key, value, 0); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *gormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func upsertEntry(db *gorm.DB, key string, value []byte, ttl time.Duration) error {
	e := entity.StoreEntry{
		Key:       key,
		Value:     string(value),
		UpdatedAt: time.Now(),
	}
	if ttl > 0 {
		expires := time.Now().Add(ttl)
		e.ExpiresAt = &expires
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
	}).Create(&e).Error
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
