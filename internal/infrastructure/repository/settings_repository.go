package repository

import (
	"context"

	"github.com/sangkips/shopflow/internal/domain/entity"
	domainRepo "github.com/sangkips/shopflow/internal/domain/repository"
)

type settingsRepository struct {
	kv domainRepo.KeyValueStore
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(kv domainRepo.KeyValueStore) domainRepo.SettingsRepository {
	return &settingsRepository{kv: kv}
}

func (r *settingsRepository) Get(ctx context.Context) (*entity.ShopSettings, error) {
	settings, err := loadDocument(ctx, r.kv, KeySettings, entity.DefaultSettings)
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) Save(ctx context.Context, settings *entity.ShopSettings) error {
	return saveDocument(ctx, r.kv, KeySettings, settings)
}

type sessionRepository struct {
	kv domainRepo.KeyValueStore
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(kv domainRepo.KeyValueStore) domainRepo.SessionRepository {
	return &sessionRepository{kv: kv}
}

func noSession() *entity.User {
	return nil
}

func (r *sessionRepository) Get(ctx context.Context) (*entity.User, error) {
	return loadDocument(ctx, r.kv, KeySession, noSession)
}

func (r *sessionRepository) Save(ctx context.Context, user *entity.User) error {
	return saveDocument(ctx, r.kv, KeySession, user)
}

func (r *sessionRepository) Delete(ctx context.Context) error {
	return r.kv.Delete(ctx, KeySession)
}
