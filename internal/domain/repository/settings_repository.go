package repository

import (
	"context"

	"github.com/sangkips/shopflow/internal/domain/entity"
)

// SettingsRepository defines the interface for shop settings persistence
type SettingsRepository interface {
	// Get returns the saved settings, or the defaults if none were saved
	Get(ctx context.Context) (*entity.ShopSettings, error)
	Save(ctx context.Context, settings *entity.ShopSettings) error
}

// SessionRepository persists the logged-in user between restarts
type SessionRepository interface {
	// Get returns nil when nobody is logged in
	Get(ctx context.Context) (*entity.User, error)
	Save(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context) error
}
