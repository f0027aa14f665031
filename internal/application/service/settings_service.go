package service

import (
	"context"
	"strings"

	"github.com/sangkips/shopflow/internal/domain/entity"
	"github.com/sangkips/shopflow/internal/domain/repository"
	"github.com/sangkips/shopflow/pkg/apperror"
	"github.com/sirupsen/logrus"
)

// SettingsService handles settings-related business logic
type SettingsService struct {
	settingsRepo repository.SettingsRepository
	log          *logrus.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository, log *logrus.Logger) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		log:          log,
	}
}

// GetSettings retrieves the shop settings, falling back to the defaults
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.ShopSettings, error) {
	return s.settingsRepo.Get(ctx)
}

// UpdateSettings replaces the shop settings
func (s *SettingsService) UpdateSettings(ctx context.Context, settings *entity.ShopSettings) (*entity.ShopSettings, error) {
	if strings.TrimSpace(settings.ShopName) == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "shopName", Message: "Shop name is required"},
		})
	}

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, err
	}

	s.log.WithField("shop_name", settings.ShopName).Info("settings updated")
	return settings, nil
}
