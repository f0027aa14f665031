package service

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/sangkips/shopflow/internal/domain/entity"
	"github.com/sangkips/shopflow/internal/domain/repository"
	"github.com/sangkips/shopflow/pkg/apperror"
	"github.com/sirupsen/logrus"
)

// BackupService exports and restores the persisted collections
type BackupService struct {
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	invoiceRepo  repository.InvoiceRepository
	settingsRepo repository.SettingsRepository
	log          *logrus.Logger
	now          func() time.Time
}

// NewBackupService creates a new backup service
func NewBackupService(
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	invoiceRepo repository.InvoiceRepository,
	settingsRepo repository.SettingsRepository,
	log *logrus.Logger,
) *BackupService {
	return &BackupService{
		productRepo:  productRepo,
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
		settingsRepo: settingsRepo,
		log:          log,
		now:          time.Now,
	}
}

// CreateBackup collects every collection into one document
func (s *BackupService) CreateBackup(ctx context.Context) (*entity.Backup, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := s.customerRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoiceRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	return &entity.Backup{
		Products:  products,
		Customers: customers,
		Invoices:  invoices,
		Settings:  settings,
		Timestamp: s.now().UTC(),
	}, nil
}

// RestoreResult reports which collections a restore wrote
type RestoreResult struct {
	Restored []string `json:"restored"`
	Skipped  []string `json:"skipped"`
}

// Restore parses a backup document and overwrites each collection whose key
// is present and well-formed. A document that does not parse writes nothing.
// Collections are written one at a time, so a partial backup only replaces
// what it contains.
func (s *BackupService) Restore(ctx context.Context, data []byte) (*RestoreResult, error) {
	var doc entity.BackupDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		s.log.WithError(err).Warn("restore rejected")
		return nil, apperror.ErrCorruptBackup
	}

	result := &RestoreResult{Restored: []string{}, Skipped: []string{}}
	steps := []struct {
		key   string
		raw   json.RawMessage
		write func(raw json.RawMessage) (bool, error)
	}{
		{"products", doc.Products, func(raw json.RawMessage) (bool, error) {
			var products []entity.Product
			if json.Unmarshal(raw, &products) != nil {
				return false, nil
			}
			return true, s.productRepo.ReplaceAll(ctx, products)
		}},
		{"customers", doc.Customers, func(raw json.RawMessage) (bool, error) {
			var customers []entity.Customer
			if json.Unmarshal(raw, &customers) != nil {
				return false, nil
			}
			return true, s.customerRepo.ReplaceAll(ctx, customers)
		}},
		{"invoices", doc.Invoices, func(raw json.RawMessage) (bool, error) {
			var invoices []entity.Invoice
			if json.Unmarshal(raw, &invoices) != nil {
				return false, nil
			}
			return true, s.invoiceRepo.ReplaceAll(ctx, invoices)
		}},
		{"settings", doc.Settings, func(raw json.RawMessage) (bool, error) {
			var settings entity.ShopSettings
			if json.Unmarshal(raw, &settings) != nil {
				return false, nil
			}
			return true, s.settingsRepo.Save(ctx, &settings)
		}},
	}

	for _, step := range steps {
		if len(step.raw) == 0 || bytes.Equal(step.raw, []byte("null")) {
			continue
		}
		ok, err := step.write(step.raw)
		if err != nil {
			return result, err
		}
		if !ok {
			result.Skipped = append(result.Skipped, step.key)
			continue
		}
		result.Restored = append(result.Restored, step.key)
	}

	s.log.WithFields(logrus.Fields{
		"restored":  result.Restored,
		"skipped":   result.Skipped,
		"timestamp": doc.Timestamp,
	}).Info("backup restored")

	return result, nil
}
