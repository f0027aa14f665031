package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sangkips/shopflow/internal/domain/entity"
	domainRepo "github.com/sangkips/shopflow/internal/domain/repository"
	"github.com/sangkips/shopflow/internal/infrastructure/repository"
	"github.com/sangkips/shopflow/pkg/apperror"
	"github.com/sangkips/shopflow/pkg/email"
	"github.com/sangkips/shopflow/pkg/logger"
	"github.com/stretchr/testify/require"
)

// fixture wires the services over an in-memory store seeded with the
// starter catalog and directory.
type fixture struct {
	kv           *repository.MemoryStore
	productRepo  domainRepo.ProductRepository
	customerRepo domainRepo.CustomerRepository
	invoiceRepo  domainRepo.InvoiceRepository
	settingsRepo domainRepo.SettingsRepository

	products  *ProductService
	carts     *CartService
	checkout  *CheckoutService
	customers *CustomerService
	invoices  *InvoiceService
	settings  *SettingsService
	backup    *BackupService
	email     *email.EmailService
	messages  *MessageService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.NewNop()

	f := &fixture{kv: repository.NewMemoryStore()}
	f.productRepo = repository.NewProductRepository(f.kv)
	f.customerRepo = repository.NewCustomerRepository(f.kv)
	f.invoiceRepo = repository.NewInvoiceRepository(f.kv)
	f.settingsRepo = repository.NewSettingsRepository(f.kv)

	f.products = NewProductService(f.productRepo)
	f.carts = NewCartService(f.products, f.customerRepo, log)
	f.checkout = NewCheckoutService(f.carts, f.invoiceRepo, log)
	f.customers = NewCustomerService(f.customerRepo, log)
	f.invoices = NewInvoiceService(f.invoiceRepo)
	f.settings = NewSettingsService(f.settingsRepo, log)
	f.backup = NewBackupService(f.productRepo, f.customerRepo, f.invoiceRepo, f.settingsRepo, log)
	f.email = email.NewEmailService(email.EmailConfig{})
	f.messages = NewMessageService(f.invoices, f.customers, f.settings, f.email, log)
	return f
}

func (f *fixture) product(t *testing.T, id string) *entity.Product {
	t.Helper()
	p, err := f.productRepo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p
}

func (f *fixture) add(t *testing.T, username, productID, imei string) *CartView {
	t.Helper()
	view, err := f.carts.AddItem(context.Background(), &AddItemInput{
		Username:  username,
		ProductID: productID,
		IMEI:      imei,
	})
	require.NoError(t, err)
	return view
}

func requireAppError(t *testing.T, err error, code int) *apperror.AppError {
	t.Helper()
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected *apperror.AppError, got %v", err)
	require.Equal(t, code, appErr.Code, appErr.Message)
	return appErr
}
