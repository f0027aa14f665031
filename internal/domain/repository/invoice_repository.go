package repository

import (
	"context"

	"github.com/sangkips/shopflow/internal/domain/entity"
)

// InvoiceRepository defines the interface for invoice history operations
type InvoiceRepository interface {
	// List returns the history, most recent first
	List(ctx context.Context) ([]entity.Invoice, error)
	// GetByID returns nil when no invoice has the id
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	// CommitSale prepends the invoice to history and applies its stock and
	// serial effects to the catalog in one atomic write. It returns
	// ErrDuplicateInvoice without writing if the id is already used.
	CommitSale(ctx context.Context, invoice *entity.Invoice) error
	ReplaceAll(ctx context.Context, invoices []entity.Invoice) error
}
