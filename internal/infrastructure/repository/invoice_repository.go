package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sangkips/shopflow/internal/domain/entity"
	domainRepo "github.com/sangkips/shopflow/internal/domain/repository"
)

type invoiceRepository struct {
	kv domainRepo.KeyValueStore
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(kv domainRepo.KeyValueStore) domainRepo.InvoiceRepository {
	return &invoiceRepository{kv: kv}
}

func noInvoices() []entity.Invoice {
	return []entity.Invoice{}
}

func (r *invoiceRepository) List(ctx context.Context) ([]entity.Invoice, error) {
	return loadDocument(ctx, r.kv, KeyInvoices, noInvoices)
}

func (r *invoiceRepository) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	invoices, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range invoices {
		if invoices[i].ID == id {
			return &invoices[i], nil
		}
	}
	return nil, nil
}

func (r *invoiceRepository) CommitSale(ctx context.Context, invoice *entity.Invoice) error {
	keys := []string{KeyInvoices, KeyProducts}
	return r.kv.Update(ctx, keys, func(current map[string][]byte) (map[string][]byte, error) {
		invoices, err := decodeDocument(KeyInvoices, current[KeyInvoices], noInvoices)
		if err != nil {
			return nil, err
		}
		for _, existing := range invoices {
			if existing.ID == invoice.ID {
				return nil, domainRepo.ErrDuplicateInvoice
			}
		}

		products, err := decodeDocument(KeyProducts, current[KeyProducts], entity.SeedProducts)
		if err != nil {
			return nil, err
		}
		applySale(products, invoice.Items)

		invoices = append([]entity.Invoice{*invoice}, invoices...)

		rawInvoices, err := json.Marshal(invoices)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", KeyInvoices, err)
		}
		rawProducts, err := json.Marshal(products)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", KeyProducts, err)
		}
		return map[string][]byte{
			KeyInvoices: rawInvoices,
			KeyProducts: rawProducts,
		}, nil
	})
}

// applySale decrements stock and removes sold serials. Lines whose product
// is no longer in the catalog are skipped.
func applySale(products []entity.Product, items []entity.CartItem) {
	index := make(map[string]int, len(products))
	for i := range products {
		index[products[i].ID] = i
	}
	for _, item := range items {
		i, ok := index[item.ID]
		if !ok {
			continue
		}
		products[i].Stock -= item.Quantity
		if item.SelectedIMEI != "" {
			products[i].RemoveIMEI(item.SelectedIMEI)
		}
	}
}

func (r *invoiceRepository) ReplaceAll(ctx context.Context, invoices []entity.Invoice) error {
	return saveDocument(ctx, r.kv, KeyInvoices, invoices)
}
