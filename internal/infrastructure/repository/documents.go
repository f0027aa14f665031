package repository

import (
	"context"
	"encoding/json"
	"fmt"

	domainRepo "github.com/sangkips/shopflow/internal/domain/repository"
)

// Storage keys, shared with ShopFlow browser backups.
const (
	KeyProducts  = "shopflow_products"
	KeyCustomers = "shopflow_customers"
	KeyInvoices  = "shopflow_invoices"
	KeySettings  = "shopflow_settings"
	KeySession   = "shopflow_session"

	keyIdempotencyPrefix = "shopflow_idempotency:"
)

// loadDocument decodes the value under key, or returns fallback() when the
// key has never been written.
func loadDocument[T any](ctx context.Context, kv domainRepo.KeyValueStore, key string, fallback func() T) (T, error) {
	raw, err := kv.Get(ctx, key)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeDocument(key, raw, fallback)
}

func decodeDocument[T any](key string, raw []byte, fallback func() T) (T, error) {
	if raw == nil {
		return fallback(), nil
	}
	var doc T
	if err := json.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("decode %s: %w", key, err)
	}
	return doc, nil
}

func saveDocument(ctx context.Context, kv domainRepo.KeyValueStore, key string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return kv.Set(ctx, key, raw, 0)
}
