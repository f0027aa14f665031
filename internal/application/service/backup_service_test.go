package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/sangkips/shopflow/internal/domain/entity"
	"github.com/sangkips/shopflow/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupService_RoundTrip(t *testing.T) {
	ctx := context.Background()
	source := newFixture(t)
	source.backup.now = func() time.Time { return time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC) }

	source.add(t, "admin", "1", "354666060011223")
	_, err := source.checkout.Checkout(ctx, &CheckoutInput{Username: "admin"})
	require.NoError(t, err)
	_, err = source.customers.CreateCustomer(ctx, &CreateCustomerInput{Name: "Priya", Mobile: "9000000000"})
	require.NoError(t, err)

	backup, err := source.backup.CreateBackup(ctx)
	require.NoError(t, err)
	assert.Equal(t, "shopflow_backup_2024-03-01.json", backup.Filename())

	data, err := json.Marshal(backup)
	require.NoError(t, err)

	target := newFixture(t)
	result, err := target.backup.Restore(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, []string{"products", "customers", "invoices", "settings"}, result.Restored)
	assert.Empty(t, result.Skipped)

	restored, err := target.backup.CreateBackup(ctx)
	require.NoError(t, err)
	assert.Equal(t, backup.Customers, restored.Customers)
	assert.Equal(t, *backup.Settings, *restored.Settings)

	require.Len(t, restored.Invoices, 1)
	assert.Equal(t, backup.Invoices[0].ID, restored.Invoices[0].ID)
	assert.True(t, backup.Invoices[0].TotalAmount.Equal(restored.Invoices[0].TotalAmount))

	require.Len(t, restored.Products, len(backup.Products))
	for i := range backup.Products {
		assert.Equal(t, backup.Products[i].ID, restored.Products[i].ID)
		assert.Equal(t, backup.Products[i].Stock, restored.Products[i].Stock)
		assert.Equal(t, backup.Products[i].AvailableIMEIs, restored.Products[i].AvailableIMEIs)
		assert.True(t, backup.Products[i].Price.Equal(restored.Products[i].Price))
	}
}

func TestBackupService_PartialRestore(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	result, err := f.backup.Restore(ctx, []byte(`{"customers":[{"id":"9","name":"Only One","mobile":"1"}],"settings":null}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"customers"}, result.Restored)

	customers, err := f.customerRepo.List(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "Only One", customers[0].Name)

	products, err := f.productRepo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, products, len(entity.SeedProducts()))

	settings, err := f.settingsRepo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultSettings(), *settings)
}

func TestBackupService_SkipsMalformedCollections(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	result, err := f.backup.Restore(ctx, []byte(`{"products":"oops","invoices":[]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"invoices"}, result.Restored)
	assert.Equal(t, []string{"products"}, result.Skipped)

	products, err := f.productRepo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, products, len(entity.SeedProducts()))
}

func TestBackupService_CorruptDocumentWritesNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for _, doc := range []string{`not json`, `[1,2]`, `{"products":[`} {
		_, err := f.backup.Restore(ctx, []byte(doc))
		assert.ErrorIs(t, err, apperror.ErrCorruptBackup, doc)
	}

	raw, err := f.kv.Get(ctx, "shopflow_products")
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestBackupService_EmptyObjectRestoresNothing(t *testing.T) {
	f := newFixture(t)

	result, err := f.backup.Restore(context.Background(), []byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, result.Restored)
	assert.Empty(t, result.Skipped)
}
