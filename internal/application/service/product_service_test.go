package service

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/sangkips/shopflow/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductService_SearchForBilling(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	matches, err := f.products.SearchForBilling(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, matches)

	matches, err = f.products.SearchForBilling(ctx, "apple")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "1", matches[0].ID)
	assert.Equal(t, "4", matches[1].ID)

	matches, err = f.products.SearchForBilling(ctx, "H34K22L0")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "4", matches[0].ID)
}

func TestProductService_SearchForBillingIsCapped(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	products := make([]entity.Product, 15)
	for i := range products {
		products[i] = entity.Product{ID: strconv.Itoa(i), Name: "Case " + strconv.Itoa(i), Stock: 1}
	}
	require.NoError(t, f.productRepo.ReplaceAll(ctx, products))

	matches, err := f.products.SearchForBilling(ctx, "case")
	require.NoError(t, err)
	assert.Len(t, matches, BillingSearchLimit)
}

func TestProductService_ListProducts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	all, err := f.products.ListProducts(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 5)

	accessories, err := f.products.ListProducts(ctx, "accessories")
	require.NoError(t, err)
	assert.Len(t, accessories, 2)

	_, err = f.products.GetProduct(ctx, "missing")
	requireAppError(t, err, http.StatusNotFound)
}

func TestProductService_ResolveScanPrefersSerial(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	products := []entity.Product{
		{ID: "A", Name: "Phone", Stock: 1, AvailableIMEIs: []string{"B"}},
		{ID: "B", Name: "Charger", Stock: 5},
	}
	require.NoError(t, f.productRepo.ReplaceAll(ctx, products))

	result, err := f.products.ResolveScan(ctx, "B")
	require.NoError(t, err)
	assert.Equal(t, "A", result.Product.ID)
	assert.Equal(t, "B", result.IMEI)
}

func TestSettingsService_Update(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.settings.UpdateSettings(ctx, &entity.ShopSettings{ShopName: " "})
	requireAppError(t, err, http.StatusUnprocessableEntity)

	updated := entity.DefaultSettings()
	updated.FooterMessage = "Thanks!"
	_, err = f.settings.UpdateSettings(ctx, &updated)
	require.NoError(t, err)

	got, err := f.settings.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Thanks!", got.FooterMessage)
}
