package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sangkips/shopflow/internal/domain/entity"
	"github.com/sangkips/shopflow/internal/domain/enum"
	domainRepo "github.com/sangkips/shopflow/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func soldInvoice(id string, items ...entity.CartItem) *entity.Invoice {
	return &entity.Invoice{
		ID:           id,
		Date:         time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		CustomerName: entity.WalkInCustomerName,
		Items:        items,
		TotalAmount:  decimal.NewFromInt(1),
		PaymentMode:  enum.PaymentModeCash,
	}
}

func lineFor(p entity.Product, qty int, imei string) entity.CartItem {
	return entity.CartItem{Product: p, CartID: "c-" + p.ID + imei, Quantity: qty, SelectedIMEI: imei}
}

func TestProductRepository_SeedsCatalog(t *testing.T) {
	repo := NewProductRepository(NewMemoryStore())

	products, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, len(entity.SeedProducts()))

	p, err := repo.GetByID(context.Background(), "3")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "USB-C Cable 1m", p.Name)

	p, err = repo.GetByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestInvoiceRepository_CommitSale(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	products := NewProductRepository(kv)
	invoices := NewInvoiceRepository(kv)

	iphone, err := products.GetByID(ctx, "1")
	require.NoError(t, err)
	cable, err := products.GetByID(ctx, "3")
	require.NoError(t, err)

	first := soldInvoice("INV-1", lineFor(*iphone, 1, "354666060011223"), lineFor(*cable, 3, ""))
	require.NoError(t, invoices.CommitSale(ctx, first))

	iphone, _ = products.GetByID(ctx, "1")
	assert.Equal(t, 1, iphone.Stock)
	assert.Equal(t, []string{"354666060011224"}, iphone.AvailableIMEIs)
	cable, _ = products.GetByID(ctx, "3")
	assert.Equal(t, 47, cable.Stock)

	require.NoError(t, invoices.CommitSale(ctx, soldInvoice("INV-2", lineFor(*cable, 1, ""))))
	history, err := invoices.List(ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "INV-2", history[0].ID)
	assert.Equal(t, "INV-1", history[1].ID)
}

func TestInvoiceRepository_DuplicateIDWritesNothing(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	products := NewProductRepository(kv)
	invoices := NewInvoiceRepository(kv)

	cable, _ := products.GetByID(ctx, "3")
	require.NoError(t, invoices.CommitSale(ctx, soldInvoice("INV-1", lineFor(*cable, 1, ""))))

	err := invoices.CommitSale(ctx, soldInvoice("INV-1", lineFor(*cable, 5, "")))
	assert.ErrorIs(t, err, domainRepo.ErrDuplicateInvoice)

	cable, _ = products.GetByID(ctx, "3")
	assert.Equal(t, 49, cable.Stock)
	history, _ := invoices.List(ctx)
	assert.Len(t, history, 1)
}

func TestInvoiceRepository_SkipsDeletedProducts(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	invoices := NewInvoiceRepository(kv)

	ghost := entity.Product{ID: "gone", Name: "Discontinued", Stock: 1}
	require.NoError(t, invoices.CommitSale(ctx, soldInvoice("INV-1", lineFor(ghost, 1, ""))))

	inv, err := invoices.GetByID(ctx, "INV-1")
	require.NoError(t, err)
	require.NotNil(t, inv)
	assert.Equal(t, "Discontinued", inv.Items[0].Name)
}

func TestInvoiceRepository_PersistsMoneyAsNumbers(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	invoices := NewInvoiceRepository(kv)

	inv := soldInvoice("INV-1")
	inv.TotalAmount = decimal.RequireFromString("3183")
	require.NoError(t, invoices.CommitSale(ctx, inv))

	raw, err := kv.Get(ctx, KeyInvoices)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"totalAmount":3183`)
	assert.Contains(t, string(raw), `"paymentMode":"Cash"`)
}

func TestCustomerRepository_CreateAppends(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository(NewMemoryStore())

	require.NoError(t, repo.Create(ctx, &entity.Customer{ID: "c-3", Name: "Priya", Mobile: "9000000000"}))

	customers, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 3)
	assert.Equal(t, entity.WalkInCustomerName, customers[0].Name)
	assert.Equal(t, "Priya", customers[2].Name)
}

func TestSettingsRepository_DefaultsUntilSaved(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingsRepository(NewMemoryStore())

	settings, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultSettings(), *settings)

	settings.ShopName = "Mobile Hub"
	require.NoError(t, repo.Save(ctx, settings))
	saved, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Mobile Hub", saved.ShopName)
}

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(NewMemoryStore())

	user, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)

	require.NoError(t, repo.Save(ctx, entity.FindUser("staff")))
	user, err = repo.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, enum.RoleStaff, user.Role)

	require.NoError(t, repo.Delete(ctx))
	user, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestIdempotencyRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewIdempotencyRepository(NewMemoryStore())

	claim := func(username string) *entity.IdempotencyKey {
		return &entity.IdempotencyKey{
			Key:       "abc",
			Username:  username,
			Endpoint:  "POST /api/v1/cart/checkout",
			CreatedAt: time.Now(),
			ExpiresAt: time.Now().Add(time.Minute),
		}
	}

	held, err := repo.Reserve(ctx, claim("admin"))
	require.NoError(t, err)
	assert.Nil(t, held, "first claim wins")

	held, err = repo.Reserve(ctx, claim("admin"))
	require.NoError(t, err)
	require.NotNil(t, held)
	assert.True(t, held.IsPending())

	held, err = repo.Reserve(ctx, claim("staff"))
	require.NoError(t, err)
	assert.Nil(t, held, "keys are per user")

	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key:          "abc",
		Username:     "admin",
		Endpoint:     "POST /api/v1/cart/checkout",
		ResponseCode: 201,
		ResponseBody: `{"success":true}`,
		CreatedAt:    time.Now(),
		ExpiresAt:    time.Now().Add(time.Hour),
	}))
	held, err = repo.Reserve(ctx, claim("admin"))
	require.NoError(t, err)
	require.NotNil(t, held)
	assert.False(t, held.IsPending())
	assert.Equal(t, 201, held.ResponseCode)
	assert.Equal(t, `{"success":true}`, held.ResponseBody)

	require.NoError(t, repo.Release(ctx, "abc", "staff"))
	held, err = repo.Reserve(ctx, claim("staff"))
	require.NoError(t, err)
	assert.Nil(t, held, "released key can be claimed again")
}

func TestIdempotencyRepository_ExpiredClaimIsReplaced(t *testing.T) {
	ctx := context.Background()
	repo := NewIdempotencyRepository(NewMemoryStore())

	stale := &entity.IdempotencyKey{
		Key:       "abc",
		Username:  "admin",
		CreatedAt: time.Now().Add(-2 * time.Minute),
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	_, err := repo.Reserve(ctx, stale)
	require.NoError(t, err)

	held, err := repo.Reserve(ctx, &entity.IdempotencyKey{
		Key:       "abc",
		Username:  "admin",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Minute),
	})
	require.NoError(t, err)
	assert.Nil(t, held)
}

func TestIdempotencyRepository_ConcurrentClaims(t *testing.T) {
	ctx := context.Background()
	repo := NewIdempotencyRepository(NewMemoryStore())

	const workers = 8
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		claims int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			held, err := repo.Reserve(ctx, &entity.IdempotencyKey{
				Key:       "same",
				Username:  "staff",
				CreatedAt: time.Now(),
				ExpiresAt: time.Now().Add(time.Minute),
			})
			if assert.NoError(t, err) && held == nil {
				mu.Lock()
				claims++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, claims)
}
