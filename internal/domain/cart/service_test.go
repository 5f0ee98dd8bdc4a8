package cart

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/franchise-backend/internal/config"
	"github.com/your-org/franchise-backend/internal/pkg/apperrors"
)

type fakeCatalog struct {
	products map[string]*Product
}

func (f *fakeCatalog) Lookup(ctx context.Context, productID string) (*Product, error) {
	return f.products[productID], nil
}

func newTestService() (*Service, *fakeCatalog) {
	cfg := &config.Config{}
	cfg.Pricing.DefaultGSTRate = 18
	cfg.Pricing.CartExpiry = 24 * time.Hour

	catalog := &fakeCatalog{products: map[string]*Product{
		"green-tea": {ID: "green-tea", Name: "Green Tea 250g", BasePrice: 10000, GSTRate: 18, Active: true},
		"masala":    {ID: "masala", Name: "Masala Chai 500g", BasePrice: 5000, GSTRate: 5, Active: true},
		"no-rate":   {ID: "no-rate", Name: "Sampler Box", BasePrice: 20000, Active: true},
		"retired":   {ID: "retired", Name: "Old Blend", BasePrice: 1000, GSTRate: 18, Active: false},
	}}

	return NewService(NewMemoryStore(), catalog, cfg), catalog
}

func TestAddDerivesInclusivePriceOnce(t *testing.T) {
	svc, catalog := newTestService()
	ctx := context.Background()

	resp, err := svc.Add(ctx, "user:1", &AddRequest{ProductID: "green-tea", Quantity: 1})
	require.NoError(t, err)
	require.Len(t, resp.Cart.Items, 1)

	line := resp.Cart.Items[0]
	assert.Equal(t, int64(10000), line.BasePrice)
	assert.Equal(t, int64(11800), line.Price)

	// a catalog rate change mid-session must not reprice the captured line
	catalog.products["green-tea"].GSTRate = 28

	resp, err = svc.UpdateQuantity(ctx, "user:1", "green-tea", &UpdateRequest{Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(11800), resp.Cart.Items[0].Price)
	assert.Equal(t, int64(59000), resp.Totals.Subtotal)
}

func TestAddMissingRateDefaultsTo18(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.Add(context.Background(), "user:1", &AddRequest{ProductID: "no-rate", Quantity: 1})
	require.NoError(t, err)

	assert.Equal(t, 18.0, resp.Cart.Items[0].GSTRate)
	assert.Equal(t, int64(23600), resp.Cart.Items[0].Price)
}

func TestAddInactiveProduct(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Add(context.Background(), "user:1", &AddRequest{ProductID: "retired", Quantity: 1})
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.Add(context.Background(), "user:1", &AddRequest{ProductID: "missing", Quantity: 1})
	assert.True(t, apperrors.IsValidation(err))
}

func TestAddExistingItemIncrementsQuantity(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Add(ctx, "user:1", &AddRequest{ProductID: "masala", Quantity: 2})
	require.NoError(t, err)
	resp, err := svc.Add(ctx, "user:1", &AddRequest{ProductID: "masala", Quantity: 3})
	require.NoError(t, err)

	require.Len(t, resp.Cart.Items, 1)
	assert.Equal(t, 5, resp.Cart.Items[0].Quantity)
	assert.Equal(t, 5, resp.Totals.TotalQuantity)
}

func TestRemoveAndClear(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Add(ctx, "user:1", &AddRequest{ProductID: "green-tea", Quantity: 1})
	require.NoError(t, err)
	_, err = svc.Add(ctx, "user:1", &AddRequest{ProductID: "masala", Quantity: 1})
	require.NoError(t, err)

	resp, err := svc.RemoveItem(ctx, "user:1", "green-tea")
	require.NoError(t, err)
	assert.Len(t, resp.Cart.Items, 1)

	require.NoError(t, svc.Clear(ctx, "user:1"))

	resp, err = svc.Get(ctx, "user:1")
	require.NoError(t, err)
	assert.Empty(t, resp.Cart.Items)
	assert.Zero(t, resp.Totals.Subtotal)
}

func TestExpiredCartDiscardedOnLoad(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Add(ctx, "user:1", &AddRequest{ProductID: "green-tea", Quantity: 1})
	require.NoError(t, err)

	// age the stored cart past its window
	store := svc.store.(*MemoryStore)
	stale, err := store.Load(ctx, "user:1")
	require.NoError(t, err)
	stale.ExpiresAt = time.Now().UTC().Add(-time.Minute)
	require.NoError(t, store.Save(ctx, stale, 0))

	resp, err := svc.Get(ctx, "user:1")
	require.NoError(t, err)
	assert.Empty(t, resp.Cart.Items)
}

func TestTotalsBreakdown(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Add(ctx, "user:1", &AddRequest{ProductID: "green-tea", Quantity: 2})
	require.NoError(t, err)
	resp, err := svc.Add(ctx, "user:1", &AddRequest{ProductID: "masala", Quantity: 1})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Totals.ItemCount)
	assert.Equal(t, 3, resp.Totals.TotalQuantity)
	assert.Equal(t, int64(28850), resp.Totals.Subtotal)
	assert.Equal(t, int64(3850), resp.Totals.GSTAmount)
}
