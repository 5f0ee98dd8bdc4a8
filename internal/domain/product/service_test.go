package product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/franchise-backend/internal/config"
	"github.com/your-org/franchise-backend/internal/pkg/apperrors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// a second pooled connection would see its own empty in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&Category{}, &Product{}))

	return NewService(db, &config.Config{})
}

func seedProduct(t *testing.T, s *Service, sku string, price int64, rate float64) *Product {
	t.Helper()
	category, err := s.CreateCategory("Teas", "", 1)
	require.NoError(t, err)

	p, err := s.CreateProduct(&ProductCreateRequest{
		SKU:        sku,
		Name:       "Masala Chai 250g",
		BasePrice:  price,
		GSTRate:    rate,
		CategoryID: category.ID,
		IsActive:   true,
	})
	require.NoError(t, err)
	return p
}

func TestLookupMapsToCartProduct(t *testing.T) {
	s := newTestService(t)
	seedProduct(t, s, "masala-chai-250", 10000, 18)

	got, err := s.Lookup(context.Background(), "masala-chai-250")
	require.NoError(t, err)

	assert.Equal(t, "masala-chai-250", got.ID)
	assert.Equal(t, int64(10000), got.BasePrice)
	assert.Equal(t, 18.0, got.GSTRate)
	assert.True(t, got.Active)
}

func TestLookupUnknownSKU(t *testing.T) {
	s := newTestService(t)

	_, err := s.Lookup(context.Background(), "no-such-sku")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCreateProductDuplicateSKU(t *testing.T) {
	s := newTestService(t)
	seedProduct(t, s, "masala-chai-250", 10000, 18)

	_, err := s.CreateProduct(&ProductCreateRequest{
		SKU:        "masala-chai-250",
		Name:       "Duplicate",
		BasePrice:  5000,
		CategoryID: 1,
	})

	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "sku", ve.Field)
}

func TestCreateProductRejectsBadGSTRate(t *testing.T) {
	s := newTestService(t)

	_, err := s.CreateProduct(&ProductCreateRequest{
		SKU:        "broken",
		Name:       "Broken",
		BasePrice:  5000,
		GSTRate:    101,
		CategoryID: 1,
	})
	assert.Error(t, err)
}

func TestUpdateProductCannotChangeSKU(t *testing.T) {
	s := newTestService(t)
	p := seedProduct(t, s, "masala-chai-250", 10000, 18)

	updated, err := s.UpdateProduct(p.ID, map[string]interface{}{
		"sku":        "hijacked",
		"base_price": int64(12000),
	})
	require.NoError(t, err)

	reloaded, err := s.GetProduct(updated.ID)
	require.NoError(t, err)
	assert.Equal(t, "masala-chai-250", reloaded.SKU)
	assert.Equal(t, int64(12000), reloaded.BasePrice)
}

func TestDeleteProductHidesFromCatalog(t *testing.T) {
	s := newTestService(t)
	p := seedProduct(t, s, "masala-chai-250", 10000, 18)

	require.NoError(t, s.DeleteProduct(p.ID))

	_, err := s.Lookup(context.Background(), "masala-chai-250")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.ErrorIs(t, s.DeleteProduct(p.ID), apperrors.ErrNotFound)
}

func TestGenerateSlug(t *testing.T) {
	assert.Equal(t, "blends-masalas", generateSlug("Blends & Masalas"))
	assert.Equal(t, "teas", generateSlug("  Teas  "))
}
