package invoice

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/franchise-backend/internal/config"
	"github.com/your-org/franchise-backend/internal/domain/loyalty"
	"github.com/your-org/franchise-backend/internal/domain/order"
	"github.com/your-org/franchise-backend/internal/domain/pricing"
	"github.com/your-org/franchise-backend/internal/pkg/apperrors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubNumbers struct{ orders, invoices int }

func (s *stubNumbers) OrderNumber() string {
	s.orders++
	return fmt.Sprintf("ORD-TEST-%04d", s.orders)
}

func (s *stubNumbers) InvoiceNumber() string {
	s.invoices++
	return fmt.Sprintf("INV-TEST-%04d", s.invoices)
}

type fixture struct {
	db       *gorm.DB
	orders   *order.Service
	loyalty  *loyalty.Service
	invoices *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// a second pooled connection would see its own empty in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&order.Order{}, &order.OrderItem{}, &order.PackingItem{}, &order.StatusHistory{},
		&loyalty.Account{}, &loyalty.Transaction{},
		&Invoice{}, &Line{},
	))

	cfg := &config.Config{}
	cfg.Loyalty.RedemptionCapPercent = 30
	cfg.Loyalty.EarnRatePercent = 1.0
	cfg.Invoice.DueDays = 30

	numbers := &stubNumbers{}
	loyaltyService := loyalty.NewService(db, cfg)
	return &fixture{
		db:       db,
		orders:   order.NewService(db, cfg, loyaltyService, numbers),
		loyalty:  loyaltyService,
		invoices: NewService(db, cfg, numbers),
	}
}

func testLines() []pricing.Line {
	return []pricing.Line{
		{ID: "masala-chai", Name: "Masala Chai 250g", BasePrice: 10000, Price: 11800, Quantity: 2, GSTRate: 18},
		{ID: "green-tea", Name: "Green Tea 100g", BasePrice: 5000, Price: 5250, Quantity: 1, GSTRate: 5},
	}
}

func testAddress() order.Address {
	return order.Address{
		Name:         "Asha Raman",
		AddressLine1: "12 Bazaar Street",
		City:         "Coimbatore",
		State:        "Tamil Nadu",
		PostalCode:   "641001",
		Phone:        "9876543210",
	}
}

func (f *fixture) createPaidOrder(t *testing.T, userID uint, points int64) *order.Order {
	t.Helper()

	if points > 0 {
		_, err := f.loyalty.EarnPoints(f.db, userID, points, nil, "seed")
		require.NoError(t, err)
	}

	ord, err := f.orders.CreateOrder(userID, testLines(), &order.CreateOrderRequest{
		ShippingAddress: testAddress(),
		PointsToRedeem:  points,
	})
	require.NoError(t, err)

	ord, err = f.orders.UpdateOrderStatus(ord.ID, order.OrderStatusConfirmed, 99, "")
	require.NoError(t, err)

	ord, err = f.orders.ConfirmPaymentCompleted(ord.ID)
	require.NoError(t, err)
	return ord
}

func (f *fixture) ship(t *testing.T, ord *order.Order) *order.Order {
	t.Helper()

	ord, err := f.orders.UpdateOrderStatus(ord.ID, order.OrderStatusPacking, 99, "")
	require.NoError(t, err)
	for _, p := range ord.PackingItems {
		ord, err = f.orders.MarkItemPacked(ord.ID, p.ID, 99)
		require.NoError(t, err)
	}

	ord, err = f.orders.RecordShipment(ord.ID, 99, &order.ShipmentInfo{Carrier: "Gati"})
	require.NoError(t, err)
	return ord
}

func (f *fixture) createShippedOrder(t *testing.T, userID uint, points int64) *order.Order {
	t.Helper()
	return f.ship(t, f.createPaidOrder(t, userID, points))
}

func TestGenerateReproducesOrderTotals(t *testing.T) {
	f := newFixture(t)
	ord := f.createShippedOrder(t, 1, 0)

	inv, err := f.invoices.Generate(ord.ID)
	require.NoError(t, err)

	assert.Equal(t, ord.OrderNumber, inv.OrderNumber)
	assert.Equal(t, int64(28850), inv.Subtotal)
	assert.Equal(t, int64(3850), inv.GSTAmount)
	assert.Equal(t, int64(0), inv.LoyaltyDiscount)
	assert.Equal(t, int64(0), inv.DeliveryFee)
	assert.Equal(t, int64(28850), inv.FinalAmount)
	assert.Equal(t, inv.IssuedAt.AddDate(0, 0, 30), inv.DueAt)

	require.Len(t, inv.Lines, 2)
	assert.Equal(t, int64(10000), inv.Lines[0].UnitPrice)
	assert.Equal(t, int64(3600), inv.Lines[0].GSTAmount)
	assert.Equal(t, int64(23600), inv.Lines[0].LineTotal)
	assert.Equal(t, int64(250), inv.Lines[1].GSTAmount)
	assert.Equal(t, int64(5250), inv.Lines[1].LineTotal)
}

func TestGenerateIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ord := f.createShippedOrder(t, 1, 0)

	first, err := f.invoices.Generate(ord.ID)
	require.NoError(t, err)

	second, err := f.invoices.Generate(ord.ID)
	require.NoError(t, err)
	assert.Equal(t, first.InvoiceNumber, second.InvoiceNumber)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, f.db.Model(&Invoice{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGenerateRequiresCompletedPayment(t *testing.T) {
	f := newFixture(t)

	ord, err := f.orders.CreateOrder(1, testLines(), &order.CreateOrderRequest{ShippingAddress: testAddress()})
	require.NoError(t, err)

	_, err = f.invoices.Generate(ord.ID)
	assert.True(t, apperrors.IsConflict(err))
}

func TestGenerateIncludesDiscountAndFee(t *testing.T) {
	f := newFixture(t)
	ord := f.createPaidOrder(t, 1, 20)

	ord, err := f.orders.SetDeliveryFee(ord.ID, 4000, 99)
	require.NoError(t, err)
	ord = f.ship(t, ord)

	inv, err := f.invoices.Generate(ord.ID)
	require.NoError(t, err)

	// ₹288.50 incl. GST of ₹38.50, minus ₹20, plus ₹40 delivery = ₹308.50
	assert.Equal(t, int64(28850), inv.Subtotal)
	assert.Equal(t, int64(3850), inv.GSTAmount)
	assert.Equal(t, int64(2000), inv.LoyaltyDiscount)
	assert.Equal(t, int64(4000), inv.DeliveryFee)
	assert.Equal(t, int64(30850), inv.FinalAmount)
}

func TestGetByNumber(t *testing.T) {
	f := newFixture(t)
	ord := f.createShippedOrder(t, 1, 0)

	inv, err := f.invoices.Generate(ord.ID)
	require.NoError(t, err)

	found, err := f.invoices.GetByNumber(inv.InvoiceNumber)
	require.NoError(t, err)
	assert.Equal(t, inv.ID, found.ID)
	require.Len(t, found.Lines, 2)

	_, err = f.invoices.GetByNumber("INV-NOPE-0000")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGenerateWaitsForDeliveryFeeToBeFinal(t *testing.T) {
	f := newFixture(t)
	ord := f.createPaidOrder(t, 1, 0)

	// the fee can still change before shipment, so no document yet
	_, err := f.invoices.Generate(ord.ID)
	assert.True(t, apperrors.IsConflict(err))

	ord, err = f.orders.SetDeliveryFee(ord.ID, 4000, 99)
	require.NoError(t, err)
	ord = f.ship(t, ord)

	inv, err := f.invoices.Generate(ord.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4000), inv.DeliveryFee)
	assert.Equal(t, int64(32850), inv.FinalAmount)
	assert.Equal(t, ord.FinalAmount, inv.FinalAmount)
}

func TestGenerateDetectsTamperedItems(t *testing.T) {
	f := newFixture(t)
	ord := f.createShippedOrder(t, 1, 0)

	// a corrupted unit price must surface, not silently reprice the invoice
	err := f.db.Model(&order.OrderItem{}).
		Where("order_id = ?", ord.ID).
		Update("unit_price", gorm.Expr("unit_price + ?", 1000)).Error
	require.NoError(t, err)

	_, err = f.invoices.Generate(ord.ID)
	assert.True(t, apperrors.IsReconciliation(err))
}

func TestGenerateDetectsLedgerMismatch(t *testing.T) {
	f := newFixture(t)
	ord := f.createShippedOrder(t, 1, 50)

	err := f.db.
		Where("order_id = ? AND type = ?", ord.ID, loyalty.TransactionRedeemed).
		Delete(&loyalty.Transaction{}).Error
	require.NoError(t, err)

	_, err = f.invoices.Generate(ord.ID)
	assert.True(t, apperrors.IsReconciliation(err))
}

func TestGenerateToleratesPerLineRounding(t *testing.T) {
	f := newFixture(t)
	ord := f.createShippedOrder(t, 1, 0)

	// a one paisa drift across two lines is within rounding tolerance
	err := f.db.Model(&order.Order{}).
		Where("id = ?", ord.ID).
		Updates(map[string]interface{}{
			"total_amount": gorm.Expr("total_amount + 1"),
			"final_amount": gorm.Expr("final_amount + 1"),
		}).Error
	require.NoError(t, err)

	_, err = f.invoices.Generate(ord.ID)
	assert.NoError(t, err)

	// three paise exceeds it
	f2 := newFixture(t)
	ord2 := f2.createShippedOrder(t, 1, 0)
	err = f2.db.Model(&order.Order{}).
		Where("id = ?", ord2.ID).
		Updates(map[string]interface{}{
			"total_amount": gorm.Expr("total_amount + 3"),
			"final_amount": gorm.Expr("final_amount + 3"),
		}).Error
	require.NoError(t, err)

	_, err = f2.invoices.Generate(ord2.ID)
	assert.True(t, apperrors.IsReconciliation(err))
}
