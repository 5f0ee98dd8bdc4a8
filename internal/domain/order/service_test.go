package order

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/franchise-backend/internal/config"
	"github.com/your-org/franchise-backend/internal/domain/loyalty"
	"github.com/your-org/franchise-backend/internal/domain/pricing"
	"github.com/your-org/franchise-backend/internal/pkg/apperrors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubNumbers struct{ n int }

func (s *stubNumbers) OrderNumber() string {
	s.n++
	return fmt.Sprintf("ORD-TEST-%04d", s.n)
}

func newTestService(t *testing.T) (*Service, *loyalty.Service) {
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
		&Order{}, &OrderItem{}, &PackingItem{}, &StatusHistory{},
		&loyalty.Account{}, &loyalty.Transaction{},
	))

	cfg := &config.Config{}
	cfg.Loyalty.RedemptionCapPercent = 30
	cfg.Loyalty.EarnRatePercent = 1.0
	cfg.Pricing.DefaultGSTRate = 18.0

	loyaltyService := loyalty.NewService(db, cfg)
	return NewService(db, cfg, loyaltyService, &stubNumbers{}), loyaltyService
}

func testLines() []pricing.Line {
	return []pricing.Line{
		{ID: "masala-chai", Name: "Masala Chai 250g", BasePrice: 10000, Price: 11800, Quantity: 2, GSTRate: 18},
		{ID: "green-tea", Name: "Green Tea 100g", BasePrice: 5000, Price: 5250, Quantity: 1, GSTRate: 5},
	}
}

func testAddress() Address {
	return Address{
		Name:         "Asha Raman",
		AddressLine1: "12 Bazaar Street",
		City:         "Coimbatore",
		State:        "Tamil Nadu",
		PostalCode:   "641001",
		Phone:        "9876543210",
	}
}

func seedBalance(t *testing.T, ls *loyalty.Service, db *gorm.DB, userID uint, points int64) {
	t.Helper()
	_, err := ls.EarnPoints(db, userID, points, nil, "seed")
	require.NoError(t, err)
}

func TestCreateOrderPersistsTotalsAndChecklist(t *testing.T) {
	s, _ := newTestService(t)

	ord, err := s.CreateOrder(1, testLines(), &CreateOrderRequest{ShippingAddress: testAddress()})
	require.NoError(t, err)

	// 2 x 11800 + 1 x 5250
	assert.Equal(t, int64(28850), ord.TotalAmount)
	assert.Equal(t, int64(3850), ord.GSTAmount)
	assert.Equal(t, int64(0), ord.LoyaltyDiscount)
	assert.Nil(t, ord.DeliveryFee)
	assert.Equal(t, int64(28850), ord.FinalAmount)

	assert.Equal(t, OrderStatusPending, ord.Status)
	assert.Equal(t, PaymentStatusPending, ord.PaymentStatus)

	require.Len(t, ord.Items, 2)
	assert.Equal(t, int64(10000), ord.Items[0].UnitPrice)
	assert.Equal(t, int64(23600), ord.Items[0].TotalPrice)
	assert.Equal(t, 18.0, ord.Items[0].GSTRate)

	// one checklist row per item, none packed
	require.Len(t, ord.PackingItems, 2)
	for _, p := range ord.PackingItems {
		assert.False(t, p.Packed)
	}

	require.Len(t, ord.StatusHistory, 1)
	assert.Equal(t, OrderStatusPending, ord.StatusHistory[0].Status)
}

func TestCreateOrderEmptyCart(t *testing.T) {
	s, _ := newTestService(t)

	_, err := s.CreateOrder(1, nil, &CreateOrderRequest{ShippingAddress: testAddress()})
	assert.True(t, apperrors.IsValidation(err))
}

func TestCreateOrderRequiresShippingAddress(t *testing.T) {
	s, _ := newTestService(t)

	addr := testAddress()
	addr.PostalCode = ""
	_, err := s.CreateOrder(1, testLines(), &CreateOrderRequest{ShippingAddress: addr})
	assert.True(t, apperrors.IsValidation(err))
}

func TestCreateOrderRejectsSecondUnpaidOrder(t *testing.T) {
	s, _ := newTestService(t)

	_, err := s.CreateOrder(1, testLines(), &CreateOrderRequest{ShippingAddress: testAddress()})
	require.NoError(t, err)

	_, err = s.CreateOrder(1, testLines(), &CreateOrderRequest{ShippingAddress: testAddress()})
	assert.True(t, apperrors.IsConflict(err))

	// a different user is unaffected
	_, err = s.CreateOrder(2, testLines(), &CreateOrderRequest{ShippingAddress: testAddress()})
	assert.NoError(t, err)
}

func TestCreateOrderWithRedemption(t *testing.T) {
	s, ls := newTestService(t)
	seedBalance(t, ls, s.db, 1, 100)

	ord, err := s.CreateOrder(1, testLines(), &CreateOrderRequest{
		ShippingAddress: testAddress(),
		PointsToRedeem:  50,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5000), ord.LoyaltyDiscount)
	assert.Equal(t, int64(23850), ord.FinalAmount)

	account, err := ls.GetAccount(1)
	require.NoError(t, err)
	assert.Equal(t, int64(50), account.CurrentBalance)
}

func TestCreateOrderRedemptionOverCap(t *testing.T) {
	s, ls := newTestService(t)
	seedBalance(t, ls, s.db, 1, 1000)

	// subtotal 28850 paise -> cap is 86 points
	_, err := s.CreateOrder(1, testLines(), &CreateOrderRequest{
		ShippingAddress: testAddress(),
		PointsToRedeem:  87,
	})
	assert.ErrorIs(t, err, loyalty.ErrExceedsRedemptionCap)

	// nothing persisted
	var count int64
	require.NoError(t, s.db.Model(&Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateOrderRollbackRestoresBalance(t *testing.T) {
	s, ls := newTestService(t)
	seedBalance(t, ls, s.db, 1, 100)

	// force a failure after the redemption debit so the whole transaction
	// must roll back
	require.NoError(t, s.db.Migrator().DropTable(&StatusHistory{}))

	_, err := s.CreateOrder(1, testLines(), &CreateOrderRequest{
		ShippingAddress: testAddress(),
		PointsToRedeem:  50,
	})
	require.Error(t, err)

	account, err := ls.GetAccount(1)
	require.NoError(t, err)
	assert.Equal(t, int64(100), account.CurrentBalance)

	var orders int64
	require.NoError(t, s.db.Model(&Order{}).Count(&orders).Error)
	assert.Zero(t, orders)

	var redemptions int64
	require.NoError(t, s.db.Model(&loyalty.Transaction{}).
		Where("type = ?", loyalty.TransactionRedeemed).
		Count(&redemptions).Error)
	assert.Zero(t, redemptions)
}

func TestCreateOrderWithReward(t *testing.T) {
	s, ls := newTestService(t)
	seedBalance(t, ls, s.db, 1, 600)

	ord, err := s.CreateOrder(1, testLines(), &CreateOrderRequest{
		ShippingAddress: testAddress(),
		RewardID:        "free-delivery",
	})
	require.NoError(t, err)
	assert.Equal(t, "free-delivery", ord.RewardID)

	account, err := ls.GetAccount(1)
	require.NoError(t, err)
	assert.Equal(t, int64(100), account.CurrentBalance)

	// reward balance check accounts for cash points claimed alongside
	seedBalance(t, ls, s.db, 2, 520)
	_, err = s.CreateOrder(2, testLines(), &CreateOrderRequest{
		ShippingAddress: testAddress(),
		PointsToRedeem:  50,
		RewardID:        "tea-cups-30",
	})
	assert.ErrorIs(t, err, loyalty.ErrInsufficientBalance)
}

func createPaidOrder(t *testing.T, s *Service, userID uint) *Order {
	t.Helper()

	ord, err := s.CreateOrder(userID, testLines(), &CreateOrderRequest{ShippingAddress: testAddress()})
	require.NoError(t, err)

	ord, err = s.UpdateOrderStatus(ord.ID, OrderStatusConfirmed, 99, "")
	require.NoError(t, err)

	ord, err = s.ConfirmPaymentCompleted(ord.ID)
	require.NoError(t, err)
	return ord
}

func TestConfirmPaymentCompletedEarnsPoints(t *testing.T) {
	s, ls := newTestService(t)

	ord := createPaidOrder(t, s, 1)
	assert.Equal(t, OrderStatusPaymentCompleted, ord.Status)
	assert.Equal(t, PaymentStatusCompleted, ord.PaymentStatus)
	require.NotNil(t, ord.PaymentAt)

	// 1% of 28850 paise, floored to whole points
	account, err := ls.GetAccount(1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), account.CurrentBalance)
}

func TestGetOrderByNumber(t *testing.T) {
	s, _ := newTestService(t)
	ord, err := s.CreateOrder(1, testLines(), &CreateOrderRequest{ShippingAddress: testAddress()})
	require.NoError(t, err)

	found, err := s.GetOrderByNumber(ord.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, ord.ID, found.ID)
	require.Len(t, found.Items, 2)

	_, err = s.GetOrderByNumber("ORD-NOPE-0000")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateOrderStatusRejectsGuardedTransitions(t *testing.T) {
	s, _ := newTestService(t)
	ord, err := s.CreateOrder(1, testLines(), &CreateOrderRequest{ShippingAddress: testAddress()})
	require.NoError(t, err)

	for _, status := range []OrderStatus{
		OrderStatusPaymentCompleted, OrderStatusPacked,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled,
	} {
		_, err := s.UpdateOrderStatus(ord.ID, status, 99, "")
		assert.True(t, apperrors.IsValidation(err), "generic update to %s", status)
	}
}

func TestUpdateOrderStatusRejectsSkips(t *testing.T) {
	s, _ := newTestService(t)
	ord, err := s.CreateOrder(1, testLines(), &CreateOrderRequest{ShippingAddress: testAddress()})
	require.NoError(t, err)

	_, err = s.UpdateOrderStatus(ord.ID, OrderStatusPacking, 99, "")
	assert.True(t, apperrors.IsConflict(err))

	_, err = s.ConfirmDelivery(ord.ID, 99)
	assert.True(t, apperrors.IsConflict(err))
}

func TestTerminalOrdersRejectFurtherTransitions(t *testing.T) {
	s, _ := newTestService(t)
	ord, err := s.CreateOrder(1, testLines(), &CreateOrderRequest{ShippingAddress: testAddress()})
	require.NoError(t, err)

	_, err = s.CancelOrder(ord.ID, "changed my mind", 1)
	require.NoError(t, err)

	_, err = s.UpdateOrderStatus(ord.ID, OrderStatusConfirmed, 99, "")
	assert.True(t, apperrors.IsConflict(err))

	_, err = s.ConfirmDelivery(ord.ID, 99)
	assert.True(t, apperrors.IsConflict(err))
}

func TestPackingChecklistDrivesPackedTransition(t *testing.T) {
	s, _ := newTestService(t)
	ord := createPaidOrder(t, s, 1)

	ord, err := s.UpdateOrderStatus(ord.ID, OrderStatusPacking, 7, "")
	require.NoError(t, err)
	assert.Equal(t, OrderStatusPacking, ord.Status)
	require.NotNil(t, ord.PackingStartedAt)

	require.Len(t, ord.PackingItems, 2)

	ord, err = s.MarkItemPacked(ord.ID, ord.PackingItems[0].ID, 7)
	require.NoError(t, err)
	assert.Equal(t, OrderStatusPacking, ord.Status, "partial checklist keeps order in packing")

	// marking the same row twice fails
	_, err = s.MarkItemPacked(ord.ID, ord.PackingItems[0].ID, 7)
	assert.True(t, apperrors.IsConflict(err))

	ord, err = s.MarkItemPacked(ord.ID, ord.PackingItems[1].ID, 7)
	require.NoError(t, err)
	assert.Equal(t, OrderStatusPacked, ord.Status)
	require.NotNil(t, ord.PackedAt)
	require.NotNil(t, ord.PackedBy)
	assert.Equal(t, uint(7), *ord.PackedBy)
}

func TestRecordShipmentAndDelivery(t *testing.T) {
	s, _ := newTestService(t)
	ord := createPaidOrder(t, s, 1)

	ord, err := s.UpdateOrderStatus(ord.ID, OrderStatusPacking, 7, "")
	require.NoError(t, err)
	for _, p := range ord.PackingItems {
		ord, err = s.MarkItemPacked(ord.ID, p.ID, 7)
		require.NoError(t, err)
	}

	_, err = s.RecordShipment(ord.ID, 7, &ShipmentInfo{})
	assert.True(t, apperrors.IsValidation(err), "carrier is required")

	ord, err = s.RecordShipment(ord.ID, 7, &ShipmentInfo{
		Carrier:       "Gati",
		DriverName:    "Kumar",
		VehicleNumber: "TN-37-1234",
	})
	require.NoError(t, err)
	assert.Equal(t, OrderStatusShipped, ord.Status)
	assert.Equal(t, "Gati", ord.Carrier)
	require.NotNil(t, ord.ShippedAt)

	ord, err = s.ConfirmDelivery(ord.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, OrderStatusDelivered, ord.Status)
	require.NotNil(t, ord.DeliveredAt)
	require.NotNil(t, ord.DeliveredBy)
	assert.Equal(t, uint(1), *ord.DeliveredBy)
}

func TestRecordShipmentRequiresPacked(t *testing.T) {
	s, _ := newTestService(t)
	ord := createPaidOrder(t, s, 1)

	_, err := s.RecordShipment(ord.ID, 7, &ShipmentInfo{Carrier: "Gati"})
	assert.True(t, apperrors.IsConflict(err))
}

func TestSetDeliveryFeeRederivesFinalAmount(t *testing.T) {
	s, _ := newTestService(t)
	ord := createPaidOrder(t, s, 1)

	ord, err := s.SetDeliveryFee(ord.ID, 4000, 7)
	require.NoError(t, err)
	require.NotNil(t, ord.DeliveryFee)
	assert.Equal(t, int64(4000), *ord.DeliveryFee)
	assert.Equal(t, int64(32850), ord.FinalAmount)

	// adjusting replaces the fee rather than stacking it
	ord, err = s.SetDeliveryFee(ord.ID, 2000, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(30850), ord.FinalAmount)

	_, err = s.SetDeliveryFee(ord.ID, -1, 7)
	assert.True(t, apperrors.IsValidation(err))
}

func TestSetDeliveryFeeOnFreeDeliveryReward(t *testing.T) {
	s, ls := newTestService(t)
	seedBalance(t, ls, s.db, 1, 600)

	ord, err := s.CreateOrder(1, testLines(), &CreateOrderRequest{
		ShippingAddress: testAddress(),
		RewardID:        "free-delivery",
	})
	require.NoError(t, err)

	_, err = s.SetDeliveryFee(ord.ID, 4000, 7)
	assert.True(t, apperrors.IsValidation(err))

	ord, err = s.SetDeliveryFee(ord.ID, 0, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(28850), ord.FinalAmount)
}

func TestCancelOrderRefundsRedeemedPoints(t *testing.T) {
	s, ls := newTestService(t)
	seedBalance(t, ls, s.db, 1, 100)

	ord, err := s.CreateOrder(1, testLines(), &CreateOrderRequest{
		ShippingAddress: testAddress(),
		PointsToRedeem:  50,
	})
	require.NoError(t, err)

	account, err := ls.GetAccount(1)
	require.NoError(t, err)
	require.Equal(t, int64(50), account.CurrentBalance)

	ord, err = s.CancelOrder(ord.ID, "changed my mind", 1)
	require.NoError(t, err)
	assert.Equal(t, OrderStatusCancelled, ord.Status)
	require.NotNil(t, ord.CancelledAt)
	assert.Equal(t, "changed my mind", ord.CancelReason)

	account, err = ls.GetAccount(1)
	require.NoError(t, err)
	assert.Equal(t, int64(100), account.CurrentBalance)
	assert.Equal(t, int64(0), account.PointsRedeemed)
	assert.Equal(t, int64(100), account.PointsEarned, "a refund is not a new earning")

	// reversal appears as its own ledger row
	txns, err := ls.GetTransactions(1, 10)
	require.NoError(t, err)
	require.Len(t, txns, 3)
	assert.Equal(t, loyalty.TransactionReversed, txns[0].Type)
	assert.Equal(t, int64(50), txns[0].Points)
}

func TestCancelPaidOrderClawsBackEarnedPoints(t *testing.T) {
	s, ls := newTestService(t)
	ord := createPaidOrder(t, s, 1)

	account, err := ls.GetAccount(1)
	require.NoError(t, err)
	require.Equal(t, int64(2), account.CurrentBalance)

	_, err = s.CancelOrder(ord.ID, "refunded", 99)
	require.NoError(t, err)

	account, err = ls.GetAccount(1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), account.CurrentBalance)
	assert.Equal(t, int64(0), account.PointsEarned)

	txns, err := ls.GetTransactions(1, 10)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, loyalty.TransactionReversed, txns[0].Type)
	assert.Equal(t, int64(-2), txns[0].Points)
}

func TestCancelAfterSpendingEarningsLeavesDebt(t *testing.T) {
	s, ls := newTestService(t)

	// earn 2 points on the first order, spend them on the second
	first := createPaidOrder(t, s, 1)
	_, err := s.CreateOrder(1, testLines(), &CreateOrderRequest{
		ShippingAddress: testAddress(),
		PointsToRedeem:  2,
	})
	require.NoError(t, err)

	_, err = s.CancelOrder(first.ID, "refunded", 99)
	require.NoError(t, err)

	account, err := ls.GetAccount(1)
	require.NoError(t, err)
	assert.Equal(t, int64(-2), account.CurrentBalance, "spent earnings become debt")

	_, ledger, err := ls.ReconcileBalance(1)
	require.NoError(t, err)
	assert.Equal(t, int64(-2), ledger)
}

func TestCancelOrderAfterShippingRejected(t *testing.T) {
	s, _ := newTestService(t)
	ord := createPaidOrder(t, s, 1)

	ord, err := s.UpdateOrderStatus(ord.ID, OrderStatusPacking, 7, "")
	require.NoError(t, err)
	for _, p := range ord.PackingItems {
		ord, err = s.MarkItemPacked(ord.ID, p.ID, 7)
		require.NoError(t, err)
	}
	ord, err = s.RecordShipment(ord.ID, 7, &ShipmentInfo{Carrier: "Gati"})
	require.NoError(t, err)

	_, err = s.CancelOrder(ord.ID, "too late", 1)
	assert.True(t, apperrors.IsConflict(err))
}

func TestGetUserOrdersPagination(t *testing.T) {
	s, _ := newTestService(t)

	for i := 0; i < 3; i++ {
		ord, err := s.CreateOrder(1, testLines(), &CreateOrderRequest{ShippingAddress: testAddress()})
		require.NoError(t, err)
		_, err = s.CancelOrder(ord.ID, "make way for the next", 1)
		require.NoError(t, err)
	}

	resp, err := s.GetUserOrders(1, 1, 2)
	require.NoError(t, err)
	assert.Len(t, resp.Orders, 2)
	assert.Equal(t, int64(3), resp.Pagination.Total)
	assert.Equal(t, 2, resp.Pagination.TotalPages)
	assert.True(t, resp.Pagination.HasNext)
	assert.False(t, resp.Pagination.HasPrev)
}
