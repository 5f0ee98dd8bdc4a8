// internal/domain/invoice/service.go
package invoice

import (
	"errors"
	"fmt"
	"time"

	"github.com/your-org/franchise-backend/internal/config"
	"github.com/your-org/franchise-backend/internal/domain/loyalty"
	"github.com/your-org/franchise-backend/internal/domain/order"
	"github.com/your-org/franchise-backend/internal/domain/pricing"
	"github.com/your-org/franchise-backend/internal/pkg/apperrors"
	"gorm.io/gorm"
)

// NumberSource supplies pre-assigned invoice numbers, treated as opaque
// unique strings.
type NumberSource interface {
	InvoiceNumber() string
}

// Service generates and retrieves invoices
type Service struct {
	db      *gorm.DB
	config  *config.Config
	numbers NumberSource
}

// NewService creates a new invoice service
func NewService(db *gorm.DB, cfg *config.Config, numbers NumberSource) *Service {
	return &Service{
		db:      db,
		config:  cfg,
		numbers: numbers,
	}
}

// Generate builds the invoice for a paid, shipped order by recomputing
// every line from the order's immutable item rows. Stored order totals are
// checked against the recomputation and against the loyalty ledger; a
// mismatch beyond rounding tolerance aborts with a reconciliation error
// rather than issuing a document with numbers nobody can trust. Generation
// waits for shipment because the delivery fee can still change before the
// order ships, and the issued document must be final. Generation is
// idempotent per order.
func (s *Service) Generate(orderID uint) (*Invoice, error) {
	if existing, err := s.GetByOrderID(orderID); err == nil {
		return existing, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	var ord order.Order
	err := s.db.Preload("Items").Where("id = ?", orderID).First(&ord).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	if ord.PaymentStatus != order.PaymentStatusCompleted {
		return nil, apperrors.NewConflict("invoice requires a completed payment", string(ord.Status))
	}
	if ord.Status != order.OrderStatusShipped && ord.Status != order.OrderStatusDelivered {
		return nil, apperrors.NewConflict("invoice is issued once the order has shipped and the delivery fee is final", string(ord.Status))
	}
	if len(ord.Items) == 0 {
		return nil, &apperrors.ReconciliationError{OrderID: ord.ID, Stored: ord.TotalAmount, Computed: 0}
	}

	lines := make([]Line, 0, len(ord.Items))
	var subtotal, gstTotal int64
	for _, item := range ord.Items {
		unitGST := pricing.UnitGST(item.UnitPrice, item.GSTRate)
		lineGST := unitGST * int64(item.Quantity)
		lineTotal := (item.UnitPrice + unitGST) * int64(item.Quantity)

		subtotal += lineTotal
		gstTotal += lineGST
		lines = append(lines, Line{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			GSTRate:   item.GSTRate,
			GSTAmount: lineGST,
			LineTotal: lineTotal,
		})
	}

	// at most one paisa of rounding drift per line
	tolerance := int64(len(ord.Items))
	if drift(subtotal, ord.TotalAmount) > tolerance {
		return nil, &apperrors.ReconciliationError{OrderID: ord.ID, Stored: ord.TotalAmount, Computed: subtotal}
	}
	if drift(gstTotal, ord.GSTAmount) > tolerance {
		return nil, &apperrors.ReconciliationError{OrderID: ord.ID, Stored: ord.GSTAmount, Computed: gstTotal}
	}

	if err := s.reconcileLoyalty(&ord); err != nil {
		return nil, err
	}

	if final := pricing.FinalAmount(ord.TotalAmount, ord.LoyaltyDiscount, ord.DeliveryFee); final != ord.FinalAmount {
		return nil, &apperrors.ReconciliationError{OrderID: ord.ID, Stored: ord.FinalAmount, Computed: final}
	}

	now := time.Now().UTC()
	inv := Invoice{
		InvoiceNumber:   s.numbers.InvoiceNumber(),
		OrderID:         ord.ID,
		OrderNumber:     ord.OrderNumber,
		UserID:          ord.UserID,
		IssuedAt:        now,
		DueAt:           now.AddDate(0, 0, s.config.Invoice.DueDays),
		Subtotal:        ord.TotalAmount,
		GSTAmount:       ord.GSTAmount,
		LoyaltyDiscount: ord.LoyaltyDiscount,
		DeliveryFee:     feeOrZero(ord.DeliveryFee),
		FinalAmount:     ord.FinalAmount,
		Lines:           lines,
	}

	if err := s.db.Create(&inv).Error; err != nil {
		// lost a race with a concurrent generation for the same order
		if existing, lookupErr := s.GetByOrderID(orderID); lookupErr == nil {
			return existing, nil
		}
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}
	return &inv, nil
}

// reconcileLoyalty cross-checks the order's stored discount against the
// redemption ledger. Reward claims burn points without a cash discount, so
// their fixed cost is added to the expected ledger total.
func (s *Service) reconcileLoyalty(ord *order.Order) error {
	var redeemed struct{ Total int64 }
	err := s.db.Model(&loyalty.Transaction{}).
		Select("COALESCE(SUM(-points), 0) AS total").
		Where("order_id = ? AND type = ?", ord.ID, loyalty.TransactionRedeemed).
		Scan(&redeemed).Error
	if err != nil {
		return fmt.Errorf("failed to sum redemption ledger: %w", err)
	}

	var rewardCost int64
	if ord.RewardID != "" {
		reward, err := loyalty.FindReward(ord.RewardID)
		if err != nil {
			return err
		}
		rewardCost = reward.PointsCost
	}

	// ledger total should be the cash discount in points plus the reward cost
	ledgerDiscount := (redeemed.Total - rewardCost) * 100
	if ledgerDiscount != ord.LoyaltyDiscount {
		return &apperrors.ReconciliationError{
			OrderID:  ord.ID,
			Stored:   ord.LoyaltyDiscount,
			Computed: ledgerDiscount,
		}
	}
	return nil
}

// GetByOrderID retrieves the invoice for an order
func (s *Service) GetByOrderID(orderID uint) (*Invoice, error) {
	var inv Invoice
	err := s.db.Preload("Lines").Where("order_id = ?", orderID).First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve invoice: %w", err)
	}
	return &inv, nil
}

// GetByNumber retrieves an invoice by its number
func (s *Service) GetByNumber(invoiceNumber string) (*Invoice, error) {
	var inv Invoice
	err := s.db.Preload("Lines").Where("invoice_number = ?", invoiceNumber).First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve invoice: %w", err)
	}
	return &inv, nil
}

// GetUserInvoices lists a user's invoices, newest first
func (s *Service) GetUserInvoices(userID uint, limit int) ([]Invoice, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	var invoices []Invoice
	err := s.db.Preload("Lines").
		Where("user_id = ?", userID).
		Order("issued_at DESC").
		Limit(limit).
		Find(&invoices).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}

func drift(a, b int64) int64 {
	if a > b {
		return a - b
	}
	return b - a
}

func feeOrZero(fee *int64) int64 {
	if fee == nil {
		return 0
	}
	return *fee
}
