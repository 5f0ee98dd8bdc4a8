// internal/domain/order/service.go
package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/your-org/franchise-backend/internal/config"
	"github.com/your-org/franchise-backend/internal/domain/loyalty"
	"github.com/your-org/franchise-backend/internal/domain/pricing"
	"github.com/your-org/franchise-backend/internal/pkg/apperrors"
	"gorm.io/gorm"
)

// NumberSource supplies pre-assigned order numbers. The service treats them
// as opaque unique strings and never parses them.
type NumberSource interface {
	OrderNumber() string
}

// Service handles order business logic
type Service struct {
	db             *gorm.DB
	config         *config.Config
	loyaltyService *loyalty.Service
	numbers        NumberSource
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config, loyaltyService *loyalty.Service, numbers NumberSource) *Service {
	return &Service{
		db:             db,
		config:         cfg,
		loyaltyService: loyaltyService,
		numbers:        numbers,
	}
}

// CreateOrderRequest represents order creation data
type CreateOrderRequest struct {
	ShippingAddress Address `json:"shipping_address" binding:"required"`
	PointsToRedeem  int64   `json:"points_to_redeem,omitempty"`
	RewardID        string  `json:"reward_id,omitempty"`
	Notes           string  `json:"notes,omitempty"`
}

// ShipmentInfo carries the tracking details staff enter when dispatching
type ShipmentInfo struct {
	Carrier        string `json:"carrier" binding:"required"`
	DriverName     string `json:"driver_name"`
	VehicleNumber  string `json:"vehicle_number"`
	TrackingNumber string `json:"tracking_number"`
}

// OrderListRequest represents order list query parameters
type OrderListRequest struct {
	Page      int         `form:"page,default=1"`
	Limit     int         `form:"limit,default=20"`
	Status    OrderStatus `form:"status"`
	UserID    uint        `form:"user_id"`
	SortBy    string      `form:"sort_by,default=created_at"`
	SortOrder string      `form:"sort_order,default=desc"`
}

// OrderResponse represents order response with pagination
type OrderResponse struct {
	Orders     []Order    `json:"orders"`
	Pagination Pagination `json:"pagination"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// CreateOrder settles a cart into a persisted order. The order row, its
// immutable items, the packing checklist and any loyalty redemption commit
// in one transaction; a failure anywhere leaves nothing behind.
func (s *Service) CreateOrder(userID uint, lines []pricing.Line, req *CreateOrderRequest) (*Order, error) {
	if len(lines) == 0 {
		return nil, apperrors.NewValidation("cart", "cart is empty at checkout")
	}
	if err := validateShippingAddress(&req.ShippingAddress); err != nil {
		return nil, err
	}

	// advisory guard against duplicate in-flight carts; the partial unique
	// index created in migrations closes the remaining race window
	pending, err := s.HasPendingUnpaidOrders(userID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, apperrors.NewConflict("user already has a pending unpaid order", string(OrderStatusPending))
	}

	totals := pricing.ComputeTotals(lines)

	// validate the full redemption request before touching storage
	var reward *loyalty.Reward
	var rewardCost int64
	if req.RewardID != "" {
		if reward, err = loyalty.FindReward(req.RewardID); err != nil {
			return nil, err
		}
		rewardCost = reward.PointsCost
	}
	if req.PointsToRedeem > 0 || reward != nil {
		account, err := s.loyaltyService.GetAccount(userID)
		if err != nil {
			return nil, err
		}
		if req.PointsToRedeem > 0 {
			if err := s.loyaltyService.ValidateRedemption(req.PointsToRedeem, account.CurrentBalance, totals.Subtotal, rewardCost); err != nil {
				return nil, err
			}
		}
		if reward != nil {
			if err := loyalty.ValidateRewardClaim(reward, account.CurrentBalance, req.PointsToRedeem); err != nil {
				return nil, err
			}
		}
	}

	loyaltyDiscount := req.PointsToRedeem * 100 // 1 point = ₹1 = 100 paise

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	newOrder := Order{
		OrderNumber:     s.numbers.OrderNumber(),
		UserID:          userID,
		Status:          OrderStatusPending,
		PaymentStatus:   PaymentStatusPending,
		TotalAmount:     totals.Subtotal,
		GSTAmount:       totals.GSTAmount,
		LoyaltyDiscount: loyaltyDiscount,
		DeliveryFee:     nil, // staff set it before shipping
		FinalAmount:     pricing.FinalAmount(totals.Subtotal, loyaltyDiscount, nil),
		RewardID:        req.RewardID,
		ShippingAddress: req.ShippingAddress,
		Notes:           req.Notes,
	}

	if err := tx.Create(&newOrder).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	for _, line := range lines {
		item := OrderItem{
			OrderID:    newOrder.ID,
			ProductID:  line.ID,
			Name:       line.Name,
			Quantity:   line.Quantity,
			UnitPrice:  line.BasePrice,
			TotalPrice: line.Price * int64(line.Quantity),
			GSTRate:    pricing.NormalizeRate(line.GSTRate),
		}
		if err := tx.Create(&item).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to create order item: %w", err)
		}

		packing := PackingItem{OrderID: newOrder.ID, OrderItemID: item.ID}
		if err := tx.Create(&packing).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to create packing checklist item: %w", err)
		}
	}

	if req.PointsToRedeem > 0 {
		desc := fmt.Sprintf("Redeemed on order %s", newOrder.OrderNumber)
		if _, err := s.loyaltyService.ApplyRedemption(tx, userID, req.PointsToRedeem, &newOrder.ID, desc); err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if reward != nil {
		desc := fmt.Sprintf("Reward %q on order %s", reward.Name, newOrder.OrderNumber)
		if _, err := s.loyaltyService.ApplyRedemption(tx, userID, reward.PointsCost, &newOrder.ID, desc); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	newOrder.AddStatusHistory(OrderStatusPending, "Order created", userID)
	if err := tx.Create(&newOrder.StatusHistory[0]).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create status history: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit order transaction: %w", err)
	}

	return s.GetOrder(newOrder.ID)
}

// HasPendingUnpaidOrders reports whether the user has an order in a
// non-terminal, unpaid state
func (s *Service) HasPendingUnpaidOrders(userID uint) (bool, error) {
	var count int64
	err := s.db.Model(&Order{}).
		Where("user_id = ? AND payment_status = ? AND status <> ?",
			userID, PaymentStatusPending, OrderStatusCancelled).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check pending orders: %w", err)
	}
	return count > 0, nil
}

// GetOrder retrieves a single order by ID
func (s *Service) GetOrder(id uint) (*Order, error) {
	var ord Order
	result := s.db.
		Preload("Items").
		Preload("PackingItems").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Where("id = ?", id).
		First(&ord)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", result.Error)
	}
	return &ord, nil
}

// GetOrderByNumber retrieves a single order by order number
func (s *Service) GetOrderByNumber(orderNumber string) (*Order, error) {
	var ord Order
	result := s.db.
		Preload("Items").
		Preload("PackingItems").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Where("order_number = ?", orderNumber).
		First(&ord)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", result.Error)
	}
	return &ord, nil
}

// GetOrders retrieves orders with filtering and pagination
func (s *Service) GetOrders(req *OrderListRequest) (*OrderResponse, error) {
	var orders []Order
	var total int64

	query := s.db.Model(&Order{}).Preload("Items")

	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.UserID > 0 {
		query = query.Where("user_id = ?", req.UserID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	query = query.Order(buildOrderClause(req.SortBy, req.SortOrder))

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}
	offset := (req.Page - 1) * req.Limit
	if err := query.Offset(offset).Limit(req.Limit).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return &OrderResponse{
		Orders: orders,
		Pagination: Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    req.Page < totalPages,
			HasPrev:    req.Page > 1,
		},
	}, nil
}

// GetUserOrders retrieves orders for a specific user
func (s *Service) GetUserOrders(userID uint, page, limit int) (*OrderResponse, error) {
	return s.GetOrders(&OrderListRequest{Page: page, Limit: limit, UserID: userID})
}

// UpdateOrderStatus applies a staff-driven workflow transition. Transitions
// with dedicated entry points (payment confirmation, packing checklist,
// shipment recording, delivery confirmation, cancellation) are rejected here
// so their side effects cannot be skipped.
func (s *Service) UpdateOrderStatus(orderID uint, newStatus OrderStatus, actorID uint, notes string) (*Order, error) {
	switch newStatus {
	case OrderStatusPaymentCompleted:
		return nil, apperrors.NewValidation("status", "payment completion comes from the payment gateway signal")
	case OrderStatusPacked:
		return nil, apperrors.NewValidation("status", "orders become packed by marking every packing checklist item")
	case OrderStatusShipped:
		return nil, apperrors.NewValidation("status", "shipping requires carrier details; use shipment recording")
	case OrderStatusCancelled:
		return nil, apperrors.NewValidation("status", "use order cancellation")
	case OrderStatusDelivered:
		return nil, apperrors.NewValidation("status", "use delivery confirmation")
	}

	ord, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if ord.IsTerminal() {
		return nil, apperrors.NewConflict("order is already closed", string(ord.Status))
	}

	if err := ValidateTransition(ord.Status, newStatus); err != nil {
		return nil, err
	}
	if err := ValidateState(newStatus, ord.PaymentStatus); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{"status": newStatus}
	switch newStatus {
	case OrderStatusConfirmed:
		updates["confirmed_at"] = now
		updates["confirmed_by"] = actorID
	case OrderStatusPacking:
		updates["packing_started_at"] = now
		updates["packing_started_by"] = actorID
	}

	if err := s.applyTransition(ord, newStatus, updates, notes, actorID); err != nil {
		return nil, err
	}
	return s.GetOrder(orderID)
}

// ConfirmPaymentCompleted consumes the external payment-gateway signal,
// moving both status axes and crediting loyalty earning. Earning fires
// here, on payment completion, as the single explicit trigger.
func (s *Service) ConfirmPaymentCompleted(orderID uint) (*Order, error) {
	ord, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if err := ValidateTransition(ord.Status, OrderStatusPaymentCompleted); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	result := tx.Model(&Order{}).
		Where("id = ? AND status = ?", orderID, ord.Status).
		Updates(map[string]interface{}{
			"status":         OrderStatusPaymentCompleted,
			"payment_status": PaymentStatusCompleted,
			"payment_at":     now,
		})
	if result.Error != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to record payment completion: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		current, _ := s.GetOrder(orderID)
		return nil, conflictFromCurrent("order changed while recording payment", current)
	}

	if points := s.loyaltyService.EarnablePoints(ord.FinalAmount); points > 0 {
		desc := fmt.Sprintf("Earned on order %s", ord.OrderNumber)
		if _, err := s.loyaltyService.EarnPoints(tx, ord.UserID, points, &ord.ID, desc); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	history := StatusHistory{
		OrderID:   orderID,
		Status:    OrderStatusPaymentCompleted,
		Comment:   "Payment verified by gateway",
		CreatedBy: ord.UserID,
		CreatedAt: now,
	}
	if err := tx.Create(&history).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create status history: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit payment transition: %w", err)
	}
	return s.GetOrder(orderID)
}

// MarkItemPacked marks one packing checklist row and transitions the order
// to packed when the checklist is complete. The packed timestamp and actor
// are relied upon downstream, so there is no bulk shortcut.
func (s *Service) MarkItemPacked(orderID, packingItemID, actorID uint) (*Order, error) {
	ord, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if ord.Status != OrderStatusPacking {
		return nil, apperrors.NewConflict("order is not being packed", string(ord.Status))
	}

	now := time.Now().UTC()
	result := s.db.Model(&PackingItem{}).
		Where("id = ? AND order_id = ? AND packed = ?", packingItemID, orderID, false).
		Updates(map[string]interface{}{
			"packed":    true,
			"packed_at": now,
			"packed_by": actorID,
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to mark item packed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.NewConflict("packing item missing or already packed", string(ord.Status))
	}

	var remaining int64
	err = s.db.Model(&PackingItem{}).
		Where("order_id = ? AND packed = ?", orderID, false).
		Count(&remaining).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count packing items: %w", err)
	}

	if remaining == 0 {
		updates := map[string]interface{}{
			"status":    OrderStatusPacked,
			"packed_at": now,
			"packed_by": actorID,
		}
		if err := s.applyTransition(ord, OrderStatusPacked, updates, "All items packed", actorID); err != nil {
			return nil, err
		}
	}
	return s.GetOrder(orderID)
}

// RecordShipment dispatches a packed order with the carrier details staff
// entered
func (s *Service) RecordShipment(orderID, actorID uint, info *ShipmentInfo) (*Order, error) {
	if info.Carrier == "" {
		return nil, apperrors.NewValidation("carrier", "carrier is required to ship")
	}

	ord, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if err := ValidateTransition(ord.Status, OrderStatusShipped); err != nil {
		return nil, err
	}
	if err := ValidateState(OrderStatusShipped, ord.PaymentStatus); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{
		"status":          OrderStatusShipped,
		"shipped_at":      now,
		"shipped_by":      actorID,
		"carrier":         info.Carrier,
		"driver_name":     info.DriverName,
		"vehicle_number":  info.VehicleNumber,
		"tracking_number": info.TrackingNumber,
	}
	comment := fmt.Sprintf("Shipped via %s", info.Carrier)
	if err := s.applyTransition(ord, OrderStatusShipped, updates, comment, actorID); err != nil {
		return nil, err
	}
	return s.GetOrder(orderID)
}

// ConfirmDelivery closes out a shipped order. Customers confirm receipt of
// their own orders; staff confirm on the customer's behalf.
func (s *Service) ConfirmDelivery(orderID, actorID uint) (*Order, error) {
	ord, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if ord.IsTerminal() {
		return nil, apperrors.NewConflict("order is already closed", string(ord.Status))
	}
	if err := ValidateTransition(ord.Status, OrderStatusDelivered); err != nil {
		return nil, err
	}
	if err := ValidateState(OrderStatusDelivered, ord.PaymentStatus); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"status":       OrderStatusDelivered,
		"delivered_at": time.Now().UTC(),
		"delivered_by": actorID,
	}
	if err := s.applyTransition(ord, OrderStatusDelivered, updates, "Delivery confirmed", actorID); err != nil {
		return nil, err
	}
	return s.GetOrder(orderID)
}

// SetDeliveryFee fills in the fee staff left null at checkout. The final
// amount is re-derived from its parts, never incremented, so repeated
// adjustments stay correct.
func (s *Service) SetDeliveryFee(orderID uint, fee int64, actorID uint) (*Order, error) {
	if fee < 0 {
		return nil, apperrors.NewValidation("delivery_fee", "delivery fee cannot be negative")
	}

	ord, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if !ord.IsPreShipped() {
		return nil, apperrors.NewConflict("delivery fee must be set before shipping", string(ord.Status))
	}

	if ord.RewardID == "free-delivery" && fee > 0 {
		return nil, apperrors.NewValidation("delivery_fee", "order claimed the free delivery reward")
	}

	final := pricing.FinalAmount(ord.TotalAmount, ord.LoyaltyDiscount, &fee)
	err = s.db.Model(&Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"delivery_fee": fee,
			"final_amount": final,
		}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to set delivery fee: %w", err)
	}
	return s.GetOrder(orderID)
}

// CancelOrder cancels a pre-shipped order and unwinds its loyalty activity:
// redeemed points come back, and points earned when the payment settled are
// clawed back.
func (s *Service) CancelOrder(orderID uint, reason string, actorID uint) (*Order, error) {
	ord, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if !ord.IsPreShipped() {
		return nil, apperrors.NewConflict("order cannot be cancelled after shipping", string(ord.Status))
	}

	now := time.Now().UTC()
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	result := tx.Model(&Order{}).
		Where("id = ? AND status = ?", orderID, ord.Status).
		Updates(map[string]interface{}{
			"status":        OrderStatusCancelled,
			"cancelled_at":  now,
			"cancelled_by":  actorID,
			"cancel_reason": reason,
		})
	if result.Error != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to cancel order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		current, _ := s.GetOrder(orderID)
		return nil, conflictFromCurrent("order changed while cancelling", current)
	}

	// sum both sides of the ledger before writing reversal rows, so the
	// reversals themselves are not picked up by the sums
	var redeemed, earned struct{ Total int64 }
	err = tx.Model(&loyalty.Transaction{}).
		Select("COALESCE(SUM(-points), 0) AS total").
		Where("order_id = ? AND type = ?", orderID, loyalty.TransactionRedeemed).
		Scan(&redeemed).Error
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to sum redeemed points: %w", err)
	}
	err = tx.Model(&loyalty.Transaction{}).
		Select("COALESCE(SUM(points), 0) AS total").
		Where("order_id = ? AND type = ?", orderID, loyalty.TransactionEarned).
		Scan(&earned).Error
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to sum earned points: %w", err)
	}

	if redeemed.Total > 0 {
		desc := fmt.Sprintf("Points returned for cancelled order %s", ord.OrderNumber)
		if _, err := s.loyaltyService.ReverseRedemption(tx, ord.UserID, redeemed.Total, &ord.ID, desc); err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if earned.Total > 0 {
		desc := fmt.Sprintf("Earnings clawed back for cancelled order %s", ord.OrderNumber)
		if _, err := s.loyaltyService.ReverseEarning(tx, ord.UserID, earned.Total, &ord.ID, desc); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	history := StatusHistory{
		OrderID:   orderID,
		Status:    OrderStatusCancelled,
		Comment:   fmt.Sprintf("Order cancelled: %s", reason),
		CreatedBy: actorID,
		CreatedAt: now,
	}
	if err := tx.Create(&history).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create status history: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit cancellation: %w", err)
	}
	return s.GetOrder(orderID)
}

// applyTransition performs an optimistic status update keyed on the status
// the caller observed, so two staff members acting at once cannot
// double-process the same step.
func (s *Service) applyTransition(ord *Order, newStatus OrderStatus, updates map[string]interface{}, comment string, actorID uint) error {
	result := s.db.Model(&Order{}).
		Where("id = ? AND status = ?", ord.ID, ord.Status).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		current, _ := s.GetOrder(ord.ID)
		return conflictFromCurrent("order status changed concurrently", current)
	}

	ord.AddStatusHistory(newStatus, comment, actorID)
	if err := s.db.Create(&ord.StatusHistory[len(ord.StatusHistory)-1]).Error; err != nil {
		return fmt.Errorf("failed to create status history: %w", err)
	}
	return nil
}

func conflictFromCurrent(message string, current *Order) error {
	state := ""
	if current != nil {
		state = string(current.Status)
	}
	return apperrors.NewConflict(message, state)
}

func validateShippingAddress(addr *Address) error {
	switch {
	case addr.Name == "":
		return apperrors.NewValidation("shipping_address.name", "recipient name is required")
	case addr.AddressLine1 == "":
		return apperrors.NewValidation("shipping_address.address_line1", "address line is required")
	case addr.City == "":
		return apperrors.NewValidation("shipping_address.city", "city is required")
	case addr.State == "":
		return apperrors.NewValidation("shipping_address.state", "state is required")
	case addr.PostalCode == "":
		return apperrors.NewValidation("shipping_address.postal_code", "postal code is required")
	case addr.Phone == "":
		return apperrors.NewValidation("shipping_address.phone", "phone is required")
	}
	return nil
}

func buildOrderClause(sortBy, sortOrder string) string {
	validSortFields := map[string]bool{
		"created_at":   true,
		"updated_at":   true,
		"final_amount": true,
		"status":       true,
		"order_number": true,
	}
	if !validSortFields[sortBy] {
		sortBy = "created_at"
	}
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}
	return fmt.Sprintf("%s %s", sortBy, sortOrder)
}
