// internal/interfaces/http/handlers/order.go
package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/franchise-backend/internal/config"
	"github.com/your-org/franchise-backend/internal/domain/cart"
	"github.com/your-org/franchise-backend/internal/domain/loyalty"
	"github.com/your-org/franchise-backend/internal/domain/order"
	"github.com/your-org/franchise-backend/internal/domain/product"
	"github.com/your-org/franchise-backend/internal/interfaces/http/middleware"
	"github.com/your-org/franchise-backend/internal/pkg/idgen"
	"github.com/your-org/franchise-backend/internal/pkg/roles"
	"gorm.io/gorm"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	orderService *order.Service
	cartService  *cart.Service
	config       *config.Config
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *OrderHandler {
	loyaltyService := loyalty.NewService(db, cfg)
	catalog := product.NewService(db, cfg)
	return &OrderHandler{
		orderService: order.NewService(db, cfg, loyaltyService, idgen.New()),
		cartService:  cart.NewService(cart.NewRedisStore(redisClient), catalog, cfg),
		config:       cfg,
	}
}

// CreateOrder handles POST /orders. The order is settled from the
// authenticated user's cart; on success the cart is cleared.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	var req order.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	owner := fmt.Sprintf("user:%d", userID)
	lines, err := h.cartService.Lines(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err)
		return
	}

	ord, err := h.orderService.CreateOrder(userID, lines, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	// The cart is a staging area; once settled it should not linger.
	if err := h.cartService.Clear(c.Request.Context(), owner); err != nil {
		logrus.WithError(err).WithField("order_number", ord.OrderNumber).
			Warn("Failed to clear cart after checkout")
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order created successfully",
		"data":    ord,
	})
}

// GetOrders handles GET /orders (staff listing with filters)
func (h *OrderHandler) GetOrders(c *gin.Context) {
	var req order.OrderListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	response, err := h.orderService.GetOrders(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"data":    response,
	})
}

// GetMyOrders handles GET /orders/my
func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	response, err := h.orderService.GetUserOrders(userID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"data":    response,
	})
}

// GetOrder handles GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}

	ord, err := h.orderService.GetOrder(orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	if !h.canViewOrder(c, ord) {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Access denied",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order retrieved successfully",
		"data":    ord,
	})
}

// GetOrderByNumber handles GET /orders/number/:number
func (h *OrderHandler) GetOrderByNumber(c *gin.Context) {
	orderNumber := c.Param("number")
	if orderNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Order number is required",
		})
		return
	}

	ord, err := h.orderService.GetOrderByNumber(orderNumber)
	if err != nil {
		respondError(c, err)
		return
	}

	if !h.canViewOrder(c, ord) {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Access denied",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order retrieved successfully",
		"data":    ord,
	})
}

// UpdateOrderStatus handles PUT /orders/:id/status for the plain
// workflow moves. Payment, packing completion, shipping, delivery and
// cancellation have their own endpoints.
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(c)

	var req struct {
		Status string `json:"status" binding:"required"`
		Notes  string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	ord, err := h.orderService.UpdateOrderStatus(orderID, order.OrderStatus(req.Status), actorID, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated",
		"data":    ord,
	})
}

// ConfirmPayment handles POST /orders/:id/payment/confirm
func (h *OrderHandler) ConfirmPayment(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}

	ord, err := h.orderService.ConfirmPaymentCompleted(orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment confirmed",
		"data":    ord,
	})
}

// MarkItemPacked handles POST /orders/:id/packing/:item_id
func (h *OrderHandler) MarkItemPacked(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}

	itemID, err := strconv.ParseUint(c.Param("item_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid packing item ID",
		})
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(c)

	ord, err := h.orderService.MarkItemPacked(orderID, uint(itemID), actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Packing item updated",
		"data":    ord,
	})
}

// RecordShipment handles POST /orders/:id/ship
func (h *OrderHandler) RecordShipment(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}

	var req order.ShipmentInfo
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(c)

	ord, err := h.orderService.RecordShipment(orderID, actorID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Shipment recorded",
		"data":    ord,
	})
}

// SetDeliveryFee handles PUT /orders/:id/delivery-fee
func (h *OrderHandler) SetDeliveryFee(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}

	var req struct {
		DeliveryFee int64 `json:"delivery_fee"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(c)

	ord, err := h.orderService.SetDeliveryFee(orderID, req.DeliveryFee, actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Delivery fee updated",
		"data":    ord,
	})
}

// ConfirmDelivery handles POST /orders/:id/deliver. Customers confirm
// receipt of their own orders; staff with the delivery permission can
// confirm any order.
func (h *OrderHandler) ConfirmDelivery(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}

	ord, err := h.orderService.GetOrder(orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	if !h.canViewOrder(c, ord) {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Access denied",
		})
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(c)

	ord, err = h.orderService.ConfirmDelivery(orderID, actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Delivery confirmed",
		"data":    ord,
	})
}

// CancelOrder handles POST /orders/:id/cancel
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}

	ord, err := h.orderService.GetOrder(orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	if !h.canCancelOrder(c, ord) {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Access denied",
		})
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	// Reason is optional; an empty body is fine.
	_ = c.ShouldBindJSON(&req)

	actorID, _ := middleware.GetUserIDFromContext(c)

	ord, err = h.orderService.CancelOrder(orderID, req.Reason, actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order cancelled",
		"data":    ord,
	})
}

func (h *OrderHandler) orderID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return 0, false
	}
	return uint(id), true
}

// canViewOrder allows staff to see every order and customers only
// their own.
func (h *OrderHandler) canViewOrder(c *gin.Context, ord *order.Order) bool {
	role, ok := middleware.GetRoleFromContext(c)
	if ok && role.IsStaff() {
		return true
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	return ok && ord.UserID == userID
}

// canCancelOrder allows roles holding the cancellation permission to cancel
// any order, and customers their own.
func (h *OrderHandler) canCancelOrder(c *gin.Context, ord *order.Order) bool {
	role, ok := middleware.GetRoleFromContext(c)
	if ok && role.Can(roles.PermCancelOrder) {
		return true
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	return ok && ord.UserID == userID
}
