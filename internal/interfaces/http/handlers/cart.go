// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/franchise-backend/internal/config"
	"github.com/your-org/franchise-backend/internal/domain/cart"
	"github.com/your-org/franchise-backend/internal/domain/product"
	"github.com/your-org/franchise-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// CartHandler handles shopping cart endpoints
type CartHandler struct {
	cartService *cart.Service
	config      *config.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *CartHandler {
	catalog := product.NewService(db, cfg)
	return &CartHandler{
		cartService: cart.NewService(cart.NewRedisStore(redisClient), catalog, cfg),
		config:      cfg,
	}
}

// ownerKey derives the cart owner key from the authenticated user.
func (h *CartHandler) ownerKey(c *gin.Context) (string, bool) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return "", false
	}
	return fmt.Sprintf("user:%d", userID), true
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	owner, ok := h.ownerKey(c)
	if !ok {
		return
	}

	response, err := h.cartService.Get(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    response,
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	owner, ok := h.ownerKey(c)
	if !ok {
		return
	}

	var req cart.AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	response, err := h.cartService.Add(c.Request.Context(), owner, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart",
		"data":    response,
	})
}

// UpdateCartItem handles PUT /cart/items/:id
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	owner, ok := h.ownerKey(c)
	if !ok {
		return
	}

	itemID := c.Param("id")

	var req cart.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	response, err := h.cartService.UpdateQuantity(c.Request.Context(), owner, itemID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated",
		"data":    response,
	})
}

// RemoveCartItem handles DELETE /cart/items/:id
func (h *CartHandler) RemoveCartItem(c *gin.Context) {
	owner, ok := h.ownerKey(c)
	if !ok {
		return
	}

	response, err := h.cartService.RemoveItem(c.Request.Context(), owner, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart",
		"data":    response,
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	owner, ok := h.ownerKey(c)
	if !ok {
		return
	}

	if err := h.cartService.Clear(c.Request.Context(), owner); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared",
	})
}
