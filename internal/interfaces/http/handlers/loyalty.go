// internal/interfaces/http/handlers/loyalty.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/franchise-backend/internal/config"
	"github.com/your-org/franchise-backend/internal/domain/loyalty"
	"github.com/your-org/franchise-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// LoyaltyHandler handles loyalty account endpoints
type LoyaltyHandler struct {
	loyaltyService *loyalty.Service
	config         *config.Config
}

// NewLoyaltyHandler creates a new loyalty handler
func NewLoyaltyHandler(db *gorm.DB, cfg *config.Config) *LoyaltyHandler {
	return &LoyaltyHandler{
		loyaltyService: loyalty.NewService(db, cfg),
		config:         cfg,
	}
}

// GetAccount handles GET /loyalty/account
func (h *LoyaltyHandler) GetAccount(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	account, err := h.loyaltyService.GetAccount(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Loyalty account retrieved successfully",
		"data":    account,
	})
}

// GetTransactions handles GET /loyalty/transactions
func (h *LoyaltyHandler) GetTransactions(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	transactions, err := h.loyaltyService.GetTransactions(userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Transactions retrieved successfully",
		"data":    transactions,
	})
}

// GetRewards handles GET /loyalty/rewards
func (h *LoyaltyHandler) GetRewards(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Rewards retrieved successfully",
		"data":    loyalty.Rewards(),
	})
}

// AdjustPoints handles POST /staff/loyalty/:user_id/adjust, a manual
// ledger correction against a customer's account
func (h *LoyaltyHandler) AdjustPoints(c *gin.Context) {
	userID, ok := pathID(c, "user_id", "Invalid user ID")
	if !ok {
		return
	}

	var req struct {
		Points      int64  `json:"points" binding:"required"`
		Description string `json:"description" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	txn, err := h.loyaltyService.AdjustPoints(userID, req.Points, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Loyalty points adjusted",
		"data":    txn,
	})
}
