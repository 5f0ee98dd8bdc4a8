// internal/interfaces/http/handlers/invoice.go
package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/franchise-backend/internal/config"
	"github.com/your-org/franchise-backend/internal/domain/invoice"
	"github.com/your-org/franchise-backend/internal/domain/loyalty"
	"github.com/your-org/franchise-backend/internal/domain/order"
	"github.com/your-org/franchise-backend/internal/interfaces/http/middleware"
	"github.com/your-org/franchise-backend/internal/pkg/idgen"
	"github.com/your-org/franchise-backend/internal/pkg/pdf"
	"gorm.io/gorm"
)

// InvoiceHandler handles invoice endpoints
type InvoiceHandler struct {
	invoiceService *invoice.Service
	orderService   *order.Service
	pdfService     *pdf.Service
	config         *config.Config
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(db *gorm.DB, cfg *config.Config) *InvoiceHandler {
	numbers := idgen.New()
	loyaltyService := loyalty.NewService(db, cfg)
	return &InvoiceHandler{
		invoiceService: invoice.NewService(db, cfg, numbers),
		orderService:   order.NewService(db, cfg, loyaltyService, numbers),
		pdfService:     pdf.NewService(cfg),
		config:         cfg,
	}
}

// GenerateInvoice handles POST /orders/:id/invoice
func (h *InvoiceHandler) GenerateInvoice(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}

	inv, err := h.invoiceService.Generate(orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Invoice generated successfully",
		"data":    inv,
	})
}

// GetInvoice handles GET /orders/:id/invoice
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}

	inv, err := h.invoiceService.GetByOrderID(orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	if !h.canView(c, inv) {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Access denied",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Invoice retrieved successfully",
		"data":    inv,
	})
}

// GetInvoiceByNumber handles GET /invoices/number/:number
func (h *InvoiceHandler) GetInvoiceByNumber(c *gin.Context) {
	invoiceNumber := c.Param("number")
	if invoiceNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invoice number is required",
		})
		return
	}

	inv, err := h.invoiceService.GetByNumber(invoiceNumber)
	if err != nil {
		respondError(c, err)
		return
	}

	if !h.canView(c, inv) {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Access denied",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Invoice retrieved successfully",
		"data":    inv,
	})
}

// GetMyInvoices handles GET /invoices/my
func (h *InvoiceHandler) GetMyInvoices(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	invoices, err := h.invoiceService.GetUserInvoices(userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Invoices retrieved successfully",
		"data":    invoices,
	})
}

// DownloadInvoicePDF handles GET /orders/:id/invoice/pdf
func (h *InvoiceHandler) DownloadInvoicePDF(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}

	inv, err := h.invoiceService.GetByOrderID(orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	if !h.canView(c, inv) {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Access denied",
		})
		return
	}

	ord, err := h.orderService.GetOrder(orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	buf, err := h.pdfService.GenerateInvoice(inv, ord)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to render invoice PDF",
		})
		return
	}

	filename := fmt.Sprintf("%s.pdf", inv.InvoiceNumber)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func (h *InvoiceHandler) orderID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return 0, false
	}
	return uint(id), true
}

func (h *InvoiceHandler) canView(c *gin.Context, inv *invoice.Invoice) bool {
	role, ok := middleware.GetRoleFromContext(c)
	if ok && role.IsStaff() {
		return true
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	return ok && inv.UserID == userID
}
