// internal/domain/invoice/entity.go
package invoice

import "time"

// Invoice is a settled financial document. It is derived from the order's
// immutable item rows at generation time and never edited afterwards;
// regeneration for the same order returns the stored document.
type Invoice struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	InvoiceNumber string `gorm:"uniqueIndex;not null;size:50" json:"invoice_number"`
	OrderID       uint   `gorm:"uniqueIndex;not null" json:"order_id"`
	OrderNumber   string `gorm:"not null;size:50" json:"order_number"`
	UserID        uint   `gorm:"not null;index" json:"user_id"`

	IssuedAt time.Time `gorm:"not null" json:"issued_at"`
	DueAt    time.Time `gorm:"not null" json:"due_at"`

	// Amounts in paise, re-derived from order items at generation
	Subtotal        int64 `gorm:"not null" json:"subtotal"`
	GSTAmount       int64 `gorm:"not null" json:"gst_amount"`
	LoyaltyDiscount int64 `gorm:"not null;default:0" json:"loyalty_discount"`
	DeliveryFee     int64 `gorm:"not null;default:0" json:"delivery_fee"`
	FinalAmount     int64 `gorm:"not null" json:"final_amount"`

	CreatedAt time.Time `json:"created_at"`

	Lines []Line `gorm:"foreignKey:InvoiceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"lines"`
}

// Line is one invoice row with its GST breakdown recomputed from the
// GST-exclusive unit price.
type Line struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	InvoiceID uint    `gorm:"not null;index" json:"invoice_id"`
	ProductID string  `gorm:"not null;size:100" json:"product_id"`
	Name      string  `gorm:"not null;size:255" json:"name"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	UnitPrice int64   `gorm:"not null" json:"unit_price"` // GST-exclusive, paise
	GSTRate   float64 `gorm:"not null" json:"gst_rate"`
	GSTAmount int64   `gorm:"not null" json:"gst_amount"`  // line GST, paise
	LineTotal int64   `gorm:"not null" json:"line_total"`  // GST-inclusive, paise
}

// TableName overrides
func (Invoice) TableName() string { return "invoices" }
func (Line) TableName() string    { return "invoice_lines" }
