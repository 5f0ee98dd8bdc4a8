// internal/domain/order/entity.go
package order

import (
	"time"

	"gorm.io/gorm"
)

// OrderStatus is the workflow axis of an order's state. It is tracked
// separately from PaymentStatus (the money-collected axis); the transition
// table in status.go validates the combination.
type OrderStatus string

const (
	OrderStatusPending          OrderStatus = "pending"
	OrderStatusConfirmed        OrderStatus = "confirmed"
	OrderStatusPaymentCompleted OrderStatus = "payment_completed"
	OrderStatusPacking          OrderStatus = "packing"
	OrderStatusPacked           OrderStatus = "packed"
	OrderStatusShipped          OrderStatus = "shipped"
	OrderStatusDelivered        OrderStatus = "delivered"
	OrderStatusCancelled        OrderStatus = "cancelled"
)

// PaymentStatus represents payment status
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// Order represents the order entity. Monetary amounts are in paise.
// TotalAmount is the pre-discount GST-inclusive subtotal; FinalAmount is the
// amount actually collected and is always re-derived, never incremented.
type Order struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	OrderNumber   string        `gorm:"uniqueIndex;not null;size:50" json:"order_number"`
	UserID        uint          `gorm:"not null;index" json:"user_id"`
	Status        OrderStatus   `gorm:"not null;default:'pending';size:30" json:"status"`
	PaymentStatus PaymentStatus `gorm:"not null;default:'pending';size:20" json:"payment_status"`

	// Financial information
	TotalAmount     int64  `gorm:"not null" json:"total_amount"` // GST-inclusive subtotal
	GSTAmount       int64  `gorm:"not null" json:"gst_amount"`
	LoyaltyDiscount int64  `gorm:"not null;default:0" json:"loyalty_discount"`
	DeliveryFee     *int64 `json:"delivery_fee"` // null until staff set it
	FinalAmount     int64  `gorm:"not null" json:"final_amount"`
	RewardID        string `gorm:"size:50" json:"reward_id,omitempty"` // claimed non-cash reward

	// Shipping
	ShippingAddress Address `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`
	Carrier         string  `gorm:"size:100" json:"carrier"`
	DriverName      string  `gorm:"size:100" json:"driver_name"`
	VehicleNumber   string  `gorm:"size:50" json:"vehicle_number"`
	TrackingNumber  string  `gorm:"size:100" json:"tracking_number"`

	Notes string `gorm:"type:text" json:"notes"`

	// Lifecycle timestamps and the staff actor who performed each transition
	ConfirmedAt      *time.Time `json:"confirmed_at"`
	ConfirmedBy      *uint      `json:"confirmed_by"`
	PaymentAt        *time.Time `json:"payment_at"`
	PackingStartedAt *time.Time `json:"packing_started_at"`
	PackingStartedBy *uint      `json:"packing_started_by"`
	PackedAt         *time.Time `json:"packed_at"`
	PackedBy         *uint      `json:"packed_by"`
	ShippedAt        *time.Time `json:"shipped_at"`
	ShippedBy        *uint      `json:"shipped_by"`
	DeliveredAt      *time.Time `json:"delivered_at"`
	DeliveredBy      *uint      `json:"delivered_by"`
	CancelledAt      *time.Time `json:"cancelled_at"`
	CancelledBy      *uint      `json:"cancelled_by"`
	CancelReason     string     `gorm:"size:255" json:"cancel_reason,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items         []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
	PackingItems  []PackingItem   `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"packing_items,omitempty"`
	StatusHistory []StatusHistory `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"status_history,omitempty"`
}

// OrderItem is the immutable pricing record created atomically with the
// order. The invoice generator re-reads these rows; they are never mutated.
type OrderItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OrderID    uint      `gorm:"not null;index" json:"order_id"`
	ProductID  string    `gorm:"not null;size:100;index" json:"product_id"`
	Name       string    `gorm:"not null;size:255" json:"name"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	UnitPrice  int64     `gorm:"not null" json:"unit_price"`  // GST-exclusive, paise
	TotalPrice int64     `gorm:"not null" json:"total_price"` // GST-inclusive line total
	GSTRate    float64   `gorm:"not null" json:"gst_rate"`
	CreatedAt  time.Time `json:"created_at"`
}

// PackingItem is one checklist row per order item. The packing->packed
// transition fires only when every row is marked packed by staff.
type PackingItem struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	OrderID     uint       `gorm:"not null;index" json:"order_id"`
	OrderItemID uint       `gorm:"not null;index" json:"order_item_id"`
	Packed      bool       `gorm:"not null;default:false" json:"packed"`
	PackedAt    *time.Time `json:"packed_at"`
	PackedBy    *uint      `json:"packed_by"`
}

// StatusHistory tracks order status changes
type StatusHistory struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	OrderID   uint        `gorm:"not null;index" json:"order_id"`
	Status    OrderStatus `gorm:"not null;size:30" json:"status"`
	Comment   string      `gorm:"type:text" json:"comment"`
	CreatedBy uint        `gorm:"index" json:"created_by"`
	CreatedAt time.Time   `json:"created_at"`
}

// Address represents the structured shipping address (embedded in Order)
type Address struct {
	Name         string `gorm:"size:100" json:"name"`
	AddressLine1 string `gorm:"size:255" json:"address_line1"`
	AddressLine2 string `gorm:"size:255" json:"address_line2"`
	City         string `gorm:"size:100" json:"city"`
	State        string `gorm:"size:100" json:"state"`
	PostalCode   string `gorm:"size:20" json:"postal_code"`
	Phone        string `gorm:"size:20" json:"phone"`
}

// TableName overrides
func (Order) TableName() string         { return "orders" }
func (OrderItem) TableName() string     { return "order_items" }
func (PackingItem) TableName() string   { return "order_packing_items" }
func (StatusHistory) TableName() string { return "order_status_history" }

// IsPreShipped reports whether the order has not yet left the warehouse.
// Cancellation is only permitted in these states.
func (o *Order) IsPreShipped() bool {
	switch o.Status {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPaymentCompleted,
		OrderStatusPacking, OrderStatusPacked:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are permitted
func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusDelivered || o.Status == OrderStatusCancelled
}

// AddStatusHistory appends a status change to the in-memory history
func (o *Order) AddStatusHistory(status OrderStatus, comment string, createdBy uint) {
	o.StatusHistory = append(o.StatusHistory, StatusHistory{
		OrderID:   o.ID,
		Status:    status,
		Comment:   comment,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
	})
}
