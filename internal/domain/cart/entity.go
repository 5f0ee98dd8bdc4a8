// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/your-org/franchise-backend/internal/domain/pricing"
)

// Cart is a client-held working cart. It exists only in the session store
// until checkout; orders are the permanent record.
type Cart struct {
	OwnerKey  string         `json:"owner_key"`
	Items     []pricing.Line `json:"items"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// IsExpired reports whether the cart passed its expiry window. Stale carts
// are discarded on the next load, not on a timer.
func (c *Cart) IsExpired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// Find returns the line with the given item id, or nil
func (c *Cart) Find(itemID string) *pricing.Line {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return &c.Items[i]
		}
	}
	return nil
}

// Remove drops the line with the given item id and reports whether it existed
func (c *Cart) Remove(itemID string) bool {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// Totals is the cart summary returned to clients
type Totals struct {
	ItemCount     int   `json:"item_count"`
	TotalQuantity int   `json:"total_quantity"`
	Subtotal      int64 `json:"subtotal"`
	GSTAmount     int64 `json:"gst_amount"`
}

// Product is the catalog shape this cart consumes. BasePrice is
// GST-exclusive; a zero GSTRate means the catalog default applies.
type Product struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	BasePrice int64   `json:"base_price"`
	GSTRate   float64 `json:"gst_rate"`
	Active    bool    `json:"active"`
}
