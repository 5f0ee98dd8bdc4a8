// internal/domain/product/entity.go
package product

import (
	"time"

	"gorm.io/gorm"
)

// Product is a catalog entry: packaged teas, masala blends, cups and other
// franchise stock. BasePrice is GST-exclusive; the GST-inclusive shelf price
// is derived at cart time, never stored here.
type Product struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	SKU         string         `gorm:"uniqueIndex;not null;size:100" json:"sku"`
	Name        string         `gorm:"not null;size:255" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	BasePrice   int64          `gorm:"not null" json:"base_price"` // GST-exclusive, paise
	GSTRate     float64        `gorm:"not null;default:0" json:"gst_rate"` // 0 means config default
	CategoryID  uint           `gorm:"not null;index" json:"category_id"`
	WeightGrams int            `json:"weight_grams"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category"`
}

// Category groups catalog entries (teas, blends, accessories)
type Category struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null;size:255" json:"name"`
	Slug        string         `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	Description string         `gorm:"size:500" json:"description"`
	SortOrder   int            `gorm:"default:0" json:"sort_order"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

// TableName overrides the table name for Product
func (Product) TableName() string {
	return "products"
}

// TableName overrides the table name for Category
func (Category) TableName() string {
	return "categories"
}
