// internal/domain/loyalty/entity.go
package loyalty

import (
	"time"
)

// TransactionType classifies ledger entries
type TransactionType string

const (
	TransactionEarned   TransactionType = "earned"
	TransactionRedeemed TransactionType = "redeemed"
	TransactionReversed TransactionType = "reversed"
)

// Account caches a user's point balance. The ledger, not this row, is the
// source of truth; CurrentBalance must always equal the ledger sum. Reversing
// an earning after the points were spent elsewhere can leave the balance
// negative, recorded as debt against future earnings.
type Account struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	CurrentBalance int64     `gorm:"not null;default:0" json:"current_balance"`
	PointsEarned   int64     `gorm:"not null;default:0" json:"points_earned"`
	PointsRedeemed int64     `gorm:"not null;default:0" json:"points_redeemed"`
	TierLevel      string    `gorm:"size:20;default:'bronze'" json:"tier_level"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Transaction is an immutable ledger entry. Positive points are credits,
// negative points are debits; reversed rows undo an earlier entry on the
// same order. OrderID is nil for manual adjustments.
type Transaction struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	OrderID     *uint           `gorm:"index" json:"order_id"`
	Points      int64           `gorm:"not null" json:"points"`
	Type        TransactionType `gorm:"not null;size:20" json:"type"`
	Description string          `gorm:"size:255" json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TableName overrides
func (Account) TableName() string     { return "loyalty_accounts" }
func (Transaction) TableName() string { return "loyalty_transactions" }
