// internal/domain/loyalty/service.go
package loyalty

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/your-org/franchise-backend/internal/config"
	"gorm.io/gorm"
)

// Redemption validation failures. Both are reported to the caller before any
// persistence attempt.
var (
	ErrInsufficientBalance  = errors.New("insufficient loyalty point balance")
	ErrExceedsRedemptionCap = errors.New("redemption exceeds order cap")
)

// Service handles loyalty ledger business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new loyalty service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// MaxRedeemablePoints returns the cash-discount cap for an order: a
// percentage of the GST-inclusive subtotal, floored to whole points
// (1 point = ₹1 = 100 paise).
func (s *Service) MaxRedeemablePoints(subtotal int64) int64 {
	return subtotal * int64(s.config.Loyalty.RedemptionCapPercent) / 100 / 100
}

// EarnablePoints returns the points earned for a settled order amount
func (s *Service) EarnablePoints(finalAmount int64) int64 {
	return int64(math.Floor(float64(finalAmount) * s.config.Loyalty.EarnRatePercent / 100 / 100))
}

// ValidateRedemption checks a cash-discount redemption request against the
// account balance and the order-value cap. pointsCommitted covers points
// already claimed in the same checkout (e.g. a fixed-cost reward).
func (s *Service) ValidateRedemption(pointsRequested, currentBalance, orderSubtotal, pointsCommitted int64) error {
	if pointsRequested <= 0 {
		return fmt.Errorf("points requested must be positive")
	}
	if pointsRequested+pointsCommitted > currentBalance {
		return ErrInsufficientBalance
	}
	if pointsRequested > s.MaxRedeemablePoints(orderSubtotal) {
		return ErrExceedsRedemptionCap
	}
	return nil
}

// ApplyRedemption debits points inside the caller's transaction. The balance
// check and decrement are a single conditional UPDATE, so concurrent
// redemptions for the same user serialize on the row instead of racing a
// read-then-write. Rolls back with the enclosing transaction.
func (s *Service) ApplyRedemption(tx *gorm.DB, userID uint, points int64, orderID *uint, description string) (*Transaction, error) {
	if points <= 0 {
		return nil, fmt.Errorf("points must be positive")
	}

	result := tx.Model(&Account{}).
		Where("user_id = ? AND current_balance >= ?", userID, points).
		Updates(map[string]interface{}{
			"current_balance": gorm.Expr("current_balance - ?", points),
			"points_redeemed": gorm.Expr("points_redeemed + ?", points),
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to debit loyalty balance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrInsufficientBalance
	}

	txn := Transaction{
		UserID:      userID,
		OrderID:     orderID,
		Points:      -points,
		Type:        TransactionRedeemed,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := tx.Create(&txn).Error; err != nil {
		return nil, fmt.Errorf("failed to record redemption: %w", err)
	}

	return &txn, nil
}

// EarnPoints credits points inside the caller's transaction, creating the
// account on first earn.
func (s *Service) EarnPoints(tx *gorm.DB, userID uint, points int64, orderID *uint, description string) (*Transaction, error) {
	if points <= 0 {
		return nil, fmt.Errorf("points must be positive")
	}

	account, err := s.getOrCreateAccount(tx, userID)
	if err != nil {
		return nil, err
	}

	result := tx.Model(&Account{}).
		Where("id = ?", account.ID).
		Updates(map[string]interface{}{
			"current_balance": gorm.Expr("current_balance + ?", points),
			"points_earned":   gorm.Expr("points_earned + ?", points),
			"tier_level":      tierFor(account.PointsEarned + points),
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to credit loyalty balance: %w", result.Error)
	}

	txn := Transaction{
		UserID:      userID,
		OrderID:     orderID,
		Points:      points,
		Type:        TransactionEarned,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := tx.Create(&txn).Error; err != nil {
		return nil, fmt.Errorf("failed to record earning: %w", err)
	}

	return &txn, nil
}

// ReverseRedemption returns previously redeemed points to the account inside
// the caller's transaction, typically because the order they paid for was
// cancelled. Lifetime earnings and tier are untouched since nothing new was
// earned.
func (s *Service) ReverseRedemption(tx *gorm.DB, userID uint, points int64, orderID *uint, description string) (*Transaction, error) {
	if points <= 0 {
		return nil, fmt.Errorf("points must be positive")
	}

	result := tx.Model(&Account{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"current_balance": gorm.Expr("current_balance + ?", points),
			"points_redeemed": gorm.Expr("points_redeemed - ?", points),
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to return redeemed points: %w", result.Error)
	}

	txn := Transaction{
		UserID:      userID,
		OrderID:     orderID,
		Points:      points,
		Type:        TransactionReversed,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := tx.Create(&txn).Error; err != nil {
		return nil, fmt.Errorf("failed to record redemption reversal: %w", err)
	}

	return &txn, nil
}

// ReverseEarning claws back points credited for an order that was later
// cancelled. The debit is unconditional: if the points were already spent
// the balance goes negative and future earnings repay the debt. Lifetime
// earnings shrink so the tier can drop back.
func (s *Service) ReverseEarning(tx *gorm.DB, userID uint, points int64, orderID *uint, description string) (*Transaction, error) {
	if points <= 0 {
		return nil, fmt.Errorf("points must be positive")
	}

	account, err := s.getOrCreateAccount(tx, userID)
	if err != nil {
		return nil, err
	}

	result := tx.Model(&Account{}).
		Where("id = ?", account.ID).
		Updates(map[string]interface{}{
			"current_balance": gorm.Expr("current_balance - ?", points),
			"points_earned":   gorm.Expr("points_earned - ?", points),
			"tier_level":      tierFor(account.PointsEarned - points),
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to claw back earned points: %w", result.Error)
	}

	txn := Transaction{
		UserID:      userID,
		OrderID:     orderID,
		Points:      -points,
		Type:        TransactionReversed,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := tx.Create(&txn).Error; err != nil {
		return nil, fmt.Errorf("failed to record earning reversal: %w", err)
	}

	return &txn, nil
}

// AdjustPoints applies a manual staff correction to an account. Positive
// points credit, negative points debit; the debit shares the conditional
// guard with redemptions so an adjustment cannot overdraw the balance.
func (s *Service) AdjustPoints(userID uint, points int64, description string) (*Transaction, error) {
	if points == 0 {
		return nil, fmt.Errorf("points must be non-zero")
	}
	if points > 0 {
		return s.EarnPoints(s.db, userID, points, nil, description)
	}
	return s.ApplyRedemption(s.db, userID, -points, nil, description)
}

// GetAccount retrieves a user's loyalty account, creating an empty one on
// first access
func (s *Service) GetAccount(userID uint) (*Account, error) {
	return s.getOrCreateAccount(s.db, userID)
}

// GetTransactions returns the user's ledger entries, newest first
func (s *Service) GetTransactions(userID uint, limit int) ([]Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var txns []Transaction
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&txns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve loyalty transactions: %w", err)
	}
	return txns, nil
}

// ReconcileBalance compares the cached account balance against the ledger
// sum and reports both. A mismatch means the cache drifted from the source
// of truth.
func (s *Service) ReconcileBalance(userID uint) (cached int64, ledger int64, err error) {
	account, err := s.getOrCreateAccount(s.db, userID)
	if err != nil {
		return 0, 0, err
	}

	var sum struct{ Total int64 }
	err = s.db.Model(&Transaction{}).
		Select("COALESCE(SUM(points), 0) AS total").
		Where("user_id = ?", userID).
		Scan(&sum).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to sum ledger: %w", err)
	}

	return account.CurrentBalance, sum.Total, nil
}

func (s *Service) getOrCreateAccount(tx *gorm.DB, userID uint) (*Account, error) {
	var account Account
	err := tx.Where("user_id = ?", userID).First(&account).Error
	if err == nil {
		return &account, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load loyalty account: %w", err)
	}

	account = Account{UserID: userID, TierLevel: "bronze"}
	if err := tx.Create(&account).Error; err != nil {
		return nil, fmt.Errorf("failed to create loyalty account: %w", err)
	}
	return &account, nil
}

func tierFor(lifetimeEarned int64) string {
	switch {
	case lifetimeEarned >= 10000:
		return "gold"
	case lifetimeEarned >= 2500:
		return "silver"
	default:
		return "bronze"
	}
}
