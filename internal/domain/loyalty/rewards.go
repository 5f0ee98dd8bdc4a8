// internal/domain/loyalty/rewards.go
package loyalty

import "github.com/your-org/franchise-backend/internal/pkg/apperrors"

// Reward is a fixed-cost non-cash redemption. Rewards are validated against
// their own point cost, independent of the percentage cap on cash discounts;
// at most one reward may be claimed per order.
type Reward struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PointsCost int64  `json:"points_cost"`
}

var rewardCatalog = []Reward{
	{ID: "free-delivery", Name: "Free Delivery", PointsCost: 500},
	{ID: "tea-cups-30", Name: "30 Tea Cups", PointsCost: 500},
}

// Rewards returns the orderable reward catalog
func Rewards() []Reward {
	out := make([]Reward, len(rewardCatalog))
	copy(out, rewardCatalog)
	return out
}

// FindReward looks up a reward by id
func FindReward(id string) (*Reward, error) {
	for _, r := range rewardCatalog {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, apperrors.NewValidation("reward_id", "unknown reward")
}

// ValidateRewardClaim checks a reward claim against the balance remaining
// after any cash-discount points already committed in the same checkout.
func ValidateRewardClaim(reward *Reward, balance, pointsCommitted int64) error {
	if reward.PointsCost+pointsCommitted > balance {
		return ErrInsufficientBalance
	}
	return nil
}
