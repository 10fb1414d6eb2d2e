package domain

import "time"

// WishStatus tracks the wish lifecycle.
type WishStatus string

const (
	WishPending  WishStatus = "pending"
	WishRedeemed WishStatus = "redeemed"
	WishArchived WishStatus = "archived"
)

// Wish is a point-cost goal redeemable once accumulated score meets its
// cost. Redemption is plain bookkeeping outside the scoring core.
type Wish struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Cost       int64      `json:"cost"`
	Status     WishStatus `json:"status"`
	Progress   float64    `json:"progress"` // 0.0–1.0
	CreatedAt  time.Time  `json:"created_at"`
	RedeemedAt time.Time  `json:"redeemed_at,omitempty"`
}

// ProgressFor returns the progress fraction toward the cost, clamped to 1.
func (w Wish) ProgressFor(score float64) float64 {
	if w.Cost <= 0 {
		return 1.0
	}
	p := score / float64(w.Cost)
	if p > 1.0 {
		p = 1.0
	}
	if p < 0 {
		p = 0
	}
	return p
}

// CanRedeem reports whether the wish is pending and affordable.
func (w Wish) CanRedeem(score float64) bool {
	return w.Status == WishPending && score >= float64(w.Cost)
}
