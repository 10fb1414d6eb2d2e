// Package wish implements wish-redemption bookkeeping: user-defined
// goals with a point cost, redeemed against accumulated score.
// Plain arithmetic over the store — the scoring engine is not involved.
package wish

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/timescore-labs/timescore/internal/config"
	"github.com/timescore-labs/timescore/internal/domain"
	"github.com/timescore-labs/timescore/internal/infra/metrics"
	"github.com/timescore-labs/timescore/internal/infra/sqlite"
)

const maxNameLen = 50

// Service manages wishes and redemption.
type Service struct {
	db  *sqlite.DB
	cfg config.WishConfig
	now func() time.Time
}

// NewService creates a wish service.
func NewService(db *sqlite.DB, cfg config.WishConfig) *Service {
	return &Service{db: db, cfg: cfg, now: time.Now}
}

// SetClock overrides the time source. Test hook.
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// Add creates a new pending wish.
func (s *Service) Add(name string, cost int64) (*domain.Wish, error) {
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > maxNameLen {
		return nil, fmt.Errorf("wish name must be 1–%d characters", maxNameLen)
	}
	if cost < s.cfg.MinCost {
		return nil, fmt.Errorf("cost %d below minimum %d: %w", cost, s.cfg.MinCost, domain.ErrWishCostTooLow)
	}

	w := domain.Wish{
		ID:        uuid.NewString(),
		Name:      name,
		Cost:      cost,
		Status:    domain.WishPending,
		CreatedAt: s.now(),
	}
	if err := s.db.InsertWish(w); err != nil {
		return nil, fmt.Errorf("insert wish: %w", err)
	}
	return &w, nil
}

// List returns all wishes with progress refreshed against the current
// available score.
func (s *Service) List() ([]domain.Wish, error) {
	available, err := s.AvailableScore()
	if err != nil {
		return nil, err
	}

	wishes, err := s.db.ListWishes()
	if err != nil {
		return nil, err
	}

	for i := range wishes {
		if wishes[i].Status != domain.WishPending {
			continue
		}
		p := wishes[i].ProgressFor(available)
		if p != wishes[i].Progress {
			wishes[i].Progress = p
			if err := s.db.UpdateWishProgress(wishes[i].ID, p); err != nil {
				return nil, err
			}
		}
	}
	return wishes, nil
}

// Redeem marks a pending wish redeemed when the available score covers
// its cost. Redeemed costs are subtracted from future availability.
func (s *Service) Redeem(id string) (*domain.Wish, error) {
	w, err := s.db.GetWish(id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrWishNotFound
	}
	switch w.Status {
	case domain.WishRedeemed:
		return nil, domain.ErrWishRedeemed
	case domain.WishArchived:
		return nil, domain.ErrWishArchived
	}

	available, err := s.AvailableScore()
	if err != nil {
		return nil, err
	}
	if available < float64(w.Cost) {
		return nil, fmt.Errorf("need %d points, have %.1f: %w", w.Cost, available, domain.ErrInsufficientScore)
	}

	at := s.now()
	ok, err := s.db.MarkWishRedeemed(id, at)
	if err != nil {
		return nil, fmt.Errorf("redeem wish: %w", err)
	}
	if !ok {
		return nil, domain.ErrWishRedeemed
	}

	w.Status = domain.WishRedeemed
	w.RedeemedAt = at
	w.Progress = 1.0
	metrics.WishesRedeemed.Inc()
	return w, nil
}

// Archive retires a pending wish without spending points.
// Archiving an already-archived wish is a no-op.
func (s *Service) Archive(id string) (*domain.Wish, error) {
	w, err := s.db.GetWish(id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrWishNotFound
	}
	if w.Status == domain.WishRedeemed {
		return nil, domain.ErrWishRedeemed
	}
	if w.Status == domain.WishArchived {
		return w, nil
	}

	if _, err := s.db.MarkWishArchived(id); err != nil {
		return nil, fmt.Errorf("archive wish: %w", err)
	}
	w.Status = domain.WishArchived
	return w, nil
}

// AvailableScore is lifetime score minus the cost of redeemed wishes.
func (s *Service) AvailableScore() (float64, error) {
	total, err := s.db.TotalScore()
	if err != nil {
		return 0, err
	}
	spent, err := s.db.RedeemedCost()
	if err != nil {
		return 0, err
	}
	return total - float64(spent), nil
}
