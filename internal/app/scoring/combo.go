package scoring

import (
	"github.com/timescore-labs/timescore/internal/config"
	"github.com/timescore-labs/timescore/internal/domain"
)

// Balance dampening multipliers. Fixed, not tunables.
const (
	repeatDecay        = 0.8 // same behavior ≥3 times in the window
	shortIntervalDecay = 0.7 // identical behavior within the short interval
	recoverySpamDecay  = 0.8 // recovery level with ≥2 recent recoveries
)

// Combo tracks streak bonuses and anti-abuse dampening over the bounded
// recent-behavior window.
type Combo struct {
	maxBonus       float64
	reboundBonus   float64
	sameFieldBonus float64
	repeatCount    int
}

// NewCombo builds the combo engine from scoring config.
func NewCombo(cfg config.ScoringConfig) *Combo {
	return &Combo{
		maxBonus:       cfg.MaxComboBonus,
		reboundBonus:   cfg.ReboundBonus,
		sameFieldBonus: cfg.SameFieldBonus,
		repeatCount:    cfg.RepeatDampenCount,
	}
}

// Coefficient returns the combo multiplier for one behavior.
// Recovery levels carry no combo of their own — their coefficient is 1.0.
//
// The streak counts positive behaviors (S/A/B) across the whole window,
// ladder 0→1.0, 1→1.1, 2→1.2, 3+→max. A positive behavior immediately
// after a negative one earns the rebound bonus; a non-empty streak that
// shares the current level earns the same-field bonus.
func (c *Combo) Coefficient(level domain.Level, recent []domain.Behavior) float64 {
	if level.IsRecovery() {
		return 1.0
	}

	streak := 0
	sameField := true
	for _, b := range recent {
		if b.Level.IsPositive() {
			streak++
			if b.Level != level {
				sameField = false
			}
		}
	}

	var coeff float64
	switch streak {
	case 0:
		coeff = 1.0
	case 1:
		coeff = 1.1
	case 2:
		coeff = 1.2
	default:
		coeff = c.maxBonus
	}

	if level.IsPositive() && len(recent) > 0 && recent[len(recent)-1].Level.IsNegative() {
		coeff *= c.reboundBonus
	}

	if sameField && streak >= 1 {
		coeff *= c.sameFieldBonus
	}

	return coeff
}

// ApplyBalance applies the anti-abuse dampening mechanisms to a score.
// The three multipliers are independent and compose multiplicatively:
//
//	(a) same specific behavior repeated ≥3 times in the window → ×0.8
//	(b) identical behavior within the short interval (caller-supplied) → ×0.7
//	(c) recovery level with ≥2 recent recovery behaviors → ×0.8
func (c *Combo) ApplyBalance(score float64, sameBehaviorCount int, shortInterval bool, level domain.Level, recent []domain.Behavior) float64 {
	adjusted := score

	if sameBehaviorCount >= c.repeatCount {
		adjusted *= repeatDecay
	}

	if shortInterval {
		adjusted *= shortIntervalDecay
	}

	if level.IsRecovery() {
		window := domain.UserState{Recent: recent}
		if window.RecoveryCount() >= 2 {
			adjusted *= recoverySpamDecay
		}
	}

	return adjusted
}
