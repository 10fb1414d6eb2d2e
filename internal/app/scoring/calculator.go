package scoring

import (
	"fmt"

	"github.com/timescore-labs/timescore/internal/config"
	"github.com/timescore-labs/timescore/internal/domain"
)

// ScoreResult is the outcome of scoring one behavior.
// FinalScore is pre-balance — anti-abuse dampening is a separate pass
// because two of its inputs (repeat count, short-interval flag) come
// from the caller's stored history.
type ScoreResult struct {
	FinalScore    float64      `json:"final_score"`
	EnergyDelta   float64      `json:"energy_delta"`
	IsRecovery    bool         `json:"is_recovery"`
	ResolvedLevel domain.Level `json:"resolved_level"`
	BaseScore     float64      `json:"base_score"`
	DynamicCoeff  float64      `json:"dynamic_coeff"`
}

// Calculator computes the final score and energy delta for one behavior.
// Pure over its inputs: it never mutates the user state it reads.
type Calculator struct {
	catalog *Catalog
	combo   *Combo
	energy  config.EnergyConfig
	scoring config.ScoringConfig
}

// NewCalculator builds a calculator over an explicit catalog and combo
// engine.
func NewCalculator(catalog *Catalog, combo *Combo, energy config.EnergyConfig, scoring config.ScoringConfig) *Calculator {
	return &Calculator{catalog: catalog, combo: combo, energy: energy, scoring: scoring}
}

// Score runs the full pipeline for one behavior:
// resolve sub-tier → base score → energy coefficient → combo coefficient
// → start bonus → novice bonus, with the energy delta computed on an
// independent path so a zero-score gate still drains (or restores) energy.
func (c *Calculator) Score(b domain.Behavior, state domain.UserState) (ScoreResult, error) {
	resolved := ResolveSublevel(b.Level, b.Duration, b.Mood, state.Recent)
	entry, err := c.catalog.Lookup(resolved)
	if err != nil {
		return ScoreResult{}, fmt.Errorf("score behavior: %w", err)
	}

	result := ScoreResult{
		ResolvedLevel: resolved,
		IsRecovery:    entry.IsRecovery(),
	}

	startBonus := b.Duration <= c.scoring.StartBonusDuration

	// Energy accounting is independent of the scoring gate.
	delta := entry.EnergyCostPerMin * float64(b.Duration)
	if startBonus {
		delta *= c.scoring.StartBonusEnergy
	}
	// Recovery lands harder when the pool is depleted.
	if state.CurrentEnergy < c.energy.LowThreshold && entry.EnergyCostPerMin < 0 {
		delta *= c.energy.LowEnergyRecoveryBonus
	}
	result.EnergyDelta = delta

	// Zero-score gate: an empty pool earns nothing.
	if state.CurrentEnergy <= c.energy.ZeroThreshold {
		return result, nil
	}

	base := entry.BaseScorePerMin * float64(b.Duration)
	energyCoeff := EnergyCoefficient(state.CurrentEnergy)
	comboCoeff := c.combo.Coefficient(resolved, state.Recent)

	scoreBonus := 1.0
	if startBonus {
		scoreBonus = c.scoring.StartBonusScore
	}

	noviceBonus := 1.0
	if state.BeginnerPeriod {
		noviceBonus = c.scoring.NoviceBonus
	}

	result.BaseScore = base
	result.DynamicCoeff = energyCoeff * comboCoeff
	result.FinalScore = base * energyCoeff * comboCoeff * scoreBonus * noviceBonus

	return result, nil
}

// EnergyCoefficient maps current energy to a score multiplier.
// Piecewise bands, defined by explicit formulas — continuity at the
// breakpoints is not a goal.
func EnergyCoefficient(energy float64) float64 {
	switch {
	case energy > 70:
		return 1.0 + (energy-70)*0.01
	case energy > 40:
		return 0.85 + (energy-40)*0.005
	default:
		return 0.7
	}
}
