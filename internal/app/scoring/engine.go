package scoring

import (
	"time"

	"github.com/timescore-labs/timescore/internal/app/energy"
	"github.com/timescore-labs/timescore/internal/config"
	"github.com/timescore-labs/timescore/internal/domain"
)

// Engine is the facade over the scoring core: catalog, sub-tier
// inference, combo/balance, calculator, and the energy rules. It is
// built once from an immutable config value and shared by the CLI,
// tracker, and HTTP layers. The engine never touches storage — callers
// persist the returned values.
type Engine struct {
	cfg     config.Config
	catalog *Catalog
	combo   *Combo
	calc    *Calculator
}

// NewEngine constructs the engine from an already-validated config.
func NewEngine(cfg config.Config) *Engine {
	catalog := NewCatalog(cfg.Levels)
	combo := NewCombo(cfg.Scoring)
	return &Engine{
		cfg:     cfg,
		catalog: catalog,
		combo:   combo,
		calc:    NewCalculator(catalog, combo, cfg.Energy, cfg.Scoring),
	}
}

// Catalog exposes the per-level rate table.
func (e *Engine) Catalog() *Catalog { return e.catalog }

// ScoreBehavior computes the final score and energy delta for one
// behavior against the given state. Pure — state is read, not mutated.
func (e *Engine) ScoreBehavior(b domain.Behavior, state domain.UserState) (ScoreResult, error) {
	return e.calc.Score(b, state)
}

// ComboCoefficient exposes the streak multiplier for a level.
func (e *Engine) ComboCoefficient(level domain.Level, recent []domain.Behavior) float64 {
	return e.combo.Coefficient(level, recent)
}

// ApplyBalance applies the anti-abuse dampening pass to a score.
func (e *Engine) ApplyBalance(score float64, sameBehaviorCount int, shortInterval bool, level domain.Level, recent []domain.Behavior) float64 {
	return e.combo.ApplyBalance(score, sameBehaviorCount, shortInterval, level, recent)
}

// ApplyEnergyDelta mutates the state's energy by a scored delta,
// clamped to bounds, and returns the new energy.
func (e *Engine) ApplyEnergyDelta(state *domain.UserState, delta float64) float64 {
	return energy.NewManager(e.cfg.Energy, state).ApplyDelta(delta)
}

// ApplyPassiveRecovery credits idle-time recovery and returns the new
// energy.
func (e *Engine) ApplyPassiveRecovery(state *domain.UserState, now time.Time) float64 {
	return energy.NewManager(e.cfg.Energy, state).ApplyPassiveRecovery(now)
}

// DailyReset applies the overnight recovery at a calendar-day boundary.
func (e *Engine) DailyReset(state *domain.UserState) float64 {
	return energy.NewManager(e.cfg.Energy, state).DailyReset()
}

// EnergyStatus returns the banded qualitative energy label.
func (e *Engine) EnergyStatus(state domain.UserState) string {
	st := state
	return energy.NewManager(e.cfg.Energy, &st).StatusLabel()
}
