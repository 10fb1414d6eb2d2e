// Package energy owns the user's energy pool: consumption and recovery
// deltas, passive idle recovery, the daily sleep reset, and the banded
// status label. Every operation clamps to [0, max] — numeric edge cases
// never raise.
package energy

import (
	"time"

	"github.com/timescore-labs/timescore/internal/config"
	"github.com/timescore-labs/timescore/internal/domain"
)

// Status bands as a percentage of the energy ceiling, descending.
const (
	bandEnergized = 80.0
	bandGood      = 60.0
	bandSteady    = 40.0
	bandLow       = 20.0
)

// Manager evolves a single user's energy scalar in place.
// Not safe for concurrent use — the caller serializes access.
type Manager struct {
	cfg   config.EnergyConfig
	state *domain.UserState
}

// NewManager wraps a user state with the energy rules.
func NewManager(cfg config.EnergyConfig, state *domain.UserState) *Manager {
	return &Manager{cfg: cfg, state: state}
}

// ApplyDelta applies an energy cost and returns the new energy.
// Sign convention: positive cost drains, negative cost (recovery)
// restores. Overflow and underflow are absorbed by clamping.
func (m *Manager) ApplyDelta(cost float64) float64 {
	e := m.state.CurrentEnergy - cost
	if e > m.cfg.Max {
		e = m.cfg.Max
	}
	if e < 0 {
		e = 0
	}
	m.state.CurrentEnergy = e
	return e
}

// PassiveRecovery returns the energy recovered by idling since the last
// activity. No credit without a prior timestamp or at gaps at or below
// the idle threshold — there is no partial credit.
func (m *Manager) PassiveRecovery(now time.Time) float64 {
	if m.state.LastActivity.IsZero() {
		return 0
	}
	elapsed := now.Sub(m.state.LastActivity).Minutes()
	if elapsed <= m.cfg.IdleMinutes {
		return 0
	}
	return elapsed * m.cfg.PassiveRecoveryRate
}

// ApplyPassiveRecovery computes and applies idle recovery, returning the
// resulting energy.
func (m *Manager) ApplyPassiveRecovery(now time.Time) float64 {
	recovered := m.PassiveRecovery(now)
	if recovered > 0 {
		return m.ApplyDelta(-recovered)
	}
	return m.state.CurrentEnergy
}

// DailyReset adds the overnight sleep recovery, clamped to the ceiling.
// Without any recorded activity the distinct no-sleep-data default
// applies instead. Invoked once per calendar-day boundary by the caller;
// the manager does not track wall-clock scheduling.
func (m *Manager) DailyReset() float64 {
	recovery := m.cfg.SleepRecovery
	if m.state.LastActivity.IsZero() {
		recovery = m.cfg.NoSleepRecovery
	}
	return m.ApplyDelta(-recovery)
}

// IsLow reports whether energy is below the low threshold.
func (m *Manager) IsLow() bool {
	return m.state.CurrentEnergy < m.cfg.LowThreshold
}

// StatusLabel describes the current energy band qualitatively.
// Bands are fixed percentages of the ceiling, descending and
// non-overlapping, covering the full range.
func (m *Manager) StatusLabel() string {
	pct := 0.0
	if m.cfg.Max > 0 {
		pct = m.state.CurrentEnergy / m.cfg.Max * 100
	}
	switch {
	case pct > bandEnergized:
		return "energized"
	case pct > bandGood:
		return "good"
	case pct > bandSteady:
		return "steady"
	case pct > bandLow:
		return "low"
	default:
		return "depleted"
	}
}
