// Package scoring implements the behavior scoring engine: the per-level
// rate catalog, recovery sub-tier inference, combo and anti-abuse
// coefficients, and the score calculator that composes them.
// Everything here is a pure computation over inputs — callers own
// persistence and state mutation.
package scoring

import (
	"fmt"

	"github.com/timescore-labs/timescore/internal/config"
	"github.com/timescore-labs/timescore/internal/domain"
)

// Entry is one level's scoring and energy rates.
type Entry struct {
	Level            domain.Level
	BaseScorePerMin  float64
	EnergyCostPerMin float64 // negative = recovery
	Anchor           string
	Example          string
}

// IsRecovery reports whether this entry restores energy.
func (e Entry) IsRecovery() bool { return e.EnergyCostPerMin < 0 }

// Catalog is the per-level rate table, built once from config.
// Lookup is pure — no side effects, no mutation.
type Catalog struct {
	entries map[domain.Level]Entry
}

// NewCatalog builds the catalog from the closed level config.
// Bare R maps to a zero-rate placeholder; inference resolves it to a
// sub-tier before any rate is consumed.
func NewCatalog(cfg config.LevelsConfig) *Catalog {
	c := &Catalog{entries: make(map[domain.Level]Entry, len(domain.AllLevels))}
	add := func(level domain.Level, r config.LevelRates) {
		c.entries[level] = Entry{
			Level:            level,
			BaseScorePerMin:  r.BaseScorePerMin,
			EnergyCostPerMin: r.EnergyCostPerMin,
			Anchor:           r.Anchor,
			Example:          r.Example,
		}
	}
	add(domain.LevelS, cfg.S)
	add(domain.LevelA, cfg.A)
	add(domain.LevelB, cfg.B)
	add(domain.LevelC, cfg.C)
	add(domain.LevelD, cfg.D)
	add(domain.LevelR1, cfg.R1)
	add(domain.LevelR2, cfg.R2)
	add(domain.LevelR3, cfg.R3)
	c.entries[domain.LevelR] = Entry{Level: domain.LevelR, Anchor: "recovery", Example: "walk, meditation, nap"}
	return c
}

// Lookup returns the catalog entry for a level.
func (c *Catalog) Lookup(level domain.Level) (Entry, error) {
	e, ok := c.entries[level]
	if !ok {
		return Entry{}, fmt.Errorf("lookup level %q: %w", level, domain.ErrUnknownLevel)
	}
	return e, nil
}

// Sublevels returns the three recovery sub-tier entries in ascending depth.
func (c *Catalog) Sublevels() [3]Entry {
	return [3]Entry{
		c.entries[domain.LevelR1],
		c.entries[domain.LevelR2],
		c.entries[domain.LevelR3],
	}
}
