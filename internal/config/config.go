// Package config manages TimeScore configuration.
// Config is loaded once at startup from $TIMESCORE_HOME/config.toml and
// passed into constructors as an immutable value — there is no ambient
// global config cache. Missing or unreadable files fall back to defaults;
// out-of-range values after the merge are a hard startup error.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/timescore-labs/timescore/internal/domain"
)

// Config holds all TimeScore configuration.
type Config struct {
	Energy  EnergyConfig  `toml:"energy"`
	Scoring ScoringConfig `toml:"scoring"`
	Levels  LevelsConfig  `toml:"levels"`
	Wishes  WishConfig    `toml:"wishes"`
	API     APIConfig     `toml:"api"`
}

// EnergyConfig controls the energy pool.
type EnergyConfig struct {
	Max                    float64 `toml:"max"`
	LowThreshold           float64 `toml:"low_threshold"`
	ZeroThreshold          float64 `toml:"zero_threshold"`
	PassiveRecoveryRate    float64 `toml:"passive_recovery_rate"` // points per idle minute
	IdleMinutes            float64 `toml:"idle_minutes"`          // no passive credit at or below this gap
	SleepRecovery          float64 `toml:"sleep_recovery"`        // daily reset with sleep data
	NoSleepRecovery        float64 `toml:"no_sleep_recovery"`     // daily reset without sleep data
	LowEnergyRecoveryBonus float64 `toml:"low_energy_recovery_bonus"`
}

// ScoringConfig controls dynamic coefficients and the retention window.
type ScoringConfig struct {
	MaxComboBonus      float64 `toml:"max_combo_bonus"`
	ReboundBonus       float64 `toml:"rebound_bonus"`
	SameFieldBonus     float64 `toml:"same_field_bonus"`
	StartBonusDuration int     `toml:"start_bonus_duration"` // minutes
	StartBonusScore    float64 `toml:"start_bonus_score"`
	StartBonusEnergy   float64 `toml:"start_bonus_energy"`
	BeginnerPeriodDays int     `toml:"beginner_period_days"`
	NoviceBonus        float64 `toml:"novice_bonus"`
	RecentWindow       int     `toml:"recent_window"`
	RepeatDampenCount  int     `toml:"repeat_dampen_count"`   // same behavior repeats before decay
	ShortIntervalMins  int     `toml:"short_interval_minutes"`
}

// LevelRates holds per-minute scoring and energy rates for one level.
// Negative energy cost means the level restores energy.
type LevelRates struct {
	BaseScorePerMin  float64 `toml:"base_score_per_min"`
	EnergyCostPerMin float64 `toml:"energy_cost_per_min"`
	Anchor           string  `toml:"anchor"`
	Example          string  `toml:"example"`
}

// LevelsConfig is the closed per-level rate table. The recovery family
// carries three sub-tiers; bare R is resolved to one of them before lookup.
type LevelsConfig struct {
	S  LevelRates `toml:"s"`
	A  LevelRates `toml:"a"`
	B  LevelRates `toml:"b"`
	C  LevelRates `toml:"c"`
	D  LevelRates `toml:"d"`
	R1 LevelRates `toml:"r1"`
	R2 LevelRates `toml:"r2"`
	R3 LevelRates `toml:"r3"`
}

// WishConfig controls wish redemption.
type WishConfig struct {
	MinCost int64 `toml:"min_cost"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// DefaultConfig returns the documented default tunables.
func DefaultConfig() Config {
	return Config{
		Energy: EnergyConfig{
			Max:                    120,
			LowThreshold:           30,
			ZeroThreshold:          0,
			PassiveRecoveryRate:    0.02,
			IdleMinutes:            30,
			SleepRecovery:          56, // 8 hours × 7 points
			NoSleepRecovery:        50,
			LowEnergyRecoveryBonus: 1.2,
		},
		Scoring: ScoringConfig{
			MaxComboBonus:      1.3,
			ReboundBonus:       1.1,
			SameFieldBonus:     1.15,
			StartBonusDuration: 5,
			StartBonusScore:    1.2,
			StartBonusEnergy:   0.8,
			BeginnerPeriodDays: 7,
			NoviceBonus:        1.2,
			RecentWindow:       10,
			RepeatDampenCount:  3,
			ShortIntervalMins:  10,
		},
		Levels: LevelsConfig{
			S:  LevelRates{BaseScorePerMin: 1.8, EnergyCostPerMin: 0.35, Anchor: "breakthrough growth", Example: "deep work, hard problems, intense training"},
			A:  LevelRates{BaseScorePerMin: 1.2, EnergyCostPerMin: 0.25, Anchor: "effective progress", Example: "learning, creative work, focused reading"},
			B:  LevelRates{BaseScorePerMin: 0.7, EnergyCostPerMin: 0.18, Anchor: "steady maintenance", Example: "review, tidying, light exercise, chores"},
			C:  LevelRates{BaseScorePerMin: -0.5, EnergyCostPerMin: 0.10, Anchor: "time drain", Example: "aimless scrolling, junk video"},
			D:  LevelRates{BaseScorePerMin: -1.0, EnergyCostPerMin: 0.15, Anchor: "self-harm", Example: "all-nighters, bingeing, overindulgence"},
			R1: LevelRates{BaseScorePerMin: 0.2, EnergyCostPerMin: -0.10, Anchor: "light relaxation", Example: "tea, music, short break"},
			R2: LevelRates{BaseScorePerMin: 0.3, EnergyCostPerMin: -0.20, Anchor: "moderate recovery", Example: "walk, yoga, casual reading"},
			R3: LevelRates{BaseScorePerMin: 0.4, EnergyCostPerMin: -0.30, Anchor: "deep recovery", Example: "nap, meditation, mindfulness"},
		},
		Wishes: WishConfig{
			MinCost: 100,
		},
		API: APIConfig{
			Host: "127.0.0.1",
			Port: 7420,
		},
	}
}

// Load reads config from $TIMESCORE_HOME/config.toml, falling back to
// defaults when the file is missing or unparseable. The merged result is
// validated; a Config that passes Validate is safe for the whole process
// lifetime.
func Load() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(Home(), "config.toml")

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			// Malformed file — keep defaults rather than raising.
			cfg = DefaultConfig()
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the config to $TIMESCORE_HOME/config.toml.
func Save(cfg Config) error {
	path := filepath.Join(Home(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Validate rejects out-of-range tunables. Called once at load time so the
// engine itself never has to re-check numeric sanity.
func (c Config) Validate() error {
	if c.Energy.Max <= 0 {
		return fmt.Errorf("energy.max must be positive, got %v: %w", c.Energy.Max, domain.ErrInvalidConfig)
	}
	if c.Energy.ZeroThreshold < 0 || c.Energy.ZeroThreshold >= c.Energy.Max {
		return fmt.Errorf("energy.zero_threshold %v outside [0, max): %w", c.Energy.ZeroThreshold, domain.ErrInvalidConfig)
	}
	if c.Energy.LowThreshold < 0 || c.Energy.LowThreshold > c.Energy.Max {
		return fmt.Errorf("energy.low_threshold %v outside [0, max]: %w", c.Energy.LowThreshold, domain.ErrInvalidConfig)
	}
	if c.Energy.PassiveRecoveryRate < 0 {
		return fmt.Errorf("energy.passive_recovery_rate must not be negative: %w", domain.ErrInvalidConfig)
	}
	if c.Scoring.RecentWindow <= 0 {
		return fmt.Errorf("scoring.recent_window must be positive, got %d: %w", c.Scoring.RecentWindow, domain.ErrInvalidConfig)
	}
	if c.Scoring.MaxComboBonus < 1.0 {
		return fmt.Errorf("scoring.max_combo_bonus must be >= 1.0, got %v: %w", c.Scoring.MaxComboBonus, domain.ErrInvalidConfig)
	}
	if c.Scoring.StartBonusScore <= 0 || c.Scoring.StartBonusEnergy <= 0 {
		return fmt.Errorf("scoring start bonus multipliers must be positive: %w", domain.ErrInvalidConfig)
	}
	if c.Wishes.MinCost < 0 {
		return fmt.Errorf("wishes.min_cost must not be negative: %w", domain.ErrInvalidConfig)
	}
	return nil
}

// Home returns the TimeScore data directory.
func Home() string {
	if env := os.Getenv("TIMESCORE_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".timescore")
}
