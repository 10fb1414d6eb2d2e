package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/timescore-labs/timescore/internal/config"
	"github.com/timescore-labs/timescore/internal/domain"
)

func TestDefaultConfig_Valid(t *testing.T) {
	if err := config.DefaultConfig().Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestValidate_RejectsBadTunables(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"negative energy max", func(c *config.Config) { c.Energy.Max = -10 }},
		{"zero energy max", func(c *config.Config) { c.Energy.Max = 0 }},
		{"zero threshold above max", func(c *config.Config) { c.Energy.ZeroThreshold = 200 }},
		{"negative recovery rate", func(c *config.Config) { c.Energy.PassiveRecoveryRate = -1 }},
		{"zero retention window", func(c *config.Config) { c.Scoring.RecentWindow = 0 }},
		{"combo bonus below one", func(c *config.Config) { c.Scoring.MaxComboBonus = 0.5 }},
		{"negative wish cost", func(c *config.Config) { c.Wishes.MinCost = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, domain.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("TIMESCORE_HOME", t.TempDir())

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Energy.Max != 120 {
		t.Errorf("expected default energy max 120, got %v", cfg.Energy.Max)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("TIMESCORE_HOME", home)

	toml := "[energy]\nmax = 150.0\n\n[scoring]\nrecent_window = 20\n"
	if err := os.WriteFile(filepath.Join(home, "config.toml"), []byte(toml), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Energy.Max != 150 {
		t.Errorf("expected overridden max 150, got %v", cfg.Energy.Max)
	}
	if cfg.Scoring.RecentWindow != 20 {
		t.Errorf("expected overridden window 20, got %d", cfg.Scoring.RecentWindow)
	}
	// Untouched keys keep their defaults.
	if cfg.Scoring.NoviceBonus != 1.2 {
		t.Errorf("expected default novice bonus, got %v", cfg.Scoring.NoviceBonus)
	}
}

func TestLoad_MalformedFileFallsBack(t *testing.T) {
	home := t.TempDir()
	t.Setenv("TIMESCORE_HOME", home)

	if err := os.WriteFile(filepath.Join(home, "config.toml"), []byte("not [valid toml"), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load should fall back, not fail: %v", err)
	}
	if cfg.Energy.Max != 120 {
		t.Errorf("expected defaults after malformed file, got max %v", cfg.Energy.Max)
	}
}

func TestLoad_RejectsOutOfRangeFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("TIMESCORE_HOME", home)

	toml := "[energy]\nmax = -5.0\n"
	if err := os.WriteFile(filepath.Join(home, "config.toml"), []byte(toml), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := config.Load()
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig at load time, got %v", err)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	t.Setenv("TIMESCORE_HOME", t.TempDir())

	cfg := config.DefaultConfig()
	cfg.Wishes.MinCost = 250
	if err := config.Save(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Wishes.MinCost != 250 {
		t.Errorf("round trip lost min_cost: got %d", loaded.Wishes.MinCost)
	}
}
