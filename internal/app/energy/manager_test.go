package energy_test

import (
	"math"
	"testing"
	"time"

	"github.com/timescore-labs/timescore/internal/app/energy"
	"github.com/timescore-labs/timescore/internal/config"
	"github.com/timescore-labs/timescore/internal/domain"
)

func manager(state *domain.UserState) *energy.Manager {
	return energy.NewManager(config.DefaultConfig().Energy, state)
}

func TestApplyDelta_Clamps(t *testing.T) {
	cases := []struct {
		start float64
		cost  float64
		want  float64
	}{
		{100, 3.5, 96.5},
		{100, -10, 110},
		{5, 50, 0},     // underflow absorbed
		{115, -20, 120}, // overflow clamped to max
		{0, -5, 5},
		{0, 10, 0},
	}
	for _, tc := range cases {
		state := &domain.UserState{CurrentEnergy: tc.start}
		got := manager(state).ApplyDelta(tc.cost)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("ApplyDelta(%v) from %v = %v, want %v", tc.cost, tc.start, got, tc.want)
		}
		if state.CurrentEnergy != got {
			t.Errorf("state not updated: %v != %v", state.CurrentEnergy, got)
		}
		if got < 0 || got > 120 {
			t.Errorf("clamp invariant violated: %v", got)
		}
	}
}

func TestPassiveRecovery_NoHistory(t *testing.T) {
	state := &domain.UserState{CurrentEnergy: 50}
	if got := manager(state).PassiveRecovery(time.Now()); got != 0 {
		t.Errorf("no prior activity: got %v, want 0", got)
	}
}

func TestPassiveRecovery_IdleThreshold(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	state := &domain.UserState{CurrentEnergy: 50, LastActivity: now.Add(-30 * time.Minute)}

	// At exactly the threshold there is no partial credit.
	if got := manager(state).PassiveRecovery(now); got != 0 {
		t.Errorf("30 min idle: got %v, want 0", got)
	}

	state.LastActivity = now.Add(-60 * time.Minute)
	got := manager(state).PassiveRecovery(now)
	want := 60 * 0.02
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("60 min idle: got %v, want %v", got, want)
	}
}

func TestApplyPassiveRecovery(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	state := &domain.UserState{CurrentEnergy: 50, LastActivity: now.Add(-100 * time.Minute)}

	got := manager(state).ApplyPassiveRecovery(now)
	want := 50 + 100*0.02
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("recovered energy: got %v, want %v", got, want)
	}

	// Below the idle threshold the energy is untouched.
	state = &domain.UserState{CurrentEnergy: 50, LastActivity: now.Add(-10 * time.Minute)}
	if got := manager(state).ApplyPassiveRecovery(now); got != 50 {
		t.Errorf("short idle: got %v, want 50", got)
	}
}

func TestDailyReset(t *testing.T) {
	state := &domain.UserState{CurrentEnergy: 40, LastActivity: time.Now()}
	got := manager(state).DailyReset()
	if math.Abs(got-96) > 1e-9 {
		t.Errorf("sleep recovery: got %v, want 96", got)
	}
}

func TestDailyReset_ClampedAtMax(t *testing.T) {
	state := &domain.UserState{CurrentEnergy: 120, LastActivity: time.Now()}
	if got := manager(state).DailyReset(); got != 120 {
		t.Errorf("reset at max: got %v, want 120 (no overflow)", got)
	}
}

func TestDailyReset_NoSleepData(t *testing.T) {
	state := &domain.UserState{CurrentEnergy: 10}
	got := manager(state).DailyReset()
	if math.Abs(got-60) > 1e-9 {
		t.Errorf("no-sleep default: got %v, want 60", got)
	}
}

func TestStatusLabel_Bands(t *testing.T) {
	cases := []struct {
		energy float64
		want   string
	}{
		{120, "energized"},
		{97, "energized"}, // >80%
		{96, "good"},      // exactly 80%
		{73, "good"},
		{72, "steady"},
		{49, "steady"},
		{48, "low"},
		{25, "low"},
		{24, "depleted"},
		{0, "depleted"},
	}
	for _, tc := range cases {
		state := &domain.UserState{CurrentEnergy: tc.energy}
		if got := manager(state).StatusLabel(); got != tc.want {
			t.Errorf("StatusLabel at %v: got %q, want %q", tc.energy, got, tc.want)
		}
	}
}

func TestStatusLabel_Idempotent(t *testing.T) {
	state := &domain.UserState{CurrentEnergy: 83}
	m := manager(state)
	if first, second := m.StatusLabel(), m.StatusLabel(); first != second {
		t.Errorf("label changed without mutation: %q then %q", first, second)
	}
}

func TestIsLow(t *testing.T) {
	state := &domain.UserState{CurrentEnergy: 29}
	if !manager(state).IsLow() {
		t.Error("29 should be low")
	}
	state.CurrentEnergy = 30
	if manager(state).IsLow() {
		t.Error("30 is at the threshold, not below it")
	}
}
