package tracker_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/timescore-labs/timescore/internal/app/tracker"
	"github.com/timescore-labs/timescore/internal/config"
	"github.com/timescore-labs/timescore/internal/domain"
	"github.com/timescore-labs/timescore/internal/infra/sqlite"
)

// testService wires a tracker over a temporary database with a fixed clock.
func testService(t *testing.T, now time.Time) (*tracker.Service, *sqlite.DB) {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	svc := tracker.NewService(db, config.DefaultConfig())
	svc.SetClock(func() time.Time { return now })
	return svc, db
}

var t0 = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func TestRecord_FirstBehavior(t *testing.T) {
	svc, _ := testService(t, t0)

	b, err := svc.Record(tracker.Input{Level: domain.LevelS, Duration: 10, Mood: 3})
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	// Fresh user: energy 100 (coeff 1.3), beginner period (×1.2),
	// base 1.8×10 = 18, empty streak.
	want := 18 * 1.3 * 1.2
	if math.Abs(b.FinalScore-want) > 1e-9 {
		t.Errorf("final score: got %v, want %v", b.FinalScore, want)
	}

	energy, label, err := svc.EnergyStatus()
	if err != nil {
		t.Fatalf("energy status: %v", err)
	}
	if math.Abs(energy-96.5) > 1e-9 {
		t.Errorf("energy after S 10min: got %v, want 96.5", energy)
	}
	if label != "energized" {
		t.Errorf("label: got %q, want energized", label)
	}
}

func TestRecord_UnknownLevelLeavesStateUntouched(t *testing.T) {
	svc, db := testService(t, t0)

	if _, err := svc.Record(tracker.Input{Level: domain.LevelA, Duration: 30, Mood: 3}); err != nil {
		t.Fatalf("seed record: %v", err)
	}
	stateBefore, err := svc.LoadState()
	if err != nil {
		t.Fatalf("load state: %v", err)
	}

	_, err = svc.Record(tracker.Input{Level: domain.Level("Q"), Duration: 10, Mood: 3})
	if !errors.Is(err, domain.ErrUnknownLevel) {
		t.Fatalf("expected ErrUnknownLevel, got %v", err)
	}

	stateAfter, err := svc.LoadState()
	if err != nil {
		t.Fatalf("reload state: %v", err)
	}
	if stateAfter.CurrentEnergy != stateBefore.CurrentEnergy {
		t.Errorf("energy changed on rejected behavior: %v → %v",
			stateBefore.CurrentEnergy, stateAfter.CurrentEnergy)
	}
	count, _ := db.BehaviorCount()
	if count != 1 {
		t.Errorf("history changed on rejected behavior: %d rows", count)
	}
}

func TestRecord_ShortIntervalDampening(t *testing.T) {
	svc, _ := testService(t, t0)

	in := tracker.Input{Name: "pushups", Level: domain.LevelB, Duration: 20, Mood: 3}
	if _, err := svc.Record(in); err != nil {
		t.Fatalf("first record: %v", err)
	}

	// Pre-balance expectation from the engine over the persisted state.
	state, err := svc.LoadState()
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	expect, err := svc.Engine().ScoreBehavior(domain.Behavior{
		Name: in.Name, Level: in.Level, Duration: in.Duration, Mood: in.Mood,
	}, state)
	if err != nil {
		t.Fatalf("score: %v", err)
	}

	got, err := svc.Record(in)
	if err != nil {
		t.Fatalf("second record: %v", err)
	}

	// Identical behavior within 10 minutes: ×0.7, repeat count still
	// below the ≥3 threshold.
	want := expect.FinalScore * 0.7
	if math.Abs(got.FinalScore-want) > 1e-9 {
		t.Errorf("dampened score: got %v, want %v", got.FinalScore, want)
	}
}

func TestRecord_RepeatDecay(t *testing.T) {
	svc, _ := testService(t, t0)

	in := tracker.Input{Name: "scroll", Level: domain.LevelC, Duration: 15, Mood: 2}
	for i := 0; i < 3; i++ {
		if _, err := svc.Record(in); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	state, err := svc.LoadState()
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	if got := state.SameNameCount("scroll"); got != 3 {
		t.Fatalf("repeat count: got %d, want 3", got)
	}

	expect, err := svc.Engine().ScoreBehavior(domain.Behavior{
		Name: in.Name, Level: in.Level, Duration: in.Duration, Mood: in.Mood,
	}, state)
	if err != nil {
		t.Fatalf("score: %v", err)
	}

	got, err := svc.Record(in)
	if err != nil {
		t.Fatalf("fourth record: %v", err)
	}
	// Fourth repetition: ×0.8 repeat decay and ×0.7 short interval.
	want := expect.FinalScore * 0.8 * 0.7
	if math.Abs(got.FinalScore-want) > 1e-9 {
		t.Errorf("decayed score: got %v, want %v", got.FinalScore, want)
	}
}

func TestRecord_DayRollover(t *testing.T) {
	svc, _ := testService(t, t0)

	if _, err := svc.Record(tracker.Input{Level: domain.LevelS, Duration: 10, Mood: 3}); err != nil {
		t.Fatalf("day one record: %v", err)
	}
	// 96.5 after day one.

	svc.SetClock(func() time.Time { return t0.AddDate(0, 0, 1) })
	if _, err := svc.Record(tracker.Input{Level: domain.LevelB, Duration: 10, Mood: 3}); err != nil {
		t.Fatalf("day two record: %v", err)
	}

	// Overnight recovery and passive recovery both clamp at 120,
	// then B 10min costs 1.8.
	energy, _, err := svc.EnergyStatus()
	if err != nil {
		t.Fatalf("energy status: %v", err)
	}
	if math.Abs(energy-118.2) > 1e-9 {
		t.Errorf("energy after rollover: got %v, want 118.2", energy)
	}
}

func TestRecord_AfterExplicitReset(t *testing.T) {
	lateNight := time.Date(2026, 3, 10, 23, 50, 0, 0, time.UTC)
	svc, _ := testService(t, lateNight)

	// Drain the pool completely on day one.
	if _, err := svc.Record(tracker.Input{Level: domain.LevelS, Duration: 300, Mood: 3}); err != nil {
		t.Fatalf("drain record: %v", err)
	}

	afterMidnight := time.Date(2026, 3, 11, 0, 5, 0, 0, time.UTC)
	svc.SetClock(func() time.Time { return afterMidnight })

	energy, err := svc.DailyReset()
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if math.Abs(energy-56) > 1e-9 {
		t.Fatalf("after reset: got %v, want 56", energy)
	}

	// The first record of the day must not re-apply the overnight
	// recovery the explicit reset already granted.
	if _, err := svc.Record(tracker.Input{Level: domain.LevelB, Duration: 10, Mood: 3}); err != nil {
		t.Fatalf("record: %v", err)
	}
	energy, _, err = svc.EnergyStatus()
	if err != nil {
		t.Fatalf("energy status: %v", err)
	}
	if math.Abs(energy-54.2) > 1e-9 {
		t.Errorf("energy after reset then record: got %v, want 54.2", energy)
	}
}

func TestRecord_ResolvesBareRecovery(t *testing.T) {
	svc, _ := testService(t, t0)

	b, err := svc.Record(tracker.Input{Level: domain.LevelR, Duration: 40, Mood: 1})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if b.ResolvedLevel != domain.LevelR3 {
		t.Errorf("resolved: got %s, want R3", b.ResolvedLevel)
	}

	energy, _, err := svc.EnergyStatus()
	if err != nil {
		t.Fatalf("energy status: %v", err)
	}
	// -0.30×40 = 12 points restored from 100.
	if math.Abs(energy-112) > 1e-9 {
		t.Errorf("energy after recovery: got %v, want 112", energy)
	}
}

func TestDailyReset_OncePerDay(t *testing.T) {
	svc, _ := testService(t, t0)

	// Drain well below the clamp ceiling first.
	if _, err := svc.Record(tracker.Input{Level: domain.LevelS, Duration: 120, Mood: 3}); err != nil {
		t.Fatalf("record: %v", err)
	}
	// 100 − 42 = 58.

	energy, err := svc.DailyReset()
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if math.Abs(energy-114) > 1e-9 {
		t.Errorf("after reset: got %v, want 114", energy)
	}

	// Second reset the same day is a no-op.
	energy, err = svc.DailyReset()
	if err != nil {
		t.Fatalf("second reset: %v", err)
	}
	if math.Abs(energy-114) > 1e-9 {
		t.Errorf("second reset same day: got %v, want 114", energy)
	}
}

func TestRecentWindow_Bounded(t *testing.T) {
	svc, _ := testService(t, t0)

	for i := 0; i < 15; i++ {
		if _, err := svc.Record(tracker.Input{Level: domain.LevelB, Duration: 5, Mood: 3}); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	state, err := svc.LoadState()
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	if len(state.Recent) != config.DefaultConfig().Scoring.RecentWindow {
		t.Errorf("window size: got %d, want %d",
			len(state.Recent), config.DefaultConfig().Scoring.RecentWindow)
	}
}

func TestSummarize(t *testing.T) {
	svc, _ := testService(t, t0)

	if _, err := svc.Record(tracker.Input{Level: domain.LevelS, Duration: 10, Mood: 3}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := svc.Record(tracker.Input{Level: domain.LevelA, Duration: 20, Mood: 4}); err != nil {
		t.Fatalf("record: %v", err)
	}

	sum, err := svc.Summarize()
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if sum.TodayCount != 2 {
		t.Errorf("today count: got %d, want 2", sum.TodayCount)
	}
	if sum.TotalScore <= 0 {
		t.Errorf("total score should be positive, got %v", sum.TotalScore)
	}
	if sum.AvailableScore != sum.TotalScore {
		t.Errorf("no redemptions yet: available %v != total %v", sum.AvailableScore, sum.TotalScore)
	}
	if sum.ComboStreak != 2 {
		t.Errorf("streak: got %d, want 2", sum.ComboStreak)
	}
}
