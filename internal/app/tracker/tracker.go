// Package tracker orchestrates one behavior recording end to end:
// load state → day rollover → passive recovery → score → balance →
// energy delta → persist. It is the engine's single caller and the only
// place user state is mutated and stored.
package tracker

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/timescore-labs/timescore/internal/app/scoring"
	"github.com/timescore-labs/timescore/internal/config"
	"github.com/timescore-labs/timescore/internal/domain"
	"github.com/timescore-labs/timescore/internal/infra/metrics"
	"github.com/timescore-labs/timescore/internal/infra/sqlite"
)

// User state KV keys.
const (
	keyEnergy       = "current_energy"
	keyLastActivity = "last_activity_ts"
	keyFirstUse     = "first_use_ts"
	keyLastResetDay = "last_reset_day"
)

// Service records behaviors against the scoring engine and the store.
// Single-user, synchronous — callers serialize access.
type Service struct {
	db     *sqlite.DB
	engine *scoring.Engine
	cfg    config.Config
	now    func() time.Time
}

// NewService wires the tracker over an open store and a validated config.
func NewService(db *sqlite.DB, cfg config.Config) *Service {
	return &Service{
		db:     db,
		engine: scoring.NewEngine(cfg),
		cfg:    cfg,
		now:    time.Now,
	}
}

// SetClock overrides the time source. Test hook.
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// Engine exposes the underlying scoring engine.
func (s *Service) Engine() *scoring.Engine { return s.engine }

// Input is one raw behavior to record.
type Input struct {
	Name     string
	Level    domain.Level
	Duration int // minutes
	Mood     int // 1–5
	Start    time.Time
	End      time.Time
}

// Record scores and persists one behavior, returning the stored record.
// A rejected behavior (unknown level) leaves energy and history
// unchanged — nothing is written until scoring succeeds.
func (s *Service) Record(in Input) (*domain.Behavior, error) {
	if _, err := domain.ParseLevel(string(in.Level)); err != nil {
		return nil, err
	}

	state, err := s.LoadState()
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}

	now := s.now()
	firstUse := state.FirstUse
	if firstUse.IsZero() {
		firstUse = now
	}
	state.BeginnerPeriod = now.Sub(firstUse) < time.Duration(s.cfg.Scoring.BeginnerPeriodDays)*24*time.Hour

	// Day rollover: overnight recovery once per calendar-day boundary.
	// The reset-day marker guards against a second application when an
	// explicit reset already ran today.
	dayReset := false
	if !state.LastActivity.IsZero() && dayKey(now) != dayKey(state.LastActivity) {
		lastDay, err := s.db.GetState(keyLastResetDay)
		if err != nil {
			return nil, err
		}
		if lastDay != dayKey(now) {
			s.engine.DailyReset(&state)
			dayReset = true
		}
	}

	beforeRecovery := state.CurrentEnergy
	s.engine.ApplyPassiveRecovery(&state, now)
	recovered := state.CurrentEnergy - beforeRecovery

	b := domain.Behavior{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Level:     in.Level,
		Duration:  in.Duration,
		Mood:      in.Mood,
		Start:     in.Start,
		End:       in.End,
		CreatedAt: now,
	}
	if b.Start.IsZero() {
		b.Start = now.Add(-time.Duration(in.Duration) * time.Minute)
	}
	if b.End.IsZero() {
		b.End = now
	}

	result, err := s.engine.ScoreBehavior(b, state)
	if err != nil {
		return nil, err
	}

	// Anti-abuse inputs come from the stored window.
	sameCount := state.SameNameCount(in.Name)
	shortInterval := s.isShortIntervalRepeat(state, in, now)
	finalScore := s.engine.ApplyBalance(result.FinalScore, sameCount, shortInterval, result.ResolvedLevel, state.Recent)

	s.engine.ApplyEnergyDelta(&state, result.EnergyDelta)

	b.ResolvedLevel = result.ResolvedLevel
	b.BaseScore = result.BaseScore
	b.DynamicCoeff = result.DynamicCoeff
	b.FinalScore = finalScore
	b.EnergyDelta = result.EnergyDelta

	state.AppendRecent(b, s.cfg.Scoring.RecentWindow)
	state.LastActivity = now
	state.FirstUse = firstUse

	if err := s.db.InsertBehavior(b); err != nil {
		return nil, fmt.Errorf("insert behavior: %w", err)
	}
	if err := s.saveState(state, dayReset, now); err != nil {
		return nil, fmt.Errorf("save state: %w", err)
	}

	metrics.BehaviorsScored.WithLabelValues(string(b.ResolvedLevel)).Inc()
	// Counters reject negative increments; C/D behaviors score below zero.
	if finalScore > 0 {
		metrics.ScorePoints.Add(finalScore)
	}
	metrics.EnergyCurrent.Set(state.CurrentEnergy)
	if recovered > 0 {
		metrics.PassiveRecoveryPoints.Add(recovered)
	}

	return &b, nil
}

// ApplyPassiveRecovery credits idle recovery and persists the result.
func (s *Service) ApplyPassiveRecovery() (float64, error) {
	state, err := s.LoadState()
	if err != nil {
		return 0, err
	}
	energy := s.engine.ApplyPassiveRecovery(&state, s.now())
	if err := s.saveState(state, false, s.now()); err != nil {
		return 0, err
	}
	metrics.EnergyCurrent.Set(energy)
	return energy, nil
}

// DailyReset applies the overnight recovery and persists the result.
// Idempotent per calendar day — a second call on the same day is a no-op.
func (s *Service) DailyReset() (float64, error) {
	state, err := s.LoadState()
	if err != nil {
		return 0, err
	}

	now := s.now()
	lastDay, err := s.db.GetState(keyLastResetDay)
	if err != nil {
		return 0, err
	}
	if lastDay == dayKey(now) {
		return state.CurrentEnergy, nil
	}

	energy := s.engine.DailyReset(&state)
	if err := s.saveState(state, true, now); err != nil {
		return 0, err
	}
	metrics.DailyResets.Inc()
	metrics.EnergyCurrent.Set(energy)
	return energy, nil
}

// EnergyStatus returns the current energy value and its banded label.
func (s *Service) EnergyStatus() (float64, string, error) {
	state, err := s.LoadState()
	if err != nil {
		return 0, "", err
	}
	return state.CurrentEnergy, s.engine.EnergyStatus(state), nil
}

// Today returns today's behaviors, oldest first.
func (s *Service) Today() ([]domain.Behavior, error) {
	return s.db.BehaviorsSince(startOfDay(s.now()))
}

// History returns the last n behaviors, oldest first.
func (s *Service) History(n int) ([]domain.Behavior, error) {
	return s.db.RecentBehaviors(n)
}

// Summary aggregates the headline numbers for the dashboard and API.
type Summary struct {
	TotalScore     float64 `json:"total_score"`
	AvailableScore float64 `json:"available_score"`
	TodayScore     float64 `json:"today_score"`
	TodayCount     int     `json:"today_count"`
	CurrentEnergy  float64 `json:"current_energy"`
	EnergyStatus   string  `json:"energy_status"`
	ComboStreak    int     `json:"combo_streak"`
}

// Summarize computes the dashboard snapshot.
func (s *Service) Summarize() (Summary, error) {
	var sum Summary

	state, err := s.LoadState()
	if err != nil {
		return sum, err
	}

	total, err := s.db.TotalScore()
	if err != nil {
		return sum, err
	}
	spent, err := s.db.RedeemedCost()
	if err != nil {
		return sum, err
	}
	todayScore, err := s.db.ScoreSince(startOfDay(s.now()))
	if err != nil {
		return sum, err
	}
	today, err := s.Today()
	if err != nil {
		return sum, err
	}

	streak := 0
	for _, b := range state.Recent {
		switch {
		case b.Level.IsPositive():
			streak++
		case b.Level.IsRecovery():
			// neutral, streak survives
		default:
			streak = 0
		}
	}

	sum.TotalScore = total
	sum.AvailableScore = total - float64(spent)
	sum.TodayScore = todayScore
	sum.TodayCount = len(today)
	sum.CurrentEnergy = state.CurrentEnergy
	sum.EnergyStatus = s.engine.EnergyStatus(state)
	sum.ComboStreak = streak
	return sum, nil
}

// LoadState reconstructs the user state snapshot: energy and timestamps
// from the KV table, the recent window from the behavior log.
func (s *Service) LoadState() (domain.UserState, error) {
	state := domain.UserState{CurrentEnergy: 100}

	if v, err := s.db.GetState(keyEnergy); err != nil {
		return state, err
	} else if v != "" {
		state.CurrentEnergy, _ = strconv.ParseFloat(v, 64)
	}

	if v, err := s.db.GetState(keyLastActivity); err != nil {
		return state, err
	} else if v != "" {
		ts, _ := strconv.ParseInt(v, 10, 64)
		state.LastActivity = time.Unix(ts, 0)
	}

	if v, err := s.db.GetState(keyFirstUse); err != nil {
		return state, err
	} else if v != "" {
		ts, _ := strconv.ParseInt(v, 10, 64)
		state.FirstUse = time.Unix(ts, 0)
	}

	recent, err := s.db.RecentBehaviors(s.cfg.Scoring.RecentWindow)
	if err != nil {
		return state, err
	}
	state.Recent = recent

	if !state.FirstUse.IsZero() {
		state.BeginnerPeriod = s.now().Sub(state.FirstUse) < time.Duration(s.cfg.Scoring.BeginnerPeriodDays)*24*time.Hour
	}

	return state, nil
}

func (s *Service) saveState(state domain.UserState, dayReset bool, now time.Time) error {
	pairs := map[string]string{
		keyEnergy: strconv.FormatFloat(state.CurrentEnergy, 'f', -1, 64),
	}
	if !state.LastActivity.IsZero() {
		pairs[keyLastActivity] = strconv.FormatInt(state.LastActivity.Unix(), 10)
	}
	if !state.FirstUse.IsZero() {
		pairs[keyFirstUse] = strconv.FormatInt(state.FirstUse.Unix(), 10)
	}
	if dayReset {
		pairs[keyLastResetDay] = dayKey(now)
	}
	for k, v := range pairs {
		if err := s.db.SetState(k, v); err != nil {
			return fmt.Errorf("save %s: %w", k, err)
		}
	}
	return nil
}

// isShortIntervalRepeat reports whether the same named behavior was
// recorded within the configured short interval.
func (s *Service) isShortIntervalRepeat(state domain.UserState, in Input, now time.Time) bool {
	if in.Name == "" {
		return false
	}
	window := time.Duration(s.cfg.Scoring.ShortIntervalMins) * time.Minute
	for _, b := range state.Recent {
		if b.Name == in.Name && now.Sub(b.CreatedAt) < window {
			return true
		}
	}
	return false
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
