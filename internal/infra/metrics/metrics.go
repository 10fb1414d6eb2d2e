// Package metrics provides Prometheus metrics for TimeScore —
// counters and gauges for scored behaviors, points, energy, and wishes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Behaviors ──────────────────────────────────────────────────────────────

// BehaviorsScored tracks scored behaviors by resolved level.
var BehaviorsScored = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "timescore",
	Name:      "behaviors_scored_total",
	Help:      "Total behaviors scored, by resolved level.",
}, []string{"level"})

// ScorePoints tracks total points awarded (post-balance).
var ScorePoints = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "timescore",
	Name:      "score_points_total",
	Help:      "Total score points awarded.",
})

// ─── Energy ─────────────────────────────────────────────────────────────────

// EnergyCurrent tracks the user's current energy level.
var EnergyCurrent = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "timescore",
	Name:      "energy_current",
	Help:      "Current energy value.",
})

// PassiveRecoveryPoints tracks energy restored by idle recovery.
var PassiveRecoveryPoints = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "timescore",
	Name:      "passive_recovery_points_total",
	Help:      "Total energy points restored by passive recovery.",
})

// DailyResets tracks daily reset applications.
var DailyResets = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "timescore",
	Name:      "daily_resets_total",
	Help:      "Total daily energy resets applied.",
})

// ─── Wishes ─────────────────────────────────────────────────────────────────

// WishesRedeemed tracks redeemed wishes.
var WishesRedeemed = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "timescore",
	Name:      "wishes_redeemed_total",
	Help:      "Total wishes redeemed.",
})
