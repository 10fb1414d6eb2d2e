package domain

import "time"

// Behavior is one logged, timed activity. Immutable once scored —
// the scoring fields are filled exactly once by the tracker.
type Behavior struct {
	ID       string    `json:"id"`
	Name     string    `json:"name,omitempty"`
	Level    Level     `json:"level"`
	Duration int       `json:"duration"` // minutes
	Mood     int       `json:"mood"`     // 1–5
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`

	// Scoring results
	ResolvedLevel Level     `json:"resolved_level,omitempty"`
	BaseScore     float64   `json:"base_score"`
	DynamicCoeff  float64   `json:"dynamic_coeff"`
	FinalScore    float64   `json:"final_score"`
	EnergyDelta   float64   `json:"energy_delta"`
	CreatedAt     time.Time `json:"created_at"`
}

// EffectiveLevel returns the level that was actually scored:
// the inferred sub-tier for a bare R, the logged level otherwise.
func (b Behavior) EffectiveLevel() Level {
	if b.ResolvedLevel != "" {
		return b.ResolvedLevel
	}
	return b.Level
}
