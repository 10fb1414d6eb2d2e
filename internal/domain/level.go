// Package domain holds the pure types of the TimeScore engine.
// A behavior is one logged, timed activity with a quality level;
// scoring turns it into points and an energy delta.
package domain

import "fmt"

// Level is the qualitative tier of a behavior.
// S is the highest positive tier, D the most damaging, R the recovery family.
// The set is closed — anything else is rejected with ErrUnknownLevel.
type Level string

const (
	LevelS Level = "S" // breakthrough work
	LevelA Level = "A" // effective progress
	LevelB Level = "B" // steady maintenance
	LevelC Level = "C" // time drain
	LevelD Level = "D" // self-harm

	// LevelR is an unresolved recovery behavior. Sublevel inference
	// assigns one of R1/R2/R3 before scoring.
	LevelR  Level = "R"
	LevelR1 Level = "R1" // light relaxation
	LevelR2 Level = "R2" // moderate recovery
	LevelR3 Level = "R3" // deep recovery
)

// AllLevels lists every recognized level, resolved and unresolved.
var AllLevels = []Level{LevelS, LevelA, LevelB, LevelC, LevelD, LevelR, LevelR1, LevelR2, LevelR3}

// ParseLevel validates a level string against the closed set.
func ParseLevel(s string) (Level, error) {
	l := Level(s)
	for _, known := range AllLevels {
		if l == known {
			return l, nil
		}
	}
	return "", fmt.Errorf("parse level %q: %w", s, ErrUnknownLevel)
}

// Valid reports whether the level belongs to the recognized set.
func (l Level) Valid() bool {
	_, err := ParseLevel(string(l))
	return err == nil
}

// Resolved reports whether the level is concrete enough to score.
// Bare R is the only unresolved level.
func (l Level) Resolved() bool {
	return l.Valid() && l != LevelR
}

// IsRecovery reports whether the level belongs to the recovery family.
func (l Level) IsRecovery() bool {
	return l == LevelR || l == LevelR1 || l == LevelR2 || l == LevelR3
}

// IsPositive reports whether the level counts toward a combo streak.
func (l Level) IsPositive() bool {
	return l == LevelS || l == LevelA || l == LevelB
}

// IsNegative reports whether the level breaks a combo streak.
func (l Level) IsNegative() bool {
	return l == LevelC || l == LevelD
}

// IsHighExertion reports whether the level drains enough energy that a
// following recovery behavior is escalated one sub-tier.
func (l Level) IsHighExertion() bool {
	return l == LevelS || l == LevelA
}

func (l Level) String() string { return string(l) }
