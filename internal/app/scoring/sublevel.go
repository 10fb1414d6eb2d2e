package scoring

import "github.com/timescore-labs/timescore/internal/domain"

// ResolveSublevel assigns a concrete recovery sub-tier to a bare R level.
// Already-resolved levels pass through unchanged.
//
// Three signals, evaluated in order:
//  1. mood: ≤2 → R1, 3 → R2, ≥4 → R3
//  2. duration, which is authoritative over mood: <15 min → R1,
//     15–30 → R2, >30 → R3
//  3. context: if the immediately preceding behavior was high-exertion
//     (S or A), escalate one tier (R3 stays R3)
//
// Deterministic — a pure function of its inputs.
func ResolveSublevel(level domain.Level, duration, mood int, recent []domain.Behavior) domain.Level {
	if level != domain.LevelR {
		return level
	}

	var tier domain.Level
	switch {
	case mood <= 2:
		tier = domain.LevelR1
	case mood == 3:
		tier = domain.LevelR2
	default:
		tier = domain.LevelR3
	}

	// Duration wins over mood.
	switch {
	case duration < 15:
		tier = domain.LevelR1
	case duration <= 30:
		tier = domain.LevelR2
	default:
		tier = domain.LevelR3
	}

	if len(recent) > 0 && recent[len(recent)-1].Level.IsHighExertion() {
		switch tier {
		case domain.LevelR1:
			tier = domain.LevelR2
		case domain.LevelR2:
			tier = domain.LevelR3
		}
	}

	return tier
}
