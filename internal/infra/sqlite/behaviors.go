package sqlite

import (
	"database/sql"
	"time"

	"github.com/timescore-labs/timescore/internal/domain"
)

// InsertBehavior persists one scored behavior.
func (d *DB) InsertBehavior(b domain.Behavior) error {
	_, err := d.db.Exec(
		`INSERT INTO behaviors (id, name, level, resolved_level, duration, mood,
			start_ts, end_ts, base_score, dynamic_coeff, final_score, energy_delta, created_ts)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Name, string(b.Level), string(b.ResolvedLevel), b.Duration, b.Mood,
		b.Start.Unix(), b.End.Unix(), b.BaseScore, b.DynamicCoeff, b.FinalScore,
		b.EnergyDelta, b.CreatedAt.Unix(),
	)
	return err
}

// RecentBehaviors returns the last n behaviors ordered oldest→newest —
// the retention window fed to the scoring rules.
func (d *DB) RecentBehaviors(n int) ([]domain.Behavior, error) {
	rows, err := d.db.Query(
		`SELECT id, name, level, resolved_level, duration, mood, start_ts, end_ts,
			base_score, dynamic_coeff, final_score, energy_delta, created_ts
		 FROM behaviors ORDER BY created_ts DESC, id DESC LIMIT ?`, n,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var behaviors []domain.Behavior
	for rows.Next() {
		b, err := scanBehavior(rows)
		if err != nil {
			return nil, err
		}
		behaviors = append(behaviors, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Reverse newest-first query order into oldest→newest.
	for i, j := 0, len(behaviors)-1; i < j; i, j = i+1, j-1 {
		behaviors[i], behaviors[j] = behaviors[j], behaviors[i]
	}
	return behaviors, nil
}

// BehaviorsSince returns behaviors starting at or after the given time,
// oldest first.
func (d *DB) BehaviorsSince(since time.Time) ([]domain.Behavior, error) {
	rows, err := d.db.Query(
		`SELECT id, name, level, resolved_level, duration, mood, start_ts, end_ts,
			base_score, dynamic_coeff, final_score, energy_delta, created_ts
		 FROM behaviors WHERE start_ts >= ? ORDER BY start_ts ASC`, since.Unix(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var behaviors []domain.Behavior
	for rows.Next() {
		b, err := scanBehavior(rows)
		if err != nil {
			return nil, err
		}
		behaviors = append(behaviors, *b)
	}
	return behaviors, rows.Err()
}

// TotalScore returns the lifetime sum of final scores.
func (d *DB) TotalScore() (float64, error) {
	var total sql.NullFloat64
	err := d.db.QueryRow(`SELECT SUM(final_score) FROM behaviors`).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total.Float64, nil
}

// ScoreSince returns the sum of final scores from the given time on.
func (d *DB) ScoreSince(since time.Time) (float64, error) {
	var total sql.NullFloat64
	err := d.db.QueryRow(
		`SELECT SUM(final_score) FROM behaviors WHERE start_ts >= ?`, since.Unix(),
	).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total.Float64, nil
}

// BehaviorCount returns the total number of logged behaviors.
func (d *DB) BehaviorCount() (int64, error) {
	var count int64
	err := d.db.QueryRow(`SELECT COUNT(*) FROM behaviors`).Scan(&count)
	return count, err
}

func scanBehavior(s scanner) (*domain.Behavior, error) {
	var b domain.Behavior
	var level, resolved string
	var startTS, endTS, createdTS int64
	err := s.Scan(&b.ID, &b.Name, &level, &resolved, &b.Duration, &b.Mood,
		&startTS, &endTS, &b.BaseScore, &b.DynamicCoeff, &b.FinalScore,
		&b.EnergyDelta, &createdTS)
	if err != nil {
		return nil, err
	}
	b.Level = domain.Level(level)
	b.ResolvedLevel = domain.Level(resolved)
	b.Start = time.Unix(startTS, 0)
	b.End = time.Unix(endTS, 0)
	b.CreatedAt = time.Unix(createdTS, 0)
	return &b, nil
}
