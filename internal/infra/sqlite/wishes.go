package sqlite

import (
	"database/sql"
	"time"

	"github.com/timescore-labs/timescore/internal/domain"
)

// InsertWish creates a new wish.
func (d *DB) InsertWish(w domain.Wish) error {
	_, err := d.db.Exec(
		`INSERT INTO wishes (id, name, cost, status, progress, created_ts)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		w.ID, w.Name, w.Cost, string(w.Status), w.Progress, w.CreatedAt.Unix(),
	)
	return err
}

// GetWish retrieves a wish by ID. Returns nil when not found.
func (d *DB) GetWish(id string) (*domain.Wish, error) {
	row := d.db.QueryRow(
		`SELECT id, name, cost, status, progress, created_ts, redeemed_ts
		 FROM wishes WHERE id = ?`, id,
	)
	w, err := scanWish(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return w, err
}

// ListWishes returns all wishes, newest first.
func (d *DB) ListWishes() ([]domain.Wish, error) {
	return d.queryWishes(
		`SELECT id, name, cost, status, progress, created_ts, redeemed_ts
		 FROM wishes ORDER BY created_ts DESC`,
	)
}

// PendingWishes returns wishes still awaiting redemption, newest first.
func (d *DB) PendingWishes() ([]domain.Wish, error) {
	return d.queryWishes(
		`SELECT id, name, cost, status, progress, created_ts, redeemed_ts
		 FROM wishes WHERE status = 'pending' ORDER BY created_ts DESC`,
	)
}

// MarkWishRedeemed flips a pending wish to redeemed.
// Returns false when the wish was not pending (idempotent).
func (d *DB) MarkWishRedeemed(id string, at time.Time) (bool, error) {
	result, err := d.db.Exec(
		`UPDATE wishes SET status = 'redeemed', redeemed_ts = ?, progress = 1.0
		 WHERE id = ? AND status = 'pending'`,
		at.Unix(), id,
	)
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil
}

// MarkWishArchived retires a pending wish.
// Returns false when the wish was not pending (idempotent).
func (d *DB) MarkWishArchived(id string) (bool, error) {
	result, err := d.db.Exec(
		`UPDATE wishes SET status = 'archived' WHERE id = ? AND status = 'pending'`, id,
	)
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil
}

// UpdateWishProgress stores a wish's progress fraction.
func (d *DB) UpdateWishProgress(id string, progress float64) error {
	_, err := d.db.Exec(`UPDATE wishes SET progress = ? WHERE id = ?`, progress, id)
	return err
}

// RedeemedCost returns the total cost of all redeemed wishes — the
// points already spent.
func (d *DB) RedeemedCost() (int64, error) {
	var total sql.NullInt64
	err := d.db.QueryRow(
		`SELECT SUM(cost) FROM wishes WHERE status = 'redeemed'`,
	).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total.Int64, nil
}

func (d *DB) queryWishes(query string) ([]domain.Wish, error) {
	rows, err := d.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wishes []domain.Wish
	for rows.Next() {
		w, err := scanWish(rows)
		if err != nil {
			return nil, err
		}
		wishes = append(wishes, *w)
	}
	return wishes, rows.Err()
}

func scanWish(s scanner) (*domain.Wish, error) {
	var w domain.Wish
	var status string
	var createdTS int64
	var redeemedTS sql.NullInt64
	err := s.Scan(&w.ID, &w.Name, &w.Cost, &status, &w.Progress, &createdTS, &redeemedTS)
	if err != nil {
		return nil, err
	}
	w.Status = domain.WishStatus(status)
	w.CreatedAt = time.Unix(createdTS, 0)
	if redeemedTS.Valid {
		w.RedeemedAt = time.Unix(redeemedTS.Int64, 0)
	}
	return &w, nil
}
