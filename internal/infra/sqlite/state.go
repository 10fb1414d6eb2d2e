package sqlite

import "database/sql"

// ─── User State Key-Value ───────────────────────────────────────────────────
// Scalar user state (energy, timestamps) lives in a small KV table;
// the behavior window is reconstructed from the behaviors log.

// SetState stores a user-state key-value pair.
func (d *DB) SetState(key, value string) error {
	_, err := d.db.Exec(
		`INSERT INTO user_state (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		key, value,
	)
	return err
}

// GetState retrieves a user-state value by key.
// Returns "" if key not found.
func (d *DB) GetState(key string) (string, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM user_state WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}
