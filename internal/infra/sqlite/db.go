// Package sqlite provides SQLite-based persistent storage for TimeScore.
// Uses WAL mode for concurrent reads and crash-safe writes.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/timescore.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "timescore.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// SQLite is single-writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// Scored behavior log — one row per logged activity
		`CREATE TABLE IF NOT EXISTS behaviors (
			id             TEXT PRIMARY KEY,
			name           TEXT NOT NULL DEFAULT '',
			level          TEXT NOT NULL,
			resolved_level TEXT NOT NULL,
			duration       INTEGER NOT NULL,
			mood           INTEGER NOT NULL DEFAULT 3,
			start_ts       INTEGER NOT NULL,
			end_ts         INTEGER NOT NULL,
			base_score     REAL NOT NULL DEFAULT 0,
			dynamic_coeff  REAL NOT NULL DEFAULT 1,
			final_score    REAL NOT NULL DEFAULT 0,
			energy_delta   REAL NOT NULL DEFAULT 0,
			created_ts     INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_behaviors_start ON behaviors(start_ts)`,
		`CREATE INDEX IF NOT EXISTS idx_behaviors_level ON behaviors(level)`,

		// Key-value store for user state (energy, timestamps)
		`CREATE TABLE IF NOT EXISTS user_state (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Wishes redeemable against accumulated score
		`CREATE TABLE IF NOT EXISTS wishes (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			cost        INTEGER NOT NULL,
			status      TEXT NOT NULL DEFAULT 'pending',
			progress    REAL NOT NULL DEFAULT 0,
			created_ts  INTEGER NOT NULL,
			redeemed_ts INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_wishes_status ON wishes(status)`,
	}

	for i, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// scanner abstracts sql.Row and sql.Rows for shared scan helpers.
type scanner interface {
	Scan(dest ...any) error
}
