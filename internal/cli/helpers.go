package cli

import (
	"github.com/timescore-labs/timescore/internal/app/tracker"
	"github.com/timescore-labs/timescore/internal/app/wish"
	"github.com/timescore-labs/timescore/internal/config"
	"github.com/timescore-labs/timescore/internal/infra/sqlite"
)

// app bundles the wired services behind every CLI command.
type app struct {
	cfg     config.Config
	db      *sqlite.DB
	tracker *tracker.Service
	wishes  *wish.Service
}

// openApp loads config, opens the store, and wires the services.
// Callers must Close.
func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	db, err := sqlite.Open(config.Home())
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:     cfg,
		db:      db,
		tracker: tracker.NewService(db, cfg),
		wishes:  wish.NewService(db, cfg.Wishes),
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}
