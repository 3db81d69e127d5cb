// Package app wires the database, the persistence adapter and the note
// store together for the CLI, the board and the server.
package app

import (
	"fmt"

	"github.com/existflow/sticky/internal/config"
	"github.com/existflow/sticky/internal/db"
	"github.com/existflow/sticky/internal/logger"
	"github.com/existflow/sticky/internal/notes"
	"github.com/existflow/sticky/internal/reminder"
	"github.com/existflow/sticky/internal/storage"
)

// App holds the opened core components
type App struct {
	Config *config.Config
	DB     *db.DB
	Prefs  *storage.Adapter
	Store  *notes.Store
}

// Open opens the database at cfg.DataPath and loads the notes from it
func Open(cfg *config.Config, opts ...notes.Option) (*App, error) {
	database, err := db.Open(cfg.DataPath)
	if err != nil {
		logger.Error("Failed to open database", logger.F("path", cfg.DataPath), logger.F("error", err))
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	prefs := storage.NewAdapter(database)
	return &App{
		Config: cfg,
		DB:     database,
		Prefs:  prefs,
		Store:  notes.New(prefs, opts...),
	}, nil
}

// NewMonitor creates a reminder monitor over the store using the configured
// interval
func (a *App) NewMonitor(n reminder.Notifier) *reminder.Monitor {
	return reminder.NewMonitor(a.Store, n, reminder.WithInterval(a.Config.ReminderInterval))
}

// Close closes the database
func (a *App) Close() error {
	if err := a.DB.Close(); err != nil {
		return err
	}
	logger.Debug("Database closed")
	return nil
}
