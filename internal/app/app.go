package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/pivotaxis/internal/config"
	"github.com/vk/pivotaxis/internal/localsession"
	"github.com/vk/pivotaxis/internal/session"
	"github.com/vk/pivotaxis/internal/source"
)

// Opener opens the row source of a report.
type Opener func(ctx context.Context, cfg *config.Source) (source.Source, error)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	loader   config.Loader
	sessions session.SessionFactory
	open     Opener
}

// NewApp is the constructor for the main application. Results go to outW and
// logs to logW.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")
	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		loader:   loader,
		sessions: &localsession.SessionFactory{},
		open:     source.Open,
	}
}

// WithOpener replaces the row source opener. It is meant for tests.
func (a *App) WithOpener(open Opener) *App {
	a.open = open
	return a
}
