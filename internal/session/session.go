// Package session defines the core interfaces for creating and managing a
// processing pass. Every pass gets its own Session so that no axis state is
// ever shared between passes.
package session

import (
	"context"

	"github.com/google/uuid"
	"github.com/vk/pivotaxis/internal/axis"
	"github.com/vk/pivotaxis/internal/builder"
	"github.com/vk/pivotaxis/internal/config"
	"github.com/vk/pivotaxis/internal/engine"
)

// SessionFactory creates a Session for one pass over a report.
type SessionFactory interface {
	NewSession(ctx context.Context, report *config.Report, extra ...engine.Listener) (Session, error)
}

// Session represents a single processing pass and manages its lifecycle.
type Session interface {
	ID() uuid.UUID
	// Run drives the structural pass over rows. A Session runs at most once.
	Run(ctx context.Context, rows engine.RowSource) (*Outcome, error)
	// Close releases any resources held by the session. It accepts a context
	// to allow for graceful cleanup operations.
	Close(ctx context.Context) error
}

// Outcome is what a completed pass produced.
type Outcome struct {
	PassID    uuid.UUID
	Stats     engine.Stats
	Published axis.Specification
	Results   []builder.Result
}
