// Package localsession provides a concrete implementation of the session.Session
// and session.SessionFactory interfaces for local, in-process passes.
package localsession

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vk/pivotaxis/internal/builder"
	"github.com/vk/pivotaxis/internal/config"
	"github.com/vk/pivotaxis/internal/ctxlog"
	"github.com/vk/pivotaxis/internal/engine"
	"github.com/vk/pivotaxis/internal/session"
)

// ErrAlreadyRun is returned when a Session is asked to run a second pass.
var ErrAlreadyRun = errors.New("session already ran its pass")

// SessionFactory implements session.SessionFactory for local runs.
type SessionFactory struct {
	// Level is the report nesting level passed to the engine.
	Level int
}

var _ session.SessionFactory = (*SessionFactory)(nil)

// NewSession wires a fresh builder and the extra listeners into a new pass.
func (f *SessionFactory) NewSession(ctx context.Context, report *config.Report, extra ...engine.Listener) (session.Session, error) {
	if report == nil {
		return nil, fmt.Errorf("cannot start a session without a report")
	}
	s := &Session{
		id:      uuid.New(),
		report:  report,
		level:   f.Level,
		builder: builder.New(),
	}
	s.listeners = append([]engine.Listener{s.builder}, extra...)
	ctxlog.FromContext(ctx).Debug("Session created.", "pass_id", s.id, "report", report.Name, "listeners", len(s.listeners))
	return s, nil
}

// Session implements session.Session for local runs.
type Session struct {
	id        uuid.UUID
	report    *config.Report
	level     int
	builder   *builder.Builder
	listeners []engine.Listener
	ran       bool
}

// ID returns the pass identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// Run drives the structural pass.
func (s *Session) Run(ctx context.Context, rows engine.RowSource) (*session.Outcome, error) {
	if s.ran {
		return nil, ErrAlreadyRun
	}
	s.ran = true

	ctx = ctxlog.WithLogger(ctx, ctxlog.FromContext(ctx).With("pass_id", s.id.String()))
	stats, err := engine.Run(ctx, s.report, rows, s.listeners, engine.WithLevel(s.level))
	if err != nil {
		return nil, fmt.Errorf("pass %s: %w", s.id, err)
	}
	return &session.Outcome{
		PassID:    s.id,
		Stats:     stats,
		Published: s.builder.Published(),
		Results:   s.builder.Results(),
	}, nil
}

// Close drops the pass state.
func (s *Session) Close(ctx context.Context) error {
	ctxlog.FromContext(ctx).Debug("Session closed.", "pass_id", s.id)
	s.builder.Reset()
	s.listeners = nil
	return nil
}
