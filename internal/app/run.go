package app

import (
	"context"
	"fmt"

	"github.com/vk/pivotaxis/internal/config"
	"github.com/vk/pivotaxis/internal/ctxlog"
	"github.com/vk/pivotaxis/internal/engine"
	"github.com/vk/pivotaxis/internal/layout"
	"github.com/vk/pivotaxis/internal/session"
)

// Run executes the main application logic.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	model, err := a.loader.Load(ctx, a.config.ReportPaths...)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	report, err := model.Report(a.config.ReportName)
	if err != nil {
		return err
	}
	a.logger.Debug("Report selected.", "report", report.Name, "groups", len(report.Root.Chain()))

	outcome, err := a.pass(ctx, report)
	if err != nil {
		return fmt.Errorf("structural pass failed: %w", err)
	}
	a.logger.Info("Structural pass finished.", "report", report.Name, "rows", outcome.Stats.Rows, "axes", len(outcome.Results))

	var tables []*layout.Table
	if a.config.Layout {
		renderer := layout.NewRenderer(outcome.Results, 0)
		if _, err := a.pass(ctx, report, renderer); err != nil {
			return fmt.Errorf("render pass failed: %w", err)
		}
		tables = renderer.Tables()
		a.logger.Info("Render pass finished.", "tables", len(tables))
	}

	if err := a.write(report, outcome, tables); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}

// pass opens the report's source and runs one session over it.
func (a *App) pass(ctx context.Context, report *config.Report, extra ...engine.Listener) (outcome *session.Outcome, err error) {
	src, err := a.open(ctx, report.Source)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := src.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close source: %w", cerr)
		}
	}()

	sess, err := a.sessions.NewSession(ctx, report, extra...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = sess.Close(ctx) }()

	return sess.Run(ctx, src)
}
