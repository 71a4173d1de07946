package engine

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/vk/pivotaxis/internal/axis"
	"github.com/vk/pivotaxis/internal/axiskey"
	"github.com/vk/pivotaxis/internal/config"
	"github.com/vk/pivotaxis/internal/ctxlog"
)

// Stats summarizes a completed pass.
type Stats struct {
	Rows   int
	Groups int
}

// Option customizes a pass.
type Option func(*pass)

// WithLevel runs the pass at the given report nesting level.
func WithLevel(level int) Option {
	return func(p *pass) {
		if level > 0 {
			p.level = level
		}
	}
}

type pass struct {
	chain     []*config.Group
	level     int
	listeners []Listener
	stats     Stats
}

// Run performs one structural pass of report over rows.
func Run(ctx context.Context, report *config.Report, rows RowSource, listeners []Listener, opts ...Option) (Stats, error) {
	logger := ctxlog.FromContext(ctx).With("report", report.Name)
	if report.Root == nil {
		return Stats{}, fmt.Errorf("report %q has no groups", report.Name)
	}
	p := &pass{chain: report.Root.Chain(), listeners: listeners}
	for _, opt := range opts {
		opt(p)
	}
	logger.Debug("Structural pass started.", "levels", len(p.chain), "listeners", len(listeners), "level", p.level)

	var (
		prevKeys []axiskey.Key
		prevRow  axis.Row
		open     int
	)
	for {
		if err := ctx.Err(); err != nil {
			return p.stats, fmt.Errorf("structural pass aborted after %d rows: %w", p.stats.Rows, err)
		}
		row, err := rows.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return p.stats, fmt.Errorf("failed to read row %d: %w", p.stats.Rows+1, err)
		}

		keys := p.levelKeys(row)
		changed := firstChange(prevKeys, keys)
		for i := open - 1; i >= changed; i-- {
			if err := p.finish(ctx, p.chain[i], prevRow); err != nil {
				return p.stats, err
			}
		}
		for i := changed; i < len(p.chain); i++ {
			if err := p.start(ctx, p.chain[i], row); err != nil {
				return p.stats, err
			}
		}
		open = len(p.chain)

		p.stats.Rows++
		if err := p.advance(ctx, row); err != nil {
			return p.stats, err
		}
		prevKeys, prevRow = keys, row
	}

	for i := open - 1; i >= 0; i-- {
		if err := p.finish(ctx, p.chain[i], prevRow); err != nil {
			return p.stats, err
		}
	}
	logger.Debug("Structural pass finished.", "rows", p.stats.Rows, "groups", p.stats.Groups)
	return p.stats, nil
}

func (p *pass) levelKeys(row axis.Row) []axiskey.Key {
	keys := make([]axiskey.Key, len(p.chain))
	for i, g := range p.chain {
		keys[i] = axiskey.FromRow(g.Fields, row)
	}
	return keys
}

// firstChange returns the outermost level whose key differs from the previous
// row, 0 for the first row and len(next) when nothing changed.
func firstChange(prev, next []axiskey.Key) int {
	if prev == nil {
		return 0
	}
	for i := range next {
		if !prev[i].Equal(next[i]) {
			return i
		}
	}
	return len(next)
}

func (p *pass) start(ctx context.Context, g *config.Group, row axis.Row) error {
	p.stats.Groups++
	ev := Event{Group: g, Level: p.level, Row: row}
	for _, l := range p.listeners {
		if err := l.GroupStarted(ctx, ev); err != nil {
			return fmt.Errorf("group %s started at row %d: %w", g.ID(), p.stats.Rows+1, err)
		}
	}
	return nil
}

func (p *pass) advance(ctx context.Context, row axis.Row) error {
	ev := Event{Group: p.chain[len(p.chain)-1], Level: p.level, Row: row}
	for _, l := range p.listeners {
		if err := l.ItemsAdvanced(ctx, ev); err != nil {
			return fmt.Errorf("row %d: %w", p.stats.Rows, err)
		}
	}
	return nil
}

func (p *pass) finish(ctx context.Context, g *config.Group, row axis.Row) error {
	ev := Event{Group: g, Level: p.level, Row: row}
	for _, l := range p.listeners {
		if err := l.GroupFinished(ctx, ev); err != nil {
			return fmt.Errorf("group %s finished at row %d: %w", g.ID(), p.stats.Rows, err)
		}
	}
	return nil
}
