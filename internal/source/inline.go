package source

import (
	"context"
	"io"
	"maps"

	"github.com/vk/pivotaxis/internal/axis"
)

// Inline serves rows held in memory.
type Inline struct {
	rows []map[string]any
	pos  int
}

// NewInline returns a source over rows. Each row is copied when served.
func NewInline(rows []map[string]any) *Inline {
	return &Inline{rows: rows}
}

func (s *Inline) Next(ctx context.Context) (axis.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.pos >= len(s.rows) {
		return nil, io.EOF
	}
	row := axis.Row(maps.Clone(s.rows[s.pos]))
	s.pos++
	if row == nil {
		row = axis.Row{}
	}
	return row, nil
}

func (s *Inline) Close() error { return nil }
