package engine

import (
	"context"

	"github.com/vk/pivotaxis/internal/axis"
	"github.com/vk/pivotaxis/internal/config"
)

// Event describes one step of the structural pass.
type Event struct {
	// Group is the group that started or finished. For ItemsAdvanced it is the
	// innermost group of the chain.
	Group *config.Group
	// Level is the report nesting level; 0 for the master report, one more
	// for every enclosing subreport.
	Level int
	// Row is the current data row. Finish events carry the last row of the
	// finished group.
	Row axis.Row
}

// Listener receives structural pass events.
type Listener interface {
	GroupStarted(ctx context.Context, ev Event) error
	ItemsAdvanced(ctx context.Context, ev Event) error
	GroupFinished(ctx context.Context, ev Event) error
}

// RowSource yields report rows in report order. Next returns io.EOF after the
// last row.
type RowSource interface {
	Next(ctx context.Context) (axis.Row, error)
}
