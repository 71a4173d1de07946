package builder

import (
	"context"

	"github.com/vk/pivotaxis/internal/axis"
	"github.com/vk/pivotaxis/internal/config"
	"github.com/vk/pivotaxis/internal/ctxlog"
	"github.com/vk/pivotaxis/internal/engine"
	"github.com/vk/pivotaxis/internal/procerr"
)

// Result is one finalized crosstab activation.
type Result struct {
	// GroupID is the structural identity of the crosstab group.
	GroupID string
	Level   int
	// Activation counts the instances of the same crosstab at the same level,
	// starting at 0.
	Activation int
	Spec       axis.Specification
}

// frame is one open crosstab activation.
type frame struct {
	group    *config.Group
	level    int
	boundary *config.Group
	spec     axis.Specification
}

// Builder implements engine.Listener.
type Builder struct {
	stack       []*frame
	results     []Result
	published   axis.Specification
	activations map[activationKey]int
}

type activationKey struct {
	id    string
	level int
}

var _ engine.Listener = (*Builder)(nil)

// New returns an empty Builder.
func New() *Builder {
	return &Builder{activations: make(map[activationKey]int)}
}

// Published returns the most recently finalized specification, or nil.
func (b *Builder) Published() axis.Specification { return b.published }

// Results returns every finalized activation in finish order.
func (b *Builder) Results() []Result {
	out := make([]Result, len(b.results))
	copy(out, b.results)
	return out
}

// Depth returns the number of open crosstab activations.
func (b *Builder) Depth() int { return len(b.stack) }

// Reset drops all state so the Builder can serve another pass.
func (b *Builder) Reset() {
	b.stack = nil
	b.results = nil
	b.published = nil
	b.activations = make(map[activationKey]int)
}

func (b *Builder) top() *frame {
	if len(b.stack) == 0 {
		return nil
	}
	return b.stack[len(b.stack)-1]
}

// GroupStarted opens a crosstab activation or starts an axis row.
func (b *Builder) GroupStarted(ctx context.Context, ev engine.Event) error {
	if ev.Group.Kind == config.KindCrosstab {
		if err := b.push(ctx, ev); err != nil {
			return err
		}
	}
	if f := b.top(); f != nil && f.level == ev.Level && f.boundary == ev.Group {
		f.spec.StartRow()
	}
	return nil
}

// ItemsAdvanced forwards the row to the innermost open specification.
func (b *Builder) ItemsAdvanced(_ context.Context, ev engine.Event) error {
	f := b.top()
	if f == nil || f.level != ev.Level {
		return nil
	}
	return f.spec.Add(ev.Row)
}

// GroupFinished ends an axis row or finalizes a crosstab activation.
func (b *Builder) GroupFinished(ctx context.Context, ev engine.Event) error {
	f := b.top()
	if f != nil && f.level == ev.Level && f.boundary == ev.Group {
		if err := f.spec.EndRow(); err != nil {
			return err
		}
	}
	if ev.Group.Kind != config.KindCrosstab {
		return nil
	}
	if f == nil || f.group != ev.Group || f.level != ev.Level {
		open := "nothing"
		if f != nil {
			open = f.group.ID()
		}
		return procerr.Structure("groupFinished", nil, "crosstab %s finished at level %d while %s is open", ev.Group.ID(), ev.Level, open)
	}
	return b.pop(ctx)
}

func (b *Builder) push(ctx context.Context, ev engine.Event) error {
	g := ev.Group
	columns, rows := ColumnDimensions(g), RowDimensions(g)
	if columns == nil {
		columns = []string{}
	}
	spec, err := axis.New(g.Normalization, columns, rows)
	if err != nil {
		return err
	}
	b.stack = append(b.stack, &frame{group: g, level: ev.Level, boundary: RowBoundary(g), spec: spec})
	ctxlog.FromContext(ctx).Debug("Crosstab activation opened.",
		"group", g.ID(),
		"level", ev.Level,
		"columns", columns,
		"rows", rows,
		"depth", len(b.stack),
	)
	return nil
}

func (b *Builder) pop(ctx context.Context) error {
	f := b.top()
	if err := f.spec.EndCrosstab(); err != nil {
		return err
	}
	b.stack = b.stack[:len(b.stack)-1]

	key := activationKey{id: f.group.ID(), level: f.level}
	n := b.activations[key]
	b.activations[key] = n + 1
	b.results = append(b.results, Result{GroupID: key.id, Level: f.level, Activation: n, Spec: f.spec})
	b.published = f.spec

	ctxlog.FromContext(ctx).Debug("Crosstab activation finalized.",
		"group", key.id,
		"level", f.level,
		"activation", n,
		"size", f.spec.Size(),
	)
	return nil
}
