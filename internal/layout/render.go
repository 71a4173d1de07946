package layout

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/vk/pivotaxis/internal/axis"
	"github.com/vk/pivotaxis/internal/axiskey"
	"github.com/vk/pivotaxis/internal/builder"
	"github.com/vk/pivotaxis/internal/config"
	"github.com/vk/pivotaxis/internal/ctxlog"
	"github.com/vk/pivotaxis/internal/engine"
	"github.com/vk/pivotaxis/internal/procerr"
)

// Table is the laid out form of one crosstab activation.
type Table struct {
	GroupID    string
	Activation int
	Columns    []string
	Rows       []string
	Header     []axiskey.Key
	Lines      []Line
}

type active struct {
	group    *config.Group
	boundary *config.Group
	spec     axis.Specification
	table    *Table
	pending  []axis.Row
}

// Renderer replays a pass against the results of a previous structural pass
// over the same rows. It implements engine.Listener.
type Renderer struct {
	results []builder.Result
	next    int
	level   int
	stack   []*active
	tables  []*Table
}

var _ engine.Listener = (*Renderer)(nil)

// NewRenderer consumes the results at level in finish order. Crosstab
// activations start in the same order they finished in the structural pass
// because activations at one level never overlap.
func NewRenderer(results []builder.Result, level int) *Renderer {
	r := &Renderer{level: level}
	for _, res := range results {
		if res.Level == level {
			r.results = append(r.results, res)
		}
	}
	return r
}

// Tables returns the tables completed so far.
func (r *Renderer) Tables() []*Table { return r.tables }

func (r *Renderer) top() *active {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

func (r *Renderer) GroupStarted(ctx context.Context, ev engine.Event) error {
	if ev.Level != r.level {
		return nil
	}
	if ev.Group.Kind == config.KindCrosstab {
		if r.next >= len(r.results) {
			return procerr.Structure("render", nil, "crosstab %s has no finalized axis", ev.Group.ID())
		}
		res := r.results[r.next]
		if res.GroupID != ev.Group.ID() {
			return procerr.Structure("render", nil, "crosstab %s started where %s was finalized", ev.Group.ID(), res.GroupID)
		}
		r.next++
		header := make([]axiskey.Key, res.Spec.Size())
		for i := range header {
			header[i] = res.Spec.KeyAt(i)
		}
		r.stack = append(r.stack, &active{
			group:    ev.Group,
			boundary: builder.RowBoundary(ev.Group),
			spec:     res.Spec,
			table: &Table{
				GroupID:    res.GroupID,
				Activation: res.Activation,
				Columns:    res.Spec.ColumnDimensionNames(),
				Rows:       res.Spec.RowDimensionNames(),
				Header:     header,
			},
		})
		ctxlog.FromContext(ctx).Debug("Rendering crosstab.", "group", res.GroupID, "activation", res.Activation, "columns", len(header))
	}
	if a := r.top(); a != nil && a.boundary == ev.Group {
		a.pending = a.pending[:0]
	}
	return nil
}

func (r *Renderer) ItemsAdvanced(_ context.Context, ev engine.Event) error {
	if a := r.top(); a != nil && ev.Level == r.level {
		a.pending = append(a.pending, ev.Row)
	}
	return nil
}

func (r *Renderer) GroupFinished(_ context.Context, ev engine.Event) error {
	if ev.Level != r.level {
		return nil
	}
	a := r.top()
	if a == nil {
		return nil
	}
	if a.boundary == ev.Group {
		line, err := Place(a.spec, a.pending, a.group.Measure)
		if err != nil {
			return err
		}
		a.table.Lines = append(a.table.Lines, line)
	}
	if a.group == ev.Group {
		r.stack = r.stack[:len(r.stack)-1]
		r.tables = append(r.tables, a.table)
	}
	return nil
}

// Format writes t as an aligned text grid. Empty cells print as a dot.
func (t *Table) Format(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "# %s #%d\n", t.GroupID, t.Activation)

	cols := []string{strings.Join(t.Rows, "/")}
	for _, k := range t.Header {
		cols = append(cols, joinKey(k))
	}
	fmt.Fprintln(tw, strings.Join(cols, "\t"))

	for _, line := range t.Lines {
		cells := []string{joinKey(line.Key)}
		for _, c := range line.Cells {
			cells = append(cells, formatCell(c))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func joinKey(k axiskey.Key) string {
	parts := make([]string, k.Len())
	for i := range parts {
		parts[i] = fmt.Sprint(k.At(i))
	}
	return strings.Join(parts, "/")
}

func formatCell(c Cell) string {
	switch {
	case c.Empty:
		return "."
	case c.Value != nil:
		return fmt.Sprint(c.Value)
	}
	return fmt.Sprint(c.Count)
}
