package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/pivotaxis/internal/axis"
	"github.com/vk/pivotaxis/internal/config"
	"github.com/vk/pivotaxis/internal/ctxlog"
)

type sliceRows struct {
	rows []axis.Row
	pos  int
}

func (s *sliceRows) Next(context.Context) (axis.Row, error) {
	if s.pos >= len(s.rows) {
		return nil, io.EOF
	}
	s.pos++
	return s.rows[s.pos-1], nil
}

// recorder keeps a flat transcript of the events it receives.
type recorder struct {
	events []string
	failOn string
}

func (r *recorder) record(kind string, ev Event) error {
	entry := kind + " " + ev.Group.Name
	if kind == "advance" {
		entry = fmt.Sprintf("advance %v", ev.Row["v"])
	}
	r.events = append(r.events, entry)
	if entry == r.failOn {
		return errors.New("listener failed")
	}
	return nil
}

func (r *recorder) GroupStarted(_ context.Context, ev Event) error  { return r.record("start", ev) }
func (r *recorder) ItemsAdvanced(_ context.Context, ev Event) error { return r.record("advance", ev) }
func (r *recorder) GroupFinished(_ context.Context, ev Event) error { return r.record("finish", ev) }

func chainOf(groups ...*config.Group) *config.Group {
	for i := 0; i+1 < len(groups); i++ {
		groups[i].Adopt(groups[i+1])
	}
	return groups[0]
}

func crosstabReport() *config.Report {
	return &config.Report{
		Name: "sales",
		Root: chainOf(
			&config.Group{Name: "region", Kind: config.KindRelational, Fields: []string{"region"}},
			&config.Group{Name: "matrix", Kind: config.KindCrosstab},
			&config.Group{Name: "product", Kind: config.KindCrosstabRow, Fields: []string{"product"}},
			&config.Group{Name: "year", Kind: config.KindCrosstabColumn, Fields: []string{"year"}},
		),
	}
}

func TestRunEmitsNestedGroups(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	rows := &sliceRows{rows: []axis.Row{
		{"region": "EU", "product": "A", "year": 2020, "v": 1},
		{"region": "EU", "product": "A", "year": 2021, "v": 2},
		{"region": "EU", "product": "B", "year": 2021, "v": 3},
		{"region": "US", "product": "B", "year": 2021, "v": 4},
	}}
	rec := &recorder{}

	stats, err := Run(ctx, crosstabReport(), rows, []Listener{rec})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"start region", "start matrix", "start product", "start year", "advance 1",
		"finish year", "start year", "advance 2",
		"finish year", "finish product", "start product", "start year", "advance 3",
		"finish year", "finish product", "finish matrix", "finish region",
		"start region", "start matrix", "start product", "start year", "advance 4",
		"finish year", "finish product", "finish matrix", "finish region",
	}, rec.events)
	assert.Equal(t, Stats{Rows: 4, Groups: 11}, stats)
}

func TestRunWithoutRows(t *testing.T) {
	rec := &recorder{}
	stats, err := Run(ctxlog.Discard(context.Background()), crosstabReport(), &sliceRows{}, []Listener{rec})
	require.NoError(t, err)
	assert.Empty(t, rec.events)
	assert.Zero(t, stats)
}

func TestRunStopsOnListenerError(t *testing.T) {
	rows := &sliceRows{rows: []axis.Row{
		{"region": "EU", "product": "A", "year": 2020, "v": 1},
		{"region": "EU", "product": "B", "year": 2020, "v": 2},
	}}
	rec := &recorder{failOn: "finish product"}

	_, err := Run(ctxlog.Discard(context.Background()), crosstabReport(), rows, []Listener{rec})
	require.Error(t, err)
	assert.ErrorContains(t, err, "group region/matrix/product finished at row 1")
	assert.Equal(t, "finish product", rec.events[len(rec.events)-1])
}

func TestRunHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(ctxlog.Discard(context.Background()))
	cancel()

	rows := &sliceRows{rows: []axis.Row{{"region": "EU"}}}
	_, err := Run(ctx, crosstabReport(), rows, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunPropagatesLevel(t *testing.T) {
	var levels []int
	l := levelProbe(func(ev Event) { levels = append(levels, ev.Level) })
	rows := &sliceRows{rows: []axis.Row{{"region": "EU"}}}
	report := &config.Report{Name: "r", Root: &config.Group{Name: "region", Kind: config.KindRelational, Fields: []string{"region"}}}

	_, err := Run(ctxlog.Discard(context.Background()), report, rows, []Listener{l}, WithLevel(2))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2, 2}, levels)
}

type levelProbe func(Event)

func (f levelProbe) GroupStarted(_ context.Context, ev Event) error  { f(ev); return nil }
func (f levelProbe) ItemsAdvanced(_ context.Context, ev Event) error { f(ev); return nil }
func (f levelProbe) GroupFinished(_ context.Context, ev Event) error { f(ev); return nil }
