package app

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/vk/pivotaxis/internal/axiskey"
	"github.com/vk/pivotaxis/internal/config"
	"github.com/vk/pivotaxis/internal/layout"
	"github.com/vk/pivotaxis/internal/session"
)

type axisDump struct {
	Group      string   `json:"group"`
	Level      int      `json:"level"`
	Activation int      `json:"activation"`
	Columns    []string `json:"columns"`
	Rows       []string `json:"rows"`
	Keys       [][]any  `json:"keys"`
}

type cellDump struct {
	Empty bool `json:"empty,omitempty"`
	Count int  `json:"count,omitempty"`
	Value any  `json:"value,omitempty"`
}

type lineDump struct {
	Key   []any      `json:"key"`
	Cells []cellDump `json:"cells"`
}

type tableDump struct {
	Group      string     `json:"group"`
	Activation int        `json:"activation"`
	Lines      []lineDump `json:"lines"`
}

type runDump struct {
	PassID string      `json:"pass_id"`
	Report string      `json:"report"`
	Rows   int         `json:"rows"`
	Axes   []axisDump  `json:"axes"`
	Tables []tableDump `json:"tables,omitempty"`
}

func (a *App) write(report *config.Report, outcome *session.Outcome, tables []*layout.Table) error {
	if a.config.Output == OutputJSON {
		enc := json.NewEncoder(a.outW)
		enc.SetIndent("", "  ")
		return enc.Encode(dump(report, outcome, tables))
	}

	for _, res := range outcome.Results {
		spec := res.Spec
		fmt.Fprintf(a.outW, "%s #%d level=%d columns=[%s] rows=[%s] size=%d\n",
			res.GroupID, res.Activation, res.Level,
			strings.Join(spec.ColumnDimensionNames(), ", "),
			strings.Join(spec.RowDimensionNames(), ", "),
			spec.Size(),
		)
		for i := 0; i < spec.Size(); i++ {
			fmt.Fprintf(a.outW, "  %d  %s\n", i, spec.KeyAt(i))
		}
	}
	for _, t := range tables {
		fmt.Fprintln(a.outW)
		if err := t.Format(a.outW); err != nil {
			return err
		}
	}
	return nil
}

func dump(report *config.Report, outcome *session.Outcome, tables []*layout.Table) runDump {
	out := runDump{
		PassID: outcome.PassID.String(),
		Report: report.Name,
		Rows:   outcome.Stats.Rows,
		Axes:   []axisDump{},
	}
	for _, res := range outcome.Results {
		d := axisDump{
			Group:      res.GroupID,
			Level:      res.Level,
			Activation: res.Activation,
			Columns:    res.Spec.ColumnDimensionNames(),
			Rows:       res.Spec.RowDimensionNames(),
			Keys:       [][]any{},
		}
		for i := 0; i < res.Spec.Size(); i++ {
			d.Keys = append(d.Keys, jsonKey(res.Spec.KeyAt(i)))
		}
		out.Axes = append(out.Axes, d)
	}
	for _, t := range tables {
		td := tableDump{Group: t.GroupID, Activation: t.Activation, Lines: []lineDump{}}
		for _, line := range t.Lines {
			ld := lineDump{Key: jsonKey(line.Key), Cells: make([]cellDump, len(line.Cells))}
			for i, c := range line.Cells {
				ld.Cells[i] = cellDump{Empty: c.Empty, Count: c.Count, Value: jsonValue(c.Value)}
			}
			td.Lines = append(td.Lines, ld)
		}
		out.Tables = append(out.Tables, td)
	}
	return out
}

func jsonKey(k axiskey.Key) []any {
	values := k.Values()
	for i, v := range values {
		values[i] = jsonValue(v)
	}
	return values
}

// jsonValue replaces floats JSON cannot represent with their text form.
func jsonValue(v any) any {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Sprint(x)
		}
	case float32:
		if math.IsNaN(float64(x)) || math.IsInf(float64(x), 0) {
			return fmt.Sprint(x)
		}
	}
	return v
}
