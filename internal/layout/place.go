// Package layout is the render pass. It replays a report's rows against the
// axes finalized by the structural pass and places every observed column key
// into its axis slot, synthesizing empty cells for keys a row never saw.
package layout

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"
	"github.com/vk/pivotaxis/internal/axis"
	"github.com/vk/pivotaxis/internal/axiskey"
	"github.com/vk/pivotaxis/internal/procerr"
)

// Cell is one slot of a laid out row.
type Cell struct {
	Column axiskey.Key
	// Empty is set for synthesized cells no source row landed in.
	Empty bool
	Count int
	// Value is the decimal sum of a numeric measure, or the last non-numeric
	// measure value. It is nil when no measure is configured.
	Value any
}

// Line is one laid out axis row.
type Line struct {
	Key   axiskey.Key
	Cells []Cell
}

// Place lays out the rows of a single axis row against spec. The column keys
// of rows are expected in axis order; a key found behind the previous one is
// still placed by searching from the start.
func Place(spec axis.Specification, rows []axis.Row, measure string) (Line, error) {
	var line Line
	if len(rows) > 0 {
		line.Key = axiskey.FromRow(spec.RowDimensionNames(), rows[0])
	} else {
		line.Key = axiskey.New()
	}
	line.Cells = make([]Cell, spec.Size())
	for i := range line.Cells {
		line.Cells[i] = Cell{Column: spec.KeyAt(i), Empty: true}
	}
	if spec.Size() == 0 {
		return line, nil
	}

	columns := spec.ColumnDimensionNames()
	cursor := 0
	for _, row := range rows {
		key := axiskey.FromRow(columns, row)
		i := spec.IndexOf(cursor, key)
		if i < 0 {
			i = spec.IndexOf(0, key)
		}
		if i < 0 {
			return Line{}, procerr.Structure("place", key, "column key is not on the finalized axis")
		}
		cell := &line.Cells[i]
		cell.Empty = false
		cell.Count++
		if measure != "" {
			cell.Value = accumulate(cell.Value, row[measure])
		}
		cursor = i
	}
	return line, nil
}

func accumulate(acc, v any) any {
	d, ok := toDecimal(v)
	if !ok {
		if v == nil {
			return acc
		}
		return v
	}
	if sum, ok := acc.(decimal.Decimal); ok {
		return sum.Add(d)
	}
	return d
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x, true
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int32:
		return decimal.NewFromInt32(x), true
	case int64:
		return decimal.NewFromInt(x), true
	case uint64:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(x), 0), true
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat(x), true
	}
	return decimal.Decimal{}, false
}
