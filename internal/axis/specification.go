// Package axis implements the axis normalization algorithms. A Specification
// consumes the rows of one crosstab activation, discovers the distinct column
// axis keys and, once finalized, exposes them in one deterministic order that
// the layout stage uses to place values and synthesize empty cells.
//
// Three implementations exist:
//   - OrderedMerge, for sources that emit axis keys in a stable relative order;
//   - SortedMerge, for sources where only each row's own sequence is reliable;
//   - Dummy, for crosstabs without column fields.
//
// Structural faults returned by Add, EndRow and EndCrosstab wrap
// procerr.ErrInvalidState and abort the current pass. No partial order is
// ever produced after a fault.
package axis

import (
	"slices"

	"github.com/vk/pivotaxis/internal/axiskey"
	"github.com/vk/pivotaxis/internal/procerr"
)

// Row is one data row snapshot keyed by field name.
type Row map[string]any

// Specification is the axis order under construction for one crosstab
// activation.
type Specification interface {
	// ColumnDimensionNames returns the fields that make up an axis key.
	ColumnDimensionNames() []string
	// RowDimensionNames returns the fields that identify one crosstab row.
	RowDimensionNames() []string

	// StartRow begins a new crosstab row.
	StartRow()
	// Add observes the axis key of one data row.
	Add(row Row) error
	// EndRow closes the current crosstab row.
	EndRow() error
	// EndCrosstab freezes the final order. Calling it again has no effect.
	EndCrosstab() error

	// Size returns the number of distinct axis keys.
	Size() int
	// KeyAt returns the i-th key of the order. It panics if i is out of range.
	KeyAt(i int) axiskey.Key
	// IndexOf returns the position of key at or after start, or -1.
	IndexOf(start int, key axiskey.Key) int
}

// Mode selects the normalization algorithm of a crosstab group.
type Mode string

const (
	ModeSorted  Mode = "sorted"
	ModeOrdered Mode = "ordered"
)

// ParseMode validates a textual normalization mode. The empty string selects
// ModeSorted.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeSorted:
		return ModeSorted, nil
	case ModeOrdered:
		return ModeOrdered, nil
	}
	return "", procerr.Config("normalization", "unknown mode %q, expected %q or %q", s, ModeSorted, ModeOrdered)
}

// New picks the implementation for the given mode and field lists.
func New(mode Mode, columns, rows []string) (Specification, error) {
	if columns != nil && len(columns) == 0 {
		return NewDummy(columns, rows)
	}
	switch mode {
	case ModeOrdered:
		return NewOrderedMerge(columns, rows)
	case ModeSorted, "":
		return NewSortedMerge(columns, rows)
	}
	return nil, procerr.Config("normalization", "unknown mode %q", mode)
}

// dimensions holds the validated field lists shared by every implementation.
type dimensions struct {
	columns []string
	rows    []string
}

func newDimensions(columns, rows []string) (dimensions, error) {
	if columns == nil {
		return dimensions{}, procerr.Config("columns", "field list is nil")
	}
	if rows == nil {
		return dimensions{}, procerr.Config("rows", "field list is nil")
	}
	for _, f := range columns {
		if f == "" {
			return dimensions{}, procerr.Config("columns", "empty field name")
		}
	}
	for _, f := range rows {
		if f == "" {
			return dimensions{}, procerr.Config("rows", "empty field name")
		}
	}
	return dimensions{
		columns: slices.Clone(columns),
		rows:    slices.Clone(rows),
	}, nil
}

func (d dimensions) ColumnDimensionNames() []string { return slices.Clone(d.columns) }

func (d dimensions) RowDimensionNames() []string { return slices.Clone(d.rows) }

func (d dimensions) keyOf(row Row) axiskey.Key { return axiskey.FromRow(d.columns, row) }

// indexOf scans keys from start for a structurally equal key.
func indexOf(keys []axiskey.Key, start int, key axiskey.Key) int {
	if start < 0 {
		start = 0
	}
	for i := start; i < len(keys); i++ {
		if keys[i].Equal(key) {
			return i
		}
	}
	return -1
}
