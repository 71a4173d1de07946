// Package source reads report rows from the places a report definition can
// point at: inline rows, CSV files (optionally gzip compressed), XLSX sheets
// and PostgreSQL queries. Rows must already be sorted by the report's group
// fields; sources never reorder them.
package source

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vk/pivotaxis/internal/axis"
	"github.com/vk/pivotaxis/internal/config"
	"github.com/vk/pivotaxis/internal/ctxlog"
)

// Source yields rows in order. Next returns io.EOF after the last row.
type Source interface {
	Next(ctx context.Context) (axis.Row, error)
	Close() error
}

// Kinds understood by Open.
const (
	KindInline   = "inline"
	KindCSV      = "csv"
	KindXLSX     = "xlsx"
	KindPostgres = "postgres"
)

// Open creates the source described by cfg.
func Open(ctx context.Context, cfg *config.Source) (Source, error) {
	if cfg == nil {
		return nil, fmt.Errorf("report has no source")
	}
	ctxlog.FromContext(ctx).Debug("Opening row source.", "kind", cfg.Kind, "path", cfg.Path, "sheet", cfg.Sheet)
	switch cfg.Kind {
	case KindInline:
		return NewInline(cfg.Rows), nil
	case KindCSV:
		return OpenCSV(cfg.Path)
	case KindXLSX:
		return OpenXLSX(cfg.Path, cfg.Sheet)
	case KindPostgres:
		return OpenPostgres(ctx, cfg.DSN, cfg.Query)
	}
	return nil, fmt.Errorf("unsupported source kind %q", cfg.Kind)
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseCell infers a typed value from a text cell: empty cells are nil, then
// integers, floats, booleans and timestamps are tried in that order; anything
// else stays a string.
func ParseCell(raw string) any {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}
	if i, err := strconv.ParseInt(value, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	switch strings.ToLower(value) {
	case "true":
		return true
	case "false":
		return false
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	return value
}

// header maps text records onto field names.
type header []string

func newHeader(raw []string) (header, error) {
	h := make(header, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for i, name := range raw {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		seen[name] = struct{}{}
		h[i] = name
	}
	return h, nil
}

// row converts a record; missing trailing cells read as nil and extra cells
// are dropped.
func (h header) row(record []string) axis.Row {
	row := make(axis.Row, len(h))
	for i, name := range h {
		if i < len(record) {
			row[name] = ParseCell(record[i])
		} else {
			row[name] = nil
		}
	}
	return row
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
