package hcl

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/pivotaxis/internal/axis"
	"github.com/vk/pivotaxis/internal/config"
	"github.com/vk/pivotaxis/internal/ctxlog"
	"github.com/vk/pivotaxis/internal/schema"
)

// translateReport converts a report block into the config model. Relative
// source paths are resolved against dir.
func (l *Loader) translateReport(ctx context.Context, r *schema.Report, dir string) (*config.Report, error) {
	if len(r.Groups)+len(r.Crosstabs) != 1 {
		return nil, fmt.Errorf("expected exactly one top-level group or crosstab block, found %d", len(r.Groups)+len(r.Crosstabs))
	}
	var (
		root *config.Group
		err  error
	)
	if len(r.Groups) == 1 {
		root, err = l.translateGroup(r.Groups[0])
	} else {
		root, err = l.translateCrosstab(r.Crosstabs[0])
	}
	if err != nil {
		return nil, err
	}

	report := &config.Report{Name: r.Name, Root: root}
	if r.Source != nil {
		if report.Source, err = l.translateSource(ctx, r.Source, dir); err != nil {
			return nil, err
		}
	}
	return report, nil
}

func (l *Loader) translateGroup(g *schema.Group) (*config.Group, error) {
	out := &config.Group{Name: g.Name, Kind: config.KindRelational, Fields: g.Fields}
	switch {
	case len(g.Groups)+len(g.Crosstabs) > 1:
		return nil, fmt.Errorf("group %q: at most one nested group or crosstab block is allowed", g.Name)
	case len(g.Groups) == 1:
		body, err := l.translateGroup(g.Groups[0])
		if err != nil {
			return nil, err
		}
		out.Adopt(body)
	case len(g.Crosstabs) == 1:
		body, err := l.translateCrosstab(g.Crosstabs[0])
		if err != nil {
			return nil, err
		}
		out.Adopt(body)
	}
	return out, nil
}

// translateCrosstab flattens the other, row and column blocks into the
// crosstab's body chain.
func (l *Loader) translateCrosstab(c *schema.Crosstab) (*config.Group, error) {
	mode, err := axis.ParseMode(c.Normalization)
	if err != nil {
		return nil, fmt.Errorf("crosstab %q: %w", c.Name, err)
	}
	out := &config.Group{
		Name:          c.Name,
		Kind:          config.KindCrosstab,
		PaddingFields: c.PaddingFields,
		Normalization: mode,
		Measure:       c.Measure,
	}
	tail := out
	appendBody := func(g *config.Group) {
		tail.Adopt(g)
		tail = g
	}
	for _, o := range c.Others {
		appendBody(&config.Group{Name: o.Name, Kind: config.KindCrosstabOther, Fields: o.Fields})
	}
	for _, r := range c.Rows {
		appendBody(&config.Group{Name: r.Name, Kind: config.KindCrosstabRow, Fields: []string{r.Field}})
	}
	for _, col := range c.Columns {
		appendBody(&config.Group{Name: col.Name, Kind: config.KindCrosstabColumn, Fields: []string{col.Field}})
	}
	return out, nil
}

func (l *Loader) translateSource(ctx context.Context, s *schema.Source, dir string) (*config.Source, error) {
	out := &config.Source{Kind: s.Kind, Sheet: s.Sheet, DSN: s.DSN, Query: s.Query, Path: s.Path}
	if out.Path != "" && !filepath.IsAbs(out.Path) {
		out.Path = filepath.Join(dir, out.Path)
	}
	if !isExprDefined(ctx, s.Rows, "rows") {
		return out, nil
	}
	val, diags := s.Rows.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("source %q: %w", s.Kind, diags)
	}
	rows, err := rowsFromCty(val)
	if err != nil {
		return nil, fmt.Errorf("source %q: %w", s.Kind, err)
	}
	out.Rows = rows
	return out, nil
}

// isExprDefined reports whether an optional attribute was actually written.
// The decoder fills omitted optional expressions with a zero-width
// placeholder, so a nil check alone is not enough.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	if expr == nil {
		return false
	}
	rng := expr.Range()
	defined := rng.End.Byte > rng.Start.Byte
	ctxlog.FromContext(ctx).Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName,
		"hcl_range", rng.String(),
		"is_defined", defined,
	)
	return defined
}
