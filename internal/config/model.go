package config

import (
	"fmt"
	"strings"

	"github.com/vk/pivotaxis/internal/axis"
)

// Model is the set of reports discovered by a loader, in declaration order.
type Model struct {
	Reports []*Report
}

// Report finds a report by name. An empty name selects the only report when
// exactly one is defined.
func (m *Model) Report(name string) (*Report, error) {
	if name == "" {
		if len(m.Reports) == 1 {
			return m.Reports[0], nil
		}
		return nil, fmt.Errorf("%d reports defined, a report name is required", len(m.Reports))
	}
	for _, r := range m.Reports {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, fmt.Errorf("report %q not found", name)
}

// Report is one report definition: a linear chain of groups and a source.
type Report struct {
	Name   string
	Root   *Group
	Source *Source
}

// Source describes where the report's rows come from.
type Source struct {
	Kind  string
	Path  string
	Sheet string
	DSN   string
	Query string
	// Rows holds inline rows when Kind is "inline".
	Rows []map[string]any
}

// GroupKind distinguishes the group types that can appear in a report.
type GroupKind int

const (
	KindRelational GroupKind = iota
	KindCrosstab
	KindCrosstabOther
	KindCrosstabRow
	KindCrosstabColumn
)

func (k GroupKind) String() string {
	switch k {
	case KindRelational:
		return "group"
	case KindCrosstab:
		return "crosstab"
	case KindCrosstabOther:
		return "other"
	case KindCrosstabRow:
		return "row"
	case KindCrosstabColumn:
		return "column"
	}
	return fmt.Sprintf("GroupKind(%d)", int(k))
}

// Group is one level of the report's group hierarchy. Each group has at most
// one body group nested inside it.
type Group struct {
	Name   string
	Kind   GroupKind
	Fields []string

	// PaddingFields, Normalization and Measure only apply to crosstab groups.
	PaddingFields []string
	Normalization axis.Mode
	// Measure names the field the layout pass shows in each cell.
	Measure string

	Parent *Group
	Body   *Group
}

// ID returns the structural identity of the group: the slash-joined names of
// the group and its ancestors.
func (g *Group) ID() string {
	var parts []string
	for cur := g; cur != nil; cur = cur.Parent {
		parts = append(parts, cur.Name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}

// Chain returns g followed by every group nested below it.
func (g *Group) Chain() []*Group {
	var out []*Group
	for cur := g; cur != nil; cur = cur.Body {
		out = append(out, cur)
	}
	return out
}

// Adopt sets body as the nested group of g.
func (g *Group) Adopt(body *Group) {
	g.Body = body
	if body != nil {
		body.Parent = g
	}
}
