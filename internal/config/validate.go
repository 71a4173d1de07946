package config

import (
	"github.com/vk/pivotaxis/internal/axis"
	"github.com/vk/pivotaxis/internal/procerr"
)

// Validate checks the structural rules of a report definition: unique group
// names, crosstab bodies made of other, row and column groups in that order,
// and exactly one field on every row and column group.
func (r *Report) Validate() error {
	if r.Name == "" {
		return procerr.Config("report", "name is empty")
	}
	if r.Root == nil {
		return procerr.Config(r.Name, "report has no groups")
	}
	seen := make(map[string]struct{})
	for _, g := range r.Root.Chain() {
		if g.Name == "" {
			return procerr.Config(r.Name, "%s group without a name", g.Kind)
		}
		if _, dup := seen[g.Name]; dup {
			return procerr.Config(g.ID(), "duplicate group name %q", g.Name)
		}
		seen[g.Name] = struct{}{}
		if err := validateGroup(g); err != nil {
			return err
		}
	}
	return nil
}

func validateGroup(g *Group) error {
	switch g.Kind {
	case KindRelational:
		if len(g.Fields) == 0 {
			return procerr.Config(g.ID(), "relational group needs at least one field")
		}
		if g.Body != nil && g.Body.Kind != KindRelational && g.Body.Kind != KindCrosstab {
			return procerr.Config(g.ID(), "a %s group cannot be nested in a relational group", g.Body.Kind)
		}
	case KindCrosstab:
		if _, err := axis.ParseMode(string(g.Normalization)); err != nil {
			return err
		}
		if g.Body == nil {
			return procerr.Config(g.ID(), "crosstab has no row or column groups")
		}
		if g.Body.Kind == KindRelational || g.Body.Kind == KindCrosstab {
			return procerr.Config(g.ID(), "a %s group cannot be nested in a crosstab", g.Body.Kind)
		}
	case KindCrosstabOther:
		if len(g.Fields) == 0 {
			return procerr.Config(g.ID(), "other group needs at least one field")
		}
		if g.Body == nil || g.Body.Kind < KindCrosstabOther {
			return procerr.Config(g.ID(), "other group must be followed by other, row or column groups")
		}
	case KindCrosstabRow:
		if len(g.Fields) != 1 {
			return procerr.Config(g.ID(), "row group needs exactly one field")
		}
		if g.Body == nil || g.Body.Kind < KindCrosstabRow {
			return procerr.Config(g.ID(), "row group must be followed by row or column groups")
		}
	case KindCrosstabColumn:
		if len(g.Fields) != 1 {
			return procerr.Config(g.ID(), "column group needs exactly one field")
		}
		if g.Body != nil && g.Body.Kind != KindCrosstabColumn {
			return procerr.Config(g.ID(), "column group can only contain column groups")
		}
	default:
		return procerr.Config(g.ID(), "unknown group kind %s", g.Kind)
	}
	return nil
}
