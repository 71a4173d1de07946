package builder

import "github.com/vk/pivotaxis/internal/config"

// ColumnDimensions returns the column field names of a crosstab in the order
// they are nested.
func ColumnDimensions(crosstab *config.Group) []string {
	var names []string
	for g := crosstab.Body; g != nil; g = g.Body {
		if g.Kind == config.KindCrosstabColumn {
			names = appendUnique(names, g.Fields...)
		}
	}
	return names
}

// RowDimensions returns the row field names of a crosstab: fields of the
// enclosing relational groups from outer to inner, then padding fields, then
// the fields of the crosstab's own other and row groups.
func RowDimensions(crosstab *config.Group) []string {
	var ancestors []*config.Group
	for g := crosstab.Parent; g != nil; g = g.Parent {
		if g.Kind == config.KindRelational {
			ancestors = append(ancestors, g)
		}
	}
	names := []string{}
	for i := len(ancestors) - 1; i >= 0; i-- {
		names = appendUnique(names, ancestors[i].Fields...)
	}
	names = appendUnique(names, crosstab.PaddingFields...)
	for g := crosstab.Body; g != nil; g = g.Body {
		if g.Kind == config.KindCrosstabOther || g.Kind == config.KindCrosstabRow {
			names = appendUnique(names, g.Fields...)
		}
	}
	return names
}

// RowBoundary returns the group whose start and finish delimit one axis row:
// the innermost other or row group, or the crosstab itself when it has none.
func RowBoundary(crosstab *config.Group) *config.Group {
	boundary := crosstab
	for g := crosstab.Body; g != nil; g = g.Body {
		if g.Kind == config.KindCrosstabOther || g.Kind == config.KindCrosstabRow {
			boundary = g
		}
	}
	return boundary
}

func appendUnique(dst []string, names ...string) []string {
	for _, n := range names {
		found := false
		for _, d := range dst {
			if d == n {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, n)
		}
	}
	return dst
}
