package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/pivotaxis/internal/axis"
	"github.com/vk/pivotaxis/internal/procerr"
)

// build links the given groups into a chain and returns the first one.
func build(groups ...*Group) *Group {
	for i := 0; i+1 < len(groups); i++ {
		groups[i].Adopt(groups[i+1])
	}
	return groups[0]
}

func salesReport() *Report {
	return &Report{
		Name: "sales",
		Root: build(
			&Group{Name: "region", Kind: KindRelational, Fields: []string{"region"}},
			&Group{Name: "matrix", Kind: KindCrosstab, Normalization: axis.ModeSorted},
			&Group{Name: "product", Kind: KindCrosstabRow, Fields: []string{"product"}},
			&Group{Name: "year", Kind: KindCrosstabColumn, Fields: []string{"year"}},
		),
	}
}

func TestGroupIDAndChain(t *testing.T) {
	r := salesReport()
	chain := r.Root.Chain()
	require.Len(t, chain, 4)

	assert.Equal(t, "region", chain[0].ID())
	assert.Equal(t, "region/matrix/product/year", chain[3].ID())
	assert.Same(t, chain[1], chain[2].Parent)
	assert.Equal(t, "column", chain[3].Kind.String())
}

func TestModelReport(t *testing.T) {
	m := &Model{Reports: []*Report{salesReport()}}

	r, err := m.Report("")
	require.NoError(t, err)
	assert.Equal(t, "sales", r.Name)

	_, err = m.Report("missing")
	assert.ErrorContains(t, err, `report "missing" not found`)

	m.Reports = append(m.Reports, &Report{Name: "other"})
	_, err = m.Report("")
	assert.ErrorContains(t, err, "a report name is required")
}

func TestValidate(t *testing.T) {
	require.NoError(t, salesReport().Validate())

	tests := []struct {
		name   string
		mutate func(r *Report)
		want   string
	}{
		{"missing name", func(r *Report) { r.Name = "" }, "name is empty"},
		{"no groups", func(r *Report) { r.Root = nil }, "report has no groups"},
		{"duplicate group", func(r *Report) { r.Root.Body.Body.Name = "region" }, "duplicate group name"},
		{"row with two fields", func(r *Report) { r.Root.Body.Body.Fields = []string{"a", "b"} }, "exactly one field"},
		{"bad normalization", func(r *Report) { r.Root.Body.Normalization = "shuffled" }, "unknown mode"},
		{"relational without fields", func(r *Report) { r.Root.Fields = nil }, "at least one field"},
		{"row group last", func(r *Report) { r.Root.Body.Body.Body = nil }, "must be followed"},
		{"relational inside crosstab", func(r *Report) {
			r.Root.Body.Adopt(&Group{Name: "inner", Kind: KindRelational, Fields: []string{"x"}})
		}, "cannot be nested in a crosstab"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := salesReport()
			tc.mutate(r)
			err := r.Validate()
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.want)

			var cfgErr *procerr.ConfigError
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}
