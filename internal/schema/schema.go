// Package schema holds the HCL decoding structures of report definition
// files. They mirror the file syntax and are translated into the format
// agnostic config model by the hcl package.
package schema

import "github.com/hashicorp/hcl/v2"

// File is the top-level structure of a report definition file.
type File struct {
	Reports []*Report `hcl:"report,block"`
	Remain  hcl.Body  `hcl:",remain"`
}

// Report is a `report` block. It holds one source and exactly one top-level
// group or crosstab block.
type Report struct {
	Name      string      `hcl:"name,label"`
	Source    *Source     `hcl:"source,block"`
	Groups    []*Group    `hcl:"group,block"`
	Crosstabs []*Crosstab `hcl:"crosstab,block"`
}

// Source is a `source` block. Which attributes apply depends on the kind
// label: csv and xlsx read Path, xlsx also Sheet, postgres uses DSN and
// Query, inline evaluates Rows.
type Source struct {
	Kind  string         `hcl:"kind,label"`
	Path  string         `hcl:"path,optional"`
	Sheet string         `hcl:"sheet,optional"`
	DSN   string         `hcl:"dsn,optional"`
	Query string         `hcl:"query,optional"`
	Rows  hcl.Expression `hcl:"rows,optional"`
}

// Group is a relational `group` block. It may contain one nested group or
// crosstab block.
type Group struct {
	Name      string      `hcl:"name,label"`
	Fields    []string    `hcl:"fields"`
	Groups    []*Group    `hcl:"group,block"`
	Crosstabs []*Crosstab `hcl:"crosstab,block"`
}

// Crosstab is a `crosstab` block. Its other, row and column blocks nest in
// declaration order: others first, then rows, then columns.
type Crosstab struct {
	Name          string       `hcl:"name,label"`
	Normalization string       `hcl:"normalization,optional"`
	PaddingFields []string     `hcl:"padding_fields,optional"`
	Measure       string       `hcl:"measure,optional"`
	Others        []*Other     `hcl:"other,block"`
	Rows          []*Dimension `hcl:"row,block"`
	Columns       []*Dimension `hcl:"column,block"`
}

// Other is an `other` block: an outer row grouping inside a crosstab.
type Other struct {
	Name   string   `hcl:"name,label"`
	Fields []string `hcl:"fields"`
}

// Dimension is a `row` or `column` block over a single field.
type Dimension struct {
	Name  string `hcl:"name,label"`
	Field string `hcl:"field"`
}
