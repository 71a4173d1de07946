// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It is responsible for file discovery, parsing, translation of the
// schema structures into the config model, and conversion of cty values into
// plain Go values for inline rows.
package hcl
