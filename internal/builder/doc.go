// Package builder turns the structural events of a pass into finalized axis
// specifications.
//
// A Builder keeps an explicit stack of open crosstab activations. A crosstab
// group start pushes a new specification derived from the report structure,
// rows are forwarded to the top specification, the innermost row boundary of
// the crosstab delimits row groups, and the crosstab finish finalizes and
// publishes the specification. Subreport passes nest by emitting events at a
// deeper level while an outer crosstab is still open.
//
// A Builder belongs to exactly one pass. Use a fresh one, or Reset it, before
// the next pass.
package builder
