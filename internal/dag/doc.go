// Package dag maintains the deduplicated precedence graph behind sorted axis
// normalization. Every distinct axis key observed by one crosstab activation
// becomes a single Node; each processed row contributes a chain of edges from
// a synthetic root through the row's keys in the order they were observed.
//
// The graph is kept acyclic at all times: an edge that would close a cycle is
// rejected before anything is recorded. A node's depth is its longest-path
// distance from the root's first level and is the primary sort key of the
// final axis order.
//
// A Graph is owned by exactly one specification and is not safe for
// concurrent use.
package dag
