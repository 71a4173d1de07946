package dag

import "github.com/vk/pivotaxis/internal/axiskey"

// Graph is the key registry and synthetic root of one precedence graph.
type Graph struct {
	// arity is the fixed length of every key registered in the graph.
	arity int
	// buckets groups nodes by key fingerprint; equality resolves collisions.
	buckets map[string][]*Node
	// order lists nodes in registration order.
	order []*Node
	root  *Node
	// seq is the per-row creation counter, reset by StartRow.
	seq int
}

// Node is one distinct axis key and its precedence edges.
type Node struct {
	key axiskey.Key
	// seq is the creation position within the row that first observed the key.
	seq int
	// ordinal is the registration position within the graph.
	ordinal int
	root    bool

	// parents holds predecessor nodes, children holds successor nodes.
	parents  map[*Node]struct{}
	children map[*Node]struct{}

	depth      int
	depthValid bool
}
