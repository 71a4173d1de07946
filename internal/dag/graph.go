package dag

import (
	"github.com/google/btree"
	"github.com/vk/pivotaxis/internal/axiskey"
	"github.com/vk/pivotaxis/internal/procerr"
)

// btreeDegree is the fan-out of the tree used to produce the sorted order.
const btreeDegree = 16

// New creates an empty graph for keys of the given arity.
func New(arity int) (*Graph, error) {
	if arity < 0 {
		return nil, procerr.Config("", "negative key arity %d", arity)
	}
	root := newNode(axiskey.New(), 0, -1)
	root.root = true
	return &Graph{
		arity:   arity,
		buckets: make(map[string][]*Node),
		root:    root,
	}, nil
}

// Root returns the synthetic root that precedes the first key of every row.
func (g *Graph) Root() *Node { return g.root }

// Len returns the number of registered nodes, excluding the root.
func (g *Graph) Len() int { return len(g.order) }

// StartRow resets the per-row creation sequence.
func (g *Graph) StartRow() { g.seq = 0 }

// Lookup returns the node registered for a structurally equal key.
func (g *Graph) Lookup(key axiskey.Key) (*Node, bool) {
	for _, n := range g.buckets[key.Fingerprint()] {
		if n.key.Equal(key) {
			return n, true
		}
	}
	return nil, false
}

// Intern returns the canonical node for key, creating it on first sight.
// The boolean result reports whether the node was created by this call.
func (g *Graph) Intern(key axiskey.Key) (*Node, bool, error) {
	if key.Len() != g.arity {
		return nil, false, procerr.Config("", "axis key %s has arity %d, expected %d", key, key.Len(), g.arity)
	}
	if n, ok := g.Lookup(key); ok {
		return n, false, nil
	}
	n := newNode(key, g.seq, len(g.order))
	g.seq++
	fp := key.Fingerprint()
	g.buckets[fp] = append(g.buckets[fp], n)
	g.order = append(g.order, n)
	return n, true, nil
}

// Nodes returns every registered node in registration order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.order))
	copy(out, g.order)
	return out
}

// Sorted returns every registered node in final axis order.
func (g *Graph) Sorted() []*Node {
	for _, n := range g.order {
		n.Rebalance()
	}
	tree := btree.NewG(btreeDegree, func(a, b *Node) bool { return a.Compare(b) < 0 })
	for _, n := range g.order {
		tree.ReplaceOrInsert(n)
	}
	out := make([]*Node, 0, tree.Len())
	tree.Ascend(func(n *Node) bool {
		out = append(out, n)
		return true
	})
	return out
}
