package dag

import (
	"cmp"
	"math"
	"slices"

	"github.com/vk/pivotaxis/internal/axiskey"
	"github.com/vk/pivotaxis/internal/procerr"
)

func newNode(key axiskey.Key, seq, ordinal int) *Node {
	return &Node{
		key:      key,
		seq:      seq,
		ordinal:  ordinal,
		parents:  make(map[*Node]struct{}),
		children: make(map[*Node]struct{}),
	}
}

// Key returns the axis key wrapped by the node.
func (n *Node) Key() axiskey.Key { return n.key }

// Seq returns the per-row creation sequence number.
func (n *Node) Seq() int { return n.seq }

// IsRoot reports whether the node is the graph's synthetic root.
func (n *Node) IsRoot() bool { return n.root }

// Parents returns the current predecessors in registration order.
func (n *Node) Parents() []*Node { return sortedSet(n.parents) }

// Children returns the current successors in registration order.
func (n *Node) Children() []*Node { return sortedSet(n.children) }

// Depth returns the node's longest-path distance from the first level below
// the root, rebalancing the node first if needed. The root itself is -1.
func (n *Node) Depth() int {
	n.Rebalance()
	return n.depth
}

// AddParent records candidate as a predecessor of n. The edge is rejected,
// leaving the graph untouched, when n already precedes candidate.
func (n *Node) AddParent(candidate *Node) error {
	if candidate == n || isAncestor(n, candidate) {
		return procerr.Structure("addParent", n.key,
			"placing %s before it contradicts an ordering observed earlier", candidate.key)
	}
	if _, ok := n.parents[candidate]; ok {
		return nil
	}
	n.parents[candidate] = struct{}{}
	candidate.children[n] = struct{}{}
	n.invalidate()
	return nil
}

// Rebalance recomputes the cached depth of n and of any predecessor whose
// depth is stale. Predecessors are settled before their successors.
func (n *Node) Rebalance() {
	if n.depthValid {
		return
	}
	stack := []*Node{n}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.depthValid {
			stack = stack[:len(stack)-1]
			continue
		}
		ready := true
		for p := range top.parents {
			if !p.depthValid {
				stack = append(stack, p)
				ready = false
			}
		}
		if !ready {
			continue
		}
		stack = stack[:len(stack)-1]
		top.settle()
	}
}

// settle computes the depth of a node whose predecessors are all valid and
// drops predecessor edges that are both shallower than the deepest parent and
// implied by a path through one of the deepest parents.
func (n *Node) settle() {
	switch {
	case n.root:
		n.depth = -1
	case len(n.parents) == 0:
		n.depth = 0
	default:
		deepest := math.MinInt
		for p := range n.parents {
			deepest = max(deepest, p.depth)
		}
		var anchors []*Node
		for p := range n.parents {
			if p.depth == deepest {
				anchors = append(anchors, p)
			}
		}
		for p := range n.parents {
			if p.depth < deepest && impliedBy(p, anchors) {
				delete(n.parents, p)
				delete(p.children, n)
			}
		}
		n.depth = deepest + 1
	}
	n.depthValid = true
}

// Compare orders nodes by depth, then by key, then by creation sequence.
// Registration order breaks any remaining tie so that the order is strict.
func (n *Node) Compare(other *Node) int {
	if c := cmp.Compare(n.Depth(), other.Depth()); c != 0 {
		return c
	}
	if c, err := axiskey.Compare(n.key, other.key); err == nil && c != 0 {
		return c
	}
	if c := cmp.Compare(n.seq, other.seq); c != 0 {
		return c
	}
	return cmp.Compare(n.ordinal, other.ordinal)
}

func sortedSet(set map[*Node]struct{}) []*Node {
	out := make([]*Node, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	slices.SortFunc(out, func(a, b *Node) int { return cmp.Compare(a.ordinal, b.ordinal) })
	return out
}
