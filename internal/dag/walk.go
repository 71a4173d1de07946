package dag

// isAncestor reports whether target is reachable from start by following
// predecessor edges. The walk is iterative so that long chains cannot
// exhaust the goroutine stack.
func isAncestor(target, start *Node) bool {
	visited := map[*Node]struct{}{start: {}}
	stack := []*Node{start}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for p := range n.parents {
			if p == target {
				return true
			}
			if _, seen := visited[p]; seen {
				continue
			}
			visited[p] = struct{}{}
			stack = append(stack, p)
		}
	}
	return false
}

// impliedBy reports whether p precedes any of the anchors.
func impliedBy(p *Node, anchors []*Node) bool {
	for _, a := range anchors {
		if isAncestor(p, a) {
			return true
		}
	}
	return false
}

// invalidate marks n and every node reachable through successor edges as
// needing a depth recomputation. A successor that is already invalid has
// invalid successors too, so the walk stops there.
func (n *Node) invalidate() {
	n.depthValid = false
	stack := make([]*Node, 0, len(n.children))
	for c := range n.children {
		stack = append(stack, c)
	}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !c.depthValid {
			continue
		}
		c.depthValid = false
		for next := range c.children {
			stack = append(stack, next)
		}
	}
}
