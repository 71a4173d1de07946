package dag

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/pivotaxis/internal/axiskey"
	"github.com/vk/pivotaxis/internal/procerr"
)

// intern is a helper that registers a single-field key.
func intern(t *testing.T, g *Graph, v any) *Node {
	t.Helper()
	n, _, err := g.Intern(axiskey.New(v))
	require.NoError(t, err)
	return n
}

// chain links root -> nodes[0] -> nodes[1] ... the way one row does.
func chain(t *testing.T, g *Graph, nodes ...*Node) error {
	t.Helper()
	prev := g.Root()
	for _, n := range nodes {
		if err := n.AddParent(prev); err != nil {
			return err
		}
		prev = n
	}
	return nil
}

func keysOf(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Key().String()
	}
	return out
}

func TestNew(t *testing.T) {
	g, err := New(1)
	require.NoError(t, err)
	assert.Zero(t, g.Len())
	assert.True(t, g.Root().IsRoot())
	assert.Equal(t, -1, g.Root().Depth())

	_, err = New(-1)
	assert.Error(t, err)
}

func TestIntern(t *testing.T) {
	g, err := New(1)
	require.NoError(t, err)

	a, created, err := g.Intern(axiskey.New("A"))
	require.NoError(t, err)
	assert.True(t, created)

	again, created, err := g.Intern(axiskey.New("A"))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Same(t, a, again)
	assert.Equal(t, 1, g.Len())

	_, _, err = g.Intern(axiskey.New("A", "B"))
	var cfgErr *procerr.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestInternSequenceResetsPerRow(t *testing.T) {
	g, _ := New(1)
	g.StartRow()
	a := intern(t, g, "A")
	b := intern(t, g, "B")
	g.StartRow()
	c := intern(t, g, "C")

	assert.Equal(t, 0, a.Seq())
	assert.Equal(t, 1, b.Seq())
	assert.Equal(t, 0, c.Seq())
}

func TestAddParent(t *testing.T) {
	t.Run("links both directions", func(t *testing.T) {
		g, _ := New(1)
		a, b := intern(t, g, "A"), intern(t, g, "B")

		require.NoError(t, b.AddParent(a))
		assert.Equal(t, []*Node{a}, b.Parents())
		assert.Equal(t, []*Node{b}, a.Children())

		require.NoError(t, b.AddParent(a), "re-adding an edge is a no-op")
		assert.Len(t, b.Parents(), 1)
	})

	t.Run("self edge is rejected", func(t *testing.T) {
		g, _ := New(1)
		a := intern(t, g, "A")
		err := a.AddParent(a)
		assert.True(t, errors.Is(err, procerr.ErrInvalidState))
	})

	t.Run("cycle is rejected without mutation", func(t *testing.T) {
		g, _ := New(1)
		a, b, c := intern(t, g, "A"), intern(t, g, "B"), intern(t, g, "C")
		require.NoError(t, chain(t, g, a, b, c))

		err := a.AddParent(c)
		require.Error(t, err)
		var structural *procerr.StructureError
		assert.ErrorAs(t, err, &structural)
		assert.Equal(t, []*Node{g.Root()}, a.Parents())
		assert.Equal(t, []*Node{b}, a.Children())
		assert.Empty(t, c.Children())
	})
}

func TestDepth(t *testing.T) {
	t.Run("branching rows", func(t *testing.T) {
		g, _ := New(1)
		a, b, c := intern(t, g, "A"), intern(t, g, "B"), intern(t, g, "C")
		require.NoError(t, chain(t, g, a, b))
		require.NoError(t, chain(t, g, a, c))

		assert.Equal(t, 0, a.Depth())
		assert.Equal(t, 1, b.Depth())
		assert.Equal(t, 1, c.Depth())
	})

	t.Run("depth follows the longest path", func(t *testing.T) {
		g, _ := New(1)
		a, b, c := intern(t, g, "A"), intern(t, g, "B"), intern(t, g, "C")
		require.NoError(t, chain(t, g, a, c))
		assert.Equal(t, 1, c.Depth())

		require.NoError(t, chain(t, g, a, b, c))
		assert.Equal(t, 2, c.Depth(), "new longer path invalidates the cached depth")
	})

	t.Run("invalidation reaches transitive successors", func(t *testing.T) {
		g, _ := New(1)
		a, b, c, d := intern(t, g, "A"), intern(t, g, "B"), intern(t, g, "C"), intern(t, g, "D")
		require.NoError(t, chain(t, g, b, c, d))
		assert.Equal(t, 2, d.Depth())

		require.NoError(t, chain(t, g, a, b))
		assert.Equal(t, 3, d.Depth())
	})

	t.Run("unlinked node sits at the first level", func(t *testing.T) {
		g, _ := New(1)
		assert.Equal(t, 0, intern(t, g, "A").Depth())
	})
}

func TestRebalancePrunesImpliedEdges(t *testing.T) {
	g, _ := New(1)
	a, b, c := intern(t, g, "A"), intern(t, g, "B"), intern(t, g, "C")
	require.NoError(t, chain(t, g, a, b, c))
	require.NoError(t, chain(t, g, a, c))

	assert.Equal(t, 2, c.Depth())
	assert.Equal(t, []*Node{b}, c.Parents(), "A -> C is implied by A -> B -> C")
	assert.Equal(t, []*Node{b}, a.Children())
}

func TestRebalanceKeepsUnimpliedEdges(t *testing.T) {
	g, _ := New(1)
	p, x, q, n := intern(t, g, "P"), intern(t, g, "X"), intern(t, g, "Q"), intern(t, g, "N")
	require.NoError(t, chain(t, g, p, n))
	require.NoError(t, chain(t, g, x, q, n))

	assert.Equal(t, 2, n.Depth())
	assert.ElementsMatch(t, []*Node{p, q}, n.Parents(), "P -> N is not implied by any other path")

	// P moves deeper; N must follow and the reverse order must still be rejected.
	y, z := intern(t, g, "Y"), intern(t, g, "Z")
	require.NoError(t, chain(t, g, y, z, x, p))
	assert.Equal(t, 3, p.Depth())
	assert.Equal(t, 4, n.Depth())
	assert.Error(t, p.AddParent(n))
}

func TestCompare(t *testing.T) {
	g, _ := New(1)
	g.StartRow()
	a, c := intern(t, g, "A"), intern(t, g, "C")
	g.StartRow()
	b := intern(t, g, "B")
	require.NoError(t, chain(t, g, a, c))
	require.NoError(t, chain(t, g, a, b))

	assert.Negative(t, a.Compare(b), "shallower first")
	assert.Negative(t, b.Compare(c), "same depth ordered by key")
	assert.Zero(t, b.Compare(b))
}

func TestSorted(t *testing.T) {
	g, _ := New(1)
	for _, v := range []string{"D", "A", "C", "B"} {
		intern(t, g, v)
	}
	a, _ := g.Lookup(axiskey.New("A"))
	b, _ := g.Lookup(axiskey.New("B"))
	c, _ := g.Lookup(axiskey.New("C"))
	d, _ := g.Lookup(axiskey.New("D"))
	require.NoError(t, chain(t, g, d, a))
	require.NoError(t, chain(t, g, d, c, b))

	assert.Equal(t, []string{"[D]", "[A]", "[C]", "[B]"}, keysOf(g.Sorted()))
	assert.Equal(t, []string{"[D]", "[A]", "[C]", "[B]"}, keysOf(g.Nodes()), "registration order")
}

func TestSortedKeepsComparatorEqualNodes(t *testing.T) {
	g, _ := New(1)
	g.StartRow()
	narrow := intern(t, g, 1)
	g.StartRow()
	wide := intern(t, g, int64(1))
	require.NoError(t, chain(t, g, narrow))
	require.NoError(t, chain(t, g, wide))

	sorted := g.Sorted()
	require.Len(t, sorted, 2)
	assert.Same(t, narrow, sorted[0])
	assert.Same(t, wide, sorted[1])
}
