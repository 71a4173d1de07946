package axis

import (
	"slices"

	"github.com/vk/pivotaxis/internal/axiskey"
	"github.com/vk/pivotaxis/internal/dag"
	"github.com/vk/pivotaxis/internal/procerr"
)

// SortedMerge builds the axis order for sources where rows may disagree on
// which keys they contain but every row lists its own keys in a consistent
// order. Each row contributes a chain of precedence edges; the final order is
// the depth-first, comparator-tie-broken linearization of the merged graph.
type SortedMerge struct {
	dimensions
	graph      *dag.Graph
	currentRow []*dag.Node
	rows       int
	entries    []axiskey.Key
	finalized  bool
}

// NewSortedMerge creates a partial-order merging specification.
func NewSortedMerge(columns, rows []string) (*SortedMerge, error) {
	dims, err := newDimensions(columns, rows)
	if err != nil {
		return nil, err
	}
	g, err := dag.New(len(dims.columns))
	if err != nil {
		return nil, err
	}
	return &SortedMerge{dimensions: dims, graph: g}, nil
}

func (s *SortedMerge) StartRow() {
	s.currentRow = s.currentRow[:0]
	s.rows++
	s.graph.StartRow()
}

func (s *SortedMerge) Add(row Row) error {
	key := s.keyOf(row)
	if s.finalized {
		return procerr.Structure("add", key, "axis order is already finalized")
	}
	if n := len(s.currentRow); n > 0 && s.currentRow[n-1].Key().Equal(key) {
		return nil
	}
	node, _, err := s.graph.Intern(key)
	if err != nil {
		return err
	}
	if slices.Contains(s.currentRow, node) {
		return procerr.Structure("add", key,
			"key reappears in row %d after other keys; rows must be grouped by their column fields", s.rows)
	}
	s.currentRow = append(s.currentRow, node)
	return nil
}

func (s *SortedMerge) EndRow() error {
	if s.finalized {
		return procerr.Structure("endRow", nil, "axis order is already finalized")
	}
	prev := s.graph.Root()
	for _, n := range s.currentRow {
		if err := n.AddParent(prev); err != nil {
			return err
		}
		prev = n
	}
	s.currentRow = s.currentRow[:0]
	return nil
}

func (s *SortedMerge) EndCrosstab() error {
	if s.finalized {
		return nil
	}
	nodes := s.graph.Sorted()
	s.entries = make([]axiskey.Key, len(nodes))
	for i, n := range nodes {
		s.entries[i] = n.Key()
	}
	s.finalized = true
	return nil
}

// Rows returns the number of crosstab rows started so far.
func (s *SortedMerge) Rows() int { return s.rows }

func (s *SortedMerge) Size() int { return len(s.entries) }

func (s *SortedMerge) KeyAt(i int) axiskey.Key { return s.entries[i] }

func (s *SortedMerge) IndexOf(start int, key axiskey.Key) int {
	return indexOf(s.entries, start, key)
}
