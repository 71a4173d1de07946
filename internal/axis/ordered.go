package axis

import (
	"github.com/vk/pivotaxis/internal/axiskey"
	"github.com/vk/pivotaxis/internal/procerr"
)

// OrderedMerge builds the axis order for sources that always emit axis keys
// in the same relative order. Keys are appended the first time they are seen
// and never reordered; a row that revisits an earlier key after a later one
// is a structural fault.
type OrderedMerge struct {
	dimensions
	entries   []axiskey.Key
	cursor    int
	finalized bool
}

// NewOrderedMerge creates an insertion-order specification.
func NewOrderedMerge(columns, rows []string) (*OrderedMerge, error) {
	dims, err := newDimensions(columns, rows)
	if err != nil {
		return nil, err
	}
	return &OrderedMerge{dimensions: dims}, nil
}

func (s *OrderedMerge) StartRow() { s.cursor = 0 }

func (s *OrderedMerge) Add(row Row) error {
	key := s.keyOf(row)
	if s.finalized {
		return procerr.Structure("add", key, "axis order is already finalized")
	}
	p := indexOf(s.entries, 0, key)
	switch {
	case p < 0:
		s.entries = append(s.entries, key)
		s.cursor = len(s.entries) - 1
	case p >= s.cursor:
		s.cursor = p
	default:
		return procerr.Structure("add", key,
			"key found at position %d behind cursor %d; the source is not insertion-order consistent, use sorted normalization", p, s.cursor)
	}
	return nil
}

func (s *OrderedMerge) EndRow() error {
	if s.finalized {
		return procerr.Structure("endRow", nil, "axis order is already finalized")
	}
	return nil
}

func (s *OrderedMerge) EndCrosstab() error {
	s.finalized = true
	return nil
}

func (s *OrderedMerge) Size() int { return len(s.entries) }

func (s *OrderedMerge) KeyAt(i int) axiskey.Key { return s.entries[i] }

func (s *OrderedMerge) IndexOf(start int, key axiskey.Key) int {
	return indexOf(s.entries, start, key)
}
