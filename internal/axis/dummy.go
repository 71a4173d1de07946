package axis

import "github.com/vk/pivotaxis/internal/axiskey"

// Dummy is the specification of a crosstab without column fields. It accepts
// every event and never produces an axis key.
type Dummy struct {
	dimensions
}

// NewDummy creates a no-op specification.
func NewDummy(columns, rows []string) (*Dummy, error) {
	if columns == nil {
		columns = []string{}
	}
	dims, err := newDimensions(columns, rows)
	if err != nil {
		return nil, err
	}
	return &Dummy{dimensions: dims}, nil
}

func (d *Dummy) StartRow()          {}
func (d *Dummy) Add(Row) error      { return nil }
func (d *Dummy) EndRow() error      { return nil }
func (d *Dummy) EndCrosstab() error { return nil }
func (d *Dummy) Size() int          { return 0 }

func (d *Dummy) KeyAt(i int) axiskey.Key {
	panic("axis: KeyAt called on an empty axis")
}

func (d *Dummy) IndexOf(int, axiskey.Key) int { return -1 }
