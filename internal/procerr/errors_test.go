package procerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type name string

func (n name) String() string { return string(n) }

func TestStructureErrorWrapsInvalidState(t *testing.T) {
	err := Structure("endRow", name("[A]"), "edge would close a cycle")

	assert.True(t, errors.Is(err, ErrInvalidState))
	assert.EqualError(t, err, "endRow: edge would close a cycle (key [A])")

	var structural *StructureError
	assert.True(t, errors.As(err, &structural))
	assert.Equal(t, "endRow", structural.Op)
}

func TestStructureErrorWithoutKey(t *testing.T) {
	err := Structure("add", nil, "specification is finalized")
	assert.EqualError(t, err, "add: specification is finalized")
}

func TestConfigError(t *testing.T) {
	err := Config("columns", "field list is nil")
	assert.EqualError(t, err, `invalid configuration for "columns": field list is nil`)
	assert.False(t, errors.Is(err, ErrInvalidState))

	err = Config("", "arity %d != %d", 1, 2)
	assert.EqualError(t, err, "invalid configuration: arity 1 != 2")
}
