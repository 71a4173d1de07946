package axiskey

import (
	"errors"
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/pivotaxis/internal/procerr"
)

type version struct{ major int }

func (v version) CompareAxis(other any) (int, error) {
	o, ok := other.(version)
	if !ok {
		return 0, errors.New("not a version")
	}
	return v.major - o.major, nil
}

func (v version) String() string { return "v" + string(rune('0'+v.major)) }

func TestCompareValues(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		a, b any
		want int
	}{
		{"nil equals nil", nil, nil, 0},
		{"nil first", nil, "A", -1},
		{"nil first reversed", 0, nil, 1},
		{"int vs int64 equal", 1, int64(1), 0},
		{"int vs float", 2, 1.5, 1},
		{"uint vs negative int", uint64(math.MaxUint64), int64(-1), 1},
		{"big int vs int", big.NewInt(10), 9, 1},
		{"decimal vs float", decimal.RequireFromString("0.1"), 0.1, -1},
		{"big float vs rat", big.NewFloat(0.5), big.NewRat(1, 2), 0},
		{"NaN before numbers", math.NaN(), -1e300, -1},
		{"infinity after numbers", math.Inf(1), big.NewInt(1 << 62), 1},
		{"strings", "apple", "banana", -1},
		{"bools", false, true, -1},
		{"times", day, day.Add(time.Hour), -1},
		{"ordered values", version{2}, version{1}, 1},
		{"ordered fallback to string", version{1}, "v0", 1},
		{"mixed types by string", "10", 9, -1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CompareValues(tc.a, tc.b))
			assert.Equal(t, -tc.want, CompareValues(tc.b, tc.a))
		})
	}
}

func TestCompareKeys(t *testing.T) {
	c, err := Compare(New("EU", 2020), New("EU", 2021))
	require.NoError(t, err)
	assert.Equal(t, -1, c)

	c, err = Compare(New(nil, "B"), New(nil, "A"))
	require.NoError(t, err)
	assert.Equal(t, 1, c)

	c, err = Compare(New(), New())
	require.NoError(t, err)
	assert.Zero(t, c)
}

func TestCompareArityMismatch(t *testing.T) {
	_, err := Compare(New("A"), New("A", "B"))
	require.Error(t, err)

	var cfgErr *procerr.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestCompareIsNotEquality(t *testing.T) {
	a, b := New(1), New(int64(1))

	c, err := Compare(a, b)
	require.NoError(t, err)
	assert.Zero(t, c)
	assert.False(t, a.Equal(b))
}
