package axiskey

import (
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCopiesValues(t *testing.T) {
	values := []any{"EU", 2020}
	k := New(values...)
	values[0] = "US"

	assert.Equal(t, "EU", k.At(0))
	assert.Equal(t, 2, k.Len())

	out := k.Values()
	out[1] = 1999
	assert.Equal(t, 2020, k.At(1))
}

func TestFromRow(t *testing.T) {
	row := map[string]any{"year": int64(2021), "region": "EU", "ignored": true}
	k := FromRow([]string{"region", "year", "missing"}, row)

	require.Equal(t, 3, k.Len())
	assert.Equal(t, "EU", k.At(0))
	assert.Equal(t, int64(2021), k.At(1))
	assert.Nil(t, k.At(2))
	assert.Equal(t, "[EU, 2021, <nil>]", k.String())
}

func TestEqual(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		a, b  Key
		equal bool
	}{
		{"same strings", New("A", "B"), New("A", "B"), true},
		{"different strings", New("A"), New("B"), false},
		{"different arity", New("A"), New("A", "B"), false},
		{"int vs int64", New(1), New(int64(1)), false},
		{"int vs float", New(1), New(1.0), false},
		{"nil vs nil", New(nil), New(nil), true},
		{"nil vs value", New(nil), New("A"), false},
		{"big ints by value", New(big.NewInt(7)), New(big.NewInt(7)), true},
		{"decimals by value", New(decimal.RequireFromString("1.50")), New(decimal.RequireFromString("1.5")), true},
		{"times by instant", New(now), New(now.In(time.FixedZone("X", 3600))), true},
		{"NaN equals NaN", New(math.NaN()), New(math.NaN()), true},
		{"signed zeros", New(0.0), New(math.Copysign(0, -1)), true},
		{"slices deep equal", New([]string{"a"}), New([]string{"a"}), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.equal, tc.a.Equal(tc.b))
			assert.Equal(t, tc.equal, tc.b.Equal(tc.a))
			if tc.equal {
				assert.Equal(t, tc.a.Fingerprint(), tc.b.Fingerprint())
			}
		})
	}
}
