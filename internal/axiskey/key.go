// Package axiskey defines the axis key tuple used to identify one distinct
// column position of a crosstab, together with the total-order comparator
// used to break ties when the final axis order is computed.
//
// Equality and ordering are intentionally different relations. Equality is
// structural and type-sensitive: int(1) and int64(1) are two different keys.
// The comparator is numeric-coercing and sees them as equal. Deduplication
// always uses equality.
package axiskey

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Key is an immutable, fixed-arity tuple of axis values.
type Key struct {
	values      []any
	fingerprint string
}

// New builds a key from the given values. The slice is copied.
func New(values ...any) Key {
	cp := make([]any, len(values))
	copy(cp, values)
	return Key{values: cp, fingerprint: fingerprintOf(cp)}
}

// FromRow reads the named fields from a row snapshot. Missing fields are nil.
func FromRow(fields []string, row map[string]any) Key {
	values := make([]any, len(fields))
	for i, f := range fields {
		values[i] = row[f]
	}
	return Key{values: values, fingerprint: fingerprintOf(values)}
}

// Len returns the arity of the key.
func (k Key) Len() int { return len(k.values) }

// At returns the value at position i.
func (k Key) At(i int) any { return k.values[i] }

// Values returns a copy of the key's values.
func (k Key) Values() []any {
	cp := make([]any, len(k.values))
	copy(cp, k.values)
	return cp
}

// Fingerprint returns a string that is identical for structurally equal keys.
// Unequal keys may share a fingerprint.
func (k Key) Fingerprint() string { return k.fingerprint }

// Equal reports element-wise structural equality.
func (k Key) Equal(other Key) bool {
	if len(k.values) != len(other.values) || k.fingerprint != other.fingerprint {
		return false
	}
	for i := range k.values {
		if !equalValue(k.values[i], other.values[i]) {
			return false
		}
	}
	return true
}

func (k Key) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range k.values {
		if i > 0 {
			sb.WriteString(", ")
		}
		if v == nil {
			sb.WriteString("<nil>")
			continue
		}
		sb.WriteString(fmt.Sprint(v))
	}
	sb.WriteByte(']')
	return sb.String()
}

// equalValue compares two values without any numeric coercion. Both values
// must have the same dynamic type to be equal.
func equalValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	switch av := a.(type) {
	case *big.Int:
		return av.Cmp(b.(*big.Int)) == 0
	case *big.Float:
		return av.Cmp(b.(*big.Float)) == 0
	case *big.Rat:
		return av.Cmp(b.(*big.Rat)) == 0
	case decimal.Decimal:
		return av.Equal(b.(decimal.Decimal))
	case time.Time:
		return av.Equal(b.(time.Time))
	case float64:
		bv := b.(float64)
		return av == bv || (math.IsNaN(av) && math.IsNaN(bv))
	case float32:
		bv := b.(float32)
		return av == bv || (av != av && bv != bv)
	}
	if reflect.TypeOf(a).Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// fingerprintOf renders values so that equalValue-equal tuples always map to
// the same string. Types whose printed form is not stable under equality only
// contribute their type name.
func fingerprintOf(values []any) string {
	var sb strings.Builder
	for i, v := range values {
		if i > 0 {
			sb.WriteByte('|')
		}
		if v == nil {
			sb.WriteString("nil")
			continue
		}
		fmt.Fprintf(&sb, "%T:", v)
		switch tv := v.(type) {
		case string:
			sb.WriteString(tv)
		case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, uintptr:
			fmt.Fprint(&sb, tv)
		case float32, float64:
			// -0 and +0 are equal under ==.
			fmt.Fprint(&sb, normalizeZero(tv))
		case *big.Int:
			sb.WriteString(tv.String())
		case *big.Rat:
			sb.WriteString(tv.RatString())
		case decimal.Decimal:
			sb.WriteString(tv.String())
		case time.Time:
			sb.WriteString(tv.UTC().Format(time.RFC3339Nano))
		}
	}
	return sb.String()
}

func normalizeZero(v any) any {
	switch f := v.(type) {
	case float32:
		if f == 0 {
			return float32(0)
		}
	case float64:
		if f == 0 {
			return float64(0)
		}
	}
	return v
}
