package axiskey

import (
	"cmp"
	"fmt"
	"math"
	"math/big"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vk/pivotaxis/internal/procerr"
)

// Ordered is implemented by axis values that carry their own natural
// ordering. CompareAxis returns an error when other is not comparable with
// the receiver; the comparator then falls back to string comparison.
type Ordered interface {
	CompareAxis(other any) (int, error)
}

// Compare orders two keys position by position. Keys of different arity are
// a configuration error.
func Compare(a, b Key) (int, error) {
	if len(a.values) != len(b.values) {
		return 0, procerr.Config("", "cannot compare axis keys of arity %d and %d", len(a.values), len(b.values))
	}
	for i := range a.values {
		if c := CompareValues(a.values[i], b.values[i]); c != 0 {
			return c, nil
		}
	}
	return 0, nil
}

// CompareValues orders two single axis values. nil sorts first, numbers are
// compared by value regardless of their Go type, naturally ordered values use
// that ordering, and everything else is compared by its printed form.
func CompareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	if an, ok := toNumber(a); ok {
		if bn, ok := toNumber(b); ok {
			return an.compare(bn)
		}
	}

	if c, ok := compareNatural(a, b); ok {
		return c
	}

	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func compareNatural(a, b any) (int, bool) {
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv), true
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0, true
			case !av:
				return -1, true
			default:
				return 1, true
			}
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv), true
		}
	case Ordered:
		c, err := av.CompareAxis(b)
		if err == nil {
			return sign(c), true
		}
	}
	return 0, false
}

// number holds either an exact rational value or a float that cannot be
// represented exactly (NaN or an infinity).
type number struct {
	exact *big.Rat
	float float64
}

func (n number) compare(o number) int {
	if n.exact != nil && o.exact != nil {
		return n.exact.Cmp(o.exact)
	}
	return cmp.Compare(n.asFloat(), o.asFloat())
}

func (n number) asFloat() float64 {
	if n.exact == nil {
		return n.float
	}
	f, _ := n.exact.Float64()
	return f
}

func toNumber(v any) (number, bool) {
	switch tv := v.(type) {
	case int:
		return exactInt(int64(tv)), true
	case int8:
		return exactInt(int64(tv)), true
	case int16:
		return exactInt(int64(tv)), true
	case int32:
		return exactInt(int64(tv)), true
	case int64:
		return exactInt(tv), true
	case uint:
		return exactUint(uint64(tv)), true
	case uint8:
		return exactUint(uint64(tv)), true
	case uint16:
		return exactUint(uint64(tv)), true
	case uint32:
		return exactUint(uint64(tv)), true
	case uint64:
		return exactUint(tv), true
	case float32:
		return fromFloat(float64(tv)), true
	case float64:
		return fromFloat(tv), true
	case *big.Int:
		if tv == nil {
			return number{}, false
		}
		return number{exact: new(big.Rat).SetInt(tv)}, true
	case *big.Rat:
		if tv == nil {
			return number{}, false
		}
		return number{exact: tv}, true
	case *big.Float:
		if tv == nil {
			return number{}, false
		}
		if tv.IsInf() {
			return number{float: math.Inf(tv.Sign())}, true
		}
		r, _ := tv.Rat(nil)
		return number{exact: r}, true
	case decimal.Decimal:
		return number{exact: tv.Rat()}, true
	}
	return number{}, false
}

func exactInt(v int64) number {
	return number{exact: new(big.Rat).SetInt64(v)}
}

func exactUint(v uint64) number {
	return number{exact: new(big.Rat).SetUint64(v)}
}

func fromFloat(f float64) number {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return number{float: f}
	}
	return number{exact: new(big.Rat).SetFloat64(f)}
}

func sign(c int) int {
	switch {
	case c < 0:
		return -1
	case c > 0:
		return 1
	}
	return 0
}
