package hcl

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// rowsFromCty converts a list or tuple of objects into inline rows.
func rowsFromCty(val cty.Value) ([]map[string]any, error) {
	if val.IsNull() {
		return nil, nil
	}
	if !val.IsKnown() {
		return nil, fmt.Errorf("rows must be a known value")
	}
	ty := val.Type()
	if !ty.IsListType() && !ty.IsTupleType() {
		return nil, fmt.Errorf("rows must be a list of objects, got %s", ty.FriendlyName())
	}
	rows := make([]map[string]any, 0, val.LengthInt())
	for it := val.ElementIterator(); it.Next(); {
		idx, elem := it.Element()
		v, err := toGo(elem)
		if err != nil {
			return nil, fmt.Errorf("row %s: %w", idx.AsBigFloat().String(), err)
		}
		row, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("row %s: must be an object, got %s", idx.AsBigFloat().String(), elem.Type().FriendlyName())
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// toGo converts a cty value into a plain Go value. Whole numbers that fit
// become int64, other numbers float64, and null becomes nil.
func toGo(val cty.Value) (any, error) {
	if val.IsNull() {
		return nil, nil
	}
	if !val.IsKnown() {
		return nil, fmt.Errorf("value is not known")
	}
	ty := val.Type()
	switch {
	case ty == cty.String:
		var s string
		err := gocty.FromCtyValue(val, &s)
		return s, err
	case ty == cty.Bool:
		var b bool
		err := gocty.FromCtyValue(val, &b)
		return b, err
	case ty == cty.Number:
		var i int64
		if err := gocty.FromCtyValue(val, &i); err == nil {
			return i, nil
		}
		var f float64
		err := gocty.FromCtyValue(val, &f)
		return f, err
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		out := make([]any, 0, val.LengthInt())
		for it := val.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			v, err := toGo(elem)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any)
		for it := val.ElementIterator(); it.Next(); {
			k, elem := it.Element()
			v, err := toGo(elem)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k.AsString(), err)
			}
			out[k.AsString()] = v
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
}
