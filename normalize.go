package toon

import (
	"math/big"
	"sort"
)

// FromAny converts a Go value — typically the output of
// encoding/json.Unmarshal into `any`, or any nesting of []any,
// map[string]any, Go scalars and *big.Int — into a Value, per spec §4.7's
// normalization rules. Conversion never fails: values it cannot
// represent (channels, funcs, structs, etc.) normalize to Null rather
// than erroring, matching the decoder's own "classification is total"
// stance. Only []any and map[string]any containers are walked; other
// slice types and maps with any other key or value type (including
// non-string keys) also normalize to Null, and their keys are not
// stringified.
func FromAny(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null
	case Value:
		return x
	case bool:
		return Bool(x)
	case string:
		return String(x)
	case float64:
		return Float(x)
	case float32:
		return Float(float64(x))
	case int:
		return IntFromInt64(int64(x))
	case int8:
		return IntFromInt64(int64(x))
	case int16:
		return IntFromInt64(int64(x))
	case int32:
		return IntFromInt64(int64(x))
	case int64:
		return IntFromInt64(x)
	case uint:
		return Int(new(big.Int).SetUint64(uint64(x)))
	case uint8:
		return IntFromInt64(int64(x))
	case uint16:
		return IntFromInt64(int64(x))
	case uint32:
		return IntFromInt64(int64(x))
	case uint64:
		return Int(new(big.Int).SetUint64(x))
	case *big.Int:
		if x == nil {
			return Null
		}
		return Int(x)
	case []any:
		return fromAnySlice(x)
	case map[string]any:
		return fromAnyMap(x)
	default:
		return Null
	}
}

func fromAnySlice(in []any) Value {
	elems := make([]Value, len(in))
	for i, el := range in {
		elems[i] = FromAny(el)
	}
	return Array(elems...)
}

// fromAnyMap normalizes a map[string]any into an Object. Go map
// iteration order is random, so keys are sorted to make the resulting
// field order deterministic; callers that need a specific order should
// build an *Object and wrap it with ObjectValue directly instead.
func fromAnyMap(in map[string]any) Value {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	obj := NewObject()
	for _, k := range keys {
		obj.Set(k, FromAny(in[k]))
	}
	return ObjectValue(obj)
}
