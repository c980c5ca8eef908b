// Package toon implements encoding and decoding of TOON (Token-Oriented
// Object Notation), a compact, indentation-sensitive textual serialization
// format for JSON-equivalent data.
//
// The package exposes a small tagged-union Value type matching the six
// variants of the TOON data model (null, bool, number, string, and the two
// containers array and object), a pair of codecs that translate between
// Value and TOON text with round-trip fidelity, and a normalizer that turns
// arbitrary Go data (as produced by encoding/json, for example) into Value.
package toon

import (
	"fmt"
	"math"
	"math/big"
)

// Kind identifies which variant of the TOON data model a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "<unknown>"
	}
}

// Value is a tagged union over the six TOON variants. The zero Value is
// Null. Values are immutable once constructed; the container constructors
// (Array, NewObject) copy their inputs defensively.
type Value struct {
	kind Kind
	b    bool
	i    *big.Int
	f    float64
	s    string
	arr  []Value
	obj  *Object
}

// Null is the singleton null value.
var Null = Value{kind: KindNull}

// Bool constructs a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int constructs an arbitrary-precision integer Value.
func Int(i *big.Int) Value { return Value{kind: KindInt, i: new(big.Int).Set(i)} }

// IntFromInt64 is a convenience constructor for integers that fit in int64.
func IntFromInt64(i int64) Value { return Value{kind: KindInt, i: big.NewInt(i)} }

// Float constructs a finite binary64 float Value. Non-finite inputs (±Inf,
// NaN) are normalized to Null per spec §4.7.
func Float(f float64) Value {
	if isNonFinite(f) {
		return Null
	}
	if f == 0 {
		f = 0 // collapse -0.0 to 0, invariant 3
	}
	return Value{kind: KindFloat, f: f}
}

// String constructs a string Value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array constructs an array Value from a slice of elements, copied
// defensively.
func Array(elems ...Value) Value {
	cp := make([]Value, len(elems))
	copy(cp, elems)
	return Value{kind: KindArray, arr: cp}
}

// ObjectValue constructs an object Value from an *Object.
func ObjectValue(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, obj: o}
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool extracts a bool. ok is false if v is not a bool.
func (v Value) AsBool() (b bool, ok bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// AsInt extracts the arbitrary-precision integer. ok is false if v is not
// an integer.
func (v Value) AsInt() (i *big.Int, ok bool) {
	if v.kind != KindInt {
		return nil, false
	}
	return v.i, true
}

// AsFloat extracts a float64. Integers are widened to float64 for
// convenience; ok is false for any other kind.
func (v Value) AsFloat() (f float64, ok bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		bf := new(big.Float).SetInt(v.i)
		f, _ = bf.Float64()
		return f, true
	default:
		return 0, false
	}
}

// AsString extracts a string. ok is false if v is not a string.
func (v Value) AsString() (s string, ok bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// AsArray extracts the element slice. ok is false if v is not an array.
// The returned slice must not be mutated by the caller.
func (v Value) AsArray() (elems []Value, ok bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

// AsObject extracts the underlying *Object. ok is false if v is not an
// object.
func (v Value) AsObject() (obj *Object, ok bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.obj, true
}

func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindInt:
		return v.i.String()
	case KindFloat:
		return fmt.Sprintf("%g", v.f)
	case KindString:
		return fmt.Sprintf("%q", v.s)
	case KindArray:
		return fmt.Sprintf("array[%d]", len(v.arr))
	case KindObject:
		return fmt.Sprintf("object[%d]", v.obj.Len())
	default:
		return "<unknown>"
	}
}

// Field is a single key/value pair of an Object.
type Field struct {
	Key   string
	Value Value
}

// Object is an ordered, string-keyed mapping with unique keys. Insertion
// order is a semantic property preserved through encode/decode (spec §3,
// invariant 2). The zero value is not usable; construct with NewObject.
type Object struct {
	fields []Field
	index  map[string]int
}

// NewObject builds an ordered Object from fields, in order. A later field
// reusing an earlier field's key overwrites the earlier value but keeps
// its original position, matching the decoder's last-write-wins policy
// for duplicate keys (see DESIGN.md).
func NewObject(fields ...Field) *Object {
	o := &Object{index: make(map[string]int, len(fields))}
	for _, f := range fields {
		o.Set(f.Key, f.Value)
	}
	return o
}

// Set inserts or updates key. New keys are appended at the end of
// insertion order; existing keys keep their original position but have
// their value replaced.
func (o *Object) Set(key string, v Value) {
	if idx, ok := o.index[key]; ok {
		o.fields[idx].Value = v
		return
	}
	o.index[key] = len(o.fields)
	o.fields = append(o.fields, Field{Key: key, Value: v})
}

// Get looks up key. ok is false if the key is absent.
func (o *Object) Get(key string) (v Value, ok bool) {
	idx, present := o.index[key]
	if !present {
		return Value{}, false
	}
	return o.fields[idx].Value, true
}

// Len reports the number of fields.
func (o *Object) Len() int { return len(o.fields) }

// Fields returns the fields in insertion order. The returned slice must
// not be mutated by the caller.
func (o *Object) Fields() []Field { return o.fields }

// IsEmpty reports whether the object has no fields.
func (o *Object) IsEmpty() bool { return len(o.fields) == 0 }

func isNonFinite(f float64) bool {
	return math.IsNaN(f) || math.IsInf(f, 0)
}
