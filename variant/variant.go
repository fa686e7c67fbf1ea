// Package variant implements the tagged value model used on the reply wire.
//
// A Value is one of: null, bool, int, double, string, array, dict. JSON text
// is the external interchange format (it is what crosses the producer
// boundary); msgpack is used on the frame transport. Both codecs satisfy the
// round-trip law: decoding what was encoded yields a value-equal tree, with
// array ordering and scalar types preserved.
package variant

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Kind discriminates the runtime type of a Value.
type Kind int

// Value kinds.
const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindDouble
	KindString
	KindArray
	KindDict
)

// String returns the kind name as it appears in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindDict:
		return "dict"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is an immutable tagged variant. The zero value is null.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	arr  []Value
	dict map[string]Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a bool value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an int value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Double returns a double value.
func Double(f float64) Value { return Value{kind: KindDouble, f: f} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array returns an array value holding the given elements in order.
func Array(elems ...Value) Value {
	return Value{kind: KindArray, arr: elems}
}

// Dict returns a dict value holding the given entries.
func Dict(entries map[string]Value) Value {
	if entries == nil {
		entries = map[string]Value{}
	}
	return Value{kind: KindDict, dict: entries}
}

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the bool payload. The second return is false if the value
// is not a bool.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsInt returns the int payload.
func (v Value) AsInt() (int64, bool) { return v.i, v.kind == KindInt }

// AsDouble returns the double payload. Int values convert losslessly.
func (v Value) AsDouble() (float64, bool) {
	switch v.kind {
	case KindDouble:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	}
	return 0, false
}

// AsString returns the string payload.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsArray returns the array elements. The returned slice must not be mutated.
func (v Value) AsArray() ([]Value, bool) { return v.arr, v.kind == KindArray }

// AsDict returns the dict entries. The returned map must not be mutated.
func (v Value) AsDict() (map[string]Value, bool) { return v.dict, v.kind == KindDict }

// Get returns the entry for key in a dict value. The second return is false
// for non-dict values and missing keys.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindDict {
		return Value{}, false
	}
	e, ok := v.dict[key]
	return e, ok
}

// Equal reports deep value equality: same kinds, same scalar payloads, same
// array ordering, same dict keys.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindDouble:
		return v.f == o.f
	case KindString:
		return v.s == o.s
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case KindDict:
		if len(v.dict) != len(o.dict) {
			return false
		}
		for k, e := range v.dict {
			oe, ok := o.dict[k]
			if !ok || !e.Equal(oe) {
				return false
			}
		}
		return true
	}
	return false
}

// String renders the value for diagnostics. Not a wire format.
func (v Value) String() string {
	var b strings.Builder
	v.debugString(&b)
	return b.String()
}

func (v Value) debugString(b *strings.Builder) {
	switch v.kind {
	case KindNull:
		b.WriteString("null")
	case KindBool:
		b.WriteString(strconv.FormatBool(v.b))
	case KindInt:
		b.WriteString(strconv.FormatInt(v.i, 10))
	case KindDouble:
		b.WriteString(strconv.FormatFloat(v.f, 'g', -1, 64))
	case KindString:
		b.WriteString(strconv.Quote(v.s))
	case KindArray:
		b.WriteByte('[')
		for i, e := range v.arr {
			if i > 0 {
				b.WriteString(", ")
			}
			e.debugString(b)
		}
		b.WriteByte(']')
	case KindDict:
		keys := make([]string, 0, len(v.dict))
		for k := range v.dict {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.Quote(k))
			b.WriteString(": ")
			e := v.dict[k]
			e.debugString(b)
		}
		b.WriteByte('}')
	}
}

// FromAny converts a producer-native Go value into a Value.
//
// Supported inputs: nil, bool, all integer widths, float32/float64, string,
// []any, map[string]any, []Value, map[string]Value and Value itself.
// Non-finite floats and unsupported types return an EncodingError since they
// have no wire representation.
func FromAny(in any) (Value, error) {
	switch x := in.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return Int(int64(x)), nil
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint64:
		if x > math.MaxInt64 {
			return Value{}, &EncodingError{Detail: fmt.Sprintf("uint64 %d overflows int", x)}
		}
		return Int(int64(x)), nil
	case float32:
		return fromFloat(float64(x))
	case float64:
		return fromFloat(x)
	case string:
		return String(x), nil
	case []Value:
		return Array(x...), nil
	case map[string]Value:
		return Dict(x), nil
	case []any:
		elems := make([]Value, len(x))
		for i, e := range x {
			v, err := FromAny(e)
			if err != nil {
				return Value{}, err
			}
			elems[i] = v
		}
		return Array(elems...), nil
	case map[string]any:
		entries := make(map[string]Value, len(x))
		for k, e := range x {
			v, err := FromAny(e)
			if err != nil {
				return Value{}, err
			}
			entries[k] = v
		}
		return Dict(entries), nil
	default:
		return Value{}, &EncodingError{Detail: fmt.Sprintf("unsupported type %T", in)}
	}
}

func fromFloat(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, &EncodingError{Detail: fmt.Sprintf("non-finite double %v", f)}
	}
	return Double(f), nil
}

// ToAny converts a Value back into plain Go types: nil, bool, int64,
// float64, string, []any, map[string]any.
func (v Value) ToAny() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindDouble:
		return v.f
	case KindString:
		return v.s
	case KindArray:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.ToAny()
		}
		return out
	case KindDict:
		out := make(map[string]any, len(v.dict))
		for k, e := range v.dict {
			out[k] = e.ToAny()
		}
		return out
	}
	return nil
}
