package variant

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
)

// snippetLen bounds how much of the offending input a DeserializationError
// carries.
const snippetLen = 60

func snippet(data []byte) string {
	s := strings.TrimSpace(string(data))
	if len(s) > snippetLen {
		s = s[:snippetLen] + "..."
	}
	if s == "" {
		s = "<empty input>"
	}
	return strconv.Quote(s)
}

// DecodeJSON decodes a JSON text into a Value.
//
// Numbers without a fraction or exponent decode as int, all others as
// double; this mirrors how doubles are rendered (always with a fraction or
// exponent) so the two codecs round-trip. Trailing garbage after the first
// JSON value is an error.
func DecodeJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Value{}, &DeserializationError{Fragment: snippet(data), Err: err}
	}
	if dec.More() {
		return Value{}, &DeserializationError{Fragment: snippet(data), Err: errTrailingData}
	}
	return fromJSON(raw, data)
}

// DecodeJSONDict decodes a JSON text and requires the result to be a dict.
func DecodeJSONDict(data []byte) (Value, error) {
	v, err := DecodeJSON(data)
	if err != nil {
		return Value{}, err
	}
	if v.Kind() != KindDict {
		return Value{}, &DeserializationError{
			Fragment: snippet(data),
			Err:      errNotADict,
		}
	}
	return v, nil
}

// DecodeJSONArray decodes a JSON text and requires the result to be an array.
func DecodeJSONArray(data []byte) (Value, error) {
	v, err := DecodeJSON(data)
	if err != nil {
		return Value{}, err
	}
	if v.Kind() != KindArray {
		return Value{}, &DeserializationError{
			Fragment: snippet(data),
			Err:      errNotAnArray,
		}
	}
	return v, nil
}

var (
	errTrailingData = jsonShapeError("trailing data after JSON value")
	errNotADict     = jsonShapeError("expected a JSON object")
	errNotAnArray   = jsonShapeError("expected a JSON array")
)

type jsonShapeError string

func (e jsonShapeError) Error() string { return string(e) }

func fromJSON(raw any, data []byte) (Value, error) {
	switch x := raw.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case json.Number:
		text := x.String()
		if !strings.ContainsAny(text, ".eE") {
			i, err := x.Int64()
			if err == nil {
				return Int(i), nil
			}
			// Out of int64 range; fall through to double.
		}
		f, err := x.Float64()
		if err != nil {
			return Value{}, &DeserializationError{Fragment: strconv.Quote(text), Err: err}
		}
		return Double(f), nil
	case []any:
		elems := make([]Value, len(x))
		for i, e := range x {
			v, err := fromJSON(e, data)
			if err != nil {
				return Value{}, err
			}
			elems[i] = v
		}
		return Array(elems...), nil
	case map[string]any:
		entries := make(map[string]Value, len(x))
		for k, e := range x {
			v, err := fromJSON(e, data)
			if err != nil {
				return Value{}, err
			}
			entries[k] = v
		}
		return Dict(entries), nil
	default:
		return Value{}, &DeserializationError{Fragment: snippet(data)}
	}
}

// MarshalJSON implements json.Marshaler.
//
// Doubles always carry a fraction or exponent (4.0 renders as "4.0", not
// "4") so the int/double distinction survives a round trip.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return strconv.AppendBool(nil, v.b), nil
	case KindInt:
		return strconv.AppendInt(nil, v.i, 10), nil
	case KindDouble:
		return appendDouble(nil, v.f)
	case KindString:
		return json.Marshal(v.s)
	case KindArray:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, e := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := e.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case KindDict:
		// Sorted keys give deterministic output for captures and tests.
		keys := make([]string, 0, len(v.dict))
		for k := range v.dict {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			e := v.dict[k]
			eb, err := e.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(eb)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	}
	return nil, &EncodingError{Detail: "invalid value kind"}
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	decoded, err := DecodeJSON(data)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

func appendDouble(dst []byte, f float64) ([]byte, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, &EncodingError{Detail: "non-finite double"}
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return append(dst, s...), nil
}
