package variant

import (
	"fmt"
	"sort"

	"github.com/vmihailenco/msgpack/v5"
)

// EncodeMsgpack implements msgpack.CustomEncoder. Values encode as native
// msgpack types so foreign frame consumers need no schema for them.
func (v Value) EncodeMsgpack(enc *msgpack.Encoder) error {
	switch v.kind {
	case KindNull:
		return enc.EncodeNil()
	case KindBool:
		return enc.EncodeBool(v.b)
	case KindInt:
		return enc.EncodeInt(v.i)
	case KindDouble:
		return enc.EncodeFloat64(v.f)
	case KindString:
		return enc.EncodeString(v.s)
	case KindArray:
		if err := enc.EncodeArrayLen(len(v.arr)); err != nil {
			return err
		}
		for _, e := range v.arr {
			if err := e.EncodeMsgpack(enc); err != nil {
				return err
			}
		}
		return nil
	case KindDict:
		if err := enc.EncodeMapLen(len(v.dict)); err != nil {
			return err
		}
		keys := make([]string, 0, len(v.dict))
		for k := range v.dict {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := enc.EncodeString(k); err != nil {
				return err
			}
			e := v.dict[k]
			if err := e.EncodeMsgpack(enc); err != nil {
				return err
			}
		}
		return nil
	}
	return &EncodingError{Detail: "invalid value kind"}
}

// DecodeMsgpack implements msgpack.CustomDecoder.
func (v *Value) DecodeMsgpack(dec *msgpack.Decoder) error {
	raw, err := dec.DecodeInterfaceLoose()
	if err != nil {
		return &DeserializationError{Fragment: "msgpack value", Err: err}
	}
	decoded, err := fromLoose(raw)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

// fromLoose converts the loose-decoded msgpack representation into a Value.
// DecodeInterfaceLoose yields int64 for all integers, float64 for both float
// widths, and map[string]any for string-keyed maps.
func fromLoose(raw any) (Value, error) {
	switch x := raw.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(x), nil
	case int64:
		return Int(x), nil
	case uint64:
		return Int(int64(x)), nil
	case float64:
		return Double(x), nil
	case string:
		return String(x), nil
	case []byte:
		return String(string(x)), nil
	case []any:
		elems := make([]Value, len(x))
		for i, e := range x {
			v, err := fromLoose(e)
			if err != nil {
				return Value{}, err
			}
			elems[i] = v
		}
		return Array(elems...), nil
	case map[string]any:
		entries := make(map[string]Value, len(x))
		for k, e := range x {
			v, err := fromLoose(e)
			if err != nil {
				return Value{}, err
			}
			entries[k] = v
		}
		return Dict(entries), nil
	default:
		return Value{}, &DeserializationError{
			Fragment: fmt.Sprintf("msgpack value of type %T", raw),
		}
	}
}

var (
	_ msgpack.CustomEncoder = Value{}
	_ msgpack.CustomDecoder = (*Value)(nil)
)
