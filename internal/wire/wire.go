// Package wire implements the tagged-value encoding used by the registry
// table. Every wire node is a single-key mapping from a type tag to its
// payload: S (string), BOOL (bool), L (ordered list of nodes), M (mapping of
// name to node). The shape is JSON-compatible with the registry's native
// item representation, so fixtures and store payloads unmarshal directly.
package wire

import (
	"errors"
	"fmt"
)

// Type tags carried by a wire node.
const (
	TagString = "S"
	TagBool   = "BOOL"
	TagList   = "L"
	TagMap    = "M"
)

var (
	// ErrMalformed reports a node whose mapping does not carry exactly one
	// type tag. This indicates upstream data corruption and is surfaced to
	// the caller unrecovered.
	ErrMalformed = errors.New("wire: malformed tagged value")
	// ErrUnsupportedType reports an attempt to encode a native value of a
	// shape the encoding has no tag for.
	ErrUnsupportedType = errors.New("wire: unsupported native type")
)

// Value is one tagged wire node.
type Value map[string]any

// Item is a flat mapping of attribute name to tagged node; one registry item.
type Item map[string]Value

// Encode wraps a native value in its tagged wire form. Supported shapes are
// string, bool, ordered sequences and string-keyed mappings; sequence and
// mapping contents are encoded recursively.
func Encode(native any) (Value, error) {
	switch v := native.(type) {
	case string:
		return Value{TagString: v}, nil
	case bool:
		return Value{TagBool: v}, nil
	case []string:
		anys := make([]any, len(v))
		for i, s := range v {
			anys[i] = s
		}
		return Encode(anys)
	case []any:
		list := make([]any, 0, len(v))
		for _, elem := range v {
			enc, err := Encode(elem)
			if err != nil {
				return nil, err
			}
			list = append(list, any(enc))
		}
		return Value{TagList: list}, nil
	case map[string]string:
		anys := make(map[string]any, len(v))
		for k, s := range v {
			anys[k] = s
		}
		return Encode(anys)
	case map[string]any:
		m := make(map[string]any, len(v))
		for k, elem := range v {
			enc, err := Encode(elem)
			if err != nil {
				return nil, err
			}
			m[k] = any(enc)
		}
		return Value{TagMap: m}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, native)
	}
}

// EncodeItem encodes every value of a flat native mapping, preserving keys.
func EncodeItem(native map[string]any) (Item, error) {
	item := make(Item, len(native))
	for k, v := range native {
		enc, err := Encode(v)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", k, err)
		}
		item[k] = enc
	}
	return item, nil
}

// Decode unwraps a tagged node back to its native value. A node carrying
// zero or more than one type tag fails with ErrMalformed. Scalar payloads
// pass through unchanged, including nil (the source data represents "field
// unset" this way); tags other than L and M are treated as scalars.
func Decode(v Value) (any, error) {
	if len(v) != 1 {
		return nil, fmt.Errorf("%w: %d type tags", ErrMalformed, len(v))
	}
	for tag, payload := range v {
		switch tag {
		case TagList:
			elems, ok := asList(payload)
			if !ok {
				if payload == nil {
					return nil, nil
				}
				return nil, fmt.Errorf("%w: %s payload is %T", ErrMalformed, tag, payload)
			}
			out := make([]any, 0, len(elems))
			for _, elem := range elems {
				node, ok := asValue(elem)
				if !ok {
					return nil, fmt.Errorf("%w: %s element is %T", ErrMalformed, tag, elem)
				}
				dec, err := Decode(node)
				if err != nil {
					return nil, err
				}
				out = append(out, dec)
			}
			return out, nil
		case TagMap:
			entries, ok := asMap(payload)
			if !ok {
				if payload == nil {
					return nil, nil
				}
				return nil, fmt.Errorf("%w: %s payload is %T", ErrMalformed, tag, payload)
			}
			out := make(map[string]any, len(entries))
			for k, elem := range entries {
				node, ok := asValue(elem)
				if !ok {
					return nil, fmt.Errorf("%w: %s entry %s is %T", ErrMalformed, tag, k, elem)
				}
				dec, err := Decode(node)
				if err != nil {
					return nil, err
				}
				out[k] = dec
			}
			return out, nil
		default:
			return payload, nil
		}
	}
	return nil, ErrMalformed // unreachable
}

// DecodeItem decodes every value in a flat wire item, preserving keys.
func DecodeItem(item Item) (map[string]any, error) {
	out := make(map[string]any, len(item))
	for k, v := range item {
		dec, err := Decode(v)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", k, err)
		}
		out[k] = dec
	}
	return out, nil
}

// asValue coerces a payload element into a Value. JSON unmarshaling yields
// map[string]any for nested nodes rather than Value, so both are accepted.
func asValue(elem any) (Value, bool) {
	switch n := elem.(type) {
	case Value:
		return n, true
	case map[string]any:
		return Value(n), true
	default:
		return nil, false
	}
}

func asList(payload any) ([]any, bool) {
	switch l := payload.(type) {
	case []any:
		return l, true
	case []Value:
		out := make([]any, len(l))
		for i, v := range l {
			out[i] = v
		}
		return out, true
	default:
		return nil, false
	}
}

func asMap(payload any) (map[string]any, bool) {
	switch m := payload.(type) {
	case map[string]any:
		return m, true
	case map[string]Value:
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[k] = v
		}
		return out, true
	default:
		return nil, false
	}
}
