// Package candid models the dynamic wire values exchanged with canister
// services. A decoded value is one of:
//
//	nil, bool, string, float64, *big.Int, []any, map[string]any
//
// 64-bit wire integers (prices in e8s, nanosecond timestamps, counters) are
// carried as *big.Int until Normalize converts them to host numbers.
package candid

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
)

// Decode parses a wire payload into a value tree. Integers of any size are
// decoded as *big.Int; fractional or exponent-form numbers become float64.
func Decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding wire value: %w", err)
	}
	return fromJSON(raw)
}

// Encode serializes a value tree back to its wire form. *big.Int values are
// written as plain JSON numbers so no precision is lost on the wire.
func Encode(v any) ([]byte, error) {
	data, err := json.Marshal(toJSON(v))
	if err != nil {
		return nil, fmt.Errorf("encoding wire value: %w", err)
	}
	return data, nil
}

func fromJSON(v any) (any, error) {
	switch t := v.(type) {
	case json.Number:
		s := t.String()
		if !strings.ContainsAny(s, ".eE") {
			n, ok := new(big.Int).SetString(s, 10)
			if !ok {
				return nil, fmt.Errorf("invalid wire integer %q", s)
			}
			return n, nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid wire number %q: %w", s, err)
		}
		return f, nil
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			c, err := fromJSON(e)
			if err != nil {
				return nil, err
			}
			out[i] = c
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			c, err := fromJSON(e)
			if err != nil {
				return nil, err
			}
			out[k] = c
		}
		return out, nil
	default:
		return v, nil
	}
}

func toJSON(v any) any {
	switch t := v.(type) {
	case *big.Int:
		return json.RawMessage(t.String())
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = toJSON(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = toJSON(e)
		}
		return out
	default:
		return v
	}
}

// Variant builds the single-key record shape canisters use for enum values,
// e.g. Variant("Environment") -> {"Environment": null}.
func Variant(name string) map[string]any {
	return map[string]any{name: nil}
}

// VariantName extracts the tag of a single-key variant record. The second
// return value is false if v is not a variant shape.
func VariantName(v any) (string, bool) {
	rec, ok := v.(map[string]any)
	if !ok || len(rec) != 1 {
		return "", false
	}
	for k := range rec {
		return k, true
	}
	return "", false
}
