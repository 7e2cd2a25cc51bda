package catalog

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// Snapshot returns the registry's serializable form: descriptors only,
// implementation references stripped, every list in sorted order. This is
// the payload behind both the catalog dump and the fingerprint.
func (r *Registry) Snapshot() map[string]any {
	ops := make([]any, 0, len(r.operators))
	for _, op := range r.Operators() {
		m := map[string]any{
			"symbol":   op.Symbol,
			"left":     op.Left,
			"right":    op.Right,
			"function": op.Function,
		}
		if op.Commutator != "" {
			m["commutator"] = op.Commutator
		}
		if op.Negator != "" {
			m["negator"] = op.Negator
		}
		if op.Restrict != "" {
			m["restrict"] = op.Restrict
		}
		if op.Join != "" {
			m["join"] = op.Join
		}
		ops = append(ops, m)
	}

	fns := make([]any, 0, len(r.functions))
	for _, f := range r.Functions() {
		args := make([]any, len(f.Args))
		for i, a := range f.Args {
			args[i] = a
		}
		fns = append(fns, map[string]any{
			"name":      f.Name,
			"args":      args,
			"result":    f.Result,
			"strict":    f.Strict,
			"immutable": f.Immutable,
		})
	}

	types := make([]any, 0, len(r.types))
	for _, t := range r.Types() {
		types = append(types, map[string]any{
			"name":    t.Name,
			"size":    t.Size,
			"align":   t.Align,
			"input":   t.Input,
			"output":  t.Output,
			"receive": t.Receive,
			"send":    t.Send,
		})
	}

	aggs := make([]any, 0, len(r.aggregates))
	for _, a := range r.Aggregates() {
		aggs = append(aggs, map[string]any{
			"name":       a.Name,
			"transition": a.Transition,
			"state_type": a.StateType,
			"initial":    a.Initial,
		})
	}

	ocs := make([]any, 0, len(r.opclasses))
	for _, oc := range r.OperatorClasses() {
		strategies := make(map[string]any, len(oc.Strategies))
		for n, symbol := range oc.Strategies {
			strategies[strconv.Itoa(n)] = symbol
		}
		ocs = append(ocs, map[string]any{
			"name":          oc.Name,
			"type":          oc.Type,
			"access_method": oc.AccessMethod,
			"strategies":    strategies,
			"support":       oc.Support,
		})
	}

	return map[string]any{
		"types":            types,
		"functions":        fns,
		"operators":        ops,
		"aggregates":       aggs,
		"operator_classes": ocs,
	}
}

// Fingerprint returns the hex sha256 of the registry's canonical JSON.
// Two hosts holding registries with the same fingerprint hold the same
// catalog, byte for byte, regardless of registration order or platform.
func (r *Registry) Fingerprint() (string, error) {
	data, err := MarshalCanonical(r.Snapshot())
	if err != nil {
		return "", fmt.Errorf("canonicalizing catalog: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// MarshalCanonical produces RFC 8785-style canonical JSON for hashing:
// object keys sorted by UTF-16 code units, strings NFC-normalized, no HTML
// escaping. Supported value shapes are the ones Snapshot emits (strings,
// ints, bools, []any, map[string]any); anything else is an error rather
// than a silently unstable encoding. Floats are deliberately unsupported -
// the catalog contains none, and float rendering is where canonical JSON
// schemes go non-portable.
func MarshalCanonical(v any) ([]byte, error) {
	switch val := v.(type) {
	case string:
		return marshalCanonicalString(val)
	case int:
		return []byte(strconv.Itoa(val)), nil
	case bool:
		return []byte(strconv.FormatBool(val)), nil
	case []any:
		return marshalCanonicalArray(val)
	case map[string]any:
		return marshalCanonicalObject(val)
	default:
		return nil, fmt.Errorf("unsupported type in canonical JSON: %T", v)
	}
}

func marshalCanonicalString(s string) ([]byte, error) {
	normalized := norm.NFC.String(s)
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return nil, err
	}
	// Encoder appends a newline; strip it.
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func marshalCanonicalArray(arr []any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, elem := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		b, err := MarshalCanonical(elem)
		if err != nil {
			return nil, fmt.Errorf("array[%d]: %w", i, err)
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func marshalCanonicalObject(obj map[string]any) ([]byte, error) {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysUTF16)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := marshalCanonicalString(k)
		if err != nil {
			return nil, fmt.Errorf("marshal key %q: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := MarshalCanonical(obj[k])
		if err != nil {
			return nil, fmt.Errorf("marshal value for key %q: %w", k, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// compareKeysUTF16 orders strings by UTF-16 code units as RFC 8785
// requires. Go's native string ordering is UTF-8 byte order, which differs
// for characters outside the BMP.
func compareKeysUTF16(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))
	for i := 0; i < len(a16) && i < len(b16); i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	default:
		return 0
	}
}
