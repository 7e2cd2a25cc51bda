package dispatch

import (
	"encoding/hex"
	"fmt"

	"github.com/argand-io/argand/internal/cplx"
)

// Datum is a nullable value crossing the host/function boundary. The zero
// Datum is null.
type Datum struct {
	null  bool
	value any
}

// Null returns the null datum.
func Null() Datum {
	return Datum{null: true}
}

// Complex wraps a complex Value.
func Complex(v cplx.Value) Datum {
	return Datum{value: v}
}

// Text wraps a string.
func Text(s string) Datum {
	return Datum{value: s}
}

// Bytes wraps a byte buffer.
func Bytes(b []byte) Datum {
	return Datum{value: b}
}

// Bool wraps a boolean.
func Bool(b bool) Datum {
	return Datum{value: b}
}

// Int wraps an int.
func Int(n int) Datum {
	return Datum{value: n}
}

// IsNull reports whether the datum is null.
func (d Datum) IsNull() bool {
	return d.null || d.value == nil
}

// ComplexValue returns the held Value. Second result is false for null or
// a different payload type.
func (d Datum) ComplexValue() (cplx.Value, bool) {
	v, ok := d.value.(cplx.Value)
	return v, ok && !d.null
}

// TextValue returns the held string.
func (d Datum) TextValue() (string, bool) {
	s, ok := d.value.(string)
	return s, ok && !d.null
}

// BytesValue returns the held byte buffer.
func (d Datum) BytesValue() ([]byte, bool) {
	b, ok := d.value.([]byte)
	return b, ok && !d.null
}

// BoolValue returns the held boolean.
func (d Datum) BoolValue() (bool, bool) {
	b, ok := d.value.(bool)
	return b, ok && !d.null
}

// IntValue returns the held int.
func (d Datum) IntValue() (int, bool) {
	n, ok := d.value.(int)
	return n, ok && !d.null
}

// cacheKey renders the datum in a form stable enough to key the
// immutable-function memo. Complex values use their wire image so that
// bit-distinct NaNs or signed zeros never collide.
func (d Datum) cacheKey() string {
	if d.IsNull() {
		return "∅"
	}
	switch v := d.value.(type) {
	case cplx.Value:
		return "c:" + hex.EncodeToString(cplx.Encode(v))
	case string:
		return "t:" + v
	case []byte:
		return "b:" + hex.EncodeToString(v)
	case bool:
		return fmt.Sprintf("B:%t", v)
	case int:
		return fmt.Sprintf("i:%d", v)
	default:
		return fmt.Sprintf("?:%v", v)
	}
}
