package cplx

import (
	"encoding/binary"
	"io"
	"math"
	"strconv"
)

// Encode produces the portable wire form of a Value: exactly WireSize
// bytes, the real part's IEEE-754 bits followed by the imaginary part's,
// each big-endian. Encode is the exact inverse of Decode for every
// representable Value, including non-finite bit patterns, which travel
// unchanged.
//
// The wire form is distinct from the in-memory layout so that it stays
// portable across hosts with differing byte orders.
func Encode(v Value) []byte {
	buf := make([]byte, WireSize)
	binary.BigEndian.PutUint64(buf[0:8], math.Float64bits(v.Re))
	binary.BigEndian.PutUint64(buf[8:16], math.Float64bits(v.Im))
	return buf
}

// Decode reads a Value from the front of buf. It consumes exactly WireSize
// bytes; extra bytes beyond the first 16 are left untouched for the caller.
// Fails with a FormatError if fewer than WireSize bytes remain.
func Decode(buf []byte) (Value, error) {
	if len(buf) < WireSize {
		return Value{}, &FormatError{
			Code:    ErrCodeShortBuffer,
			Message: "need " + strconv.Itoa(WireSize) + " bytes, have " + strconv.Itoa(len(buf)),
		}
	}
	return Value{
		Re: math.Float64frombits(binary.BigEndian.Uint64(buf[0:8])),
		Im: math.Float64frombits(binary.BigEndian.Uint64(buf[8:16])),
	}, nil
}

// WriteValue writes the wire form of v to w.
func WriteValue(w io.Writer, v Value) error {
	_, err := w.Write(Encode(v))
	return err
}

// ReadValue reads one wire-form Value from r. A short read, including a
// clean EOF before 16 bytes arrive, is reported as a FormatError wrapping
// the underlying read error.
func ReadValue(r io.Reader) (Value, error) {
	buf := make([]byte, WireSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return Value{}, &FormatError{
			Code:    ErrCodeShortBuffer,
			Message: "short read: " + err.Error(),
		}
	}
	return Decode(buf)
}
