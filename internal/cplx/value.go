package cplx

// WireSize is the fixed size of an encoded Value in bytes: two IEEE-754
// double-precision floats.
const WireSize = 16

// Align is the alignment requirement a host storage layer must honor for
// in-place Values: double-word, matching the widest field.
const Align = 8

// Value is the complex-number type's internal representation: two float64
// fields in a fixed order, real part first. Values are immutable; every
// operation returns a new Value.
//
// Equality for ordering purposes is defined by magnitude (see Compare), not
// by bitwise identity. Two Values can compare equal under the `=` operator
// while differing bit-for-bit.
type Value struct {
	Re float64
	Im float64
}

// New constructs a Value from its real and imaginary parts.
func New(re, im float64) Value {
	return Value{Re: re, Im: im}
}

// Add returns the component-wise sum of a and b.
//
// Add is total: it never fails. Non-finite components combine per IEEE-754
// rules (Inf + finite = Inf, Inf + -Inf = NaN, NaN propagates) without
// raising an error. Add is bit-for-bit commutative; it is associative only
// up to float rounding, which the Sum aggregate documents as accepted
// nondeterminism.
func Add(a, b Value) Value {
	return Value{Re: a.Re + b.Re, Im: a.Im + b.Im}
}
