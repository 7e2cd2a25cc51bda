package cplx

import "math"

// Mag returns the magnitude sqrt(re^2 + im^2) of v. math.Hypot avoids the
// intermediate overflow/underflow a naive square-and-sum would hit for
// components near the float64 range limits.
func Mag(v Value) float64 {
	return math.Hypot(v.Re, v.Im)
}

// Compare is the three-way comparator backing the ordering operators and
// the tree index support function: -1, 0, or 1 as Mag(a) is less than,
// equal to, or greater than Mag(b).
//
// The order is by magnitude ONLY. Distinct Values of equal magnitude (for
// example (3,4) and (5,0), both magnitude 5) compare equal even though they
// differ bitwise. That is deliberate: the index sees one equivalence class
// per magnitude, and adding a phase tie-break would change which rows a
// range scan returns.
//
// Non-finite components: a NaN magnitude (either component NaN) sorts after
// every other magnitude, and two NaN magnitudes compare equal, keeping the
// order total so index insertion never sees an inconsistent sign. Infinite
// magnitudes order naturally via IEEE-754 comparison.
func Compare(a, b Value) int {
	ma, mb := Mag(a), Mag(b)
	aNaN, bNaN := math.IsNaN(ma), math.IsNaN(mb)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	case ma < mb:
		return -1
	case ma > mb:
		return 1
	default:
		return 0
	}
}

// The five boolean operators are exactly the comparator's sign. Keeping
// them as one-liners over Compare is what guarantees the consistency the
// index contract requires: an operator and the support function can never
// disagree about a pair of Values.

// Less reports Compare(a, b) < 0. Registered as operator "<".
func Less(a, b Value) bool { return Compare(a, b) < 0 }

// LessEq reports Compare(a, b) <= 0. Registered as operator "<=".
func LessEq(a, b Value) bool { return Compare(a, b) <= 0 }

// Eq reports Compare(a, b) == 0. Registered as operator "=". Note this is
// magnitude equality, not bitwise equality.
func Eq(a, b Value) bool { return Compare(a, b) == 0 }

// GreaterEq reports Compare(a, b) >= 0. Registered as operator ">=".
func GreaterEq(a, b Value) bool { return Compare(a, b) >= 0 }

// Greater reports Compare(a, b) > 0. Registered as operator ">".
func Greater(a, b Value) bool { return Compare(a, b) > 0 }
