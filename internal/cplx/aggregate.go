package cplx

// Sum is the aggregate state for the complex sum: a single running Value
// starting at (0,0). The host feeds it one non-null input per row (the
// transition function is registered strict, so the host filters nulls
// before calling) and reads the final state unchanged - there is no
// separate finalize transform.
//
// Because Add is commutative and associative up to float rounding, the
// result is insensitive to input order except for rounding differences.
// That nondeterminism is accepted, not a defect; hosts that need
// reproducible sums must impose their own input order.
type Sum struct {
	state Value
}

// NewSum returns a Sum initialized to the zero Value.
func NewSum() *Sum {
	return &Sum{}
}

// Step folds one input into the running state.
func (s *Sum) Step(v Value) {
	s.state = Add(s.state, v)
}

// Result returns the running state. Calling Result does not reset the
// state; the host discards the Sum when the group ends.
func (s *Sum) Result() Value {
	return s.state
}

// Reduce folds values left to right with Add, starting from (0,0).
// Convenience form of driving a Sum by hand.
func Reduce(values []Value) Value {
	s := NewSum()
	for _, v := range values {
		s.Step(v)
	}
	return s.Result()
}
