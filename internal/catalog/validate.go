package catalog

import (
	"fmt"

	"github.com/argand-io/argand/internal/cplx"
)

// probeGrid is the value grid Validate uses to cross-check every boolean
// operator against the comparator. It mixes magnitudes, phases, and signs,
// and deliberately contains distinct values of equal magnitude so that the
// non-injective equality is exercised.
var probeGrid = []cplx.Value{
	{Re: 0, Im: 0},
	{Re: 1, Im: 0},
	{Re: 0, Im: 1},
	{Re: -1, Im: 0},
	{Re: 3, Im: 4},
	{Re: 5, Im: 0},
	{Re: -3, Im: -4},
	{Re: 0.5, Im: -0.5},
	{Re: 56.0, Im: -22.5},
	{Re: -43.2, Im: -0.07},
	{Re: 1e-300, Im: 1e-300},
	{Re: 1e300, Im: -1e300},
}

// Validate checks the registry's internal consistency and returns every
// defect found. An empty slice means the registry is safe to hand to a
// host.
//
// Checks, cheapest first:
//   - type records have positive size/alignment and resolvable codecs
//   - operators and aggregates reference registered functions
//   - commutator and negator links are mutual
//   - operator classes cover exactly strategies 1..5 with registered
//     operators and a comparator support function with the right signature
//   - each strategy operator's boolean result equals the corresponding
//     predicate of the comparator's sign over the full probe grid
func (r *Registry) Validate() []error {
	var errs []error

	for _, t := range r.Types() {
		if t.Size <= 0 || t.Align <= 0 || t.Size%t.Align != 0 {
			errs = append(errs, &ValidationError{
				Code: ErrCodeBadType, Subject: t.Name,
				Message: fmt.Sprintf("size %d / alignment %d invalid", t.Size, t.Align),
			})
		}
		for _, fn := range []string{t.Input, t.Output, t.Receive, t.Send} {
			if _, ok := r.functions[fn]; !ok {
				errs = append(errs, &ValidationError{
					Code: ErrCodeDangling, Subject: t.Name,
					Message: "codec function not registered: " + fn,
				})
			}
		}
	}

	for _, op := range r.Operators() {
		if _, ok := r.functions[op.Function]; !ok {
			errs = append(errs, &ValidationError{
				Code: ErrCodeDangling, Subject: op.Symbol,
				Message: "implementing function not registered: " + op.Function,
			})
		}
		errs = append(errs, r.checkLinks(op)...)
	}

	for _, agg := range r.Aggregates() {
		trans, ok := r.functions[agg.Transition]
		if !ok {
			errs = append(errs, &ValidationError{
				Code: ErrCodeDangling, Subject: agg.Name,
				Message: "transition function not registered: " + agg.Transition,
			})
			continue
		}
		if trans.Result != agg.StateType {
			errs = append(errs, &ValidationError{
				Code: ErrCodeBadImpl, Subject: agg.Name,
				Message: fmt.Sprintf("transition returns %s, state type is %s", trans.Result, agg.StateType),
			})
		}
		if _, err := cplx.Parse(agg.Initial); agg.StateType == "complex" && err != nil {
			errs = append(errs, &ValidationError{
				Code: ErrCodeBadImpl, Subject: agg.Name,
				Message: "initial state literal does not parse: " + agg.Initial,
			})
		}
	}

	for _, oc := range r.OperatorClasses() {
		errs = append(errs, r.checkOperatorClass(oc)...)
	}

	return errs
}

// checkLinks verifies that commutator and negator references resolve and
// point back.
func (r *Registry) checkLinks(op Operator) []error {
	var errs []error
	if op.Commutator != "" {
		peer, ok := r.operators[op.Commutator]
		if !ok {
			errs = append(errs, &ValidationError{
				Code: ErrCodeDangling, Subject: op.Symbol,
				Message: "commutator not registered: " + op.Commutator,
			})
		} else if peer.Commutator != op.Symbol {
			errs = append(errs, &ValidationError{
				Code: ErrCodeBadLink, Subject: op.Symbol,
				Message: fmt.Sprintf("commutator link not mutual: %s declares commutator %q", peer.Symbol, peer.Commutator),
			})
		}
	}
	if op.Negator != "" {
		peer, ok := r.operators[op.Negator]
		if !ok {
			errs = append(errs, &ValidationError{
				Code: ErrCodeDangling, Subject: op.Symbol,
				Message: "negator not registered: " + op.Negator,
			})
		} else if peer.Negator != op.Symbol {
			errs = append(errs, &ValidationError{
				Code: ErrCodeBadLink, Subject: op.Symbol,
				Message: fmt.Sprintf("negator link not mutual: %s declares negator %q", peer.Symbol, peer.Negator),
			})
		}
	}
	return errs
}

// checkOperatorClass verifies the strategy table and probes comparator
// consistency.
func (r *Registry) checkOperatorClass(oc OperatorClass) []error {
	var errs []error

	if len(oc.Strategies) != 5 {
		errs = append(errs, &ValidationError{
			Code: ErrCodeBadStrategy, Subject: oc.Name,
			Message: fmt.Sprintf("strategy table has %d entries, want 5", len(oc.Strategies)),
		})
	}
	for n := StrategyLess; n <= StrategyGreater; n++ {
		if _, ok := oc.Strategies[n]; !ok {
			errs = append(errs, &ValidationError{
				Code: ErrCodeBadStrategy, Subject: oc.Name,
				Message: fmt.Sprintf("missing strategy %d", n),
			})
		}
	}

	support, ok := r.functions[oc.Support]
	if !ok {
		errs = append(errs, &ValidationError{
			Code: ErrCodeDangling, Subject: oc.Name,
			Message: "support function not registered: " + oc.Support,
		})
		return errs
	}
	cmp, ok := support.Impl.(func(cplx.Value, cplx.Value) int)
	if !ok {
		errs = append(errs, &ValidationError{
			Code: ErrCodeBadImpl, Subject: oc.Name,
			Message: fmt.Sprintf("support %s has signature %T, want func(Value, Value) int", oc.Support, support.Impl),
		})
		return errs
	}

	// wantSign maps strategy number to the predicate over the comparator's
	// sign that the strategy operator must equal for every pair.
	wantSign := map[int]func(c int) bool{
		StrategyLess:      func(c int) bool { return c < 0 },
		StrategyLessEq:    func(c int) bool { return c <= 0 },
		StrategyEq:        func(c int) bool { return c == 0 },
		StrategyGreaterEq: func(c int) bool { return c >= 0 },
		StrategyGreater:   func(c int) bool { return c > 0 },
	}

	for n, symbol := range oc.Strategies {
		op, ok := r.operators[symbol]
		if !ok {
			errs = append(errs, &ValidationError{
				Code: ErrCodeDangling, Subject: oc.Name,
				Message: fmt.Sprintf("strategy %d operator not registered: %s", n, symbol),
			})
			continue
		}
		fn, ok := r.functions[op.Function]
		if !ok {
			// Already reported against the operator itself.
			continue
		}
		pred, ok := fn.Impl.(func(cplx.Value, cplx.Value) bool)
		if !ok {
			errs = append(errs, &ValidationError{
				Code: ErrCodeBadImpl, Subject: symbol,
				Message: fmt.Sprintf("strategy %d function %s has signature %T, want func(Value, Value) bool", n, op.Function, fn.Impl),
			})
			continue
		}
		want, ok := wantSign[n]
		if !ok {
			// Out-of-range strategy number, reported above.
			continue
		}
		if bad, found := probeMismatch(pred, cmp, want); found {
			errs = append(errs, &ValidationError{
				Code: ErrCodeInconsistent, Subject: symbol,
				Message: fmt.Sprintf("strategy %d operator disagrees with comparator at %s vs %s",
					n, cplx.Format(bad[0]), cplx.Format(bad[1])),
			})
		}
	}
	return errs
}

// probeMismatch returns the first pair in the grid where the operator and
// the comparator disagree.
func probeMismatch(pred func(a, b cplx.Value) bool, cmp func(a, b cplx.Value) int, want func(c int) bool) ([2]cplx.Value, bool) {
	for _, a := range probeGrid {
		for _, b := range probeGrid {
			if pred(a, b) != want(cmp(a, b)) {
				return [2]cplx.Value{a, b}, true
			}
		}
	}
	return [2]cplx.Value{}, false
}
