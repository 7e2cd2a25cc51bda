package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/argand-io/argand/internal/cplx"
)

// brokenRegistry builds a minimal registry with one opclass whose pieces
// tests can then corrupt.
func brokenRegistry(t *testing.T, mutate func(r *Registry)) []error {
	t.Helper()
	r := NewRegistry()
	require.NoError(t, r.RegisterFunction(Function{
		Name: "cmp", Args: []string{"complex", "complex"}, Result: "int",
		Strict: true, Immutable: true, Impl: cplx.Compare,
	}))
	preds := map[string]any{
		"lt": cplx.Less, "le": cplx.LessEq, "eq": cplx.Eq,
		"ge": cplx.GreaterEq, "gt": cplx.Greater,
	}
	for name, impl := range preds {
		require.NoError(t, r.RegisterFunction(Function{
			Name: name, Args: []string{"complex", "complex"}, Result: "bool",
			Strict: true, Immutable: true, Impl: impl,
		}))
	}
	for symbol, fn := range map[string]string{"<": "lt", "<=": "le", "=": "eq", ">=": "ge", ">": "gt"} {
		require.NoError(t, r.RegisterOperator(Operator{
			Symbol: symbol, Left: "complex", Right: "complex", Function: fn,
		}))
	}
	require.NoError(t, r.RegisterOperatorClass(OperatorClass{
		Name: "ops", Type: "complex", AccessMethod: "btree",
		Strategies: map[int]string{1: "<", 2: "<=", 3: "=", 4: ">=", 5: ">"},
		Support:    "cmp",
	}))
	if mutate != nil {
		mutate(r)
	}
	return r.Validate()
}

func codes(errs []error) []ValidationErrorCode {
	var out []ValidationErrorCode
	for _, err := range errs {
		var ve *ValidationError
		if errors.As(err, &ve) {
			out = append(out, ve.Code)
		}
	}
	return out
}

func TestValidRegistryPasses(t *testing.T) {
	assert.Empty(t, brokenRegistry(t, nil))
}

func TestMissingStrategyDetected(t *testing.T) {
	errs := brokenRegistry(t, func(r *Registry) {
		oc := r.opclasses["ops"]
		delete(oc.Strategies, 3)
	})
	assert.Contains(t, codes(errs), ErrCodeBadStrategy)
}

func TestDanglingOperatorDetected(t *testing.T) {
	errs := brokenRegistry(t, func(r *Registry) {
		oc := r.opclasses["ops"]
		oc.Strategies[1] = "<<"
	})
	assert.Contains(t, codes(errs), ErrCodeDangling)
}

func TestDanglingSupportDetected(t *testing.T) {
	errs := brokenRegistry(t, func(r *Registry) {
		oc := r.opclasses["ops"]
		oc.Support = "nope"
		r.opclasses["ops"] = oc
	})
	assert.Contains(t, codes(errs), ErrCodeDangling)
}

func TestComparatorMismatchDetected(t *testing.T) {
	// Swap the strategy-1 operator to point at the greater-than function.
	// The probe grid must catch that the operator's truth table no longer
	// matches the comparator's sign for strategy 1.
	errs := brokenRegistry(t, func(r *Registry) {
		op := r.operators["<"]
		op.Function = "gt"
		r.operators["<"] = op
	})
	assert.Contains(t, codes(errs), ErrCodeInconsistent)
}

func TestLexicographicTieBreakRejected(t *testing.T) {
	// An "improved" equality that breaks magnitude ties by comparing parts
	// bitwise is exactly the mistake the probe grid exists to catch: it
	// contains (3,4) and (5,0), equal in magnitude, distinct in bits.
	errs := brokenRegistry(t, func(r *Registry) {
		f := r.functions["eq"]
		f.Impl = func(a, b cplx.Value) bool { return a == b }
		r.functions["eq"] = f
	})
	assert.Contains(t, codes(errs), ErrCodeInconsistent)
}

func TestBadImplSignatureDetected(t *testing.T) {
	errs := brokenRegistry(t, func(r *Registry) {
		f := r.functions["cmp"]
		f.Impl = func(a, b cplx.Value) bool { return false }
		r.functions["cmp"] = f
	})
	assert.Contains(t, codes(errs), ErrCodeBadImpl)
}

func TestNonMutualCommutatorDetected(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterFunction(Function{Name: "f", Result: "bool", Impl: cplx.Less}))
	require.NoError(t, r.RegisterOperator(Operator{Symbol: "<", Function: "f", Commutator: ">"}))
	require.NoError(t, r.RegisterOperator(Operator{Symbol: ">", Function: "f", Commutator: "<>"}))
	require.NoError(t, r.RegisterOperator(Operator{Symbol: "<>", Function: "f", Commutator: "<>"}))
	errs := r.Validate()
	assert.Contains(t, codes(errs), ErrCodeBadLink)
}

func TestBadTypeRecordDetected(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterType(Type{Name: "complex", Size: 12, Align: 8,
		Input: "i", Output: "o", Receive: "r", Send: "s"}))
	errs := r.Validate()
	found := codes(errs)
	assert.Contains(t, found, ErrCodeBadType)
	assert.Contains(t, found, ErrCodeDangling)
}

func TestAggregateStateTypeChecked(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterFunction(Function{
		Name: "add", Args: []string{"complex", "complex"}, Result: "complex", Impl: cplx.Add,
	}))
	require.NoError(t, r.RegisterAggregate(Aggregate{
		Name: "sum", Transition: "add", StateType: "complex", Initial: "not a literal",
	}))
	errs := r.Validate()
	assert.Contains(t, codes(errs), ErrCodeBadImpl)
}
