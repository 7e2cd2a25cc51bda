package catalog

import (
	"fmt"
	"sort"

	"github.com/argand-io/argand/internal/cplx"
)

// Registry holds one extension's descriptors. Build it with the Register
// methods, then call Validate before handing it to a host; Default returns
// the complex type's registry already validated.
//
// A validated Registry is immutable in practice: nothing here mutates it
// after construction, so concurrent readers need no locking.
type Registry struct {
	types      map[string]Type
	functions  map[string]Function
	operators  map[string]Operator
	aggregates map[string]Aggregate
	opclasses  map[string]OperatorClass
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		types:      make(map[string]Type),
		functions:  make(map[string]Function),
		operators:  make(map[string]Operator),
		aggregates: make(map[string]Aggregate),
		opclasses:  make(map[string]OperatorClass),
	}
}

// RegisterType records a type descriptor. Duplicate names are rejected
// immediately; cross-references are checked by Validate.
func (r *Registry) RegisterType(t Type) error {
	if _, ok := r.types[t.Name]; ok {
		return &ValidationError{Code: ErrCodeDuplicate, Message: "type already registered", Subject: t.Name}
	}
	r.types[t.Name] = t
	return nil
}

// RegisterFunction records a function descriptor.
func (r *Registry) RegisterFunction(f Function) error {
	if _, ok := r.functions[f.Name]; ok {
		return &ValidationError{Code: ErrCodeDuplicate, Message: "function already registered", Subject: f.Name}
	}
	r.functions[f.Name] = f
	return nil
}

// RegisterOperator records an operator descriptor, keyed by symbol.
func (r *Registry) RegisterOperator(op Operator) error {
	if _, ok := r.operators[op.Symbol]; ok {
		return &ValidationError{Code: ErrCodeDuplicate, Message: "operator already registered", Subject: op.Symbol}
	}
	r.operators[op.Symbol] = op
	return nil
}

// RegisterAggregate records an aggregate descriptor.
func (r *Registry) RegisterAggregate(a Aggregate) error {
	if _, ok := r.aggregates[a.Name]; ok {
		return &ValidationError{Code: ErrCodeDuplicate, Message: "aggregate already registered", Subject: a.Name}
	}
	r.aggregates[a.Name] = a
	return nil
}

// RegisterOperatorClass records an operator class descriptor.
func (r *Registry) RegisterOperatorClass(oc OperatorClass) error {
	if _, ok := r.opclasses[oc.Name]; ok {
		return &ValidationError{Code: ErrCodeDuplicate, Message: "operator class already registered", Subject: oc.Name}
	}
	r.opclasses[oc.Name] = oc
	return nil
}

// Lookup methods return the descriptor and whether it exists.

func (r *Registry) Type(name string) (Type, bool)           { t, ok := r.types[name]; return t, ok }
func (r *Registry) Function(name string) (Function, bool)   { f, ok := r.functions[name]; return f, ok }
func (r *Registry) Operator(symbol string) (Operator, bool) { o, ok := r.operators[symbol]; return o, ok }
func (r *Registry) Aggregate(name string) (Aggregate, bool) { a, ok := r.aggregates[name]; return a, ok }
func (r *Registry) OperatorClass(name string) (OperatorClass, bool) {
	oc, ok := r.opclasses[name]
	return oc, ok
}

// Sorted listing methods, for deterministic serialization and display.

func (r *Registry) Types() []Type {
	out := make([]Type, 0, len(r.types))
	for _, t := range r.types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *Registry) Functions() []Function {
	out := make([]Function, 0, len(r.functions))
	for _, f := range r.functions {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *Registry) Operators() []Operator {
	out := make([]Operator, 0, len(r.operators))
	for _, o := range r.operators {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

func (r *Registry) Aggregates() []Aggregate {
	out := make([]Aggregate, 0, len(r.aggregates))
	for _, a := range r.aggregates {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *Registry) OperatorClasses() []OperatorClass {
	out := make([]OperatorClass, 0, len(r.opclasses))
	for _, oc := range r.opclasses {
		out = append(out, oc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Default builds and validates the complex type's catalog: the 16-byte
// type record, its codec and arithmetic functions (all strict and
// immutable), the "+" operator, the five ordering operators with mutual
// commutator/negator links, the sum aggregate, and the tree operator
// class. It panics only on a programming error in this package, caught by
// the validation probe in tests.
func Default() *Registry {
	r := NewRegistry()

	must := func(err error) {
		if err != nil {
			panic(fmt.Sprintf("catalog: default registry: %v", err))
		}
	}

	must(r.RegisterType(Type{
		Name:    "complex",
		Size:    cplx.WireSize,
		Align:   cplx.Align,
		Input:   "complex_in",
		Output:  "complex_out",
		Receive: "complex_recv",
		Send:    "complex_send",
	}))

	funcs := []Function{
		{Name: "complex_in", Args: []string{"text"}, Result: "complex", Impl: cplx.Parse},
		{Name: "complex_out", Args: []string{"complex"}, Result: "text", Impl: cplx.Format},
		{Name: "complex_recv", Args: []string{"bytea"}, Result: "complex", Impl: cplx.Decode},
		{Name: "complex_send", Args: []string{"complex"}, Result: "bytea", Impl: cplx.Encode},
		{Name: "complex_add", Args: []string{"complex", "complex"}, Result: "complex", Impl: cplx.Add},
		{Name: "complex_abs_lt", Args: []string{"complex", "complex"}, Result: "bool", Impl: cplx.Less},
		{Name: "complex_abs_le", Args: []string{"complex", "complex"}, Result: "bool", Impl: cplx.LessEq},
		{Name: "complex_abs_eq", Args: []string{"complex", "complex"}, Result: "bool", Impl: cplx.Eq},
		{Name: "complex_abs_ge", Args: []string{"complex", "complex"}, Result: "bool", Impl: cplx.GreaterEq},
		{Name: "complex_abs_gt", Args: []string{"complex", "complex"}, Result: "bool", Impl: cplx.Greater},
		{Name: "complex_abs_cmp", Args: []string{"complex", "complex"}, Result: "int", Impl: cplx.Compare},
	}
	for _, f := range funcs {
		// Every function of the type is pure and null-intolerant: the host
		// folds at plan time and skips calls with null arguments.
		f.Strict = true
		f.Immutable = true
		must(r.RegisterFunction(f))
	}

	must(r.RegisterOperator(Operator{
		Symbol: "+", Left: "complex", Right: "complex",
		Function: "complex_add", Commutator: "+",
	}))

	boolOps := []Operator{
		{Symbol: "<", Function: "complex_abs_lt", Commutator: ">", Negator: ">=", Restrict: "scalarltsel", Join: "scalarltjoinsel"},
		{Symbol: "<=", Function: "complex_abs_le", Commutator: ">=", Negator: ">", Restrict: "scalarlesel", Join: "scalarlejoinsel"},
		{Symbol: "=", Function: "complex_abs_eq", Commutator: "=", Negator: "<>", Restrict: "eqsel", Join: "eqjoinsel"},
		{Symbol: ">=", Function: "complex_abs_ge", Commutator: "<=", Negator: "<", Restrict: "scalargesel", Join: "scalargejoinsel"},
		{Symbol: ">", Function: "complex_abs_gt", Commutator: "<", Negator: "<=", Restrict: "scalargtsel", Join: "scalargtjoinsel"},
	}
	for _, op := range boolOps {
		op.Left, op.Right = "complex", "complex"
		must(r.RegisterOperator(op))
	}

	// "<>" exists only as the negator target of "=". It is implemented as
	// the complement through the same comparator, so consistency holds by
	// construction.
	must(r.RegisterFunction(Function{
		Name: "complex_abs_ne", Args: []string{"complex", "complex"}, Result: "bool",
		Strict: true, Immutable: true,
		Impl: func(a, b cplx.Value) bool { return cplx.Compare(a, b) != 0 },
	}))
	must(r.RegisterOperator(Operator{
		Symbol: "<>", Left: "complex", Right: "complex",
		Function: "complex_abs_ne", Commutator: "<>", Negator: "=",
		Restrict: "neqsel", Join: "neqjoinsel",
	}))

	must(r.RegisterAggregate(Aggregate{
		Name:       "complex_sum",
		Transition: "complex_add",
		StateType:  "complex",
		Initial:    "(0,0)",
	}))

	must(r.RegisterOperatorClass(OperatorClass{
		Name:         "complex_abs_ops",
		Type:         "complex",
		AccessMethod: "btree",
		Strategies: map[int]string{
			StrategyLess:      "<",
			StrategyLessEq:    "<=",
			StrategyEq:        "=",
			StrategyGreaterEq: ">=",
			StrategyGreater:   ">",
		},
		Support: "complex_abs_cmp",
	}))

	if errs := r.Validate(); len(errs) > 0 {
		panic(fmt.Sprintf("catalog: default registry invalid: %v", errs[0]))
	}
	return r
}
