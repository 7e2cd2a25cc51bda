package dispatch

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/argand-io/argand/internal/catalog"
	"github.com/argand-io/argand/internal/cplx"
)

// TraceEntry records one dispatched call.
type TraceEntry struct {
	// Token is a time-ordered UUID identifying the invocation.
	Token string `json:"token"`

	// Function is the registered function name.
	Function string `json:"function"`

	// ShortCircuited is true when strictness substituted a null result
	// without invoking the implementation.
	ShortCircuited bool `json:"short_circuited,omitempty"`

	// Cached is true when the result came from the immutable-function
	// memo instead of a fresh invocation.
	Cached bool `json:"cached,omitempty"`
}

// Dispatcher drives registered function implementations on behalf of a
// host, honoring each function's strictness and immutability flags. Safe
// for concurrent use; the underlying implementations are pure, so the only
// shared state is the memo and the trace, both mutex-guarded.
type Dispatcher struct {
	reg *catalog.Registry

	mu    sync.Mutex
	memo  map[string]Datum
	trace []TraceEntry
}

// New returns a Dispatcher bound to the given registry.
func New(reg *catalog.Registry) *Dispatcher {
	return &Dispatcher{
		reg:  reg,
		memo: make(map[string]Datum),
	}
}

// Call invokes the named function with the given arguments.
//
// If the function is strict and any argument is null, the implementation
// is not invoked and a null datum is returned; the trace records the
// short-circuit. If the function is immutable, the result may be served
// from the memo. Errors returned by an implementation (codec format
// errors) pass through unchanged and are never cached.
func (d *Dispatcher) Call(name string, args ...Datum) (Datum, error) {
	fn, ok := d.reg.Function(name)
	if !ok {
		return Null(), &CallError{Code: ErrCodeUnknownFunction, Message: "not registered", Function: name}
	}

	if fn.Strict {
		for _, a := range args {
			if a.IsNull() {
				d.record(TraceEntry{Token: newToken(), Function: name, ShortCircuited: true})
				return Null(), nil
			}
		}
	}

	var key string
	if fn.Immutable {
		key = memoKey(name, args)
		d.mu.Lock()
		cached, hit := d.memo[key]
		d.mu.Unlock()
		if hit {
			d.record(TraceEntry{Token: newToken(), Function: name, Cached: true})
			return cached, nil
		}
	}

	result, err := invoke(fn, name, args)
	if err != nil {
		return Null(), err
	}

	d.record(TraceEntry{Token: newToken(), Function: name})
	if fn.Immutable {
		d.mu.Lock()
		d.memo[key] = result
		d.mu.Unlock()
	}
	return result, nil
}

// RunAggregate folds the inputs with the named aggregate's transition
// function, starting from its registered initial state literal. Null
// inputs are filtered here, before the transition function is called,
// because the transition is strict: folding a null into the state would
// otherwise null out the whole group.
func (d *Dispatcher) RunAggregate(name string, inputs []Datum) (Datum, error) {
	agg, ok := d.reg.Aggregate(name)
	if !ok {
		return Null(), &CallError{Code: ErrCodeUnknownAggregate, Message: "not registered", Function: name}
	}

	state, err := cplx.Parse(agg.Initial)
	if err != nil {
		return Null(), err
	}

	acc := Complex(state)
	for _, in := range inputs {
		if in.IsNull() {
			continue
		}
		acc, err = d.Call(agg.Transition, acc, in)
		if err != nil {
			return Null(), err
		}
	}
	return acc, nil
}

// Trace returns a copy of the invocation trace so far.
func (d *Dispatcher) Trace() []TraceEntry {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]TraceEntry, len(d.trace))
	copy(out, d.trace)
	return out
}

func (d *Dispatcher) record(e TraceEntry) {
	d.mu.Lock()
	d.trace = append(d.trace, e)
	d.mu.Unlock()
}

func newToken() string {
	return uuid.Must(uuid.NewV7()).String()
}

func memoKey(name string, args []Datum) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, name)
	for _, a := range args {
		parts = append(parts, a.cacheKey())
	}
	return strings.Join(parts, "|")
}

// invoke bridges a Datum argument list onto the implementation's concrete
// Go signature. The supported shapes are exactly the ones the complex
// catalog registers; anything else is an UNSUPPORTED_IMPL error rather
// than a reflective guess.
func invoke(fn catalog.Function, name string, args []Datum) (Datum, error) {
	badArg := func(msg string) error {
		return &CallError{Code: ErrCodeBadArgument, Message: msg, Function: name}
	}

	switch impl := fn.Impl.(type) {
	case func(string) (cplx.Value, error):
		if len(args) != 1 {
			return Null(), badArg("want 1 text argument")
		}
		s, ok := args[0].TextValue()
		if !ok {
			return Null(), badArg("argument is not text")
		}
		v, err := impl(s)
		if err != nil {
			return Null(), err
		}
		return Complex(v), nil

	case func(cplx.Value) string:
		v, err := oneComplex(args, badArg)
		if err != nil {
			return Null(), err
		}
		return Text(impl(v)), nil

	case func([]byte) (cplx.Value, error):
		if len(args) != 1 {
			return Null(), badArg("want 1 bytea argument")
		}
		b, ok := args[0].BytesValue()
		if !ok {
			return Null(), badArg("argument is not bytea")
		}
		v, err := impl(b)
		if err != nil {
			return Null(), err
		}
		return Complex(v), nil

	case func(cplx.Value) []byte:
		v, err := oneComplex(args, badArg)
		if err != nil {
			return Null(), err
		}
		return Bytes(impl(v)), nil

	case func(cplx.Value, cplx.Value) cplx.Value:
		a, b, err := twoComplex(args, badArg)
		if err != nil {
			return Null(), err
		}
		return Complex(impl(a, b)), nil

	case func(cplx.Value, cplx.Value) bool:
		a, b, err := twoComplex(args, badArg)
		if err != nil {
			return Null(), err
		}
		return Bool(impl(a, b)), nil

	case func(cplx.Value, cplx.Value) int:
		a, b, err := twoComplex(args, badArg)
		if err != nil {
			return Null(), err
		}
		return Int(impl(a, b)), nil

	default:
		return Null(), &CallError{
			Code: ErrCodeUnsupportedImpl, Function: name,
			Message: "implementation signature not dispatchable",
		}
	}
}

func oneComplex(args []Datum, badArg func(string) error) (cplx.Value, error) {
	if len(args) != 1 {
		return cplx.Value{}, badArg("want 1 complex argument")
	}
	v, ok := args[0].ComplexValue()
	if !ok {
		return cplx.Value{}, badArg("argument is not complex")
	}
	return v, nil
}

func twoComplex(args []Datum, badArg func(string) error) (cplx.Value, cplx.Value, error) {
	if len(args) != 2 {
		return cplx.Value{}, cplx.Value{}, badArg("want 2 complex arguments")
	}
	a, ok := args[0].ComplexValue()
	if !ok {
		return cplx.Value{}, cplx.Value{}, badArg("first argument is not complex")
	}
	b, ok := args[1].ComplexValue()
	if !ok {
		return cplx.Value{}, cplx.Value{}, badArg("second argument is not complex")
	}
	return a, b, nil
}
