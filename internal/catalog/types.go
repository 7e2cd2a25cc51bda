package catalog

// Strategy numbers for the tree access method. The index implementation
// uses these to know which registered operator plays which comparison role.
const (
	StrategyLess      = 1
	StrategyLessEq    = 2
	StrategyEq        = 3
	StrategyGreaterEq = 4
	StrategyGreater   = 5
)

// Type describes a fixed-length scalar type registration.
type Type struct {
	// Name is the SQL-visible type name.
	Name string `json:"name"`

	// Size is the internal length in bytes. The complex type is always 16.
	Size int `json:"size"`

	// Align is the storage alignment in bytes.
	Align int `json:"align"`

	// Input and Output name the text codec functions.
	Input  string `json:"input"`
	Output string `json:"output"`

	// Receive and Send name the wire codec functions.
	Receive string `json:"receive"`
	Send    string `json:"send"`
}

// Function describes a registered function: its signature by type name,
// its host-facing flags, and a reference to the implementation.
type Function struct {
	// Name identifies the function within the registry.
	Name string `json:"name"`

	// Args and Result are type names ("complex", "text", "bytea", "bool",
	// "int"). Signature facts only; the registry does not type-check calls.
	Args   []string `json:"args"`
	Result string   `json:"result"`

	// Strict means the host must substitute a null result without invoking
	// the implementation when any argument is null. Every function of the
	// complex type is strict, so none of them branch on null internally.
	Strict bool `json:"strict"`

	// Immutable means the result depends only on the arguments, forever:
	// the host planner may constant-fold or memoize calls.
	Immutable bool `json:"immutable"`

	// Impl is the Go implementation. Metadata for the dispatcher; excluded
	// from serialized catalog forms.
	Impl any `json:"-"`
}

// Operator describes a registered operator. Commutator, Negator, Restrict,
// and Join are identifying metadata consumed by the host planner; this
// package never implements planning logic.
type Operator struct {
	// Symbol is the operator spelling, e.g. "+" or "<=".
	Symbol string `json:"symbol"`

	// Left and Right are the operand type names.
	Left  string `json:"left"`
	Right string `json:"right"`

	// Function names the implementing function in the registry.
	Function string `json:"function"`

	// Commutator is the symbol of the operator obtained by swapping the
	// operands, empty if none is declared.
	Commutator string `json:"commutator,omitempty"`

	// Negator is the symbol of the operator whose result is always the
	// logical complement, empty if none is declared.
	Negator string `json:"negator,omitempty"`

	// Restrict and Join name the host's selectivity estimators for
	// restriction and join clauses. Names only; no estimator lives here.
	Restrict string `json:"restrict,omitempty"`
	Join     string `json:"join,omitempty"`
}

// Aggregate describes a registered aggregate: the per-row transition
// function, the state type, and the initial state as a text literal in the
// state type's input format.
type Aggregate struct {
	Name       string `json:"name"`
	Transition string `json:"transition"`
	StateType  string `json:"state_type"`
	Initial    string `json:"initial"`
}

// OperatorClass binds operators and a comparator support function to an
// index access method for one type. Strategies maps strategy number to
// operator symbol; Support names the three-way comparator the tree builds
// and scans with.
type OperatorClass struct {
	Name         string         `json:"name"`
	Type         string         `json:"type"`
	AccessMethod string         `json:"access_method"`
	Strategies   map[int]string `json:"strategies"`
	Support      string         `json:"support"`
}
