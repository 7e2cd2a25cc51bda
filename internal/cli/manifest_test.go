package cli

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/argand-io/argand/internal/catalog"
)

// manifestFromRegistry builds the manifest a registry implies, so tests
// can perturb single fields.
func manifestFromRegistry(reg *catalog.Registry) *Manifest {
	m := &Manifest{
		Functions:  map[string]ManifestFunc{},
		Operators:  map[string]ManifestOp{},
		Aggregates: map[string]ManifestAgg{},
		OpClasses:  map[string]ManifestClass{},
	}
	for _, t := range reg.Types() {
		m.Type = ManifestType{
			Name: t.Name, Size: t.Size, Align: t.Align,
			Input: t.Input, Output: t.Output, Receive: t.Receive, Send: t.Send,
		}
	}
	for _, f := range reg.Functions() {
		m.Functions[f.Name] = ManifestFunc{
			Args: f.Args, Result: f.Result, Strict: f.Strict, Immutable: f.Immutable,
		}
	}
	for _, op := range reg.Operators() {
		m.Operators[op.Symbol] = ManifestOp{
			Function: op.Function, Commutator: op.Commutator, Negator: op.Negator,
			Restrict: op.Restrict, Join: op.Join,
		}
	}
	for _, a := range reg.Aggregates() {
		m.Aggregates[a.Name] = ManifestAgg{
			Transition: a.Transition, StateType: a.StateType, Initial: a.Initial,
		}
	}
	for _, oc := range reg.OperatorClasses() {
		strategies := map[string]string{}
		for n, symbol := range oc.Strategies {
			strategies[strconv.Itoa(n)] = symbol
		}
		m.OpClasses[oc.Name] = ManifestClass{
			AccessMethod: oc.AccessMethod, Strategies: strategies, Support: oc.Support,
		}
	}
	return m
}

func TestVerifyManifestMatches(t *testing.T) {
	reg := catalog.Default()
	assert.Empty(t, VerifyManifest(manifestFromRegistry(reg), reg))
}

func TestVerifyManifestWrongSize(t *testing.T) {
	reg := catalog.Default()
	m := manifestFromRegistry(reg)
	m.Type.Size = 12
	drifts := VerifyManifest(m, reg)
	require.Len(t, drifts, 1)
	assert.Equal(t, "type.size", drifts[0].Path)
	assert.Equal(t, "16", drifts[0].Want)
	assert.Equal(t, "12", drifts[0].Got)
}

func TestVerifyManifestMissingOperator(t *testing.T) {
	reg := catalog.Default()
	m := manifestFromRegistry(reg)
	delete(m.Operators, "<>")
	drifts := VerifyManifest(m, reg)
	require.Len(t, drifts, 1)
	assert.Equal(t, "operators.<>", drifts[0].Path)
}

func TestVerifyManifestExtraFunction(t *testing.T) {
	reg := catalog.Default()
	m := manifestFromRegistry(reg)
	m.Functions["complex_mul"] = ManifestFunc{Result: "complex"}
	drifts := VerifyManifest(m, reg)
	require.Len(t, drifts, 1)
	assert.Equal(t, "functions.complex_mul", drifts[0].Path)
}

func TestVerifyManifestWrongStrategy(t *testing.T) {
	reg := catalog.Default()
	m := manifestFromRegistry(reg)
	oc := m.OpClasses["complex_abs_ops"]
	oc.Strategies["1"] = ">"
	drifts := VerifyManifest(m, reg)
	require.Len(t, drifts, 1)
	assert.Equal(t, "opclasses.complex_abs_ops.strategies.1", drifts[0].Path)
}

func TestVerifyManifestNonStrictFlag(t *testing.T) {
	reg := catalog.Default()
	m := manifestFromRegistry(reg)
	f := m.Functions["complex_add"]
	f.Strict = false
	m.Functions["complex_add"] = f
	drifts := VerifyManifest(m, reg)
	require.Len(t, drifts, 1)
	assert.Equal(t, "functions.complex_add.strict", drifts[0].Path)
}
