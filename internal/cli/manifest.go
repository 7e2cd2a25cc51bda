package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"

	"github.com/argand-io/argand/internal/catalog"
)

// Manifest is the declarative form of an extension catalog as written in
// CUE. It mirrors the registry's descriptors minus implementation
// references; the check command verifies a manifest against the compiled-in
// catalog so that the shipped declaration can never drift from the code.
type Manifest struct {
	Type       ManifestType              `json:"type"`
	Functions  map[string]ManifestFunc   `json:"functions"`
	Operators  map[string]ManifestOp     `json:"operators"`
	Aggregates map[string]ManifestAgg    `json:"aggregates"`
	OpClasses  map[string]ManifestClass  `json:"opclasses"`
}

type ManifestType struct {
	Name    string `json:"name"`
	Size    int    `json:"size"`
	Align   int    `json:"align"`
	Input   string `json:"input"`
	Output  string `json:"output"`
	Receive string `json:"receive"`
	Send    string `json:"send"`
}

type ManifestFunc struct {
	Args      []string `json:"args"`
	Result    string   `json:"result"`
	Strict    bool     `json:"strict"`
	Immutable bool     `json:"immutable"`
}

type ManifestOp struct {
	Function   string `json:"function"`
	Commutator string `json:"commutator,omitempty"`
	Negator    string `json:"negator,omitempty"`
	Restrict   string `json:"restrict,omitempty"`
	Join       string `json:"join,omitempty"`
}

type ManifestAgg struct {
	Transition string `json:"transition"`
	StateType  string `json:"state_type"`
	Initial    string `json:"initial"`
}

type ManifestClass struct {
	AccessMethod string            `json:"access_method"`
	Strategies   map[string]string `json:"strategies"`
	Support      string            `json:"support"`
}

// LoadError represents an error that occurred during manifest loading.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadManifest loads the CUE files in dir and decodes the "catalog" field
// into a Manifest.
func LoadManifest(dir string) (*Manifest, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("manifest directory not found: %s", dir)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing manifest directory: %v", err)}
	}
	if !info.IsDir() {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}
	}

	cueFiles, err := findCUEFiles(dir)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("error scanning directory: %v", err)}
	}
	if len(cueFiles) == 0 {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("no CUE files found in %s", dir)}
	}

	ctx := cuecontext.New()
	cfg := &load.Config{Dir: dir}
	// Files are passed explicitly so the manifest loads in ad-hoc mode,
	// without requiring a cue.mod module root.
	instances := load.Instances(cueFiles, cfg)
	if len(instances) == 0 {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("building CUE value: %v", err)}
	}

	catalogVal := value.LookupPath(cue.ParsePath("catalog"))
	if !catalogVal.Exists() {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: "manifest has no top-level \"catalog\" field"}
	}

	var m Manifest
	if err := catalogVal.Decode(&m); err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("decoding catalog: %v", err)}
	}
	return &m, nil
}

// findCUEFiles walks the directory and returns all .cue file paths.
func findCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			abs, absErr := filepath.Abs(path)
			if absErr != nil {
				return absErr
			}
			files = append(files, abs)
		}
		return nil
	})
	return files, err
}

// Drift is one disagreement between a manifest and the built-in catalog.
type Drift struct {
	Path string `json:"path"` // dotted path to the disagreeing field
	Want string `json:"want"` // the built-in catalog's value
	Got  string `json:"got"`  // the manifest's value ("" = absent)
}

func (d Drift) String() string {
	return fmt.Sprintf("%s: manifest has %q, catalog has %q", d.Path, d.Got, d.Want)
}

// VerifyManifest compares a manifest against a registry and returns every
// drift found, sorted by path. An empty result means the declaration
// matches the code.
func VerifyManifest(m *Manifest, reg *catalog.Registry) []Drift {
	var drifts []Drift
	add := func(path, want, got string) {
		if want != got {
			drifts = append(drifts, Drift{Path: path, Want: want, Got: got})
		}
	}

	typ, ok := reg.Type(m.Type.Name)
	if !ok {
		drifts = append(drifts, Drift{Path: "type.name", Want: "", Got: m.Type.Name})
	} else {
		add("type.size", strconv.Itoa(typ.Size), strconv.Itoa(m.Type.Size))
		add("type.align", strconv.Itoa(typ.Align), strconv.Itoa(m.Type.Align))
		add("type.input", typ.Input, m.Type.Input)
		add("type.output", typ.Output, m.Type.Output)
		add("type.receive", typ.Receive, m.Type.Receive)
		add("type.send", typ.Send, m.Type.Send)
	}

	for name, mf := range m.Functions {
		f, ok := reg.Function(name)
		if !ok {
			drifts = append(drifts, Drift{Path: "functions." + name, Want: "", Got: "declared"})
			continue
		}
		add("functions."+name+".result", f.Result, mf.Result)
		add("functions."+name+".strict", strconv.FormatBool(f.Strict), strconv.FormatBool(mf.Strict))
		add("functions."+name+".immutable", strconv.FormatBool(f.Immutable), strconv.FormatBool(mf.Immutable))
		if len(f.Args) != len(mf.Args) {
			add("functions."+name+".args", strconv.Itoa(len(f.Args)), strconv.Itoa(len(mf.Args)))
		} else {
			for i := range f.Args {
				add(fmt.Sprintf("functions.%s.args[%d]", name, i), f.Args[i], mf.Args[i])
			}
		}
	}
	for _, f := range reg.Functions() {
		if _, ok := m.Functions[f.Name]; !ok {
			drifts = append(drifts, Drift{Path: "functions." + f.Name, Want: "declared", Got: ""})
		}
	}

	for symbol, mo := range m.Operators {
		op, ok := reg.Operator(symbol)
		if !ok {
			drifts = append(drifts, Drift{Path: "operators." + symbol, Want: "", Got: "declared"})
			continue
		}
		add("operators."+symbol+".function", op.Function, mo.Function)
		add("operators."+symbol+".commutator", op.Commutator, mo.Commutator)
		add("operators."+symbol+".negator", op.Negator, mo.Negator)
		add("operators."+symbol+".restrict", op.Restrict, mo.Restrict)
		add("operators."+symbol+".join", op.Join, mo.Join)
	}
	for _, op := range reg.Operators() {
		if _, ok := m.Operators[op.Symbol]; !ok {
			drifts = append(drifts, Drift{Path: "operators." + op.Symbol, Want: "declared", Got: ""})
		}
	}

	for name, ma := range m.Aggregates {
		a, ok := reg.Aggregate(name)
		if !ok {
			drifts = append(drifts, Drift{Path: "aggregates." + name, Want: "", Got: "declared"})
			continue
		}
		add("aggregates."+name+".transition", a.Transition, ma.Transition)
		add("aggregates."+name+".state_type", a.StateType, ma.StateType)
		add("aggregates."+name+".initial", a.Initial, ma.Initial)
	}
	for _, a := range reg.Aggregates() {
		if _, ok := m.Aggregates[a.Name]; !ok {
			drifts = append(drifts, Drift{Path: "aggregates." + a.Name, Want: "declared", Got: ""})
		}
	}

	for name, mc := range m.OpClasses {
		oc, ok := reg.OperatorClass(name)
		if !ok {
			drifts = append(drifts, Drift{Path: "opclasses." + name, Want: "", Got: "declared"})
			continue
		}
		add("opclasses."+name+".access_method", oc.AccessMethod, mc.AccessMethod)
		add("opclasses."+name+".support", oc.Support, mc.Support)
		for n, symbol := range oc.Strategies {
			add(fmt.Sprintf("opclasses.%s.strategies.%d", name, n), symbol, mc.Strategies[strconv.Itoa(n)])
		}
		for key := range mc.Strategies {
			if n, err := strconv.Atoi(key); err != nil {
				drifts = append(drifts, Drift{Path: "opclasses." + name + ".strategies." + key, Want: "", Got: "non-numeric strategy"})
			} else if _, ok := oc.Strategies[n]; !ok {
				drifts = append(drifts, Drift{Path: "opclasses." + name + ".strategies." + key, Want: "", Got: mc.Strategies[key]})
			}
		}
	}
	for _, oc := range reg.OperatorClasses() {
		if _, ok := m.OpClasses[oc.Name]; !ok {
			drifts = append(drifts, Drift{Path: "opclasses." + oc.Name, Want: "declared", Got: ""})
		}
	}

	sort.Slice(drifts, func(i, j int) bool { return drifts[i].Path < drifts[j].Path })
	return drifts
}
