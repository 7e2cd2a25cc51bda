package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/argand-io/argand/internal/catalog"
	"github.com/argand-io/argand/internal/cplx"
	"github.com/argand-io/argand/internal/dispatch"
)

// ValueSet is the YAML fixture format for value-list commands: a name and
// a list of complex literals in the type's text form.
type ValueSet struct {
	Name   string   `yaml:"name,omitempty"`
	Values []string `yaml:"values"`
}

// SumResult is the sum command's JSON payload.
type SumResult struct {
	Name  string `json:"name,omitempty"`
	Count int    `json:"count"`
	Sum   string `json:"sum"`
}

// String renders the result for text-format output.
func (r SumResult) String() string {
	return fmt.Sprintf("sum of %d value(s) = %s", r.Count, r.Sum)
}

// NewSumCommand creates the sum command.
func NewSumCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sum <values.yaml>",
		Short: "Fold a YAML list of complex literals with the sum aggregate",
		Long: `Fold a YAML list of complex literals with the registered sum aggregate.

The fixture format is:

    name: my-values
    values:
      - "(1,2)"
      - "(3,4)"

The fold runs through the catalog dispatcher using the aggregate's
registered transition function and initial state, exactly as a host
engine would drive it per group.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSum(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

// LoadValueSet reads and parses a value-set YAML file. Unknown fields are
// rejected to catch typos like "value:" for "values:".
func LoadValueSet(path string) (*ValueSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read value file: %w", err)
	}

	var set ValueSet
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&set); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(set.Values) == 0 {
		return nil, fmt.Errorf("value file %s lists no values", path)
	}
	return &set, nil
}

func runSum(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	set, err := LoadValueSet(path)
	if err != nil {
		formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return WrapExitError(ExitCommandError, "loading values", err)
	}

	inputs := make([]dispatch.Datum, 0, len(set.Values))
	for i, lit := range set.Values {
		v, err := cplx.Parse(lit)
		if err != nil {
			formatter.Error(ErrCodeBadLiteral, fmt.Sprintf("value %d: %v", i, err), nil)
			return WrapExitError(ExitFailure, "parsing values", err)
		}
		inputs = append(inputs, dispatch.Complex(v))
	}

	d := dispatch.New(catalog.Default())
	out, err := d.RunAggregate("complex_sum", inputs)
	if err != nil {
		formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitFailure, "aggregate", err)
	}

	formatter.VerboseLog("folded %d value(s) from %s", len(inputs), path)

	return formatter.Success(SumResult{
		Name:  set.Name,
		Count: len(inputs),
		Sum:   renderDatum(out),
	})
}
