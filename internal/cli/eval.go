package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/argand-io/argand/internal/catalog"
	"github.com/argand-io/argand/internal/cplx"
	"github.com/argand-io/argand/internal/dispatch"
)

// EvalResult is the eval command's JSON payload.
type EvalResult struct {
	Left     string `json:"left"`
	Operator string `json:"operator"`
	Right    string `json:"right"`
	Result   string `json:"result"`
}

// String renders the result for text-format output.
func (r EvalResult) String() string {
	return fmt.Sprintf("%s %s %s = %s", r.Left, r.Operator, r.Right, r.Result)
}

// evalOps maps command-line operator spellings to registered function
// names. "cmp" exposes the raw comparator alongside the SQL-level
// operators.
var evalOps = map[string]string{
	"+":   "complex_add",
	"<":   "complex_abs_lt",
	"<=":  "complex_abs_le",
	"=":   "complex_abs_eq",
	"<>":  "complex_abs_ne",
	">=":  "complex_abs_ge",
	">":   "complex_abs_gt",
	"cmp": "complex_abs_cmp",
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <left> <op> <right>",
		Short: "Evaluate an operator over two complex literals",
		Long: `Evaluate a registered operator over two complex literals.

Literals use the type's text form "(re,im)". Supported operators:
+ < <= = <> >= > cmp. Calls go through the catalog dispatcher, so
strictness and purity flags apply exactly as they would in a host engine.`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(rootOpts, args[0], args[1], args[2], cmd)
		},
	}
	return cmd
}

func runEval(opts *RootOptions, left, op, right string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	fnName, ok := evalOps[op]
	if !ok {
		formatter.Error(ErrCodeBadOp, fmt.Sprintf("unknown operator %q", op), nil)
		return NewExitError(ExitCommandError, "unknown operator "+op)
	}

	a, err := cplx.Parse(left)
	if err != nil {
		formatter.Error(ErrCodeBadLiteral, err.Error(), nil)
		return WrapExitError(ExitFailure, "left operand", err)
	}
	b, err := cplx.Parse(right)
	if err != nil {
		formatter.Error(ErrCodeBadLiteral, err.Error(), nil)
		return WrapExitError(ExitFailure, "right operand", err)
	}

	d := dispatch.New(catalog.Default())
	out, err := d.Call(fnName, dispatch.Complex(a), dispatch.Complex(b))
	if err != nil {
		formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitFailure, "dispatch", err)
	}

	formatter.VerboseLog("dispatched %s via %d trace entries", fnName, len(d.Trace()))

	return formatter.Success(EvalResult{
		Left:     cplx.Format(a),
		Operator: op,
		Right:    cplx.Format(b),
		Result:   renderDatum(out),
	})
}

// renderDatum prints a result datum in its natural text form.
func renderDatum(d dispatch.Datum) string {
	if d.IsNull() {
		return "null"
	}
	if v, ok := d.ComplexValue(); ok {
		return cplx.Format(v)
	}
	if b, ok := d.BoolValue(); ok {
		return strconv.FormatBool(b)
	}
	if n, ok := d.IntValue(); ok {
		return strconv.Itoa(n)
	}
	if s, ok := d.TextValue(); ok {
		return s
	}
	return "?"
}
