package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/argand-io/argand/internal/cplx"
	"github.com/argand-io/argand/internal/store"
)

// ScanOptions holds flags for the scan command.
type ScanOptions struct {
	*RootOptions
	Min string
	Max string
	DB  string
}

// ScanRow is one row of the scan command's JSON payload.
type ScanRow struct {
	Label     string  `json:"label"`
	Value     string  `json:"value"`
	Magnitude float64 `json:"magnitude"`
}

// ScanResult is the scan command's JSON payload.
type ScanResult struct {
	Min  string    `json:"min"`
	Max  string    `json:"max"`
	Rows []ScanRow `json:"rows"`
}

// String renders the result for text-format output.
func (r ScanResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d row(s) in [%s, %s]:", len(r.Rows), r.Min, r.Max)
	for _, row := range r.Rows {
		fmt.Fprintf(&b, "\n  %s = %s (|v| = %g)", row.Label, row.Value, row.Magnitude)
	}
	return b.String()
}

// NewScanCommand creates the scan command.
func NewScanCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ScanOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "scan <values.yaml>",
		Short: "Run an index-assisted magnitude range scan over a value set",
		Long: `Load a YAML value set into a SQLite database whose value column is
collated by the type's comparator, then run a range scan between --min
and --max through the resulting index. The rows that come back are the
ones the magnitude order puts inside the range, which makes this command
a live check of comparator/operator consistency against a real engine.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Min, "min", "(0,0)", "lower range bound, inclusive")
	cmd.Flags().StringVar(&opts.Max, "max", "", "upper range bound, inclusive (required)")
	cmd.Flags().StringVar(&opts.DB, "db", "", "database path (default: temporary)")
	cmd.MarkFlagRequired("max")

	return cmd
}

func runScan(opts *ScanOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	lo, err := cplx.Parse(opts.Min)
	if err != nil {
		formatter.Error(ErrCodeBadLiteral, "--min: "+err.Error(), nil)
		return WrapExitError(ExitCommandError, "min bound", err)
	}
	hi, err := cplx.Parse(opts.Max)
	if err != nil {
		formatter.Error(ErrCodeBadLiteral, "--max: "+err.Error(), nil)
		return WrapExitError(ExitCommandError, "max bound", err)
	}

	set, err := LoadValueSet(path)
	if err != nil {
		formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return WrapExitError(ExitCommandError, "loading values", err)
	}

	dbPath := opts.DB
	if dbPath == "" {
		tmp, err := os.MkdirTemp("", "argand-scan-")
		if err != nil {
			formatter.Error(ErrCodeStore, err.Error(), nil)
			return WrapExitError(ExitCommandError, "temp dir", err)
		}
		defer os.RemoveAll(tmp)
		dbPath = filepath.Join(tmp, "scan.db")
	}

	s, err := store.Open(dbPath)
	if err != nil {
		formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "opening store", err)
	}
	defer s.Close()

	ctx := cmd.Context()
	for i, lit := range set.Values {
		v, err := cplx.Parse(lit)
		if err != nil {
			formatter.Error(ErrCodeBadLiteral, fmt.Sprintf("value %d: %v", i, err), nil)
			return WrapExitError(ExitFailure, "parsing values", err)
		}
		if err := s.Insert(ctx, fmt.Sprintf("v%03d", i), v); err != nil {
			formatter.Error(ErrCodeStore, err.Error(), nil)
			return WrapExitError(ExitFailure, "loading store", err)
		}
	}

	points, err := s.RangeScan(ctx, lo, hi)
	if err != nil {
		formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitFailure, "range scan", err)
	}

	formatter.VerboseLog("scanned %d of %d value(s) in range", len(points), len(set.Values))

	result := ScanResult{Min: cplx.Format(lo), Max: cplx.Format(hi)}
	for _, p := range points {
		result.Rows = append(result.Rows, ScanRow{
			Label:     p.Label,
			Value:     cplx.Format(p.Value),
			Magnitude: cplx.Mag(p.Value),
		})
	}
	return formatter.Success(result)
}
