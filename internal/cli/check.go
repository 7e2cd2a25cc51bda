package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/argand-io/argand/internal/catalog"
)

// CheckResult is the check command's JSON payload.
type CheckResult struct {
	Fingerprint string  `json:"fingerprint"`
	Drifts      []Drift `json:"drifts,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <manifest-dir>",
		Short: "Verify a CUE catalog manifest against the built-in catalog",
		Long: `Verify that a CUE manifest describing the extension catalog matches the
compiled-in registry. The manifest is the declaration an operator reads;
the registry is what the code registers; drift between the two means the
shipped documentation lies about the installed behavior.

Exits 0 when the manifest matches, 1 on drift, 2 when the manifest cannot
be loaded.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runCheck(opts *RootOptions, dir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	manifest, err := LoadManifest(dir)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			formatter.Error(loadErr.Code, loadErr.Message, nil)
		} else {
			formatter.Error(ErrCodeLoadFailed, err.Error(), nil)
		}
		return WrapExitError(ExitCommandError, "loading manifest", err)
	}

	reg := catalog.Default()
	fp, err := reg.Fingerprint()
	if err != nil {
		formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitFailure, "fingerprint", err)
	}

	drifts := VerifyManifest(manifest, reg)
	if len(drifts) > 0 {
		if opts.Format == "json" {
			formatter.Error(ErrCodeDrift,
				fmt.Sprintf("%d field(s) drifted from the built-in catalog", len(drifts)),
				CheckResult{Fingerprint: fp, Drifts: drifts})
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "manifest drift (%d field(s)):\n", len(drifts))
			for _, d := range drifts {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", d)
			}
		}
		return NewExitError(ExitFailure, "manifest drift")
	}

	formatter.VerboseLog("manifest matches catalog %s", fp)
	if opts.Format == "json" {
		return formatter.Success(CheckResult{Fingerprint: fp})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "manifest matches catalog (fingerprint %s)\n", fp)
	return nil
}
