package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/argand-io/argand/internal/catalog"
)

// CatalogResult is the catalog command's JSON payload: the registry
// snapshot plus its fingerprint.
type CatalogResult struct {
	Fingerprint string         `json:"fingerprint"`
	Catalog     map[string]any `json:"catalog"`
}

// NewCatalogCommand creates the catalog command.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Dump the built-in registration catalog",
		Long: `Dump the complex type's registration catalog: the type record, every
function with its strictness and purity flags, operator metadata with
commutator/negator links, the sum aggregate, and the btree operator
class with its strategy table. The fingerprint is the sha256 of the
catalog's canonical JSON; two builds with the same fingerprint register
identical catalogs.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalog(rootOpts, cmd)
		},
	}
	return cmd
}

func runCatalog(opts *RootOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	reg := catalog.Default()
	fp, err := reg.Fingerprint()
	if err != nil {
		formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitFailure, "fingerprint", err)
	}

	if opts.Format == "json" {
		return formatter.Success(CatalogResult{
			Fingerprint: fp,
			Catalog:     reg.Snapshot(),
		})
	}

	fmt.Fprint(cmd.OutOrStdout(), renderCatalogText(reg, fp))
	return nil
}

// renderCatalogText builds the human-readable catalog listing.
func renderCatalogText(reg *catalog.Registry, fingerprint string) string {
	var b strings.Builder

	for _, t := range reg.Types() {
		fmt.Fprintf(&b, "type %s: %d bytes, align %d\n", t.Name, t.Size, t.Align)
		fmt.Fprintf(&b, "  input=%s output=%s receive=%s send=%s\n", t.Input, t.Output, t.Receive, t.Send)
	}

	b.WriteString("functions:\n")
	for _, f := range reg.Functions() {
		flags := make([]string, 0, 2)
		if f.Strict {
			flags = append(flags, "strict")
		}
		if f.Immutable {
			flags = append(flags, "immutable")
		}
		fmt.Fprintf(&b, "  %s(%s) -> %s [%s]\n",
			f.Name, strings.Join(f.Args, ", "), f.Result, strings.Join(flags, ", "))
	}

	b.WriteString("operators:\n")
	for _, op := range reg.Operators() {
		fmt.Fprintf(&b, "  %s %s %s via %s", op.Left, op.Symbol, op.Right, op.Function)
		if op.Commutator != "" {
			fmt.Fprintf(&b, " commutator=%s", op.Commutator)
		}
		if op.Negator != "" {
			fmt.Fprintf(&b, " negator=%s", op.Negator)
		}
		if op.Restrict != "" {
			fmt.Fprintf(&b, " restrict=%s join=%s", op.Restrict, op.Join)
		}
		b.WriteByte('\n')
	}

	b.WriteString("aggregates:\n")
	for _, a := range reg.Aggregates() {
		fmt.Fprintf(&b, "  %s: transition=%s state=%s initial=%s\n",
			a.Name, a.Transition, a.StateType, a.Initial)
	}

	b.WriteString("operator classes:\n")
	for _, oc := range reg.OperatorClasses() {
		fmt.Fprintf(&b, "  %s on %s using %s, support=%s\n",
			oc.Name, oc.Type, oc.AccessMethod, oc.Support)
		nums := make([]int, 0, len(oc.Strategies))
		for n := range oc.Strategies {
			nums = append(nums, n)
		}
		sort.Ints(nums)
		for _, n := range nums {
			fmt.Fprintf(&b, "    strategy %d: %s\n", n, oc.Strategies[n])
		}
	}

	fmt.Fprintf(&b, "fingerprint: %s\n", fingerprint)
	return b.String()
}
