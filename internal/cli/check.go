package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/molkit/internal/mol"
	"github.com/roach88/molkit/internal/xyz"
)

// CheckResult holds the outcome of checking a document.
type CheckResult struct {
	Valid    bool     `json:"valid"`
	Atoms    int      `json:"atoms"`
	Warnings []string `json:"warnings,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <file.xyz>",
		Short: "Validate an XYZ document against the element table",
		Long: `Parse an XYZ file and report element labels that are not in the valence
table (they fall back to the default capacity of 4). Exits 1 when the file
does not parse.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runCheck(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	molecule, err := xyz.ParseFile(path)
	if err != nil {
		if outErr := formatter.Error(parseErrorCode(err), err.Error(), nil); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitFailure, "parse failed", err)
	}

	result := CheckResult{
		Valid:    true,
		Atoms:    molecule.AtomCount(),
		Warnings: unknownElements(molecule),
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d atoms, ok\n", path, result.Atoms)
	for _, warning := range result.Warnings {
		fmt.Fprintf(&b, "  warning: %s\n", warning)
	}
	return formatter.Success(strings.TrimRight(b.String(), "\n"))
}

// unknownElements lists element labels that are not in the valence table,
// one warning per distinct label.
func unknownElements(molecule *mol.Molecule) []string {
	seen := make(map[string]bool)
	var warnings []string
	for _, atom := range molecule.AtomsInOrder() {
		key := strings.ToUpper(strings.TrimSpace(atom.Element))
		if seen[key] {
			continue
		}
		seen[key] = true
		if !knownElement(key) {
			warnings = append(warnings,
				fmt.Sprintf("element %q not in valence table, assuming capacity %d", atom.Element, mol.DefaultValence))
		}
	}
	sort.Strings(warnings)
	return warnings
}

// knownElement reports whether the (already upper-cased) element label has
// an entry in the valence table.
func knownElement(key string) bool {
	switch key {
	case "H", "C", "N", "O", "F", "CL", "BR", "I", "P", "S":
		return true
	}
	return false
}
