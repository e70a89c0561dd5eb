package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/molkit/internal/mol"
	"github.com/roach88/molkit/internal/view"
	"github.com/roach88/molkit/internal/xyz"
)

// ElementInfo summarizes one element's presence in a document.
type ElementInfo struct {
	Element string     `json:"element"`
	Count   int        `json:"count"`
	Color   [3]float32 `json:"color"`
}

// InfoResult holds the document summary for the info command.
type InfoResult struct {
	Name     string        `json:"name"`
	Atoms    int           `json:"atoms"`
	Bonds    int           `json:"bonds"`
	Elements []ElementInfo `json:"elements"`
}

// NewInfoCommand creates the info command.
func NewInfoCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <file.xyz>",
		Short: "Summarize an XYZ molecular document",
		Long: `Parse an XYZ file and print its name, atom and bond counts, and a
per-element histogram with display colors.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runInfo(opts *RootOptions, path string, cmd *cobra.Command) error {
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

	result := InfoResult{
		Name:     molecule.Name,
		Atoms:    molecule.AtomCount(),
		Bonds:    molecule.BondCount(),
		Elements: elementHistogram(molecule),
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Name:  %s\n", result.Name)
	fmt.Fprintf(&b, "Atoms: %d\n", result.Atoms)
	fmt.Fprintf(&b, "Bonds: %d\n", result.Bonds)
	for _, info := range result.Elements {
		fmt.Fprintf(&b, "  %-3s x%-4d color(%.1f, %.1f, %.1f)\n",
			info.Element, info.Count, info.Color[0], info.Color[1], info.Color[2])
	}
	return formatter.Success(strings.TrimRight(b.String(), "\n"))
}

// elementHistogram counts atoms per element label, sorted alphabetically.
func elementHistogram(molecule *mol.Molecule) []ElementInfo {
	counts := make(map[string]int)
	for _, atom := range molecule.AtomsInOrder() {
		counts[atom.Element]++
	}
	elements := make([]ElementInfo, 0, len(counts))
	for element, count := range counts {
		elements = append(elements, ElementInfo{
			Element: element,
			Count:   count,
			Color:   view.ElementColor(element),
		})
	}
	sort.Slice(elements, func(i, j int) bool { return elements[i].Element < elements[j].Element })
	return elements
}
