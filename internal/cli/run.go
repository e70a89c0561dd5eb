package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/molkit/internal/script"
)

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Run an edit scenario and print its trace",
		Long: `Load a YAML edit scenario, replay its steps through the command history,
and print the resulting trace and final document snapshot.

Exits 1 when a step expectation or final assertion fails, 2 when the
scenario file cannot be loaded.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runScenario(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	scenario, err := script.Load(path)
	if err != nil {
		if outErr := formatter.Error(ErrCodeScenario, err.Error(), nil); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitCommandError, "load scenario", err)
	}

	formatter.VerboseLog("Running scenario %s (%d steps)", scenario.Name, len(scenario.Steps))

	result, err := script.Run(scenario)
	if err != nil {
		if outErr := formatter.Error(ErrCodeScenario, err.Error(), nil); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitCommandError, "run scenario", err)
	}

	if opts.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		if err := formatter.Success(formatResultText(result)); err != nil {
			return err
		}
	}

	if len(result.Failures) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d failure(s)", len(result.Failures)))
	}
	return nil
}

// formatResultText renders a scenario result for human reading.
func formatResultText(result *script.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Scenario: %s\n", result.Scenario)
	for _, event := range result.Trace {
		fmt.Fprintf(&b, "  %3d %-12s", event.Step, event.Op)
		if event.Undone != "" {
			fmt.Fprintf(&b, " undone=%s", event.Undone)
		}
		if event.Atom != 0 {
			fmt.Fprintf(&b, " atom=%d", event.Atom)
		}
		if event.Bond != 0 {
			fmt.Fprintf(&b, " bond=%d", event.Bond)
		}
		if event.Merged {
			fmt.Fprintf(&b, " merged")
		}
		if event.Noop {
			fmt.Fprintf(&b, " noop")
		}
		if event.Error != "" {
			fmt.Fprintf(&b, " error=%q", event.Error)
		}
		fmt.Fprintln(&b)
	}
	fmt.Fprintf(&b, "Final: %d atoms, %d bonds", len(result.Final.Atoms), len(result.Final.Bonds))
	for _, failure := range result.Failures {
		fmt.Fprintf(&b, "\nFAIL: %s", failure)
	}
	return b.String()
}
