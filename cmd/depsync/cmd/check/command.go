// Package check provides the check command implementation.
package check

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/depsync/internal/appcontext"
	"github.com/agentstation/depsync/internal/cmd/output"
	"github.com/agentstation/depsync/pkg/constants"
)

// DriftError is returned when the files are not in sync.
type DriftError struct {
	Changes int
}

// Error implements the error interface.
func (e *DriftError) Error() string {
	if e.Changes == 0 {
		return "dependencies are out of sync: catalog needs reformatting"
	}
	return fmt.Sprintf("dependencies are out of sync: %d pending changes", e.Changes)
}

// ExitCode returns the process exit status for drift.
func (e *DriftError) ExitCode() int {
	return constants.ExitDrift
}

// NewCommand creates the check command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "check",
		GroupID: "core",
		Short:   "Report drift between the build file and the version catalog",
		Args:    cobra.NoArgs,
		Long: `Check runs a full synchronization pass without writing anything and reports
the changes sync would make. It exits with status 2 when the files are out
of sync, which makes it suitable as a CI gate.`,
		Example: `  depsync check
  depsync check -o json | jq '.events'`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			syncer, err := app.Syncer()
			if err != nil {
				return err
			}

			result, err := syncer.Check(cmd.Context())
			if err != nil {
				return err
			}

			format := output.DetectFormat(app.OutputFormat())
			if err := output.WriteResult(cmd.OutOrStdout(), format, "Dependency check", result); err != nil {
				return err
			}

			if result.HasChanges() {
				return &DriftError{Changes: len(result.Events)}
			}
			return nil
		},
	}
}
