// Package sync provides the sync command implementation.
package sync

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/depsync"
	"github.com/agentstation/depsync/internal/appcontext"
	"github.com/agentstation/depsync/internal/cmd/output"
)

// NewCommand creates the sync command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:     "sync",
		GroupID: "core",
		Short:   "Synchronize the build file and the version catalog",
		Args:    cobra.NoArgs,
		Long: `Sync makes the managed dependency declarations in the build file and the
entries of the version catalog agree with each other:

• Coordinates only in the catalog are inserted into the build file
• Coordinates only in the build file are added to the catalog
• Shared coordinates are raised to the highest version on both sides
• The [libraries] table is rewritten in canonical order

Files whose content does not change are not written.`,
		Example: `  depsync sync                                  # Sync build.gradle.kts with gradle/libs.versions.toml
  depsync sync --dir ./app                      # Sync another project
  depsync sync --build-file app/build.gradle    # Use a Groovy build file
  depsync sync --dry-run -o markdown            # Preview as a markdown report`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			syncer, err := app.Syncer(depsync.WithDryRun(dryRun))
			if err != nil {
				return err
			}

			result, err := syncer.Sync(cmd.Context())
			if err != nil {
				return err
			}

			format := output.DetectFormat(app.OutputFormat())
			return output.WriteResult(cmd.OutOrStdout(), format, "Dependency sync", result)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would change without writing any file")

	return cmd
}
