package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/depsync/cmd/depsync/cmd/check"
	synccmd "github.com/agentstation/depsync/cmd/depsync/cmd/sync"
	"github.com/agentstation/depsync/cmd/depsync/cmd/version"
	"github.com/agentstation/depsync/internal/appcontext"
)

// Ensure App implements appcontext.Interface at compile time.
var _ appcontext.Interface = (*App)(nil)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(synccmd.NewCommand(a))
	rootCmd.AddCommand(check.NewCommand(a))
	rootCmd.AddCommand(version.NewCommand(a))
}
