package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agentstation/depsync/internal/cmd/output"
	"github.com/agentstation/depsync/pkg/errors"
)

// globalFlags are the persistent flags shared by every command. They are
// applied over the loaded configuration once cobra has parsed them.
type globalFlags struct {
	configFile  string
	verbose     bool
	quiet       bool
	noColor     bool
	format      string
	logLevel    string
	dir         string
	buildFile   string
	catalogFile string
	marker      string
	noValidate  bool
}

// Execute runs the depsync CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "depsync",
		Short:   "Keep build file dependencies and a version catalog in sync",
		Version: a.version,
		Long: `depsync keeps the managed dependency declarations of a build script and the
[libraries] table of a TOML version catalog consistent with each other.

Every coordinate present on one side is added to the other, shared
coordinates are raised to the highest version found on either side, and the
catalog's libraries are kept in a canonical sorted layout.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setupCommand(cmd, flags)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configFile, "config", "", "config file (default is $HOME/.depsync.yaml or ./.depsync.yaml)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	pf.BoolVarP(&flags.quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	pf.BoolVar(&flags.noColor, "no-color", false, "disable colored output")
	pf.StringVarP(&flags.format, "format", "o", "", "output format: table, json, yaml, markdown")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	pf.StringVarP(&flags.dir, "dir", "C", "", "project root the file paths are relative to")
	pf.StringVar(&flags.buildFile, "build-file", "", "build script path (default \"build.gradle.kts\")")
	pf.StringVar(&flags.catalogFile, "catalog-file", "", "version catalog path (default \"gradle/libs.versions.toml\")")
	pf.StringVar(&flags.marker, "marker", "", "configuration name of managed declarations (default \"dependencySync\")")
	pf.BoolVar(&flags.noValidate, "no-validate", false, "skip TOML validation of the catalog")

	rootCmd.SetVersionTemplate("depsync {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, flags *globalFlags) error {
	if flags.configFile != "" {
		v := viper.New()
		v.Set("config", flags.configFile)
		config, err := loadConfig(v)
		if err != nil {
			return err
		}
		a.config = config
	}

	if flags.format != "" {
		if _, err := output.ParseFormat(flags.format); err != nil {
			return err
		}
	}

	a.config.UpdateFromFlags(flags.verbose, flags.quiet, flags.noColor, flags.format, flags.logLevel)

	if flags.dir != "" {
		a.config.Dir = flags.dir
	}
	if flags.buildFile != "" {
		a.config.BuildFile = flags.buildFile
	}
	if flags.catalogFile != "" {
		a.config.CatalogFile = flags.catalogFile
	}
	if flags.marker != "" {
		a.config.Marker = flags.marker
	}
	if cmd.Flags().Changed("no-validate") {
		a.config.ValidateTOML = !flags.noValidate
	}

	// Reinitialize logger with updated config
	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

// ExitOnError prints an error and exits. Errors carrying an exit code
// (such as drift reported by check) exit with that code, others with 1.
func ExitOnError(err error) {
	if err == nil {
		return
	}

	//nolint:errcheck // Ignoring write error since we're exiting anyway
	_, _ = os.Stderr.WriteString(err.Error() + "\n")
	os.Exit(ExitCode(err))
}

// ExitCode returns the process exit status for err.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var coded interface{ ExitCode() int }
	if errors.As(err, &coded) {
		return coded.ExitCode()
	}
	return 1
}
