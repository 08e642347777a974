// Package cli provides the command-line interface for the ClickZetta connector.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/clickzetta/internal/cli/commands"
	"github.com/leapstack-labs/clickzetta/internal/cli/output"
	"github.com/leapstack-labs/clickzetta/internal/config"
	"github.com/leapstack-labs/clickzetta/pkg/adapter"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates the root command. Adapters are resolved from reg.
func NewRootCmd(reg *adapter.Registry) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "clickzetta",
		Short: "ClickZetta Lakehouse connector CLI",
		Long: `clickzetta runs SQL, inspects the catalog and lists volume files in a
ClickZetta Lakehouse workspace.

Connection settings come from clickzetta.yaml, CLICKZETTA_* environment
variables and flags, in increasing order of precedence.

This build links the pgx and sqlite database/sql drivers only. The default
clickzetta driver must be compiled in separately; until then select a
linked driver with --driver and give its connection string with --dsn.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, used, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			logger := newLogger(cmd, cfg.Verbose)
			if used != "" {
				logger.Debug("using config file", slog.String("path", used))
			}
			if cfg.Profile != "" {
				logger.Debug("using profile", slog.String("profile", cfg.Profile))
			}

			ctx := config.WithLogger(cmd.Context(), logger)
			ctx = commands.WithConfig(ctx, cfg)
			ctx = commands.WithRegistry(ctx, reg)
			cmd.SetContext(ctx)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./clickzetta.yaml)")
	pf.StringP("profile", "p", "", "Profile from the config file's profiles section")
	pf.String("type", "", "Adapter type (default: clickzetta)")
	pf.String("service", "", "Service endpoint")
	pf.StringP("username", "u", "", "Username")
	pf.String("password", "", "Password (prompted on a terminal when empty)")
	pf.String("instance", "", "Instance name")
	pf.StringP("workspace", "w", "", "Workspace")
	pf.StringP("schema", "s", "", "Schema (default: PUBLIC)")
	pf.String("vcluster", "", "Virtual cluster (default: DEFAULT_AP)")
	pf.String("driver", "", "database/sql driver name: pgx, sqlite, or a compiled-in clickzetta driver (default: clickzetta)")
	pf.String("dsn", "", "Connection string, used verbatim")
	pf.BoolP("verbose", "v", false, "Verbose output")
	pf.StringP("output", "o", "", "Output format (auto|text|json|csv|markdown)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return output.Modes, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewPingCommand())
	rootCmd.AddCommand(commands.NewQueryCommand())
	rootCmd.AddCommand(commands.NewTablesCommand())
	rootCmd.AddCommand(commands.NewViewsCommand())
	rootCmd.AddCommand(commands.NewSchemasCommand())
	rootCmd.AddCommand(commands.NewVolumeCommand())
	rootCmd.AddCommand(commands.NewDDLCommand())
	rootCmd.AddCommand(commands.NewShellCommand())

	return rootCmd
}

// newLogger builds the stderr logger. Verbose lowers the level to debug.
func newLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// Execute runs the root command.
func Execute(reg *adapter.Registry) error {
	rootCmd := NewRootCmd(reg)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
