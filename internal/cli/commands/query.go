package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// QueryOptions holds options for the query command.
type QueryOptions struct {
	Input string
}

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query [SQL]",
		Short: "Execute SQL against the warehouse",
		Long: `Execute a SQL statement and print its result.

SQL is taken from the arguments, from --input, or from piped stdin. When
invoked without SQL on a terminal, starts the interactive shell.`,
		Example: `  # Execute SQL directly
  clickzetta query "SELECT * FROM orders LIMIT 10"

  # Read SQL from a file
  clickzetta query -i report.sql

  # Pipe SQL and emit JSON
  echo "SELECT 1" | clickzetta query -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read SQL from file")

	return cmd
}

func runQuery(cmd *cobra.Command, args []string, opts *QueryOptions) error {
	var sqlText string

	switch {
	case len(args) > 0:
		sqlText = strings.Join(args, " ")
	case opts.Input != "":
		content, err := os.ReadFile(opts.Input)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		sqlText = string(content)
	case !isTerminal(cmd.InOrStdin()):
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		sqlText = string(content)
	default:
		// No input, TTY detected - enter the shell
		return runShell(cmd)
	}

	sqlText = strings.TrimSpace(sqlText)
	if sqlText == "" {
		return fmt.Errorf("no SQL to execute")
	}

	cmdCtx := NewCommandContext(cmd)
	adp, cleanup, err := cmdCtx.Connect(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	return cmdCtx.Renderer.Result(adp.ExecuteQuery(cmd.Context(), sqlText))
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
