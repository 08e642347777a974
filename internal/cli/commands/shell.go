package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/clickzetta/internal/cli/output"
	"github.com/leapstack-labs/clickzetta/pkg/adapter"
)

const (
	shellPrompt     = "clickzetta> "
	shellContPrompt = "       ...> "
	historyFileName = ".clickzetta_history"
)

// NewShellCommand creates the shell command.
func NewShellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive SQL shell",
		Long: `Start an interactive shell against the configured workspace.

Statements end with a semicolon. Dot-commands inspect the catalog and
volumes; type .help for the list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd)
		},
	}
}

func runShell(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)
	ctx := cmd.Context()

	adp, cleanup, err := cmdCtx.Connect(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	sh := newShell(adp, cmdCtx.Renderer, cmd.ErrOrStderr())

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          shellPrompt,
		HistoryFile:     historyPath(),
		AutoComplete:    sh.completer(ctx),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize shell: %w", err)
	}
	defer func() { _ = rl.Close() }()

	workspace := cmdCtx.connectionString("workspace", "")
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "ClickZetta shell (workspace: %s)\n", workspace)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			sh.reset()
			rl.SetPrompt(shellPrompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		if sh.handleLine(ctx, line) {
			break
		}
		if sh.pending() {
			rl.SetPrompt(shellContPrompt)
		} else {
			rl.SetPrompt(shellPrompt)
		}
	}
	return nil
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, historyFileName)
}

// shell holds REPL state independent of the line editor.
type shell struct {
	adp    adapter.Adapter
	r      *output.Renderer
	errOut io.Writer
	buf    strings.Builder
}

func newShell(adp adapter.Adapter, r *output.Renderer, errOut io.Writer) *shell {
	return &shell{adp: adp, r: r, errOut: errOut}
}

func (s *shell) reset() {
	s.buf.Reset()
}

// pending reports whether a statement is being continued.
func (s *shell) pending() bool {
	return s.buf.Len() > 0
}

// handleLine processes one input line. It returns true to exit.
func (s *shell) handleLine(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	if !s.pending() && strings.HasPrefix(line, ".") {
		return s.dotCommand(ctx, line)
	}

	// Accumulate multi-line SQL until semicolon
	s.buf.WriteString(line)
	if !strings.HasSuffix(line, ";") {
		s.buf.WriteString("\n")
		return false
	}

	stmt := strings.TrimSuffix(s.buf.String(), ";")
	s.buf.Reset()

	if err := s.r.Result(s.adp.ExecuteQuery(ctx, stmt)); err != nil {
		s.printErr(err)
	}
	return false
}

func (s *shell) dotCommand(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])
	args := parts[1:]

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printShellHelp(s.r.Out())

	case ".tables", ".views":
		schema := ""
		if len(args) > 0 {
			schema = args[0]
		}
		var names []string
		var err error
		if command == ".views" {
			names, err = s.adp.ListViews(ctx, "", schema)
		} else {
			names, err = s.adp.ListTables(ctx, "", schema)
		}
		if err != nil {
			s.printErr(err)
			return false
		}
		s.printErr(s.r.List("name", names))

	case ".schemas":
		lister, ok := s.adp.(schemaLister)
		if !ok {
			s.printErr(errors.New("adapter does not support listing schemas"))
			return false
		}
		schemas, err := lister.ListSchemas(ctx, "")
		if err != nil {
			s.printErr(err)
			return false
		}
		s.printErr(s.r.List("schema_name", schemas))

	case ".use":
		if len(args) != 1 {
			_, _ = fmt.Fprintln(s.errOut, "Usage: .use <schema>")
			return false
		}
		if err := s.adp.SwitchContext(ctx, args[0], ""); err != nil {
			s.printErr(err)
			return false
		}
		s.r.Success("Using schema " + args[0])

	case ".ls":
		if len(args) < 1 || len(args) > 2 {
			_, _ = fmt.Fprintln(s.errOut, "Usage: .ls <volume-uri> [directory]")
			return false
		}
		dir := ""
		if len(args) == 2 {
			dir = args[1]
		}
		entries, err := s.adp.ListVolumeFiles(ctx, args[0], dir)
		if err != nil {
			s.printErr(err)
			return false
		}
		s.printErr(renderVolumeEntries(&CommandContext{Renderer: s.r}, entries))

	default:
		_, _ = fmt.Fprintf(s.errOut, "Unknown command: %s (type .help for commands)\n", command)
	}
	return false
}

func (s *shell) printErr(err error) {
	if err != nil {
		_, _ = fmt.Fprintf(s.errOut, "Error: %v\n", err)
	}
}

// completer offers dot-commands and the current schema's object names.
func (s *shell) completer(ctx context.Context) *readline.PrefixCompleter {
	var items []readline.PrefixCompleterInterface
	for _, list := range []func(context.Context, string, string) ([]string, error){s.adp.ListTables, s.adp.ListViews} {
		// Completion is best effort
		names, err := list(ctx, "", "")
		if err != nil {
			continue
		}
		for _, name := range names {
			items = append(items, readline.PcItem(name))
		}
	}

	items = append(items,
		readline.PcItem(".help"),
		readline.PcItem(".tables"),
		readline.PcItem(".views"),
		readline.PcItem(".schemas"),
		readline.PcItem(".use"),
		readline.PcItem(".ls"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
	return readline.NewPrefixCompleter(items...)
}

func printShellHelp(w io.Writer) {
	help := `
Commands:
  .help                   Show this help message
  .tables [schema]        List tables
  .views [schema]         List views
  .schemas                List schemas in the workspace
  .use <schema>           Switch the active schema
  .ls <uri> [directory]   List files in a volume or stage
  .quit / .exit           Exit the shell

Tips:
  - SQL statements must end with a semicolon (;)
  - Use arrow keys to navigate history
  - Tab completion works for table names
`
	_, _ = fmt.Fprintln(w, help)
}
