// Package commands implements the clickzetta CLI subcommands.
package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/leapstack-labs/clickzetta/internal/cli/output"
	"github.com/leapstack-labs/clickzetta/internal/config"
	"github.com/leapstack-labs/clickzetta/pkg/adapter"
)

// configKey and registryKey store command dependencies in a context.
type (
	configKey   struct{}
	registryKey struct{}
)

// WithConfig returns a copy of ctx carrying cfg.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// WithRegistry returns a copy of ctx carrying reg.
func WithRegistry(ctx context.Context, reg *adapter.Registry) context.Context {
	return context.WithValue(ctx, registryKey{}, reg)
}

// pinger is implemented by adapters that support a liveness check.
type pinger interface {
	Ping(ctx context.Context) error
}

// schemaLister is implemented by adapters that can list schemas.
type schemaLister interface {
	ListSchemas(ctx context.Context, workspace string) ([]string, error)
}

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Registry *adapter.Registry
	Renderer *output.Renderer
}

// NewCommandContext collects the dependencies stored on cmd's context.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, ok := ctx.Value(configKey{}).(*config.Config)
	if !ok || cfg == nil {
		cfg = &config.Config{Type: config.DefaultType, OutputFormat: config.DefaultOutput}
	}
	reg, _ := ctx.Value(registryKey{}).(*adapter.Registry)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(ctx),
		Registry: reg,
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat)),
	}
}

// Connect builds and connects the configured adapter.
// The returned cleanup function closes it.
func (c *CommandContext) Connect(ctx context.Context) (adapter.Adapter, func(), error) {
	if c.Registry == nil {
		return nil, nil, errors.New("no adapter registry configured")
	}
	if err := c.promptPassword(); err != nil {
		return nil, nil, err
	}

	adp, err := c.Registry.New(ctx, c.Cfg.AdapterConfig(), c.Logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := adp.Close(); err != nil {
			c.Logger.Warn("failed to close adapter", slog.String("error", err.Error()))
		}
	}
	return adp, cleanup, nil
}

// promptPassword asks for the password on a terminal when none is configured.
func (c *CommandContext) promptPassword() error {
	if c.Cfg.Connection == nil {
		c.Cfg.Connection = make(map[string]any)
	}
	if s, _ := c.Cfg.Connection["password"].(string); s != "" {
		return nil
	}
	if s, _ := c.Cfg.Connection["dsn"].(string); s != "" {
		return nil
	}
	fd := int(os.Stdin.Fd()) //nolint:gosec // fd fits in int
	if !term.IsTerminal(fd) {
		return nil
	}

	user, _ := c.Cfg.Connection["username"].(string)
	_, _ = fmt.Fprintf(os.Stderr, "Password for %s: ", user)
	pw, err := term.ReadPassword(fd)
	_, _ = fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	c.Cfg.Connection["password"] = string(pw)
	return nil
}

// connectionString returns a string connection param, or def.
func (c *CommandContext) connectionString(key, def string) string {
	if s, ok := c.Cfg.Connection[key].(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return def
}
