package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewPingCommand creates the ping command.
func NewPingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the warehouse is reachable",
		Long: `Connect with the current configuration and run a trivial query.

Exits non-zero when the connection or the query fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd)
			ctx := cmd.Context()

			adp, cleanup, err := cmdCtx.Connect(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if p, ok := adp.(pinger); ok {
				if err := p.Ping(ctx); err != nil {
					return err
				}
			} else if res := adp.ExecuteQuery(ctx, "SELECT 1"); !res.Success {
				return fmt.Errorf("ping failed: %s", res.Error)
			}

			workspace := cmdCtx.connectionString("workspace", "")
			cmdCtx.Renderer.Success(fmt.Sprintf("OK: connected to %s (%s dialect)", workspace, adp.Dialect()))
			return nil
		},
	}
}
