package clickzetta

import (
	"context"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/clickzetta/pkg/adapter"
)

// SwitchContext changes the active schema.
//
// Changing workspace is not supported: a workspace other than the
// configured one is rejected before any statement is sent. Naming the
// current workspace, in any letter case, is allowed and changes nothing. An empty schema leaves
// the session untouched; otherwise exactly one USE SCHEMA statement runs.
func (c *Connector) SwitchContext(ctx context.Context, schema, workspace string) error {
	if workspace != "" && !strings.EqualFold(workspace, c.cfg.Workspace) {
		return adapter.NewError(adapter.CodeValidation,
			"switching workspace is not supported (connected to %q, requested %q); create a new connector instead",
			c.cfg.Workspace, workspace)
	}
	if schema == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.runLocked(ctx, "USE SCHEMA "+quoteIdent(schema)); err != nil {
		return err
	}
	c.logger.Debug("switched schema",
		slog.String("session_id", c.sessionID),
		slog.String("from", c.schema),
		slog.String("to", schema))
	c.schema = schema
	return nil
}
