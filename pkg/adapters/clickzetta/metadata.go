package clickzetta

import (
	"context"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/clickzetta/pkg/core"
	"github.com/leapstack-labs/clickzetta/pkg/session"
)

// Catalog listing columns.
const (
	colTableName  = "table_name"
	colTableType  = "table_type"
	colSchemaName = "schema_name"
	colName       = "name"
)

// Boolean catalog flags consulted when table_type is absent.
var viewFlagColumns = []string{"is_view", "is_materialized_view", "is_dynamic"}

// ListTables returns the names of tables in workspace.schema.
// Empty arguments fall back to the configured workspace and current schema.
func (c *Connector) ListTables(ctx context.Context, workspace, schema string) ([]string, error) {
	return c.listObjects(ctx, workspace, schema, core.TableKindTable)
}

// ListViews returns the names of views in workspace.schema.
// Dynamic tables and materialized views count as views.
func (c *Connector) ListViews(ctx context.Context, workspace, schema string) ([]string, error) {
	return c.listObjects(ctx, workspace, schema, core.TableKindView)
}

func (c *Connector) listObjects(ctx context.Context, workspace, schema string, want core.TableKind) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if workspace == "" {
		workspace = c.cfg.Workspace
	}
	if schema == "" {
		schema = c.schema
	}

	table, err := c.runLocked(ctx, "SHOW TABLES IN "+qualify(workspace, schema))
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, table.Len())
	nameCol := colTableName
	if !table.HasColumn(nameCol) {
		nameCol = colName
	}
	for i := range table.Len() {
		v, ok := table.Value(i, nameCol)
		if !ok {
			continue
		}
		name := cellString(v)
		if name == "" {
			continue
		}
		if c.classifyRow(table, i) == want {
			names = append(names, name)
		}
	}
	return names, nil
}

// classifyRow decides the kind of catalog row i. Caller must hold c.mu.
func (c *Connector) classifyRow(t *session.Table, i int) core.TableKind {
	if v, ok := t.Value(i, colTableType); ok {
		tag := strings.TrimSpace(cellString(v))
		kind := core.ClassifyTag(tag)
		if kind == core.TableKindUnknown {
			c.warnUnknownTag(tag)
		}
		return kind
	}

	for _, col := range viewFlagColumns {
		if v, ok := t.Value(i, col); ok && toBool(v) {
			return core.TableKindView
		}
	}
	return core.TableKindTable
}

// warnUnknownTag logs each unrecognized table_type once per connector.
func (c *Connector) warnUnknownTag(tag string) {
	key := strings.ToUpper(tag)
	if _, seen := c.warnedTags[key]; seen {
		return
	}
	c.warnedTags[key] = struct{}{}
	c.logger.Warn("ignoring catalog object with unrecognized table_type",
		slog.String("session_id", c.sessionID),
		slog.String("table_type", tag))
}

// ListSchemas returns the schemas of workspace, or of the configured
// workspace when empty.
func (c *Connector) ListSchemas(ctx context.Context, workspace string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if workspace == "" {
		workspace = c.cfg.Workspace
	}
	table, err := c.runLocked(ctx, "SHOW SCHEMAS IN "+quoteIdent(workspace))
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, table.Len())
	for i := range table.Len() {
		var v any
		if table.HasColumn(colSchemaName) {
			v, _ = table.Value(i, colSchemaName)
		} else if len(table.Rows[i]) > 0 {
			v = table.Rows[i][0]
		}
		if name := cellString(v); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}
