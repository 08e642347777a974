// Package adapter provides the connector contract the host SQL-tooling
// framework programs against.
//
// This package contains the public interface every warehouse connector must
// implement, the typed error taxonomy connectors report failures with, and
// the Registry a host composition root uses to make connectors available by
// name. Concrete connectors live in pkg/adapters/ subdirectories.
package adapter

import (
	"context"

	"github.com/leapstack-labs/clickzetta/pkg/core"
)

// Adapter defines the interface that all warehouse connectors must implement.
// Implementations hold at most one session at a time.
type Adapter interface {
	// Connect establishes the session if none is live. It is a no-op when connected.
	Connect(ctx context.Context) error

	// Close releases the session. Calling it more than once is a no-op.
	Close() error

	// ExecuteQuery runs sqlText verbatim. Failures are reported on the result.
	ExecuteQuery(ctx context.Context, sqlText string) core.ExecuteResult

	// ListTables returns the names of tables in workspace.schema.
	ListTables(ctx context.Context, workspace, schema string) ([]string, error)

	// ListViews returns the names of views in workspace.schema.
	ListViews(ctx context.Context, workspace, schema string) ([]string, error)

	// SwitchContext changes the active schema. Changing the workspace is rejected.
	SwitchContext(ctx context.Context, schema, workspace string) error

	// ListVolumeFiles lists files under directory of a volume or stage URI.
	ListVolumeFiles(ctx context.Context, volumeURI, directory string) ([]core.VolumeEntry, error)

	// BuildDefinition renders CREATE TABLE or CREATE VIEW DDL for the given columns.
	BuildDefinition(workspace, schema, name string, columns []core.ColumnSpec, comment, objectType string) (string, error)

	// Dialect returns the SQL dialect name of the connector.
	Dialect() string
}
