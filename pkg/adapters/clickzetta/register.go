package clickzetta

import (
	"context"
	"log/slog"

	"github.com/leapstack-labs/clickzetta/pkg/adapter"
	"github.com/leapstack-labs/clickzetta/pkg/core"
)

// Name is the adapter type key.
const Name = "clickzetta"

// Register adds the ClickZetta adapter to r under Name.
// opts are applied to every connector the factory builds.
func Register(r *adapter.Registry, opts ...Option) {
	r.Register(Name, func(ctx context.Context, cfg core.AdapterConfig, logger *slog.Logger) (adapter.Adapter, error) {
		parsed, err := ParseConfig(cfg.Params)
		if err != nil {
			return nil, err
		}
		all := append([]Option{WithLogger(logger)}, opts...)
		return New(ctx, parsed, all...)
	})
}

// BuildDefinition renders a CREATE statement; see the package function.
func (c *Connector) BuildDefinition(workspace, schema, name string, columns []core.ColumnSpec, comment, objectType string) (string, error) {
	return BuildDefinition(workspace, schema, name, columns, comment, objectType)
}
