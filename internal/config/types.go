// Package config loads CLI configuration for the clickzetta tool.
//
// Settings are layered from built-in defaults, a clickzetta.yaml file,
// CLICKZETTA_* environment variables and command-line flags, in increasing
// order of precedence. A named profile from the file's profiles section is
// applied on top of the file's top-level settings.
package config

import (
	"maps"

	"github.com/leapstack-labs/clickzetta/pkg/core"
)

// Config holds all CLI configuration options.
type Config struct {
	// Type is the adapter type key. Defaults to "clickzetta".
	Type string

	// Connection holds the adapter params: service, username, password,
	// instance, workspace, schema, vcluster, secure, driver, dsn, hints
	// and extra.
	Connection map[string]any

	Profile      string
	OutputFormat string
	Verbose      bool
}

// AdapterConfig returns the generic adapter record for the registry.
func (c *Config) AdapterConfig() core.AdapterConfig {
	return core.AdapterConfig{
		Type:   c.Type,
		Params: maps.Clone(c.Connection),
	}
}

// Default configuration values.
const (
	ConfigFileName    = "clickzetta.yaml"
	ConfigFileNameAlt = "clickzetta.yml"
	EnvPrefix         = "CLICKZETTA_"
	DefaultType       = "clickzetta"
	DefaultOutput     = "auto" // Auto-detect: TTY=table, non-TTY=csv
)

// connectionKeys are the scalar adapter params read from the merged config.
var connectionKeys = []string{
	"service",
	"username",
	"password",
	"instance",
	"workspace",
	"schema",
	"vcluster",
	"secure",
	"driver",
	"dsn",
}

// mapKeys are adapter params whose values are maps with dotted keys.
var mapKeys = []string{"hints", "extra"}

// expandKeys are connection params that may reference ${VAR}.
var expandKeys = []string{"service", "username", "password", "instance", "workspace", "dsn"}
