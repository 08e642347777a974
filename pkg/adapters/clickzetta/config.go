package clickzetta

import (
	"fmt"
	"maps"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/leapstack-labs/clickzetta/pkg/adapter"
	"github.com/leapstack-labs/clickzetta/pkg/session"
)

// Defaults applied to optional settings.
const (
	DefaultSchema   = "PUBLIC"
	DefaultVCluster = "DEFAULT_AP"
)

// Config holds ClickZetta connection settings.
// Parsed from core.AdapterConfig.Params; unknown keys are rejected.
type Config struct {
	Service   string `koanf:"service"`
	Username  string `koanf:"username"`
	Password  string `koanf:"password"`
	Instance  string `koanf:"instance"`
	Workspace string `koanf:"workspace"`

	// Schema defaults to PUBLIC.
	Schema string `koanf:"schema"`

	// VCluster is the compute cluster. Defaults to DEFAULT_AP.
	VCluster string `koanf:"vcluster"`

	// Secure selects TLS. Nil leaves the choice to the driver.
	Secure *bool `koanf:"secure"`

	// Hints are per-session job settings, e.g. sdk.job.timeout or query_tag.
	Hints map[string]any `koanf:"hints"`

	// Extra holds additional driver parameters.
	Extra map[string]any `koanf:"extra"`

	// Driver is the database/sql driver name. Defaults to "clickzetta".
	Driver string `koanf:"driver"`

	// DSN overrides the synthesized connection string.
	DSN string `koanf:"dsn"`
}

// ParseConfig decodes raw adapter params into a Config.
// Keys are matched by their koanf tag; unknown keys are an error.
func ParseConfig(params map[string]any) (Config, error) {
	var cfg Config
	if len(params) == 0 {
		return cfg, nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "koanf",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &cfg,
	})
	if err != nil {
		return cfg, adapter.WrapError(adapter.CodeConfig, err, "failed to create config decoder")
	}
	if err := dec.Decode(params); err != nil {
		return cfg, adapter.WrapError(adapter.CodeConfig, err, "invalid clickzetta config")
	}
	return cfg, nil
}

// ApplyDefaults fills optional settings that are empty.
func (c *Config) ApplyDefaults() {
	if strings.TrimSpace(c.Schema) == "" {
		c.Schema = DefaultSchema
	}
	if strings.TrimSpace(c.VCluster) == "" {
		c.VCluster = DefaultVCluster
	}
	if c.Driver == "" {
		c.Driver = session.DefaultDriver
	}
}

// Validate checks that every required setting is present.
// All missing fields are reported together.
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"service", c.Service},
		{"username", c.Username},
		{"password", c.Password},
		{"instance", c.Instance},
		{"workspace", c.Workspace},
	}

	var missing []string
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return adapter.NewError(adapter.CodeConfig,
			"missing required clickzetta config: %s", strings.Join(missing, ", "))
	}
	return nil
}

// clone returns a copy that shares no maps with c.
func (c Config) clone() Config {
	c.Hints = maps.Clone(c.Hints)
	c.Extra = maps.Clone(c.Extra)
	if c.Secure != nil {
		secure := *c.Secure
		c.Secure = &secure
	}
	return c
}

// sessionOptions builds session options for schema.
func (c Config) sessionOptions(schema string) session.Options {
	return session.Options{
		Service:   c.Service,
		Username:  c.Username,
		Password:  c.Password,
		Instance:  c.Instance,
		Workspace: c.Workspace,
		Schema:    schema,
		VCluster:  c.VCluster,
		Secure:    c.Secure,
		Hints:     maps.Clone(c.Hints),
		Extra:     maps.Clone(c.Extra),
		DSN:       c.DSN,
	}
}

// String describes the endpoint without credentials.
func (c Config) String() string {
	return fmt.Sprintf("clickzetta(service=%s instance=%s workspace=%s schema=%s vcluster=%s)",
		c.Service, c.Instance, c.Workspace, c.Schema, c.VCluster)
}
