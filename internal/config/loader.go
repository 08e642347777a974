package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// loggerKey is used to store the logger in a context.
type loggerKey struct{}

// envVarPattern matches ${VAR} references.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// ignoredFlags are persistent flags that are not config values.
var ignoredFlags = map[string]bool{
	"config": true,
	"help":   true,
}

// findConfigFile finds the config file to use.
// Priority: explicit path > clickzetta.yaml > clickzetta.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > profile > config file > defaults
//
// It returns the config and the path of the config file used, if any.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, string, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]any{
		"type":    DefaultType,
		"output":  DefaultOutput,
		"verbose": false,
	}, "."), nil); err != nil {
		return nil, "", fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, "", fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// 3. Profile overrides from the file
	profile := selectProfile(k, flags)
	if profile != "" {
		sub := k.Cut("profiles." + profile)
		if len(sub.Keys()) == 0 {
			return nil, "", fmt.Errorf("profile %q not found in %s", profile, describeFile(used))
		}
		if err := k.Merge(sub); err != nil {
			return nil, "", fmt.Errorf("failed to apply profile %q: %w", profile, err)
		}
	}

	// 4. Environment variables (CLICKZETTA_ prefix)
	// Transform: CLICKZETTA_SERVICE -> service
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, "", fmt.Errorf("failed to load env vars: %w", err)
	}

	// 5. Flags (highest priority)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			// Only load flags that were explicitly set
			if !f.Changed || ignoredFlags[f.Name] {
				return "", nil
			}
			// Transform kebab-case to snake_case for config keys
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, "", fmt.Errorf("failed to load flags: %w", err)
		}
	}

	cfg := &Config{
		Type:         k.String("type"),
		Profile:      profile,
		OutputFormat: k.String("output"),
		Verbose:      k.Bool("verbose"),
		Connection:   connectionParams(k),
	}
	return cfg, used, nil
}

// selectProfile returns the profile named by flag, env var or file, in
// that order of precedence.
func selectProfile(k *koanf.Koanf, flags *pflag.FlagSet) string {
	if flags != nil {
		if f := flags.Lookup("profile"); f != nil && f.Changed {
			return f.Value.String()
		}
	}
	if v := os.Getenv(EnvPrefix + "PROFILE"); v != "" {
		return v
	}
	return k.String("profile")
}

// connectionParams collects adapter params from the merged config.
// Map-valued params keep their dotted keys, so hints such as
// sdk.job.timeout survive the "." key delimiter.
func connectionParams(k *koanf.Koanf) map[string]any {
	params := make(map[string]any)
	for _, key := range connectionKeys {
		if k.Exists(key) {
			params[key] = k.Get(key)
		}
	}
	for _, key := range mapKeys {
		if sub := k.Cut(key).All(); len(sub) > 0 {
			params[key] = sub
		}
	}
	for _, key := range expandKeys {
		if s, ok := params[key].(string); ok {
			params[key] = expandEnvVars(s)
		}
	}
	return params
}

func describeFile(path string) string {
	if path == "" {
		return "config (no config file found)"
	}
	return path
}

// expandEnvVars expands ${VAR} patterns in a string with environment variable values.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match // Return original if not found
	})
}

// LoggerKey returns the context key used for storing the logger.
func LoggerKey() any {
	return loggerKey{}
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}
