package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `service: api.clickzetta.com
username: test_user
password: ${CZ_TEST_PASSWORD}
instance: test_instance
workspace: test_workspace
schema: from_file
hints:
  sdk.job.timeout: 600
  query_tag: Custom Query
extra:
  custom_param: custom_value
profiles:
  prod:
    workspace: prod_workspace
    vcluster: PROD_AP
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func newFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("config", "", "config file")
	flags.String("schema", "", "schema")
	flags.String("workspace", "", "workspace")
	flags.String("profile", "", "profile")
	flags.StringP("output", "o", "", "output format")
	flags.BoolP("verbose", "v", false, "verbose")
	return flags
}

func TestLoad_File(t *testing.T) {
	t.Setenv("CZ_TEST_PASSWORD", "s3cret")
	path := writeConfig(t, sampleConfig)

	cfg, used, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, path, used)
	assert.Equal(t, DefaultType, cfg.Type)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.False(t, cfg.Verbose)

	conn := cfg.Connection
	assert.Equal(t, "api.clickzetta.com", conn["service"])
	assert.Equal(t, "test_user", conn["username"])
	assert.Equal(t, "s3cret", conn["password"])
	assert.Equal(t, "test_workspace", conn["workspace"])
	assert.Equal(t, "from_file", conn["schema"])
	assert.NotContains(t, conn, "vcluster")

	hints, ok := conn["hints"].(map[string]any)
	require.True(t, ok, "hints should be a map")
	assert.EqualValues(t, 600, hints["sdk.job.timeout"])
	assert.Equal(t, "Custom Query", hints["query_tag"])

	extra, ok := conn["extra"].(map[string]any)
	require.True(t, ok, "extra should be a map")
	assert.Equal(t, "custom_value", extra["custom_param"])
}

func TestLoad_NoFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, used, err := Load("", nil)
	require.NoError(t, err)
	assert.Empty(t, used)
	assert.Equal(t, DefaultType, cfg.Type)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_Profile(t *testing.T) {
	path := writeConfig(t, sampleConfig)

	t.Run("from flag", func(t *testing.T) {
		flags := newFlagSet()
		require.NoError(t, flags.Set("profile", "prod"))

		cfg, _, err := Load(path, flags)
		require.NoError(t, err)
		assert.Equal(t, "prod", cfg.Profile)
		assert.Equal(t, "prod_workspace", cfg.Connection["workspace"])
		assert.Equal(t, "PROD_AP", cfg.Connection["vcluster"])
		assert.Equal(t, "from_file", cfg.Connection["schema"], "unset profile keys inherit the file")
	})

	t.Run("from env", func(t *testing.T) {
		t.Setenv("CLICKZETTA_PROFILE", "prod")

		cfg, _, err := Load(path, nil)
		require.NoError(t, err)
		assert.Equal(t, "prod_workspace", cfg.Connection["workspace"])
	})

	t.Run("unknown profile", func(t *testing.T) {
		flags := newFlagSet()
		require.NoError(t, flags.Set("profile", "staging"))

		_, _, err := Load(path, flags)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `profile "staging" not found`)
	})
}

func TestLoad_EnvPrecedenceOverFile(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	t.Setenv("CLICKZETTA_SCHEMA", "from_env")
	t.Setenv("CLICKZETTA_VCLUSTER", "ENV_AP")

	cfg, _, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "from_env", cfg.Connection["schema"], "env var should override config file")
	assert.Equal(t, "ENV_AP", cfg.Connection["vcluster"])
}

func TestLoad_FlagPrecedence(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	t.Setenv("CLICKZETTA_SCHEMA", "from_env")

	flags := newFlagSet()
	require.NoError(t, flags.Set("schema", "from_flag"))
	require.NoError(t, flags.Set("output", "json"))
	require.NoError(t, flags.Set("verbose", "true"))

	cfg, _, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "from_flag", cfg.Connection["schema"], "flag value should override config file and env var")
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.True(t, cfg.Verbose)
}

func TestLoad_FlagNotSetUsesEnv(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	t.Setenv("CLICKZETTA_SCHEMA", "from_env")

	// Changed is false for every flag.
	cfg, _, err := Load(path, newFlagSet())
	require.NoError(t, err)

	assert.Equal(t, "from_env", cfg.Connection["schema"], "env var should be used when flag is not set")
	assert.NotContains(t, cfg.Connection, "config")
}

func TestConfig_AdapterConfig(t *testing.T) {
	cfg := &Config{
		Type:       "clickzetta",
		Connection: map[string]any{"service": "svc"},
	}

	ac := cfg.AdapterConfig()
	assert.Equal(t, "clickzetta", ac.Type)
	assert.Equal(t, "svc", ac.Params["service"])

	ac.Params["service"] = "changed"
	assert.Equal(t, "svc", cfg.Connection["service"])
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_VAR_ONE", "value_one")
	t.Setenv("TEST_VAR_TWO", "value_two")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "single variable", input: "${TEST_VAR_ONE}", expected: "value_one"},
		{name: "multiple variables", input: "${TEST_VAR_ONE}/${TEST_VAR_TWO}", expected: "value_one/value_two"},
		{name: "unset variable stays as-is", input: "${UNSET_VARIABLE}", expected: "${UNSET_VARIABLE}"},
		{name: "no variables", input: "plain string", expected: "plain string"},
		{name: "empty string", input: "", expected: ""},
		{name: "mixed set and unset", input: "${TEST_VAR_ONE}:${UNSET_VAR}", expected: "value_one:${UNSET_VAR}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, expandEnvVars(tt.input))
		})
	}
}

func TestGetLogger(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()), "missing logger falls back to discard")

	logger := slog.New(slog.DiscardHandler)
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, GetLogger(ctx))
}
