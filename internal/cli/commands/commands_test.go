package commands

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/clickzetta/internal/cli/testutil"
	"github.com/leapstack-labs/clickzetta/internal/config"
	"github.com/leapstack-labs/clickzetta/pkg/adapter"
	"github.com/leapstack-labs/clickzetta/pkg/core"
)

// fakeAdapter is an in-memory adapter recording calls.
type fakeAdapter struct {
	tables   map[string][]string
	views    map[string][]string
	schemas  []string
	files    []core.VolumeEntry
	results  map[string]core.ExecuteResult
	pingErr  error
	schema   string
	executed []string
	closed   bool
}

func newFakeAdapter() *fakeAdapter {
	return &fakeAdapter{
		tables:  map[string][]string{"PUBLIC": {"orders", "customers"}, "sales": {"invoices"}},
		views:   map[string][]string{"PUBLIC": {"orders_v"}},
		schemas: []string{"PUBLIC", "sales"},
		files:   []core.VolumeEntry{{Name: "a.csv", Size: 10}, {Name: "b.csv", Size: 20}},
		results: map[string]core.ExecuteResult{},
		schema:  "PUBLIC",
	}
}

func (f *fakeAdapter) Connect(context.Context) error { return nil }

func (f *fakeAdapter) Close() error {
	f.closed = true
	return nil
}

func (f *fakeAdapter) ExecuteQuery(_ context.Context, sqlText string) core.ExecuteResult {
	f.executed = append(f.executed, sqlText)
	if res, ok := f.results[sqlText]; ok {
		return res
	}
	return core.ExecuteResult{Success: true, SQLQuery: sqlText, ResultFormat: core.FormatCSV}
}

func (f *fakeAdapter) ListTables(_ context.Context, _, schema string) ([]string, error) {
	if schema == "" {
		schema = f.schema
	}
	return f.tables[schema], nil
}

func (f *fakeAdapter) ListViews(_ context.Context, _, schema string) ([]string, error) {
	if schema == "" {
		schema = f.schema
	}
	return f.views[schema], nil
}

func (f *fakeAdapter) ListSchemas(context.Context, string) ([]string, error) {
	return f.schemas, nil
}

func (f *fakeAdapter) SwitchContext(_ context.Context, schema, workspace string) error {
	if workspace != "" {
		return adapter.NewError(adapter.CodeValidation, "switching workspace is not supported")
	}
	if schema != "" {
		f.schema = schema
	}
	return nil
}

func (f *fakeAdapter) ListVolumeFiles(_ context.Context, uri, _ string) ([]core.VolumeEntry, error) {
	if !strings.HasPrefix(uri, "volume:") && !strings.HasPrefix(uri, "@") {
		return nil, adapter.NewError(adapter.CodeValidation, "unsupported volume/stage format")
	}
	return f.files, nil
}

func (f *fakeAdapter) BuildDefinition(string, string, string, []core.ColumnSpec, string, string) (string, error) {
	return "", errors.New("not used")
}

func (f *fakeAdapter) Dialect() string { return "fake" }

func (f *fakeAdapter) Ping(context.Context) error { return f.pingErr }

// runCommand executes cmd with a registry serving fake under type "fake".
func runCommand(t *testing.T, cmd *cobra.Command, fake *fakeAdapter, cfg *config.Config, args ...string) (string, string, error) {
	t.Helper()

	reg := adapter.NewRegistry()
	reg.Register("fake", func(context.Context, core.AdapterConfig, *slog.Logger) (adapter.Adapter, error) {
		return fake, nil
	})
	if cfg == nil {
		cfg = &config.Config{
			Type:         "fake",
			OutputFormat: "csv",
			Connection: map[string]any{
				"workspace": "test_workspace",
				"password":  "secret",
			},
		}
	}

	ctx := WithRegistry(context.Background(), reg)
	ctx = WithConfig(ctx, cfg)

	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(append([]string{}, args...))

	err := cmd.ExecuteContext(ctx)
	return out.String(), errOut.String(), err
}

func TestPingCommand(t *testing.T) {
	fake := newFakeAdapter()
	_, errOut, err := runCommand(t, NewPingCommand(), fake, nil)
	require.NoError(t, err)
	assert.Contains(t, errOut, "OK: connected to test_workspace")
	testutil.AssertNoANSI(t, errOut)
	assert.True(t, fake.closed)

	fake = newFakeAdapter()
	fake.pingErr = errors.New("unreachable")
	_, _, err = runCommand(t, NewPingCommand(), fake, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unreachable")
}

func TestQueryCommand(t *testing.T) {
	t.Run("from args", func(t *testing.T) {
		fake := newFakeAdapter()
		fake.results["SELECT id FROM orders"] = core.ExecuteResult{
			Success:      true,
			SQLReturn:    "id\n1\n2\n",
			RowCount:     2,
			ResultFormat: core.FormatCSV,
		}

		out, _, err := runCommand(t, NewQueryCommand(), fake, nil, "SELECT", "id", "FROM", "orders")
		require.NoError(t, err)
		assert.Equal(t, "id\n1\n2\n", out)
		assert.Equal(t, []string{"SELECT id FROM orders"}, fake.executed)
	})

	t.Run("from file", func(t *testing.T) {
		path := testutil.WriteFile(t, "q.sql", "  SELECT 1  \n")

		fake := newFakeAdapter()
		_, _, err := runCommand(t, NewQueryCommand(), fake, nil, "-i", path)
		require.NoError(t, err)
		assert.Equal(t, []string{"SELECT 1"}, fake.executed)
	})

	t.Run("failure", func(t *testing.T) {
		fake := newFakeAdapter()
		fake.results["SELECT boom"] = core.ExecuteResult{Error: "Query failed"}

		_, _, err := runCommand(t, NewQueryCommand(), fake, nil, "SELECT boom")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Query failed")
	})

	t.Run("empty stdin", func(t *testing.T) {
		_, _, err := runCommand(t, NewQueryCommand(), newFakeAdapter(), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no SQL to execute")
	})
}

func TestCatalogCommands(t *testing.T) {
	tests := []struct {
		name string
		cmd  func() *cobra.Command
		args []string
		want string
	}{
		{name: "tables", cmd: NewTablesCommand, want: "table_name\norders\ncustomers\n"},
		{name: "tables in schema", cmd: NewTablesCommand, args: []string{"sales"}, want: "table_name\ninvoices\n"},
		{name: "views", cmd: NewViewsCommand, want: "view_name\norders_v\n"},
		{name: "schemas", cmd: NewSchemasCommand, want: "schema_name\nPUBLIC\nsales\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := runCommand(t, tt.cmd(), newFakeAdapter(), nil, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestVolumeListCommand(t *testing.T) {
	out, _, err := runCommand(t, NewVolumeCommand(), newFakeAdapter(), nil, "ls", "volume:user://~", "data")
	require.NoError(t, err)
	assert.Equal(t, "name,size\na.csv,10\nb.csv,20\n", out)

	_, _, err = runCommand(t, NewVolumeCommand(), newFakeAdapter(), nil, "ls", "bogus")
	require.Error(t, err)
	assert.ErrorIs(t, err, adapter.ErrValidation)
}

func TestMissingRegistry(t *testing.T) {
	cmd := NewPingCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{})

	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no adapter registry")
}

func TestNewVersionCommand(t *testing.T) {
	cmd := NewVersionCommand("1.2.3")
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "clickzetta v1.2.3")
}

func TestCommandMetadata(t *testing.T) {
	tests := []struct {
		cmd  *cobra.Command
		use  string
		flag string
	}{
		{cmd: NewQueryCommand(), use: "query [SQL]", flag: "input"},
		{cmd: NewDDLCommand(), use: "ddl <name>", flag: "columns"},
		{cmd: NewShellCommand(), use: "shell"},
		{cmd: NewPingCommand(), use: "ping"},
	}

	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short, "Short should not be empty")
			if tt.flag != "" {
				assert.NotNil(t, tt.cmd.Flags().Lookup(tt.flag), "flag %q should exist", tt.flag)
			}
		})
	}
}
