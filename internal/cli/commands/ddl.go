package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/clickzetta/pkg/adapters/clickzetta"
	"github.com/leapstack-labs/clickzetta/pkg/core"
)

// DDLOptions holds options for the ddl command.
type DDLOptions struct {
	ColumnsFile string
	Comment     string
	View        bool
	Workspace   string
	Schema      string
	Execute     bool
}

// ddlFile is the column definition file layout.
type ddlFile struct {
	Comment string            `yaml:"comment"`
	Columns []core.ColumnSpec `yaml:"columns"`
}

// NewDDLCommand creates the ddl command.
func NewDDLCommand() *cobra.Command {
	opts := &DDLOptions{}

	cmd := &cobra.Command{
		Use:   "ddl <name>",
		Short: "Render CREATE TABLE or CREATE VIEW DDL",
		Long: `Render a CREATE statement from a YAML column file.

The file lists columns with column_name, data_type and an optional comment,
and may carry a table-level comment:

  comment: Orders fact table
  columns:
    - column_name: id
      data_type: BIGINT
      comment: Primary key
    - column_name: amount
      data_type: DECIMAL(18,2)

Workspace and schema default to the configured connection.`,
		Example: `  clickzetta ddl orders -c orders.yaml
  clickzetta ddl orders_v -c orders_v.yaml --view --execute`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDDL(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ColumnsFile, "columns", "c", "", "YAML column definition file")
	cmd.Flags().StringVar(&opts.Comment, "comment", "", "Table comment (overrides the file)")
	cmd.Flags().BoolVar(&opts.View, "view", false, "Render CREATE VIEW instead of CREATE TABLE")
	cmd.Flags().StringVar(&opts.Workspace, "in-workspace", "", "Workspace to create the object in")
	cmd.Flags().StringVar(&opts.Schema, "in-schema", "", "Schema to create the object in")
	cmd.Flags().BoolVar(&opts.Execute, "execute", false, "Execute the statement instead of printing it")
	_ = cmd.MarkFlagRequired("columns")

	return cmd
}

func runDDL(cmd *cobra.Command, name string, opts *DDLOptions) error {
	spec, err := loadDDLFile(opts.ColumnsFile)
	if err != nil {
		return err
	}

	cmdCtx := NewCommandContext(cmd)
	workspace := opts.Workspace
	if workspace == "" {
		workspace = cmdCtx.connectionString("workspace", "")
	}
	schema := opts.Schema
	if schema == "" {
		schema = cmdCtx.connectionString("schema", clickzetta.DefaultSchema)
	}
	if workspace == "" {
		return fmt.Errorf("workspace is required (set it in config or use --in-workspace)")
	}

	comment := spec.Comment
	if opts.Comment != "" {
		comment = opts.Comment
	}
	objectType := core.ObjectTable
	if opts.View {
		objectType = core.ObjectView
	}

	stmt, err := clickzetta.BuildDefinition(workspace, schema, name, spec.Columns, comment, objectType)
	if err != nil {
		return err
	}

	if !opts.Execute {
		cmdCtx.Renderer.Println(stmt)
		return nil
	}

	adp, cleanup, err := cmdCtx.Connect(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	if res := adp.ExecuteQuery(cmd.Context(), stmt); !res.Success {
		return fmt.Errorf("failed to create %s %s: %s", objectType, name, res.Error)
	}
	cmdCtx.Renderer.Success(fmt.Sprintf("Created %s %s.%s.%s", objectType, workspace, schema, name))
	return nil
}

func loadDDLFile(path string) (*ddlFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read column file: %w", err)
	}

	var spec ddlFile
	if err := yaml.Unmarshal(content, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse column file %s: %w", path, err)
	}
	if len(spec.Columns) == 0 {
		return nil, fmt.Errorf("column file %s defines no columns", path)
	}
	for i, col := range spec.Columns {
		if col.Name == "" || col.DataType == "" {
			return nil, fmt.Errorf("column %d in %s needs column_name and data_type", i+1, path)
		}
	}
	return &spec, nil
}
