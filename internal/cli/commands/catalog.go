package commands

import (
	"errors"

	"github.com/spf13/cobra"
)

// NewTablesCommand creates the tables command.
func NewTablesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tables [schema]",
		Short: "List tables in a schema",
		Long: `List the tables of a schema in the configured workspace.

Defaults to the configured schema.`,
		Example: `  clickzetta tables
  clickzetta tables sales -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListObjects(cmd, args, false)
		},
	}
}

// NewViewsCommand creates the views command.
func NewViewsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "views [schema]",
		Short: "List views in a schema",
		Long: `List the views of a schema in the configured workspace.

Dynamic tables and materialized views are listed as views.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListObjects(cmd, args, true)
		},
	}
}

// NewSchemasCommand creates the schemas command.
func NewSchemasCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schemas",
		Short: "List schemas in the workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd)
			ctx := cmd.Context()

			adp, cleanup, err := cmdCtx.Connect(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			lister, ok := adp.(schemaLister)
			if !ok {
				return errors.New("adapter does not support listing schemas")
			}
			schemas, err := lister.ListSchemas(ctx, "")
			if err != nil {
				return err
			}
			return cmdCtx.Renderer.List("schema_name", schemas)
		},
	}
}

func runListObjects(cmd *cobra.Command, args []string, views bool) error {
	cmdCtx := NewCommandContext(cmd)
	ctx := cmd.Context()

	schema := ""
	if len(args) > 0 {
		schema = args[0]
	}

	adp, cleanup, err := cmdCtx.Connect(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	var names []string
	if views {
		names, err = adp.ListViews(ctx, "", schema)
	} else {
		names, err = adp.ListTables(ctx, "", schema)
	}
	if err != nil {
		return err
	}

	header := "table_name"
	if views {
		header = "view_name"
	}
	return cmdCtx.Renderer.List(header, names)
}
