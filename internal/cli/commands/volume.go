package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/clickzetta/pkg/core"
)

// NewVolumeCommand creates the volume command group.
func NewVolumeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "volume",
		Short: "Work with volumes and stages",
	}
	cmd.AddCommand(newVolumeListCommand())
	return cmd
}

func newVolumeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "ls <volume-uri> [directory]",
		Aliases: []string{"list"},
		Short:   "List files in a volume or stage",
		Long: `List files under a directory of a volume or stage.

The URI is volume:<scope>://<name> (for example volume:user://~) or
@<stage>. The directory is relative to it.`,
		Example: `  clickzetta volume ls volume:user://~
  clickzetta volume ls volume:table://orders 2024/01
  clickzetta volume ls @raw_stage exports/`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) > 1 {
				dir = args[1]
			}
			cmdCtx := NewCommandContext(cmd)
			ctx := cmd.Context()

			adp, cleanup, err := cmdCtx.Connect(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			entries, err := adp.ListVolumeFiles(ctx, args[0], dir)
			if err != nil {
				return err
			}
			return renderVolumeEntries(cmdCtx, entries)
		},
	}
}

func renderVolumeEntries(cmdCtx *CommandContext, entries []core.VolumeEntry) error {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{e.Name, strconv.FormatInt(e.Size, 10)}
	}
	return cmdCtx.Renderer.Table([]string{"name", "size"}, rows)
}
