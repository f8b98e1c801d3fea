package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/pulse/internal/wire"
)

// TimelineCmd returns the timeline command
func TimelineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeline [initiative-id]",
		Short: "Show an initiative's update history, newest first",
		Args:  initiativeIDArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")

			return wire.UpdateAdapter().Timeline(commandContext(cmd), args[0], all)
		},
	}
	cmd.Flags().BoolP("all", "a", false, "Show every update instead of the most recent few")
	return cmd
}
