package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/pulse/internal/wire"
)

// DashboardCmd returns the dashboard command
func DashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"dash"},
		Short:   "Show every initiative, nearest deadline first",
		Long: `Show a card per initiative with its latest update, open tasks, and nearest
deadline counted in working days. Initiatives with a deadline come first
(earliest first), then the rest by name; the miscellaneous container is last.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.DashboardAdapter().Show(commandContext(cmd))
		},
	}
}
