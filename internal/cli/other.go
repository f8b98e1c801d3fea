package cli

import (
	"github.com/spf13/cobra"

	cliadapter "github.com/example/pulse/internal/adapters/cli"
	"github.com/example/pulse/internal/wire"
)

var otherCmd = &cobra.Command{
	Use:   "other",
	Short: "Manage the miscellaneous container's task list",
	Long: `The miscellaneous container keeps one task list that is edited in place.
Saving replaces the list; blank tasks are dropped.`,
}

var otherShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the container's tasks, nearest due date first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		asYAML, _ := cmd.Flags().GetBool("yaml")

		return wire.ContainerAdapter().Show(commandContext(cmd), asYAML)
	},
}

var otherSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Replace the container's task list",
	Long: `Replace the container's task list with the tasks in a YAML file.
Start from the current list with: pulse other show --yaml > tasks.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("tasks-file")

		tasks, err := cliadapter.LoadTasksFile(file)
		if err != nil {
			return err
		}
		return wire.ContainerAdapter().Save(commandContext(cmd), tasks)
	},
}

// OtherCmd returns the other command
func OtherCmd() *cobra.Command {
	// Add flags
	otherShowCmd.Flags().Bool("yaml", false, "Print the task list as an editable YAML file")
	otherSaveCmd.Flags().StringP("tasks-file", "f", "", "YAML task list (required)")
	_ = otherSaveCmd.MarkFlagRequired("tasks-file")

	// Add subcommands
	otherCmd.AddCommand(otherShowCmd)
	otherCmd.AddCommand(otherSaveCmd)

	return otherCmd
}
