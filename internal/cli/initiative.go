package cli

import (
	"github.com/spf13/cobra"

	cliadapter "github.com/example/pulse/internal/adapters/cli"
	"github.com/example/pulse/internal/wire"
)

var initiativeCmd = &cobra.Command{
	Use:     "initiative",
	Aliases: []string{"ini"},
	Short:   "Manage strategic initiatives",
	Long:    "Create, list, show, and delete the signed-in user's initiatives",
}

var initiativeCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new initiative",
	Long: `Create a new initiative. Creating one with the reserved name (default
"Other Projects") makes the miscellaneous container, which holds a single
editable task list instead of versioned updates.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.InitiativeAdapter().Create(commandContext(cmd), args[0])
	},
}

var initiativeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List initiatives",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.InitiativeAdapter().List(commandContext(cmd))
	},
}

var initiativeShowCmd = &cobra.Command{
	Use:   "show [initiative-id]",
	Short: "Show initiative details with its latest update",
	Args:  initiativeIDArg,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)

		ini, err := wire.InitiativeAdapter().Show(ctx, args[0])
		if err != nil {
			return err
		}
		if ini.IsContainer() {
			return wire.ContainerAdapter().Show(ctx, false)
		}
		return wire.UpdateAdapter().Latest(ctx, ini.ID)
	},
}

var initiativeDeleteCmd = &cobra.Command{
	Use:   "delete [initiative-id]",
	Short: "Delete an initiative and its whole update history",
	Args:  initiativeIDArg,
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.InitiativeAdapter().Delete(commandContext(cmd), args[0])
	},
}

var initiativeSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create default initiatives",
	Long: `Create the initiatives listed in a YAML seed file, skipping names that
already exist. Without --file only the miscellaneous container is created.

  initiatives:
    - Payments
    - Onboarding
    - Other Projects`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")

		var names []string
		if file != "" {
			loaded, err := cliadapter.LoadSeedFile(file)
			if err != nil {
				return err
			}
			names = loaded
		} else {
			_, cfg, err := wire.Config()
			if err != nil {
				return err
			}
			names = []string{cfg.ReservedName}
		}

		return wire.InitiativeAdapter().Seed(commandContext(cmd), names)
	},
}

// InitiativeCmd returns the initiative command
func InitiativeCmd() *cobra.Command {
	// Add flags
	initiativeSeedCmd.Flags().StringP("file", "f", "", "YAML seed file")

	// Add subcommands
	initiativeCmd.AddCommand(initiativeCreateCmd)
	initiativeCmd.AddCommand(initiativeListCmd)
	initiativeCmd.AddCommand(initiativeShowCmd)
	initiativeCmd.AddCommand(initiativeDeleteCmd)
	initiativeCmd.AddCommand(initiativeSeedCmd)

	return initiativeCmd
}
