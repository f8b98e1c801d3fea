package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/pulse/internal/cli"
	"github.com/example/pulse/internal/version"
	"github.com/example/pulse/internal/wire"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "pulse",
		Short:   "pulse - strategic initiative tracker",
		Version: version.String(),
		Long: `pulse tracks strategic initiatives through versioned status updates.
Each update records confidence ratings, a mood, notes, and a task list;
the dashboard orders initiatives by their nearest deadline.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			return wire.Setup(verbose)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			wire.Close()
		},
	}
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("as", "", "Act as this user id for one command")

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.LoginCmd())
	rootCmd.AddCommand(cli.LogoutCmd())
	rootCmd.AddCommand(cli.WhoamiCmd())
	rootCmd.AddCommand(cli.InitiativeCmd())
	rootCmd.AddCommand(cli.DashboardCmd())
	rootCmd.AddCommand(cli.UpdateCmd())
	rootCmd.AddCommand(cli.TimelineCmd())
	rootCmd.AddCommand(cli.OtherCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		wire.Close()
		os.Exit(1)
	}
}
