package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/pulse/internal/wire"
)

// LoginCmd returns the login command
func LoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in as a user",
		Long:  "Record the current user in the pulse config. Initiatives are scoped to this user.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, _ := cmd.Flags().GetString("user-id")
			email, _ := cmd.Flags().GetString("email")

			return wire.SessionAdapter().Login(commandContext(cmd), userID, email)
		},
	}
	cmd.Flags().String("user-id", "", "User id (required)")
	cmd.Flags().String("email", "", "User email")
	_ = cmd.MarkFlagRequired("user-id")
	return cmd
}

// LogoutCmd returns the logout command
func LogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.SessionAdapter().Logout(commandContext(cmd))
		},
	}
}

// WhoamiCmd returns the whoami command
func WhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.SessionAdapter().WhoAmI(commandContext(cmd))
		},
	}
}
