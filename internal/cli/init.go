package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/pulse/internal/config"
	"github.com/example/pulse/internal/db"
	"github.com/example/pulse/internal/wire"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the pulse config and database",
		Long:  `Write ~/.pulse/config.json (PULSE_HOME overrides the home directory) and create the database with the required schema.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, cfg, err := wire.Config()
			if err != nil {
				return err
			}

			if config.Exists(dir) {
				fmt.Printf("Config already exists at %s\n", config.Path(dir))
			} else {
				if err := config.Save(dir, cfg); err != nil {
					return fmt.Errorf("failed to write config: %w", err)
				}
				fmt.Printf("✓ Config written to %s\n", config.Path(dir))
			}

			fmt.Printf("Initializing database at %s\n", cfg.DatabasePath)
			database, err := db.Open(cfg.DatabaseDriver, cfg.DatabasePath)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer database.Close()

			version, err := db.CurrentVersion(database)
			if err != nil {
				return fmt.Errorf("failed to read schema version: %w", err)
			}
			fmt.Printf("✓ Database ready (schema version %d)\n", version)

			fmt.Println()
			fmt.Println("Next steps:")
			if !cfg.SignedIn() {
				fmt.Println("  pulse login --user-id ID --email EMAIL")
			}
			fmt.Printf("  pulse initiative create %q\n", cfg.ReservedName)
			fmt.Println("  pulse initiative create \"My First Initiative\"")
			fmt.Println("  pulse dashboard")

			return nil
		},
	}
}
