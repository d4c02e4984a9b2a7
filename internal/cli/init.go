package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/contactdesk/internal/db"
	"github.com/example/contactdesk/internal/seed"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var withFixtures bool
	var seedFile string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the contactdesk database",
		Long:  `Initialize the contactdesk database at ~/.contactdesk/contactdesk.db with the required schema.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, err := db.GetDBPath()
			if err != nil {
				return fmt.Errorf("failed to get database path: %w", err)
			}

			fmt.Printf("Initializing contactdesk database at %s\n", dbPath)

			database, err := db.GetDB()
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}

			fmt.Println("✓ Database initialized successfully")

			if seedFile != "" {
				f, err := seed.Load(seedFile)
				if err != nil {
					return err
				}
				if err := seed.Apply(database, f); err != nil {
					return err
				}
				fmt.Printf("✓ Reference data imported from %s\n", seedFile)
			} else if withFixtures {
				if err := db.SeedFixtures(database); err != nil {
					return fmt.Errorf("failed to seed fixtures: %w", err)
				}
				fmt.Println("✓ Development fixtures loaded")
			}

			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  contactdesk contact list")
			fmt.Println("  contactdesk serve")

			return nil
		},
	}

	cmd.Flags().BoolVar(&withFixtures, "fixtures", false, "Load development fixtures")
	cmd.Flags().StringVar(&seedFile, "seed", "", "Import reference data from a YAML seed file")

	return cmd
}
