package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// InitDBCmd creates the init-db command, which applies pending database
// migrations.
func InitDBCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init-db",
		Short: "Create or upgrade the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			database, _ := cmd.Flags().GetString("database")

			store, err := openStore(app, database)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.RunMigrations(app.Ctx); err != nil {
				return fmt.Errorf("migrations failed: %w", err)
			}

			app.Logger.Info("database schema is up to date")
			return nil
		},
	}

	cmd.Flags().String("database", "", "PostgreSQL connection string (default: DATABASE_URL)")

	return cmd
}
