package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/emclarke/pharmacy-rota/pkg/core/allocator"
)

// GenerateCmd creates the generate command: build a weekly rota from the
// roster and the configured week, print it, and optionally publish it.
func GenerateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a weekly rota",
		RunE: func(cmd *cobra.Command, args []string) error {
			rosterPath, _ := cmd.Flags().GetString("roster")
			database, _ := cmd.Flags().GetString("database")
			weekStart, _ := cmd.Flags().GetString("week")
			publish, _ := cmd.Flags().GetBool("publish")

			start, err := time.Parse("2006-01-02", weekStart)
			if err != nil {
				return fmt.Errorf("bad --week date %q: %w", weekStart, err)
			}
			if start.Weekday() != time.Monday {
				return fmt.Errorf("--week must be a Monday, got %s", start.Weekday())
			}

			pharmacists, err := loadPharmacists(app, rosterPath, database)
			if err != nil {
				return fmt.Errorf("failed to load roster: %w", err)
			}

			slots, err := app.Cfg.BuildSlots()
			if err != nil {
				return fmt.Errorf("failed to build week slots: %w", err)
			}

			app.Logger.Info("generating rota",
				zap.Int("pharmacists", len(pharmacists)),
				zap.Int("slots", len(slots)),
				zap.String("weekStart", weekStart))

			outcome, err := allocator.Allocate(allocator.Input{
				Pharmacists: pharmacists,
				Slots:       slots,
				Weights:     app.Cfg.Weights,
			})
			if err != nil {
				return fmt.Errorf("allocation failed: %w", err)
			}

			printRota(cmd.OutOrStdout(), outcome, pharmacists)

			if !outcome.Feasible() {
				app.Logger.Warn("rota is infeasible",
					zap.Int("unmetMinimums", len(outcome.Violations)))
			}

			if publish {
				store, err := openStore(app, database)
				if err != nil {
					return err
				}
				defer store.Close()

				if err := store.PublishRota(app.Ctx, start, outcome.Rota, outcome.Score); err != nil {
					return fmt.Errorf("failed to publish rota: %w", err)
				}
				app.Logger.Info("rota published", zap.String("rotaID", outcome.Rota.ID))
			}

			return nil
		},
	}

	cmd.Flags().String("roster", "", "Path to a YAML roster file (default: load roster from the database)")
	cmd.Flags().String("database", "", "PostgreSQL connection string (default: DATABASE_URL)")
	cmd.Flags().String("week", "", "Week start date, a Monday, e.g. 2026-03-02")
	cmd.Flags().Bool("publish", false, "Store the generated rota in the database")
	cmd.MarkFlagRequired("week")

	return cmd
}
