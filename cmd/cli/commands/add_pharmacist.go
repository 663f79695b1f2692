package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/emclarke/pharmacy-rota/pkg/core/rota"
)

// AddPharmacistCmd creates the add-pharmacist command, which writes one
// staff record to the database.
func AddPharmacistCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-pharmacist",
		Short: "Add or update a pharmacist record",
		RunE: func(cmd *cobra.Command, args []string) error {
			database, _ := cmd.Flags().GetString("database")
			id, _ := cmd.Flags().GetString("id")
			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			bandFlag, _ := cmd.Flags().GetString("band")
			directorateFlag, _ := cmd.Flags().GetString("primary-directorate")
			ituTrained, _ := cmd.Flags().GetBool("itu-trained")
			warfarinTrained, _ := cmd.Flags().GetBool("warfarin-trained")
			defaultDispensary, _ := cmd.Flags().GetBool("default-dispensary")
			daysUnavailable, _ := cmd.Flags().GetStringSlice("unavailable")

			band, err := rota.ParseBand(bandFlag)
			if err != nil {
				return err
			}
			directorate, err := rota.ParseWard(directorateFlag)
			if err != nil {
				return err
			}

			if id == "" {
				id = uuid.NewString()
			}

			p := rota.Pharmacist{
				ID:                 id,
				Name:               name,
				Email:              email,
				Band:               band,
				PrimaryDirectorate: directorate,
				DefaultDispensary:  defaultDispensary,
			}
			if ituTrained {
				p.Qualifications = append(p.Qualifications, rota.ITUTrained)
			}
			if warfarinTrained {
				p.Qualifications = append(p.Qualifications, rota.WarfarinTrained)
			}
			for _, dayName := range daysUnavailable {
				day, err := rota.ParseDay(dayName)
				if err != nil {
					return err
				}
				p.DaysUnavailable = append(p.DaysUnavailable, day)
			}

			if err := p.Validate(); err != nil {
				return err
			}

			store, err := openStore(app, database)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.UpsertPharmacist(app.Ctx, p); err != nil {
				return fmt.Errorf("failed to save pharmacist: %w", err)
			}

			app.Logger.Info("pharmacist saved",
				zap.String("id", p.ID),
				zap.String("name", p.Name))
			return nil
		},
	}

	cmd.Flags().String("database", "", "PostgreSQL connection string (default: DATABASE_URL)")
	cmd.Flags().String("id", "", "Record ID (default: new UUID)")
	cmd.Flags().String("name", "", "Pharmacist name")
	cmd.Flags().String("email", "", "Pharmacist email")
	cmd.Flags().String("band", "", "Band: 6, 7 or 8")
	cmd.Flags().String("primary-directorate", "", "Home ward, e.g. Medicine")
	cmd.Flags().Bool("itu-trained", false, "Holds ITU training")
	cmd.Flags().Bool("warfarin-trained", false, "Holds warfarin training")
	cmd.Flags().Bool("default-dispensary", false, "Preferentially absorbs dispensary windows")
	cmd.Flags().StringSlice("unavailable", nil, "Days unavailable, e.g. Monday,Friday")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("band")
	cmd.MarkFlagRequired("primary-directorate")

	return cmd
}
