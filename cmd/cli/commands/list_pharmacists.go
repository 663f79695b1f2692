package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/emclarke/pharmacy-rota/pkg/core/rota"
)

// ListPharmacistsCmd creates the list-pharmacists command.
func ListPharmacistsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list-pharmacists",
		Short: "List the staff roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			rosterPath, _ := cmd.Flags().GetString("roster")
			database, _ := cmd.Flags().GetString("database")

			pharmacists, err := loadPharmacists(app, rosterPath, database)
			if err != nil {
				return fmt.Errorf("failed to load roster: %w", err)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tBAND\tDIRECTORATE\tITU\tWARFARIN\tDISPENSARY")
			for _, p := range pharmacists {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%v\t%v\t%v\n",
					p.ID, p.Name, p.Band, p.PrimaryDirectorate,
					p.HasQualification(rota.ITUTrained),
					p.HasQualification(rota.WarfarinTrained),
					p.DefaultDispensary)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().String("roster", "", "Path to a YAML roster file (default: load roster from the database)")
	cmd.Flags().String("database", "", "PostgreSQL connection string (default: DATABASE_URL)")

	return cmd
}
