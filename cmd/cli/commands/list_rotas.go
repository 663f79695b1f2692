package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// ListRotasCmd creates the list-rotas command: show published rota headers,
// and with --rota-id the assignments of one rota.
func ListRotasCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list-rotas",
		Short: "List published rotas",
		RunE: func(cmd *cobra.Command, args []string) error {
			database, _ := cmd.Flags().GetString("database")
			rotaID, _ := cmd.Flags().GetString("rota-id")

			store, err := openStore(app, database)
			if err != nil {
				return err
			}
			defer store.Close()

			if rotaID != "" {
				assignments, err := store.GetRotaAssignments(app.Ctx, rotaID)
				if err != nil {
					return fmt.Errorf("failed to load rota %s: %w", rotaID, err)
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "SLOT\tPHARMACIST\tLOCKED\tBACKFILL")
				for _, a := range assignments {
					fmt.Fprintf(tw, "%s\t%s\t%v\t%v\n", a.SlotID, a.PharmacistID, a.Locked, a.Backfill)
				}
				return tw.Flush()
			}

			records, err := store.GetRotas(app.Ctx)
			if err != nil {
				return fmt.Errorf("failed to list rotas: %w", err)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tWEEK\tSCORE\tFEASIBLE\tPUBLISHED")
			for _, r := range records {
				fmt.Fprintf(tw, "%s\t%s\t%.3f\t%v\t%s\n", r.ID, r.WeekStart, r.Score, r.Feasible, r.PublishedAt)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().String("database", "", "PostgreSQL connection string (default: DATABASE_URL)")
	cmd.Flags().String("rota-id", "", "Show the assignments of one published rota")

	return cmd
}
