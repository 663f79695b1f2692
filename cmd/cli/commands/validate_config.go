package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ValidateConfigCmd creates the validate-config command: check the loaded
// week template and report the slots it expands to.
func ValidateConfigCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate-config",
		Short: "Validate the week configuration and show the slots it defines",
		RunE: func(cmd *cobra.Command, args []string) error {
			slots, err := app.Cfg.BuildSlots()
			if err != nil {
				return fmt.Errorf("configuration is invalid: %w", err)
			}

			totalMin, totalIdeal := 0, 0
			for _, slot := range slots {
				totalMin += slot.Requirement.Min
				totalIdeal += slot.Requirement.Ideal
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"Configuration OK: %d slots, total minimum headcount %d, total ideal %d\n",
				len(slots), totalMin, totalIdeal)
			return nil
		},
	}
}
