package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/emclarke/pharmacy-rota/cmd/cli/commands"
	"github.com/emclarke/pharmacy-rota/internal/config"
	"github.com/emclarke/pharmacy-rota/pkg/utils/logging"
)

var (
	configPath string
	app        = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pharmacy-rota",
		Short: "Pharmacy rota generator - build weekly dispensary, ward and clinic rotas",
		Long: `A CLI for generating weekly hospital pharmacy rotas from a staff roster
and the week's coverage requirements. The generator honours hard rules
(availability, qualifications, no double-booking) and optimises soft
preferences (ideal staffing, fairness, directorate matching).`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to rota_config.yaml (default: search cwd and home, else built-in week)")

	rootCmd.AddCommand(commands.GenerateCmd(app))
	rootCmd.AddCommand(commands.ListPharmacistsCmd(app))
	rootCmd.AddCommand(commands.AddPharmacistCmd(app))
	rootCmd.AddCommand(commands.ValidateConfigCmd(app))
	rootCmd.AddCommand(commands.ListRotasCmd(app))
	rootCmd.AddCommand(commands.InitDBCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up the logger and loads the week configuration.
func initApp() error {
	logger, err := logging.InitLogger("cli")
	if err != nil {
		return err
	}

	var cfg *config.Config
	if configPath != "" {
		cfg, err = config.LoadFromPath(configPath)
		if err != nil {
			logger.Error("failed to load configuration", zap.Error(err))
			return err
		}
	} else {
		cfg, err = config.Load()
		if err != nil {
			// No config file anywhere: run on the standard hospital week.
			logger.Info("no config file found, using built-in defaults")
			cfg = config.Default()
		}
	}

	app.Cfg = cfg
	app.Logger = logger
	app.Ctx = context.Background()
	return nil
}
