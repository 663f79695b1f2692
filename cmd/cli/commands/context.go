package commands

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/emclarke/pharmacy-rota/internal/config"
	"github.com/emclarke/pharmacy-rota/pkg/core/rota"
	"github.com/emclarke/pharmacy-rota/pkg/postgres"
)

// AppContext holds the dependencies shared by every command. Fields are
// populated by the root command's PersistentPreRunE before any RunE fires.
type AppContext struct {
	Cfg    *config.Config
	Logger *zap.Logger
	Ctx    context.Context
}

// openStore connects to PostgreSQL using the --database flag or the
// DATABASE_URL environment variable. Callers must Close the store.
func openStore(app *AppContext, connString string) (*postgres.Store, error) {
	if connString == "" {
		connString = os.Getenv("DATABASE_URL")
	}
	if connString == "" {
		return nil, fmt.Errorf("no database configured: pass --database or set DATABASE_URL")
	}
	return postgres.New(app.Ctx, connString)
}

// loadPharmacists reads the roster from a YAML file when one is given,
// otherwise from the database.
func loadPharmacists(app *AppContext, rosterPath, database string) ([]rota.Pharmacist, error) {
	if rosterPath != "" {
		return config.LoadRoster(rosterPath)
	}

	store, err := openStore(app, database)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	return store.GetPharmacists(app.Ctx)
}
