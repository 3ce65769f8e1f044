package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/nba_pipeline/internal/config"
	dbConfig "github.com/festy23/nba_pipeline/internal/database/config"
	"github.com/festy23/nba_pipeline/internal/database/database"
	"github.com/festy23/nba_pipeline/internal/database/migrate"
	"github.com/festy23/nba_pipeline/pkg/logger"
)

// app carries what every subcommand needs after configuration is loaded.
type app struct {
	cfg    config.Config
	dbCfg  dbConfig.Config
	logger *zap.SugaredLogger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var envFile string

	root := &cobra.Command{
		Use:           "nbapipeline",
		Short:         "Clean NBA game data into an analysis-ready table",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(envFile)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "environment file loaded before configuration")

	root.AddCommand(newRunCmd(a), newMigrateCmd(a), newServeCmd(a))
	return root
}

func (a *app) init(envFile string) error {
	if err := config.LoadDotEnv(envFile); err != nil {
		return fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	a.cfg = config.LoadFromEnv()
	a.dbCfg = dbConfig.LoadConfigFromEnv()

	if err := a.cfg.Logger.Validate(); err != nil {
		return err
	}
	log, err := logger.NewWithConfig(a.cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = log
	return nil
}

// openStore connects to the configured store and applies migrations.
// It returns a nil db when the store is disabled.
func (a *app) openStore(ctx context.Context) (*gorm.DB, error) {
	if !a.dbCfg.Enabled() {
		return nil, nil
	}

	db, err := database.NewWithConfig(ctx, a.dbCfg, a.logger)
	if err != nil {
		return nil, err
	}
	if err := migrate.Migrate(db, a.dbCfg.Driver); err != nil {
		_ = database.Close(db)
		return nil, err
	}
	return db, nil
}
