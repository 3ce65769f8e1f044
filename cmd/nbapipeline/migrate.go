package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/festy23/nba_pipeline/internal/database/database"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply output store migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.dbCfg.Enabled() {
				return fmt.Errorf("migrate requires DB_DRIVER to be sqlite or postgres")
			}

			db, err := a.openStore(cmd.Context())
			if err != nil {
				a.logger.Errorw("migration failed", "error", err)
				return err
			}
			defer func() { _ = database.Close(db) }()

			a.logger.Infow("migrations applied", "driver", a.dbCfg.Driver)
			return nil
		},
	}
}
