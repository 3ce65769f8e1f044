package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/nba_pipeline/internal/database/database"
	gameRouter "github.com/festy23/nba_pipeline/internal/game/router"
	"github.com/festy23/nba_pipeline/internal/health"
	"github.com/festy23/nba_pipeline/internal/middleware"
	statsRouter "github.com/festy23/nba_pipeline/internal/statistics/router"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the cleaned games over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.Server.Validate(); err != nil {
				return err
			}
			if !a.dbCfg.Enabled() {
				return fmt.Errorf("serve requires DB_DRIVER to be sqlite or postgres")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			db, err := a.openStore(ctx)
			if err != nil {
				a.logger.Errorw("store unavailable", "error", err)
				return err
			}
			defer func() { _ = database.Close(db) }()

			gin.SetMode(a.cfg.GinMode)
			srv := &http.Server{
				Addr:         a.cfg.Server.GetAddress(),
				Handler:      newRouter(db, a.logger),
				ReadTimeout:  a.cfg.Server.ReadTimeout,
				WriteTimeout: a.cfg.Server.WriteTimeout,
				IdleTimeout:  a.cfg.Server.IdleTimeout,
			}

			errCh := make(chan error, 1)
			go func() {
				a.logger.Infow("server listening", "address", srv.Addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			a.logger.Infow("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}

// newRouter builds the read API over the store.
func newRouter(db *gorm.DB, logger *zap.SugaredLogger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(logger), middleware.Recovery(logger))

	r.GET("/health", health.New(db, logger).Check)
	gameRouter.RegisterRoutes(r, db, logger)
	statsRouter.RegisterRoutes(r, db, logger)
	return r
}
