// Package health provides the read API health endpoint.
package health

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/nba_pipeline/internal/database/database"
	statsModel "github.com/festy23/nba_pipeline/internal/statistics/model"
	statsRepository "github.com/festy23/nba_pipeline/internal/statistics/repository"
)

const checkTimeout = 5 * time.Second

// Handler handles health check requests.
type Handler struct {
	db     *gorm.DB
	runs   statsRepository.Repository
	logger *zap.SugaredLogger
}

// New creates a new health handler instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		db:     db,
		runs:   statsRepository.New(db, logger),
		logger: logger,
	}
}

// Response represents health check response.
// LastRunID and LastRunAt are empty until the pipeline has published a run.
type Response struct {
	Status    string     `json:"status"`
	LastRunID string     `json:"last_run_id,omitempty"`
	LastRunAt *time.Time `json:"last_run_at,omitempty"`
}

// Check handles GET /health request.
func (h *Handler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
	defer cancel()

	if err := database.HealthCheck(ctx, h.db); err != nil {
		h.logger.Warnw("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, Response{
			Status: "unhealthy",
		})
		return
	}

	resp := Response{Status: "ok"}
	run, err := h.runs.GetLatestRun(ctx)
	switch {
	case err == nil:
		createdAt := run.CreatedAt
		resp.LastRunID = run.RunID
		resp.LastRunAt = &createdAt
	case errors.Is(err, statsModel.ErrRunNotFound):
	default:
		h.logger.Warnw("health check could not read last run", "error", err)
	}

	c.JSON(http.StatusOK, resp)
}
