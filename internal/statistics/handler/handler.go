// Package handler provides HTTP handlers for statistics endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/nba_pipeline/internal/statistics/model"
	"github.com/festy23/nba_pipeline/internal/statistics/service"
)

// Handler handles HTTP requests for statistics endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new statistics handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// GetSummary handles GET /statistics/summary request.
// @Summary Get the summary of the latest pipeline run
// @Tags Statistics
// @Produce json
// @Success 200 {object} model.RunSummaryResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /statistics/summary [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetSummary(c *gin.Context) {
	resp, err := h.service.GetLatestSummary(c.Request.Context())
	if err != nil {
		if errors.Is(err, model.ErrRunNotFound) {
			errorResponse(c, "NOT_FOUND", "no pipeline run stored", http.StatusNotFound)
			return
		}
		h.logger.Errorw("error getting summary", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}
