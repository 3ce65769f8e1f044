// Package handler provides HTTP handlers for game endpoints.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/nba_pipeline/internal/game/model"
	"github.com/festy23/nba_pipeline/internal/game/service"
)

// Handler handles HTTP requests for game endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new game handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// ListGames handles GET /games request.
// @Summary List cleaned games
// @Tags Games
// @Produce json
// @Param season query int false "Season"
// @Param team query string false "Home or away team abbreviation"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} model.ListGamesResponse
// @Failure 400 {object} ErrorResponse "Bad request (INVALID_REQUEST)"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /games [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) ListGames(c *gin.Context) {
	filter, err := parseListFilter(c)
	if err != nil {
		errorResponse(c, "INVALID_REQUEST", err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := h.service.ListGames(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, model.ErrInvalidQuery) {
			errorResponse(c, "INVALID_REQUEST", "limit and offset must be non-negative", http.StatusBadRequest)
			return
		}
		h.logger.Errorw("error listing games", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetGame handles GET /games/:game_id request.
// @Summary Get a cleaned game
// @Tags Games
// @Produce json
// @Param game_id path string true "Game ID"
// @Success 200 {object} model.GameRow
// @Failure 404 {object} ErrorResponse "Game not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /games/{game_id} [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetGame(c *gin.Context) {
	gameID := c.Param("game_id")

	game, err := h.service.GetGame(c.Request.Context(), gameID)
	if err != nil {
		if errors.Is(err, model.ErrGameNotFound) {
			notFoundResponse(c, "game not found")
			return
		}
		if errors.Is(err, model.ErrInvalidQuery) {
			errorResponse(c, "INVALID_REQUEST", "game_id is required", http.StatusBadRequest)
			return
		}
		h.logger.Errorw("error getting game", "game_id", gameID, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, game)
}

func parseListFilter(c *gin.Context) (model.ListFilter, error) {
	filter := model.ListFilter{Team: strings.ToUpper(strings.TrimSpace(c.Query("team")))}

	if v := c.Query("season"); v != "" {
		season, err := strconv.Atoi(v)
		if err != nil {
			return filter, errors.New("season must be an integer")
		}
		filter.Season = &season
	}
	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return filter, errors.New("limit must be an integer")
		}
		filter.Limit = limit
	}
	if v := c.Query("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil {
			return filter, errors.New("offset must be an integer")
		}
		filter.Offset = offset
	}
	return filter, nil
}
