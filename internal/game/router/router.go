// Package router provides game module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/nba_pipeline/internal/game/handler"
	"github.com/festy23/nba_pipeline/internal/game/repository"
	"github.com/festy23/nba_pipeline/internal/game/service"
)

// RegisterRoutes registers game module routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, db, logger)
	h := handler.New(svc, logger)

	r.GET("/games", h.ListGames)
	r.GET("/games/:game_id", h.GetGame)
}
