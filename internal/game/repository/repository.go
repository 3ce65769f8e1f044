// Package repository provides data access layer for cleaned games.
package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/nba_pipeline/internal/game/model"
)

const insertBatchSize = 500

// Repository defines the interface for game data access operations.
type Repository interface {
	// ReplaceAll removes every stored game and inserts the given rows.
	ReplaceAll(ctx context.Context, games []model.GameRow) error

	// GetByID finds a game by game_id.
	GetByID(ctx context.Context, gameID string) (*model.GameRow, error)

	// List returns a page of games matching the filter and the total match count.
	List(ctx context.Context, filter model.ListFilter) ([]model.GameRow, int64, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new game repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// ReplaceAll removes every stored game and inserts the given rows.
// Games carry no identity across runs, so the table always reflects the latest run.
func (r *repository) ReplaceAll(ctx context.Context, games []model.GameRow) error {
	r.logger.Debugw("ReplaceAll called", "count", len(games))

	if err := r.db.WithContext(ctx).Exec("DELETE FROM games").Error; err != nil {
		r.logger.Errorw("ReplaceAll delete failed", "error", err)
		return err
	}
	if len(games) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).CreateInBatches(games, insertBatchSize).Error; err != nil {
		r.logger.Errorw("ReplaceAll insert failed", "error", err)
		return err
	}

	r.logger.Debugw("ReplaceAll completed", "count", len(games))
	return nil
}

// GetByID finds a game by game_id.
func (r *repository) GetByID(ctx context.Context, gameID string) (*model.GameRow, error) {
	var game model.GameRow
	err := r.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		First(&game).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}
	return &game, nil
}

// List returns a page of games matching the filter and the total match count.
func (r *repository) List(ctx context.Context, filter model.ListFilter) ([]model.GameRow, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		r.logger.Errorw("List count failed", "error", err)
		return nil, 0, err
	}

	var games []model.GameRow
	err := r.filtered(ctx, filter).
		Order("game_date ASC, game_id ASC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&games).Error
	if err != nil {
		r.logger.Errorw("List query failed", "error", err)
		return nil, 0, err
	}

	if games == nil {
		games = []model.GameRow{}
	}
	return games, total, nil
}

// filtered builds a fresh query per call; gorm statements must not be shared between Count and Find.
func (r *repository) filtered(ctx context.Context, filter model.ListFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&model.GameRow{})
	if filter.Season != nil {
		query = query.Where("season = ?", *filter.Season)
	}
	if filter.Team != "" {
		query = query.Where("home_team_abbr = ? OR away_team_abbr = ?", filter.Team, filter.Team)
	}
	return query
}
