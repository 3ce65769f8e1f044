// Package service provides business logic layer for stored games.
package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/nba_pipeline/internal/game/model"
	"github.com/festy23/nba_pipeline/internal/game/repository"
	statsModel "github.com/festy23/nba_pipeline/internal/statistics/model"
	statsRepository "github.com/festy23/nba_pipeline/internal/statistics/repository"
)

// Page size bounds for ListGames.
const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Service defines the interface for game business logic operations.
type Service interface {
	// Publish replaces the stored games and records the run in one transaction.
	Publish(ctx context.Context, run *statsModel.Run, games []model.Game) error

	// GetGame returns a stored game.
	GetGame(ctx context.Context, gameID string) (*model.GameRow, error)

	// ListGames returns a page of stored games.
	ListGames(ctx context.Context, filter model.ListFilter) (*model.ListGamesResponse, error)
}

type service struct {
	repo   repository.Repository
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new game service instance.
func New(repo repository.Repository, db *gorm.DB, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		db:     db,
		logger: logger,
	}
}

// Publish replaces the stored games and records the run in one transaction.
func (s *service) Publish(ctx context.Context, run *statsModel.Run, games []model.Game) error {
	rows := make([]model.GameRow, 0, len(games))
	for i := range games {
		rows = append(rows, model.NewGameRow(run.RunID, &games[i]))
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)
		if err := txRepo.ReplaceAll(ctx, rows); err != nil {
			return fmt.Errorf("failed to store games: %w", err)
		}

		txStats := statsRepository.New(tx, s.logger)
		if err := txStats.CreateRun(ctx, run); err != nil {
			return fmt.Errorf("failed to store run: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Errorw("Publish failed", "run_id", run.RunID, "error", err)
		return err
	}

	s.logger.Infow("games published", "run_id", run.RunID, "games", len(rows))
	return nil
}

// GetGame returns a stored game.
func (s *service) GetGame(ctx context.Context, gameID string) (*model.GameRow, error) {
	if gameID == "" {
		return nil, model.ErrInvalidQuery
	}
	return s.repo.GetByID(ctx, gameID)
}

// ListGames returns a page of stored games.
func (s *service) ListGames(ctx context.Context, filter model.ListFilter) (*model.ListGamesResponse, error) {
	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, model.ErrInvalidQuery
	}
	if filter.Limit == 0 {
		filter.Limit = DefaultLimit
	}
	if filter.Limit > MaxLimit {
		filter.Limit = MaxLimit
	}

	games, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Errorw("ListGames failed", "error", err)
		return nil, err
	}

	return &model.ListGamesResponse{Games: games, Total: total}, nil
}
