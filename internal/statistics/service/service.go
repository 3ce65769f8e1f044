// Package service provides business logic layer for statistics module.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/festy23/nba_pipeline/internal/statistics/model"
	"github.com/festy23/nba_pipeline/internal/statistics/repository"
)

// Service defines the interface for statistics business logic operations.
type Service interface {
	// GetLatestSummary returns the summary of the most recent pipeline run.
	GetLatestSummary(ctx context.Context) (*model.RunSummaryResponse, error)
}

type service struct {
	repo   repository.Repository
	logger *zap.SugaredLogger
}

// New creates a new statistics service instance.
func New(repo repository.Repository, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		logger: logger,
	}
}

// GetLatestSummary returns the summary of the most recent pipeline run.
func (s *service) GetLatestSummary(ctx context.Context) (*model.RunSummaryResponse, error) {
	s.logger.Debugw("GetLatestSummary called")

	run, err := s.repo.GetLatestRun(ctx)
	if err != nil {
		s.logger.Errorw("GetLatestSummary failed", "error", err)
		return nil, err
	}

	s.logger.Infow("GetLatestSummary completed", "run_id", run.RunID, "total_games", run.TotalGames)
	return &model.RunSummaryResponse{
		RunID:     run.RunID,
		MinYear:   run.MinYear,
		MaxYear:   run.MaxYear,
		CreatedAt: run.CreatedAt,
		Summary:   run.Summary(),
	}, nil
}
