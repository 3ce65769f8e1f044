// Package repository provides data access layer for statistics module.
package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/nba_pipeline/internal/statistics/model"
)

// Repository defines the interface for pipeline run data access operations.
type Repository interface {
	// CreateRun stores a pipeline run summary.
	CreateRun(ctx context.Context, run *model.Run) error

	// GetLatestRun returns the most recently created run.
	GetLatestRun(ctx context.Context) (*model.Run, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new statistics repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{
		db:     db,
		logger: logger,
	}
}

// CreateRun stores a pipeline run summary.
func (r *repository) CreateRun(ctx context.Context, run *model.Run) error {
	r.logger.Debugw("CreateRun called", "run_id", run.RunID)

	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		r.logger.Errorw("CreateRun database error", "run_id", run.RunID, "error", err)
		return err
	}
	return nil
}

// GetLatestRun returns the most recently created run.
func (r *repository) GetLatestRun(ctx context.Context) (*model.Run, error) {
	r.logger.Debugw("GetLatestRun called")

	var run model.Run
	err := r.db.WithContext(ctx).
		Order("created_at DESC, run_id DESC").
		First(&run).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrRunNotFound
		}
		r.logger.Errorw("GetLatestRun database error", "error", err)
		return nil, err
	}

	r.logger.Debugw("GetLatestRun completed", "run_id", run.RunID)
	return &run, nil
}
