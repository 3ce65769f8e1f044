// Package pipeline runs the cleaning stages from source tables to published artifacts.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/festy23/nba_pipeline/internal/config"
	"github.com/festy23/nba_pipeline/internal/game/feature"
	"github.com/festy23/nba_pipeline/internal/game/filter"
	"github.com/festy23/nba_pipeline/internal/game/model"
	"github.com/festy23/nba_pipeline/internal/game/reconcile"
	"github.com/festy23/nba_pipeline/internal/game/source"
	"github.com/festy23/nba_pipeline/internal/game/validate"
	"github.com/festy23/nba_pipeline/internal/output"
	statsModel "github.com/festy23/nba_pipeline/internal/statistics/model"
	"github.com/festy23/nba_pipeline/internal/statistics/service"
)

// StoreSource names the database store in persistence errors.
const StoreSource = "store"

// Store receives the cleaned games of a run.
type Store interface {
	Publish(ctx context.Context, run *statsModel.Run, games []model.Game) error
}

// Stats counts records across the filtering stages.
type Stats struct {
	Reconciled        int `json:"reconciled"`
	RemovedByDate     int `json:"removed_by_date"`
	DuplicatesRemoved int `json:"duplicates_removed"`
	Cleaned           int `json:"cleaned"`
}

// Result is the outcome of a successful run.
type Result struct {
	RunID     string
	Games     []model.Game
	Report    validate.Report
	Summary   statsModel.Summary
	Artifacts *output.Artifacts
	Stats     Stats
}

// Pipeline wires the stages of one cleaning run.
type Pipeline struct {
	cfg     config.PipelineConfig
	loader  *source.Loader
	deriver *feature.Deriver
	writer  *output.Writer
	store   Store
	logger  *zap.SugaredLogger
	now     func() time.Time
}

// New creates a pipeline reading through reader. store may be nil, in which
// case only the file artifacts are written.
func New(
	cfg config.PipelineConfig,
	reader source.TableReader,
	rivalries feature.RivalrySet,
	store Store,
	logger *zap.SugaredLogger,
) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		loader:  source.NewLoader(reader, logger),
		deriver: feature.NewDeriver(rivalries),
		writer:  output.NewWriter(cfg.OutputDir, logger),
		store:   store,
		logger:  logger,
		now:     time.Now,
	}
}

// NewFromConfig creates a pipeline with the reader and rivalry set selected by cfg.
func NewFromConfig(cfg config.PipelineConfig, store Store, logger *zap.SugaredLogger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pairs, err := feature.LoadRivalries(cfg.RivalriesFile)
	if err != nil {
		return nil, err
	}

	var reader source.TableReader
	switch cfg.SourceFormat {
	case config.SourceFormatSQLite:
		reader = source.NewSQLiteReader(cfg.SourcePath())
	default:
		reader = source.NewCSVReader(cfg.SourcePath())
	}

	logger.Debugw("pipeline configured",
		"source_format", cfg.SourceFormat,
		"source", cfg.SourcePath(),
		"output_dir", cfg.OutputDir,
		"rivalries", len(pairs),
	)
	return New(cfg, reader, feature.NewRivalrySet(pairs), store, logger), nil
}

// Run executes one cleaning run. Artifacts and the store are published together:
// files are staged first, the store is written, then the files are moved into place.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	logger := p.logger.With("run_id", runID)
	start := time.Now()

	logger.Infow("pipeline started",
		"min_year", p.cfg.MinYear,
		"max_year", p.cfg.MaxYear,
	)

	src, err := p.loader.Load(ctx)
	if err != nil {
		logger.Errorw("loading sources failed", "error", err)
		return nil, err
	}

	reconciled := reconcile.Reconcile(src)
	windowed := filter.ByYear(reconciled, p.cfg.MinYear, p.cfg.MaxYear)
	unique := filter.Deduplicate(windowed)

	stats := Stats{
		Reconciled:        len(reconciled),
		RemovedByDate:     len(reconciled) - len(windowed),
		DuplicatesRemoved: len(windowed) - len(unique),
		Cleaned:           len(unique),
	}
	logger.Infow("games filtered",
		"reconciled", stats.Reconciled,
		"games_removed_by_date", stats.RemovedByDate,
		"duplicates_removed", stats.DuplicatesRemoved,
		"games", stats.Cleaned,
	)

	games := p.deriver.DeriveAll(unique)

	report := validate.Validate(games, p.cfg.TopTeams)
	report.Log(logger, p.cfg.Verbose)

	summary := service.Summarize(games)

	artifacts, err := p.publish(ctx, runID, games, summary)
	if err != nil {
		logger.Errorw("publishing failed", "error", err)
		return nil, err
	}

	logger.Infow("pipeline finished",
		"games", len(games),
		"games_file", artifacts.GamesPath,
		"summary_file", artifacts.SummaryPath,
		"duration", time.Since(start),
	)
	return &Result{
		RunID:     runID,
		Games:     games,
		Report:    report,
		Summary:   summary,
		Artifacts: artifacts,
		Stats:     stats,
	}, nil
}

func (p *Pipeline) publish(
	ctx context.Context,
	runID string,
	games []model.Game,
	summary statsModel.Summary,
) (*output.Artifacts, error) {
	staged, err := p.writer.Stage(games, summary)
	if err != nil {
		return nil, err
	}

	if p.store != nil {
		run := statsModel.NewRun(runID, p.cfg.MinYear, p.cfg.MaxYear, summary, p.now().UTC())
		if err := p.store.Publish(ctx, run, games); err != nil {
			staged.Discard()
			return nil, model.NewStageError(model.StagePersist, StoreSource, model.ErrPersistenceFailure,
				fmt.Errorf("failed to publish run: %w", err))
		}
	}

	return staged.Commit()
}
