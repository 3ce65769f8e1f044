// Package output persists the cleaned games export and the summary report.
package output

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/festy23/nba_pipeline/internal/game/model"
	statsModel "github.com/festy23/nba_pipeline/internal/statistics/model"
	"github.com/festy23/nba_pipeline/internal/statistics/service"
)

// Artifact file names inside the output directory.
const (
	GamesFile   = "clean_games.csv"
	SummaryFile = "data_summary.txt"
)

// Artifacts are the published output paths.
type Artifacts struct {
	GamesPath   string
	SummaryPath string
}

// Writer writes the export and the report into one directory.
type Writer struct {
	dir    string
	logger *zap.SugaredLogger
}

// NewWriter creates a writer for the given output directory.
func NewWriter(dir string, logger *zap.SugaredLogger) *Writer {
	return &Writer{dir: dir, logger: logger}
}

// Staged holds fully written temporary artifacts that are not yet visible under their final names.
type Staged struct {
	games   string
	summary string
	final   Artifacts
	logger  *zap.SugaredLogger
}

// Write stages and commits both artifacts.
func (w *Writer) Write(games []model.Game, summary statsModel.Summary) (*Artifacts, error) {
	staged, err := w.Stage(games, summary)
	if err != nil {
		return nil, err
	}
	return staged.Commit()
}

// Stage writes both artifacts to temporary files in the output directory.
// On failure nothing is left behind.
func (w *Writer) Stage(games []model.Game, summary statsModel.Summary) (*Staged, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return nil, persistenceError(w.dir, fmt.Errorf("failed to create output directory: %w", err))
	}

	gamesTmp, err := writeTemp(w.dir, GamesFile, func(f *os.File) error {
		return writeGames(f, games)
	})
	if err != nil {
		return nil, persistenceError(GamesFile, err)
	}

	summaryTmp, err := writeTemp(w.dir, SummaryFile, func(f *os.File) error {
		_, err := f.WriteString(service.FormatReport(summary))
		return err
	})
	if err != nil {
		os.Remove(gamesTmp)
		return nil, persistenceError(SummaryFile, err)
	}

	w.logger.Debugw("artifacts staged", "games_tmp", gamesTmp, "summary_tmp", summaryTmp)
	return &Staged{
		games:   gamesTmp,
		summary: summaryTmp,
		final: Artifacts{
			GamesPath:   filepath.Join(w.dir, GamesFile),
			SummaryPath: filepath.Join(w.dir, SummaryFile),
		},
		logger: w.logger,
	}, nil
}

// Commit moves both staged files into place. If the second rename fails the first
// artifact is removed again so the run never leaves only one of them.
func (s *Staged) Commit() (*Artifacts, error) {
	if err := os.Rename(s.games, s.final.GamesPath); err != nil {
		s.Discard()
		return nil, persistenceError(GamesFile, fmt.Errorf("failed to publish: %w", err))
	}
	if err := os.Rename(s.summary, s.final.SummaryPath); err != nil {
		os.Remove(s.final.GamesPath)
		s.Discard()
		return nil, persistenceError(SummaryFile, fmt.Errorf("failed to publish: %w", err))
	}

	s.logger.Infow("artifacts written", "games", s.final.GamesPath, "summary", s.final.SummaryPath)
	artifacts := s.final
	return &artifacts, nil
}

// Discard removes the temporary files.
func (s *Staged) Discard() {
	for _, path := range []string{s.games, s.summary} {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.logger.Warnw("failed to remove staged artifact", "path", path, "error", err)
		}
	}
}

// writeTemp creates a temporary file next to the final artifact, fills it and closes it.
func writeTemp(dir, name string, fill func(*os.File) error) (string, error) {
	f, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	path := f.Name()

	if err := fill(f); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to sync: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close: %w", err)
	}
	return path, nil
}

func writeGames(f *os.File, games []model.Game) error {
	columns := layout(games)

	w := csv.NewWriter(f)
	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = c.name
	}
	if err := w.Write(header); err != nil {
		return err
	}

	record := make([]string, len(columns))
	for i := range games {
		for j, c := range columns {
			record[j] = c.value(&games[i])
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func persistenceError(artifact string, err error) error {
	return model.NewStageError(model.StagePersist, artifact, model.ErrPersistenceFailure, err)
}
