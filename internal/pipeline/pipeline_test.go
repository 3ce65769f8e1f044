package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/festy23/nba_pipeline/internal/config"
	dbConfig "github.com/festy23/nba_pipeline/internal/database/config"
	"github.com/festy23/nba_pipeline/internal/database/migrate"
	"github.com/festy23/nba_pipeline/internal/game/model"
	gameRepository "github.com/festy23/nba_pipeline/internal/game/repository"
	gameService "github.com/festy23/nba_pipeline/internal/game/service"
	"github.com/festy23/nba_pipeline/internal/output"
	statsModel "github.com/festy23/nba_pipeline/internal/statistics/model"
	statsRepository "github.com/festy23/nba_pipeline/internal/statistics/repository"
)

const (
	gameInfoCSV = `game_id,game_date,attendance,game_time,home_team_id,visitor_team_id
0020900001,2009-10-27,17000,2:10,1610612747,1610612738
0021000001,2010-10-26,18997,2:30,1610612747,1610612738
0021000001,2010-10-26,1,2:30,1610612747,1610612738
0021000002,2011-04-16,,,1610612738,1610612755
0021000003,,15000,2:00,1610612738,1610612747
`
	gameSummaryCSV = `game_id,live_period
0021000001,4
0021000002,4
`
	teamCSV = `id,full_name,abbreviation,city
1610612747,Los Angeles Lakers,LAL,Los Angeles
1610612738,Boston Celtics,BOS,Boston
1610612755,Philadelphia 76ers,PHI,Philadelphia
`
	lineScoreCSV = `game_id,team_id_home,team_id_away,pts_home,pts_away
0021000001,1610612747,1610612738,100,90
`
)

// MockStore is a mock implementation of Store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Publish(ctx context.Context, run *statsModel.Run, games []model.Game) error {
	args := m.Called(ctx, run, games)
	return args.Error(0)
}

func writeSources(t *testing.T, withLineScore bool) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		model.SourceGameInfo:    gameInfoCSV,
		model.SourceGameSummary: gameSummaryCSV,
		model.SourceTeam:        teamCSV,
	}
	if withLineScore {
		files[model.SourceLineScore] = lineScoreCSV
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name+".csv"), []byte(content), 0o644))
	}
	return dir
}

func testConfig(t *testing.T, dataRoot string) config.PipelineConfig {
	t.Helper()
	return config.PipelineConfig{
		DataRoot:     dataRoot,
		SourceFormat: config.SourceFormatCSV,
		OutputDir:    filepath.Join(t.TempDir(), "processed"),
		MinYear:      2010,
		MaxYear:      2023,
		TopTeams:     10,
	}
}

func TestPipeline_Run_WithoutLineScore(t *testing.T) {
	cfg := testConfig(t, writeSources(t, false))
	p, err := NewFromConfig(cfg, nil, zap.NewNop().Sugar())
	require.NoError(t, err)

	result, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Stats{Reconciled: 5, RemovedByDate: 2, DuplicatesRemoved: 1, Cleaned: 2}, result.Stats)
	require.Len(t, result.Games, 2)

	first := result.Games[0]
	assert.Equal(t, "0021000001", first.GameID)
	assert.Equal(t, 18997.0, first.Attendance)
	assert.Equal(t, "LAL", first.HomeAbbr())
	assert.Equal(t, "BOS", first.AwayAbbr())
	assert.Equal(t, 1, first.DayOfWeek)
	assert.True(t, first.IsRivalry)
	assert.Nil(t, first.Outcome)

	second := result.Games[1]
	assert.True(t, second.AttendanceImputed)
	assert.Equal(t, "Unknown", second.GameTime)
	assert.True(t, second.IsWeekend)
	assert.True(t, second.IsPlayoffMonth)
	assert.True(t, second.IsRivalry)

	assert.Equal(t, 2, result.Summary.TotalGames)
	assert.Equal(t, "2010-10-26 to 2011-04-16", result.Summary.DateRange)
	assert.Equal(t, 3, result.Summary.Teams)
	assert.Equal(t, 1, result.Summary.MissingAttendance)
	assert.Equal(t, 2, result.Summary.RivalryGames)
	assert.Nil(t, result.Summary.HomeWinRate)
	assert.Nil(t, result.Report.HomeWinRate)

	assert.FileExists(t, result.Artifacts.GamesPath)
	report, err := os.ReadFile(result.Artifacts.SummaryPath)
	require.NoError(t, err)
	assert.Contains(t, string(report), "Home win rate: n/a\n")
	assert.NotEmpty(t, result.RunID)
}

func TestPipeline_Run_WithLineScore(t *testing.T) {
	cfg := testConfig(t, writeSources(t, true))
	p, err := NewFromConfig(cfg, nil, zap.NewNop().Sugar())
	require.NoError(t, err)

	result, err := p.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Games, 2)
	require.NotNil(t, result.Games[0].Outcome)
	assert.Equal(t, 1, result.Games[0].Outcome.HomeWin)
	assert.Equal(t, 190.0, result.Games[0].Outcome.TotalPoints)
	assert.Equal(t, 10.0, result.Games[0].Outcome.PointDifference)
	assert.Nil(t, result.Games[1].Outcome)
	require.NotNil(t, result.Summary.HomeWinRate)
	assert.Equal(t, 1.0, *result.Summary.HomeWinRate)
}

func TestPipeline_Run_NarrowWindow(t *testing.T) {
	cfg := testConfig(t, writeSources(t, false))
	cfg.MinYear, cfg.MaxYear = 2011, 2011
	p, err := NewFromConfig(cfg, nil, zap.NewNop().Sugar())
	require.NoError(t, err)

	result, err := p.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Games, 1)
	assert.Equal(t, "0021000002", result.Games[0].GameID)
}

func TestPipeline_Run_MissingMandatorySource(t *testing.T) {
	dataRoot := writeSources(t, true)
	require.NoError(t, os.Remove(filepath.Join(dataRoot, "team.csv")))
	cfg := testConfig(t, dataRoot)
	p, err := NewFromConfig(cfg, nil, zap.NewNop().Sugar())
	require.NoError(t, err)

	_, err = p.Run(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrSourceUnavailable)
	assert.NoDirExists(t, cfg.OutputDir)
}

func TestPipeline_Run_Store(t *testing.T) {
	t.Run("store receives the run", func(t *testing.T) {
		store := new(MockStore)
		store.On("Publish", mock.Anything, mock.MatchedBy(func(run *statsModel.Run) bool {
			return run.TotalGames == 2 && run.MinYear == 2010 && run.MaxYear == 2023
		}), mock.MatchedBy(func(games []model.Game) bool {
			return len(games) == 2
		})).Return(nil)

		cfg := testConfig(t, writeSources(t, false))
		p, err := NewFromConfig(cfg, store, zap.NewNop().Sugar())
		require.NoError(t, err)

		result, err := p.Run(context.Background())

		require.NoError(t, err)
		assert.FileExists(t, result.Artifacts.GamesPath)
		store.AssertExpectations(t)
	})

	t.Run("store failure leaves no artifacts", func(t *testing.T) {
		store := new(MockStore)
		store.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("connection reset"))

		cfg := testConfig(t, writeSources(t, false))
		p, err := NewFromConfig(cfg, store, zap.NewNop().Sugar())
		require.NoError(t, err)

		_, err = p.Run(context.Background())

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrPersistenceFailure)
		var stageErr *model.StageError
		require.ErrorAs(t, err, &stageErr)
		assert.Equal(t, StoreSource, stageErr.Source)

		entries, err := os.ReadDir(cfg.OutputDir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("sqlite store", func(t *testing.T) {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		require.NoError(t, err)
		sqlDB, err := db.DB()
		require.NoError(t, err)
		sqlDB.SetMaxOpenConns(1)
		defer sqlDB.Close()
		require.NoError(t, migrate.Migrate(db, dbConfig.DriverSQLite))

		logger := zap.NewNop().Sugar()
		store := gameService.New(gameRepository.New(db, logger), db, logger)
		cfg := testConfig(t, writeSources(t, true))
		p, err := NewFromConfig(cfg, store, logger)
		require.NoError(t, err)

		result, err := p.Run(context.Background())
		require.NoError(t, err)

		games, total, err := gameRepository.New(db, logger).List(context.Background(), model.ListFilter{Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Equal(t, "0021000001", games[0].GameID)
		require.NotNil(t, games[0].HomeWin)

		run, err := statsRepository.New(db, logger).GetLatestRun(context.Background())
		require.NoError(t, err)
		assert.Equal(t, result.RunID, run.RunID)
		assert.Equal(t, 2, run.TotalGames)
	})
}

func TestNewFromConfig(t *testing.T) {
	logger := zap.NewNop().Sugar()

	t.Run("invalid config", func(t *testing.T) {
		cfg := testConfig(t, "data")
		cfg.SourceFormat = "parquet"

		_, err := NewFromConfig(cfg, nil, logger)
		assert.Error(t, err)
	})

	t.Run("bad rivalries file", func(t *testing.T) {
		cfg := testConfig(t, "data")
		cfg.RivalriesFile = filepath.Join(t.TempDir(), "absent.yaml")

		_, err := NewFromConfig(cfg, nil, logger)
		assert.Error(t, err)
	})

	t.Run("custom rivalries", func(t *testing.T) {
		cfg := testConfig(t, writeSources(t, false))
		cfg.RivalriesFile = filepath.Join(t.TempDir(), "rivalries.yaml")
		require.NoError(t, os.WriteFile(cfg.RivalriesFile, []byte("rivalries:\n  - {a: BOS, b: PHI}\n"), 0o644))
		p, err := NewFromConfig(cfg, nil, logger)
		require.NoError(t, err)

		result, err := p.Run(context.Background())
		require.NoError(t, err)

		assert.False(t, result.Games[0].IsRivalry)
		assert.True(t, result.Games[1].IsRivalry)
	})

	t.Run("sqlite source", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nba.sqlite")
		db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
		require.NoError(t, err)
		for _, stmt := range []string{
			`CREATE TABLE game_info (game_id TEXT, game_date TIMESTAMP, attendance REAL, game_time TEXT, home_team_id INTEGER, visitor_team_id INTEGER)`,
			`INSERT INTO game_info VALUES ('0021000001', '2010-10-26 00:00:00', 18997, '2:30', 1610612747, 1610612738)`,
			`CREATE TABLE game_summary (game_id TEXT, live_period INTEGER)`,
			`INSERT INTO game_summary VALUES ('0021000001', 4)`,
			`CREATE TABLE team (id INTEGER, full_name TEXT, abbreviation TEXT)`,
			`INSERT INTO team VALUES (1610612747, 'Los Angeles Lakers', 'LAL'), (1610612738, 'Boston Celtics', 'BOS')`,
		} {
			require.NoError(t, db.Exec(stmt).Error)
		}
		sqlDB, err := db.DB()
		require.NoError(t, err)
		require.NoError(t, sqlDB.Close())

		cfg := testConfig(t, "")
		cfg.SourceFormat = config.SourceFormatSQLite
		cfg.SQLitePath = path
		p, err := NewFromConfig(cfg, nil, logger)
		require.NoError(t, err)

		result, err := p.Run(context.Background())
		require.NoError(t, err)

		require.Len(t, result.Games, 1)
		assert.Equal(t, "LAL", result.Games[0].HomeAbbr())
		assert.Equal(t, 2010, result.Games[0].Season)
		assert.True(t, result.Games[0].IsRivalry)
		assert.Nil(t, result.Games[0].Outcome)
		assert.Equal(t, filepath.Join(cfg.OutputDir, output.GamesFile), result.Artifacts.GamesPath)
	})
}
