//go:build e2e
// +build e2e

package e2e

import (
	"encoding/json"
	"net/http"
	"path/filepath"

	"github.com/stretchr/testify/require"

	"github.com/festy23/nba_pipeline/internal/config"
	dbConfig "github.com/festy23/nba_pipeline/internal/database/config"
	"github.com/festy23/nba_pipeline/internal/database/migrate"
	gameModel "github.com/festy23/nba_pipeline/internal/game/model"
	gameRepository "github.com/festy23/nba_pipeline/internal/game/repository"
	gameService "github.com/festy23/nba_pipeline/internal/game/service"
	"github.com/festy23/nba_pipeline/internal/health"
	"github.com/festy23/nba_pipeline/internal/pipeline"
	statsModel "github.com/festy23/nba_pipeline/internal/statistics/model"
)

var fixtures = map[string]string{
	"game_info.csv": "game_id,game_date,attendance,game_time,home_team_id,visitor_team_id\n" +
		"0021000001,2010-10-26,18997,2:30,1610612747,1610612738\n" +
		"0021000001,2010-10-26,18997,2:30,1610612747,1610612738\n" +
		"0021000002,2011-04-16,,,1610612738,1610612755\n" +
		"0020800001,2008-11-01,17000,2:10,1610612755,1610612747\n",
	"game_summary.csv": "game_id,home_team_id,visitor_team_id,live_period\n" +
		"0021000001,1610612747,1610612738,4\n" +
		"0021000002,1610612738,1610612755,4\n",
	"team.csv": "id,full_name,abbreviation,city\n" +
		"1610612747,Los Angeles Lakers,LAL,Los Angeles\n" +
		"1610612738,Boston Celtics,BOS,Boston\n" +
		"1610612755,Philadelphia 76ers,PHI,Philadelphia\n",
	"line_score.csv": "game_id,team_id_home,team_id_away,pts_home,pts_away\n" +
		"0021000001,1610612747,1610612738,100,90\n",
}

func (s *E2ETestSuite) runPipeline() *pipeline.Result {
	cfg := config.PipelineConfig{
		DataRoot:     s.dataRoot,
		SourceFormat: config.SourceFormatCSV,
		OutputDir:    filepath.Join(s.T().TempDir(), "processed"),
		MinYear:      2010,
		MaxYear:      2023,
		TopTeams:     10,
	}
	store := gameService.New(gameRepository.New(s.db, s.logger), s.db, s.logger)
	p, err := pipeline.NewFromConfig(cfg, store, s.logger)
	s.Require().NoError(err)

	result, err := p.Run(s.ctx)
	s.Require().NoError(err)
	return result
}

func (s *E2ETestSuite) getJSON(path string, wantStatus int, dest any) {
	resp, err := s.httpClient.Get(s.server.URL + path)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Require().Equal(wantStatus, resp.StatusCode)
	if dest != nil {
		require.NoError(s.T(), json.NewDecoder(resp.Body).Decode(dest))
	}
}

func (s *E2ETestSuite) TestPipeline_PublishesToPostgres() {
	result := s.runPipeline()
	s.Len(result.Games, 2)

	var list gameModel.ListGamesResponse
	s.getJSON("/games", http.StatusOK, &list)
	s.Equal(int64(2), list.Total)
	s.Equal("0021000001", list.Games[0].GameID)
	s.Require().NotNil(list.Games[0].HomeWin)
	s.Equal(1, *list.Games[0].HomeWin)
	s.True(list.Games[0].IsRivalry)

	var game gameModel.GameRow
	s.getJSON("/games/0021000002", http.StatusOK, &game)
	s.Equal("BOS", *game.HomeTeamAbbr)
	s.Equal(0.0, game.Attendance)
	s.Equal("Unknown", game.GameTime)
	s.Nil(game.HomeWin)

	var byTeam gameModel.ListGamesResponse
	s.getJSON("/games?team=phi", http.StatusOK, &byTeam)
	s.Equal(int64(1), byTeam.Total)

	var summary statsModel.RunSummaryResponse
	s.getJSON("/statistics/summary", http.StatusOK, &summary)
	s.Equal(result.RunID, summary.RunID)
	s.Equal(2, summary.Summary.TotalGames)
	s.Equal(3, summary.Summary.Teams)
	s.Equal("2010-10-26 to 2011-04-16", summary.Summary.DateRange)

	var status health.Response
	s.getJSON("/health", http.StatusOK, &status)
	s.Equal("ok", status.Status)
	s.Equal(result.RunID, status.LastRunID)
}

func (s *E2ETestSuite) TestPipeline_RerunReplacesGames() {
	first := s.runPipeline()
	second := s.runPipeline()
	s.NotEqual(first.RunID, second.RunID)

	var count int64
	s.Require().NoError(s.db.Model(&gameModel.GameRow{}).Count(&count).Error)
	s.Equal(int64(2), count)

	var runs int64
	s.Require().NoError(s.db.Model(&statsModel.Run{}).Count(&runs).Error)
	s.Equal(int64(2), runs)

	var game gameModel.GameRow
	s.getJSON("/games/0021000001", http.StatusOK, &game)
	s.Equal(second.RunID, game.RunID)
}

func (s *E2ETestSuite) TestEmptyStore() {
	s.getJSON("/statistics/summary", http.StatusNotFound, nil)
	s.getJSON("/games/0021000001", http.StatusNotFound, nil)

	var list gameModel.ListGamesResponse
	s.getJSON("/games", http.StatusOK, &list)
	s.Empty(list.Games)
}

func (s *E2ETestSuite) TestMigrationsAreIdempotent() {
	s.Require().NoError(migrate.Migrate(s.db, dbConfig.DriverPostgres))
}
