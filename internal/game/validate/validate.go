// Package validate computes read-only data-quality diagnostics for cleaned games.
package validate

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/festy23/nba_pipeline/internal/game/model"
)

// DefaultTopTeams is the number of home teams listed in the distribution.
const DefaultTopTeams = 10

// SeasonCount is the number of games in one season.
type SeasonCount struct {
	Season int `json:"season"`
	Games  int `json:"games"`
}

// TeamCount is the number of home games of one team.
type TeamCount struct {
	Abbreviation string `json:"abbreviation"`
	Games        int    `json:"games"`
}

// Report holds the diagnostic counters. It never signals an error.
type Report struct {
	Total                int           `json:"total"`
	MissingGameDate      int           `json:"missing_game_date"`
	MissingHomeTeamID    int           `json:"missing_home_team_id"`
	MissingVisitorTeamID int           `json:"missing_visitor_team_id"`
	GamesPerSeason       []SeasonCount `json:"games_per_season"`
	TopHomeTeams         []TeamCount   `json:"top_home_teams"`
	// HomeWinRate is nil when no game has an outcome.
	HomeWinRate *float64 `json:"home_win_rate,omitempty"`
}

// Validate inspects games without modifying them.
func Validate(games []model.Game, topN int) Report {
	report := Report{Total: len(games)}

	seasons := make(map[int]int)
	teams := make(map[string]int)
	var wins, decided int

	for i := range games {
		g := &games[i]
		if g.GameDate.IsZero() {
			report.MissingGameDate++
		} else {
			seasons[g.Season]++
		}
		if g.HomeTeamID == nil {
			report.MissingHomeTeamID++
		}
		if g.VisitorTeamID == nil {
			report.MissingVisitorTeamID++
		}
		if abbr := g.HomeAbbr(); abbr != "" {
			teams[abbr]++
		}
		if g.Outcome != nil {
			decided++
			wins += g.Outcome.HomeWin
		}
	}

	report.GamesPerSeason = make([]SeasonCount, 0, len(seasons))
	for season, n := range seasons {
		report.GamesPerSeason = append(report.GamesPerSeason, SeasonCount{Season: season, Games: n})
	}
	sort.Slice(report.GamesPerSeason, func(i, j int) bool {
		return report.GamesPerSeason[i].Season < report.GamesPerSeason[j].Season
	})

	report.TopHomeTeams = make([]TeamCount, 0, len(teams))
	for abbr, n := range teams {
		report.TopHomeTeams = append(report.TopHomeTeams, TeamCount{Abbreviation: abbr, Games: n})
	}
	sort.Slice(report.TopHomeTeams, func(i, j int) bool {
		a, b := report.TopHomeTeams[i], report.TopHomeTeams[j]
		if a.Games != b.Games {
			return a.Games > b.Games
		}
		return a.Abbreviation < b.Abbreviation
	})
	if topN >= 0 && len(report.TopHomeTeams) > topN {
		report.TopHomeTeams = report.TopHomeTeams[:topN]
	}

	if decided > 0 {
		rate := float64(wins) / float64(decided)
		report.HomeWinRate = &rate
	}

	return report
}

// Log writes the report. Verbose runs log the distributions at info level, others at debug.
func (r Report) Log(logger *zap.SugaredLogger, verbose bool) {
	logger.Infow("validation completed",
		"games", r.Total,
		"missing_dates", r.MissingGameDate,
		"missing_home_team_ids", r.MissingHomeTeamID,
		"missing_away_team_ids", r.MissingVisitorTeamID,
	)

	detail := logger.Debugw
	if verbose {
		detail = logger.Infow
	}
	for _, s := range r.GamesPerSeason {
		detail("games per season", "season", s.Season, "games", s.Games)
	}
	for _, t := range r.TopHomeTeams {
		detail("games per home team", "team", t.Abbreviation, "games", t.Games)
	}
	if r.HomeWinRate != nil {
		detail("home team win rate", "rate", math.Round(*r.HomeWinRate*1000)/1000)
	}
}
