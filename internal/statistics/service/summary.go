package service

import (
	"fmt"
	"strings"

	gameModel "github.com/festy23/nba_pipeline/internal/game/model"
	"github.com/festy23/nba_pipeline/internal/statistics/model"
)

const (
	reportTitle  = "NBA Game Data Summary"
	notAvailable = "n/a"
	dateLayout   = "2006-01-02"
)

// Summarize computes the aggregate statistics of the cleaned games.
func Summarize(games []gameModel.Game) model.Summary {
	summary := model.Summary{
		TotalGames: len(games),
		DateRange:  notAvailable,
	}

	seasons := make(map[int]struct{})
	teams := make(map[string]struct{})
	var wins, decided int
	var first, last int

	for i := range games {
		g := &games[i]
		if g.GameDate.Before(games[first].GameDate) {
			first = i
		}
		if g.GameDate.After(games[last].GameDate) {
			last = i
		}
		seasons[g.Season] = struct{}{}
		if abbr := g.HomeAbbr(); abbr != "" {
			teams[abbr] = struct{}{}
		}
		if abbr := g.AwayAbbr(); abbr != "" {
			teams[abbr] = struct{}{}
		}
		if g.AttendanceImputed {
			summary.MissingAttendance++
		}
		if g.IsWeekend {
			summary.WeekendGames++
		}
		if g.IsPlayoffMonth {
			summary.PlayoffMonthGames++
		}
		if g.IsRivalry {
			summary.RivalryGames++
		}
		if g.Outcome != nil {
			decided++
			wins += g.Outcome.HomeWin
		}
	}

	if len(games) > 0 {
		summary.DateRange = fmt.Sprintf("%s to %s",
			games[first].GameDate.Format(dateLayout), games[last].GameDate.Format(dateLayout))
	}
	summary.Seasons = len(seasons)
	summary.Teams = len(teams)
	if decided > 0 {
		rate := float64(wins) / float64(decided)
		summary.HomeWinRate = &rate
	}

	return summary
}

// FormatReport renders the summary as the plain-text report, one labeled metric per line.
func FormatReport(s model.Summary) string {
	winRate := notAvailable
	if s.HomeWinRate != nil {
		winRate = fmt.Sprintf("%.3f", *s.HomeWinRate)
	}

	var b strings.Builder
	b.WriteString(reportTitle + "\n")
	b.WriteString(strings.Repeat("=", 20) + "\n")
	fmt.Fprintf(&b, "Total games: %d\n", s.TotalGames)
	fmt.Fprintf(&b, "Date range: %s\n", s.DateRange)
	fmt.Fprintf(&b, "Seasons: %d\n", s.Seasons)
	fmt.Fprintf(&b, "Teams: %d\n", s.Teams)
	fmt.Fprintf(&b, "Missing attendance: %d\n", s.MissingAttendance)
	fmt.Fprintf(&b, "Weekend games: %d\n", s.WeekendGames)
	fmt.Fprintf(&b, "Playoff month games: %d\n", s.PlayoffMonthGames)
	fmt.Fprintf(&b, "Rivalry games: %d\n", s.RivalryGames)
	fmt.Fprintf(&b, "Home win rate: %s\n", winRate)
	return b.String()
}
