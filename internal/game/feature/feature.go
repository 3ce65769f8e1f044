// Package feature derives calendar, outcome and context fields for reconciled games.
package feature

import (
	"time"

	"github.com/festy23/nba_pipeline/internal/game/model"
)

// UnknownGameTime replaces a missing game_time.
const UnknownGameTime = "Unknown"

// Deriver computes the derived fields of a game. It holds no mutable state.
type Deriver struct {
	rivalries RivalrySet
}

// NewDeriver creates a deriver using the given rivalry set.
func NewDeriver(rivalries RivalrySet) *Deriver {
	return &Deriver{rivalries: rivalries}
}

// DeriveAll derives every game, preserving order.
func (d *Deriver) DeriveAll(games []model.ReconciledGame) []model.Game {
	out := make([]model.Game, 0, len(games))
	for i := range games {
		out = append(out, d.Derive(games[i]))
	}
	return out
}

// Derive builds the cleaned record from a reconciled one.
func (d *Deriver) Derive(r model.ReconciledGame) model.Game {
	g := model.Game{
		GameID:        r.GameID,
		HomeTeamID:    r.HomeTeamID,
		VisitorTeamID: r.VisitorTeamID,
		InfoExtra:     r.InfoExtra,
		SummaryExtra:  r.SummaryExtra,
		HomeTeam:      r.HomeTeam,
		AwayTeam:      r.AwayTeam,
		PtsHome:       r.PtsHome,
		PtsAway:       r.PtsAway,
	}

	g.Attendance, g.AttendanceImputed = attendance(r.Attendance)
	g.GameTime = gameTime(r.GameTime)

	if r.GameDate != nil {
		g.GameDate = *r.GameDate
		g.Season = r.GameDate.Year()
		g.Month = int(r.GameDate.Month())
		g.DayOfWeek = DayOfWeek(*r.GameDate)
		g.IsWeekend = g.DayOfWeek == 5 || g.DayOfWeek == 6
		g.IsPlayoffMonth = g.Month >= 4 && g.Month <= 6
	}

	g.Outcome = Outcome(r.PtsHome, r.PtsAway)
	g.IsRivalry = d.rivalries.Contains(g.HomeAbbr(), g.AwayAbbr())
	return g
}

// DayOfWeek numbers days from Monday = 0 to Sunday = 6.
func DayOfWeek(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// Outcome returns nil unless both scores are present.
func Outcome(ptsHome, ptsAway *float64) *model.Outcome {
	if ptsHome == nil || ptsAway == nil {
		return nil
	}
	o := &model.Outcome{
		TotalPoints:     *ptsHome + *ptsAway,
		PointDifference: *ptsHome - *ptsAway,
	}
	if *ptsHome > *ptsAway {
		o.HomeWin = 1
	}
	return o
}

func attendance(v *float64) (float64, bool) {
	if v == nil {
		return 0, true
	}
	return *v, false
}

func gameTime(v *string) string {
	if v == nil {
		return UnknownGameTime
	}
	return *v
}
