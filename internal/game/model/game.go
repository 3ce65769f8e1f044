package model

import "time"

// TeamInfo is one side's team directory data after enrichment.
// Extra field names are already side-prefixed (home_team_<col>, away_team_<col>).
type TeamInfo struct {
	Name         *string
	Abbreviation *string
	Extra        Fields
}

// ReconciledGame is one joined row of metadata, summary, team and line score data.
type ReconciledGame struct {
	GameID        string
	GameDate      *time.Time
	HomeTeamID    *string
	VisitorTeamID *string
	Attendance    *float64
	GameTime      *string

	// InfoExtra holds pass-through metadata columns; SummaryExtra holds summary columns,
	// suffixed with "_summary" when the name is already used by the metadata source.
	InfoExtra    Fields
	SummaryExtra Fields

	HomeTeam TeamInfo
	AwayTeam TeamInfo

	PtsHome *float64
	PtsAway *float64
}

// Outcome groups the fields that depend on both scores.
type Outcome struct {
	HomeWin         int
	TotalPoints     float64
	PointDifference float64
}

// Game is the cleaned, feature-augmented record written to the export.
type Game struct {
	GameID        string
	GameDate      time.Time
	HomeTeamID    *string
	VisitorTeamID *string

	Attendance        float64
	AttendanceImputed bool
	GameTime          string

	InfoExtra    Fields
	SummaryExtra Fields

	HomeTeam TeamInfo
	AwayTeam TeamInfo

	PtsHome *float64
	PtsAway *float64

	Season         int
	Month          int
	DayOfWeek      int
	IsWeekend      bool
	IsPlayoffMonth bool
	IsRivalry      bool

	// Outcome is nil unless both scores are present.
	Outcome *Outcome
}

// HomeAbbr returns the home team abbreviation or an empty string.
func (g *Game) HomeAbbr() string {
	if g.HomeTeam.Abbreviation == nil {
		return ""
	}
	return *g.HomeTeam.Abbreviation
}

// AwayAbbr returns the away team abbreviation or an empty string.
func (g *Game) AwayAbbr() string {
	if g.AwayTeam.Abbreviation == nil {
		return ""
	}
	return *g.AwayTeam.Abbreviation
}
