package model

import "errors"

var (
	// ErrGameNotFound indicates that the requested game is not stored.
	ErrGameNotFound = errors.New("game not found")
	// ErrInvalidQuery indicates an invalid list filter.
	ErrInvalidQuery = errors.New("invalid query")
)

// DateLayout is the calendar date format used in exports and storage.
const DateLayout = "2006-01-02"

// GameRow is the stored form of a cleaned game.
// Matches the games table schema; pass-through source columns are only exported to CSV.
type GameRow struct {
	GameID          string   `gorm:"primaryKey;column:game_id;type:varchar(64)" json:"game_id"`
	RunID           string   `gorm:"column:run_id;type:varchar(36);not null" json:"run_id"`
	GameDate        string   `gorm:"column:game_date;type:varchar(10);not null" json:"game_date"`
	HomeTeamID      *string  `gorm:"column:home_team_id" json:"home_team_id"`
	VisitorTeamID   *string  `gorm:"column:visitor_team_id" json:"visitor_team_id"`
	HomeTeamName    *string  `gorm:"column:home_team_name" json:"home_team_name"`
	HomeTeamAbbr    *string  `gorm:"column:home_team_abbr" json:"home_team_abbr"`
	AwayTeamName    *string  `gorm:"column:away_team_name" json:"away_team_name"`
	AwayTeamAbbr    *string  `gorm:"column:away_team_abbr" json:"away_team_abbr"`
	Attendance      float64  `gorm:"column:attendance;not null" json:"attendance"`
	GameTime        string   `gorm:"column:game_time;not null" json:"game_time"`
	PtsHome         *float64 `gorm:"column:pts_home" json:"pts_home"`
	PtsAway         *float64 `gorm:"column:pts_away" json:"pts_away"`
	Season          int      `gorm:"column:season;not null" json:"season"`
	Month           int      `gorm:"column:month;not null" json:"month"`
	DayOfWeek       int      `gorm:"column:day_of_week;not null" json:"day_of_week"`
	IsWeekend       bool     `gorm:"column:is_weekend;not null" json:"is_weekend"`
	IsPlayoffMonth  bool     `gorm:"column:is_playoff_month;not null" json:"is_playoff_month"`
	IsRivalry       bool     `gorm:"column:is_rivalry;not null" json:"is_rivalry"`
	HomeWin         *int     `gorm:"column:home_win" json:"home_win"`
	TotalPoints     *float64 `gorm:"column:total_points" json:"total_points"`
	PointDifference *float64 `gorm:"column:point_difference" json:"point_difference"`
}

// TableName specifies the table name for GORM.
func (GameRow) TableName() string {
	return "games"
}

// NewGameRow converts a cleaned game into its stored form.
func NewGameRow(runID string, g *Game) GameRow {
	row := GameRow{
		GameID:         g.GameID,
		RunID:          runID,
		GameDate:       g.GameDate.Format(DateLayout),
		HomeTeamID:     g.HomeTeamID,
		VisitorTeamID:  g.VisitorTeamID,
		HomeTeamName:   g.HomeTeam.Name,
		HomeTeamAbbr:   g.HomeTeam.Abbreviation,
		AwayTeamName:   g.AwayTeam.Name,
		AwayTeamAbbr:   g.AwayTeam.Abbreviation,
		Attendance:     g.Attendance,
		GameTime:       g.GameTime,
		PtsHome:        g.PtsHome,
		PtsAway:        g.PtsAway,
		Season:         g.Season,
		Month:          g.Month,
		DayOfWeek:      g.DayOfWeek,
		IsWeekend:      g.IsWeekend,
		IsPlayoffMonth: g.IsPlayoffMonth,
		IsRivalry:      g.IsRivalry,
	}
	if g.Outcome != nil {
		homeWin := g.Outcome.HomeWin
		total := g.Outcome.TotalPoints
		diff := g.Outcome.PointDifference
		row.HomeWin = &homeWin
		row.TotalPoints = &total
		row.PointDifference = &diff
	}
	return row
}

// ListFilter narrows the stored games returned by the read API.
type ListFilter struct {
	Season *int
	// Team matches the home or away abbreviation.
	Team   string
	Limit  int
	Offset int
}

// ListGamesResponse represents a page of stored games.
type ListGamesResponse struct {
	Games []GameRow `json:"games"`
	Total int64     `json:"total"`
}
