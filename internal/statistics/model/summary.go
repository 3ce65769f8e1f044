// Package model provides the summary statistics types of a pipeline run.
package model

import (
	"errors"
	"time"
)

// ErrRunNotFound indicates that no pipeline run has been stored yet.
var ErrRunNotFound = errors.New("pipeline run not found")

// Summary is the fixed-shape aggregate computed over the cleaned games.
type Summary struct {
	TotalGames        int    `json:"total_games"`
	DateRange         string `json:"date_range"`
	Seasons           int    `json:"seasons"`
	Teams             int    `json:"teams"`
	MissingAttendance int    `json:"missing_attendance"`
	WeekendGames      int    `json:"weekend_games"`
	PlayoffMonthGames int    `json:"playoff_month_games"`
	RivalryGames      int    `json:"rivalry_games"`
	// HomeWinRate is nil when no game has both scores.
	HomeWinRate *float64 `json:"home_win_rate"`
}

// Run is a stored pipeline run with its summary.
// Matches the pipeline_runs table schema.
type Run struct {
	RunID             string    `gorm:"primaryKey;column:run_id;type:varchar(36)"`
	MinYear           int       `gorm:"column:min_year;not null"`
	MaxYear           int       `gorm:"column:max_year;not null"`
	TotalGames        int       `gorm:"column:total_games;not null"`
	DateRange         string    `gorm:"column:date_range;not null"`
	Seasons           int       `gorm:"column:seasons;not null"`
	Teams             int       `gorm:"column:teams;not null"`
	MissingAttendance int       `gorm:"column:missing_attendance;not null"`
	WeekendGames      int       `gorm:"column:weekend_games;not null"`
	PlayoffMonthGames int       `gorm:"column:playoff_month_games;not null"`
	RivalryGames      int       `gorm:"column:rivalry_games;not null"`
	HomeWinRate       *float64  `gorm:"column:home_win_rate"`
	CreatedAt         time.Time `gorm:"column:created_at;not null"`
}

// TableName specifies the table name for GORM.
func (Run) TableName() string {
	return "pipeline_runs"
}

// NewRun builds a storable run from a summary.
func NewRun(runID string, minYear, maxYear int, s Summary, createdAt time.Time) *Run {
	return &Run{
		RunID:             runID,
		MinYear:           minYear,
		MaxYear:           maxYear,
		TotalGames:        s.TotalGames,
		DateRange:         s.DateRange,
		Seasons:           s.Seasons,
		Teams:             s.Teams,
		MissingAttendance: s.MissingAttendance,
		WeekendGames:      s.WeekendGames,
		PlayoffMonthGames: s.PlayoffMonthGames,
		RivalryGames:      s.RivalryGames,
		HomeWinRate:       s.HomeWinRate,
		CreatedAt:         createdAt,
	}
}

// Summary returns the summary part of the run.
func (r *Run) Summary() Summary {
	return Summary{
		TotalGames:        r.TotalGames,
		DateRange:         r.DateRange,
		Seasons:           r.Seasons,
		Teams:             r.Teams,
		MissingAttendance: r.MissingAttendance,
		WeekendGames:      r.WeekendGames,
		PlayoffMonthGames: r.PlayoffMonthGames,
		RivalryGames:      r.RivalryGames,
		HomeWinRate:       r.HomeWinRate,
	}
}

// RunSummaryResponse represents the latest run in API responses.
type RunSummaryResponse struct {
	RunID     string    `json:"run_id"`
	MinYear   int       `json:"min_year"`
	MaxYear   int       `json:"max_year"`
	CreatedAt time.Time `json:"created_at"`
	Summary   Summary   `json:"summary"`
}
