// Package model provides the typed records that flow through the game cleaning pipeline.
package model

import "time"

// Source table names. They match the file stems (CSV) and table names (SQLite) of the dataset.
const (
	SourceGameInfo    = "game_info"
	SourceGameSummary = "game_summary"
	SourceTeam        = "team"
	SourceLineScore   = "line_score"
)

// Field is a pass-through column carried from a source into the export.
// A nil Value is a null cell.
type Field struct {
	Name  string
	Value *string
}

// Fields is an ordered list of pass-through columns.
type Fields []Field

// Get returns the value of the named field.
func (f Fields) Get(name string) (*string, bool) {
	for _, field := range f {
		if field.Name == name {
			return field.Value, true
		}
	}
	return nil, false
}

// Names returns the field names in order.
func (f Fields) Names() []string {
	names := make([]string, len(f))
	for i, field := range f {
		names[i] = field.Name
	}
	return names
}

// Schema is the ordered header of a loaded source.
type Schema []string

// Has reports whether the schema contains the column.
func (s Schema) Has(column string) bool {
	for _, c := range s {
		if c == column {
			return true
		}
	}
	return false
}

// GameInfo is a raw row of the game metadata source.
type GameInfo struct {
	GameID        string
	GameDate      *time.Time
	Attendance    *float64
	GameTime      *string
	HomeTeamID    *string
	VisitorTeamID *string
	Extra         Fields
}

// GameSummary is a raw row of the game summary source.
type GameSummary struct {
	GameID        string
	HomeTeamID    *string
	VisitorTeamID *string
	Extra         Fields
}

// Team is a raw row of the team directory.
type Team struct {
	ID           string
	FullName     *string
	Abbreviation *string
	Extra        Fields
}

// LineScore is a raw row of the optional line score source.
type LineScore struct {
	GameID     string
	TeamIDHome *string
	TeamIDAway *string
	PtsHome    *float64
	PtsAway    *float64
}

// Sources holds everything the loader produced for one run.
// LineScores is nil when the optional line score source could not be used.
type Sources struct {
	GameInfo       []GameInfo
	GameInfoSchema Schema

	GameSummaries     []GameSummary
	GameSummarySchema Schema

	Teams      []Team
	TeamSchema Schema

	LineScores []LineScore

	// Warnings collects recoverable problems, e.g. ErrOptionalSourceMissing.
	Warnings []error
}

// HasLineScores reports whether the optional line score source was loaded.
func (s *Sources) HasLineScores() bool {
	return s.LineScores != nil
}
