package config

import (
	"fmt"
	"path/filepath"
)

// Source formats understood by the loader.
const (
	SourceFormatCSV    = "csv"
	SourceFormatSQLite = "sqlite"
)

// PipelineConfig holds the cleaning pipeline configuration.
type PipelineConfig struct {
	// DataRoot is the directory holding the source tables.
	DataRoot string
	// SourceFormat selects CSV files or a SQLite database as input.
	SourceFormat string
	// SQLitePath is the database file for the sqlite format; defaults to DataRoot/nba.sqlite.
	SQLitePath string
	// OutputDir receives clean_games.csv and data_summary.txt.
	OutputDir string
	// MinYear and MaxYear bound the inclusive game_date year window.
	MinYear int
	MaxYear int
	// Verbose logs validation distributions at info level.
	Verbose bool
	// TopTeams is the number of home teams in the validation distribution.
	TopTeams int
	// RivalriesFile optionally replaces the built-in rivalry pairs (YAML).
	RivalriesFile string
}

// LoadPipelineConfigFromEnv loads pipeline configuration from environment variables.
func LoadPipelineConfigFromEnv() PipelineConfig {
	return PipelineConfig{
		DataRoot:      GetEnv("DATA_ROOT", filepath.Join("data", "csv")),
		SourceFormat:  GetEnv("SOURCE_FORMAT", SourceFormatCSV),
		SQLitePath:    GetEnv("SOURCE_SQLITE_PATH", ""),
		OutputDir:     GetEnv("OUTPUT_DIR", filepath.Join("data", "processed")),
		MinYear:       GetEnvInt("PIPELINE_MIN_YEAR", 2010),
		MaxYear:       GetEnvInt("PIPELINE_MAX_YEAR", 2023),
		Verbose:       GetEnvBool("PIPELINE_VERBOSE", false),
		TopTeams:      GetEnvInt("PIPELINE_TOP_TEAMS", 10),
		RivalriesFile: GetEnv("RIVALRIES_FILE", ""),
	}
}

// SourcePath returns the location the loader reads from.
func (c PipelineConfig) SourcePath() string {
	if c.SourceFormat == SourceFormatSQLite {
		if c.SQLitePath != "" {
			return c.SQLitePath
		}
		return filepath.Join(c.DataRoot, "nba.sqlite")
	}
	return c.DataRoot
}

// Validate validates pipeline configuration.
func (c PipelineConfig) Validate() error {
	if c.DataRoot == "" && c.SQLitePath == "" {
		return fmt.Errorf("DATA_ROOT is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("OUTPUT_DIR is required")
	}
	if c.SourceFormat != SourceFormatCSV && c.SourceFormat != SourceFormatSQLite {
		return fmt.Errorf("invalid SOURCE_FORMAT: %s (must be: csv, sqlite)", c.SourceFormat)
	}
	if c.MinYear > c.MaxYear {
		return fmt.Errorf("PIPELINE_MIN_YEAR (%d) cannot be greater than PIPELINE_MAX_YEAR (%d)", c.MinYear, c.MaxYear)
	}
	if c.TopTeams < 0 {
		return fmt.Errorf("PIPELINE_TOP_TEAMS must be non-negative")
	}
	return nil
}
