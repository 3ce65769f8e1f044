package source

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/festy23/nba_pipeline/internal/game/model"
)

// Column names the loader consumes into typed fields.
const (
	colGameID        = "game_id"
	colGameDate      = "game_date"
	colAttendance    = "attendance"
	colGameTime      = "game_time"
	colHomeTeamID    = "home_team_id"
	colVisitorTeamID = "visitor_team_id"
	colTeamID        = "id"
	colFullName      = "full_name"
	colAbbreviation  = "abbreviation"
	colTeamIDHome    = "team_id_home"
	colTeamIDAway    = "team_id_away"
	colPtsHome       = "pts_home"
	colPtsAway       = "pts_away"
)

// Loader reads the four sources and coerces them into typed rows.
type Loader struct {
	reader TableReader
	logger *zap.SugaredLogger
}

// NewLoader creates a new loader over the given table reader.
func NewLoader(reader TableReader, logger *zap.SugaredLogger) *Loader {
	return &Loader{reader: reader, logger: logger}
}

// Load reads game_info, game_summary and team (mandatory) and line_score (optional).
// Mandatory failures return a *model.StageError wrapping ErrSourceUnavailable or
// ErrSchemaMismatch. A missing line score is recorded in Sources.Warnings.
func (l *Loader) Load(ctx context.Context) (*model.Sources, error) {
	src := &model.Sources{}

	info, err := l.readMandatory(ctx, model.SourceGameInfo)
	if err != nil {
		return nil, err
	}
	if err := requireColumns(info, colGameID, colGameDate); err != nil {
		return nil, err
	}
	src.GameInfo, src.GameInfoSchema = decodeGameInfo(info), info.Columns

	summary, err := l.readMandatory(ctx, model.SourceGameSummary)
	if err != nil {
		return nil, err
	}
	if err := requireColumns(summary, colGameID); err != nil {
		return nil, err
	}
	src.GameSummaries, src.GameSummarySchema = decodeGameSummary(summary), summary.Columns

	for _, col := range []string{colHomeTeamID, colVisitorTeamID} {
		if !src.GameInfoSchema.Has(col) && !src.GameSummarySchema.Has(col) {
			return nil, model.NewStageError(model.StageLoad, model.SourceGameInfo+"+"+model.SourceGameSummary,
				model.ErrSchemaMismatch, fmt.Errorf("column %q is missing from both sources", col))
		}
	}

	teams, err := l.readMandatory(ctx, model.SourceTeam)
	if err != nil {
		return nil, err
	}
	if err := requireColumns(teams, colTeamID, colFullName, colAbbreviation); err != nil {
		return nil, err
	}
	src.Teams, src.TeamSchema = decodeTeams(teams), teams.Columns

	lineScores, err := l.readOptional(ctx)
	if err != nil {
		l.logger.Warnw("line score source unavailable, outcome fields will be absent", "error", err)
		src.Warnings = append(src.Warnings, err)
	} else {
		src.LineScores = lineScores
	}

	l.logger.Infow("sources loaded",
		"game_info", len(src.GameInfo),
		"game_summary", len(src.GameSummaries),
		"teams", len(src.Teams),
		"line_scores", len(src.LineScores),
		"line_score_available", src.HasLineScores(),
	)
	return src, nil
}

func (l *Loader) readMandatory(ctx context.Context, name string) (*Table, error) {
	t, err := l.reader.ReadTable(ctx, name)
	if err != nil {
		l.logger.Errorw("failed to load mandatory source", "source", name, "error", err)
		return nil, model.NewStageError(model.StageLoad, name, model.ErrSourceUnavailable, err)
	}
	l.logger.Debugw("source read", "source", name, "rows", len(t.Rows), "columns", len(t.Columns))
	return t, nil
}

func (l *Loader) readOptional(ctx context.Context) ([]model.LineScore, error) {
	t, err := l.reader.ReadTable(ctx, model.SourceLineScore)
	if err != nil {
		return nil, model.NewStageError(model.StageLoad, model.SourceLineScore, model.ErrOptionalSourceMissing, err)
	}
	if !model.Schema(t.Columns).Has(colGameID) {
		return nil, model.NewStageError(model.StageLoad, model.SourceLineScore, model.ErrOptionalSourceMissing,
			fmt.Errorf("column %q is missing", colGameID))
	}
	return decodeLineScores(t), nil
}

func requireColumns(t *Table, columns ...string) error {
	schema := model.Schema(t.Columns)
	for _, col := range columns {
		if !schema.Has(col) {
			return model.NewStageError(model.StageLoad, t.Name, model.ErrSchemaMismatch,
				fmt.Errorf("required column %q is missing", col))
		}
	}
	return nil
}

// extras returns the columns not consumed into typed fields, in header order.
func extras(t *Table, r row, consumed map[string]bool) model.Fields {
	var fields model.Fields
	seen := make(map[string]bool, len(t.Columns))
	for i, col := range t.Columns {
		if consumed[col] || seen[col] {
			continue
		}
		seen[col] = true
		var v *string
		if i < len(r.cells) {
			v = r.cells[i]
		}
		fields = append(fields, model.Field{Name: col, Value: v})
	}
	return fields
}

func set(columns ...string) map[string]bool {
	m := make(map[string]bool, len(columns))
	for _, c := range columns {
		m[c] = true
	}
	return m
}

func decodeGameInfo(t *Table) []model.GameInfo {
	index := t.columnIndex()
	consumed := set(colGameID, colGameDate, colAttendance, colGameTime, colHomeTeamID, colVisitorTeamID)
	games := make([]model.GameInfo, 0, len(t.Rows))
	for _, cells := range t.Rows {
		r := row{cells: cells, index: index}
		games = append(games, model.GameInfo{
			GameID:        r.str(colGameID),
			GameDate:      parseDate(r.get(colGameDate)),
			Attendance:    parseFloat(r.get(colAttendance)),
			GameTime:      r.get(colGameTime),
			HomeTeamID:    model.NormalizeIDPtr(r.get(colHomeTeamID)),
			VisitorTeamID: model.NormalizeIDPtr(r.get(colVisitorTeamID)),
			Extra:         extras(t, r, consumed),
		})
	}
	return games
}

func decodeGameSummary(t *Table) []model.GameSummary {
	index := t.columnIndex()
	consumed := set(colGameID, colHomeTeamID, colVisitorTeamID)
	summaries := make([]model.GameSummary, 0, len(t.Rows))
	for _, cells := range t.Rows {
		r := row{cells: cells, index: index}
		summaries = append(summaries, model.GameSummary{
			GameID:        r.str(colGameID),
			HomeTeamID:    model.NormalizeIDPtr(r.get(colHomeTeamID)),
			VisitorTeamID: model.NormalizeIDPtr(r.get(colVisitorTeamID)),
			Extra:         extras(t, r, consumed),
		})
	}
	return summaries
}

func decodeTeams(t *Table) []model.Team {
	index := t.columnIndex()
	consumed := set(colTeamID, colFullName, colAbbreviation)
	teams := make([]model.Team, 0, len(t.Rows))
	for _, cells := range t.Rows {
		r := row{cells: cells, index: index}
		teams = append(teams, model.Team{
			ID:           model.NormalizeID(r.str(colTeamID)),
			FullName:     r.get(colFullName),
			Abbreviation: trimmed(r.get(colAbbreviation)),
			Extra:        extras(t, r, consumed),
		})
	}
	return teams
}

func decodeLineScores(t *Table) []model.LineScore {
	index := t.columnIndex()
	scores := make([]model.LineScore, 0, len(t.Rows))
	for _, cells := range t.Rows {
		r := row{cells: cells, index: index}
		scores = append(scores, model.LineScore{
			GameID:     r.str(colGameID),
			TeamIDHome: model.NormalizeIDPtr(r.get(colTeamIDHome)),
			TeamIDAway: model.NormalizeIDPtr(r.get(colTeamIDAway)),
			PtsHome:    parseFloat(r.get(colPtsHome)),
			PtsAway:    parseFloat(r.get(colPtsAway)),
		})
	}
	return scores
}
