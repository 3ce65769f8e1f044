// Package reconcile joins the loaded sources into one record per game.
package reconcile

import (
	"github.com/festy23/nba_pipeline/internal/game/model"
)

const (
	// SummarySuffix marks a summary column whose name is already used by the metadata source.
	SummarySuffix = "_summary"
	// HomeTeamPrefix and AwayTeamPrefix label the team directory columns of each side.
	HomeTeamPrefix = "home_team_"
	AwayTeamPrefix = "away_team_"
)

const (
	colGameID        = "game_id"
	colHomeTeamID    = "home_team_id"
	colVisitorTeamID = "visitor_team_id"
)

// teamTypedColumns are consumed into TeamInfo.Name/Abbreviation or dropped (id equals the join key).
var teamTypedColumns = map[string]bool{"id": true, "full_name": true, "abbreviation": true}

// Reconcile left-joins game_info with game_summary, enriches both sides with the team
// directory and, when available, attaches home and away points from the line score.
// Joins fan out on multiple matches; deduplication happens in a later stage.
func Reconcile(src *model.Sources) []model.ReconciledGame {
	games := JoinSummaries(src)
	teamColumns := teamExtraColumns(src.TeamSchema)
	games = JoinHomeTeam(games, src.Teams, teamColumns)
	games = JoinAwayTeam(games, src.Teams, teamColumns)
	if src.HasLineScores() {
		games = JoinLineScores(games, src.LineScores)
	}
	return games
}

// summaryLayout decides where each summary column lands in the reconciled record.
type summaryLayout struct {
	homeFromSummary    bool
	visitorFromSummary bool
	columns            []summaryColumn
}

type summaryColumn struct {
	source string
	output string
}

func newSummaryLayout(infoSchema, summarySchema model.Schema) summaryLayout {
	layout := summaryLayout{
		homeFromSummary:    !infoSchema.Has(colHomeTeamID) && summarySchema.Has(colHomeTeamID),
		visitorFromSummary: !infoSchema.Has(colVisitorTeamID) && summarySchema.Has(colVisitorTeamID),
	}

	seen := make(map[string]bool, len(summarySchema))
	for _, col := range summarySchema {
		if col == colGameID || seen[col] {
			continue
		}
		seen[col] = true
		if (col == colHomeTeamID && layout.homeFromSummary) || (col == colVisitorTeamID && layout.visitorFromSummary) {
			continue
		}
		out := col
		if infoSchema.Has(col) {
			out = col + SummarySuffix
		}
		layout.columns = append(layout.columns, summaryColumn{source: col, output: out})
	}
	return layout
}

// fields builds the summary pass-through columns; s is nil for unmatched metadata rows.
func (l summaryLayout) fields(s *model.GameSummary) model.Fields {
	if len(l.columns) == 0 {
		return nil
	}
	fields := make(model.Fields, 0, len(l.columns))
	for _, c := range l.columns {
		var v *string
		if s != nil {
			switch c.source {
			case colHomeTeamID:
				v = s.HomeTeamID
			case colVisitorTeamID:
				v = s.VisitorTeamID
			default:
				v, _ = s.Extra.Get(c.source)
			}
		}
		fields = append(fields, model.Field{Name: c.output, Value: v})
	}
	return fields
}

// JoinSummaries left-joins metadata rows with summary rows on game_id.
// Metadata columns win name collisions; the summary side is suffixed.
func JoinSummaries(src *model.Sources) []model.ReconciledGame {
	layout := newSummaryLayout(src.GameInfoSchema, src.GameSummarySchema)

	byGame := make(map[string][]int, len(src.GameSummaries))
	for i := range src.GameSummaries {
		key := model.NormalizeID(src.GameSummaries[i].GameID)
		byGame[key] = append(byGame[key], i)
	}

	games := make([]model.ReconciledGame, 0, len(src.GameInfo))
	for i := range src.GameInfo {
		info := &src.GameInfo[i]
		base := model.ReconciledGame{
			GameID:        info.GameID,
			GameDate:      info.GameDate,
			HomeTeamID:    info.HomeTeamID,
			VisitorTeamID: info.VisitorTeamID,
			Attendance:    info.Attendance,
			GameTime:      info.GameTime,
			InfoExtra:     info.Extra,
		}

		matches := byGame[model.NormalizeID(info.GameID)]
		if len(matches) == 0 {
			base.SummaryExtra = layout.fields(nil)
			games = append(games, base)
			continue
		}
		for _, j := range matches {
			s := &src.GameSummaries[j]
			g := base
			if layout.homeFromSummary {
				g.HomeTeamID = s.HomeTeamID
			}
			if layout.visitorFromSummary {
				g.VisitorTeamID = s.VisitorTeamID
			}
			g.SummaryExtra = layout.fields(s)
			games = append(games, g)
		}
	}
	return games
}

func teamExtraColumns(schema model.Schema) []string {
	var columns []string
	seen := make(map[string]bool, len(schema))
	for _, col := range schema {
		if teamTypedColumns[col] || seen[col] {
			continue
		}
		seen[col] = true
		columns = append(columns, col)
	}
	return columns
}

// JoinHomeTeam left-joins the team directory on home_team_id and stores the result
// under home-prefixed labels before any away join runs.
func JoinHomeTeam(games []model.ReconciledGame, teams []model.Team, extraColumns []string) []model.ReconciledGame {
	return joinTeam(games, teams, extraColumns, HomeTeamPrefix,
		func(g *model.ReconciledGame) *string { return g.HomeTeamID },
		func(g *model.ReconciledGame, t model.TeamInfo) { g.HomeTeam = t },
	)
}

// JoinAwayTeam left-joins the team directory on visitor_team_id under away-prefixed labels.
func JoinAwayTeam(games []model.ReconciledGame, teams []model.Team, extraColumns []string) []model.ReconciledGame {
	return joinTeam(games, teams, extraColumns, AwayTeamPrefix,
		func(g *model.ReconciledGame) *string { return g.VisitorTeamID },
		func(g *model.ReconciledGame, t model.TeamInfo) { g.AwayTeam = t },
	)
}

func joinTeam(
	games []model.ReconciledGame,
	teams []model.Team,
	extraColumns []string,
	prefix string,
	key func(*model.ReconciledGame) *string,
	assign func(*model.ReconciledGame, model.TeamInfo),
) []model.ReconciledGame {
	byID := make(map[string][]int, len(teams))
	for i := range teams {
		byID[teams[i].ID] = append(byID[teams[i].ID], i)
	}

	out := make([]model.ReconciledGame, 0, len(games))
	for _, g := range games {
		var matches []int
		if id := key(&g); id != nil {
			matches = byID[*id]
		}
		if len(matches) == 0 {
			assign(&g, teamInfo(nil, extraColumns, prefix))
			out = append(out, g)
			continue
		}
		for _, j := range matches {
			joined := g
			assign(&joined, teamInfo(&teams[j], extraColumns, prefix))
			out = append(out, joined)
		}
	}
	return out
}

func teamInfo(t *model.Team, extraColumns []string, prefix string) model.TeamInfo {
	info := model.TeamInfo{}
	if len(extraColumns) > 0 {
		info.Extra = make(model.Fields, 0, len(extraColumns))
	}
	for _, col := range extraColumns {
		var v *string
		if t != nil {
			v, _ = t.Extra.Get(col)
		}
		info.Extra = append(info.Extra, model.Field{Name: prefix + col, Value: v})
	}
	if t != nil {
		info.Name = t.FullName
		info.Abbreviation = t.Abbreviation
	}
	return info
}

// JoinLineScores splits the line score into home-side and away-side projections and
// left-joins each on game_id, contributing pts_home and pts_away respectively.
func JoinLineScores(games []model.ReconciledGame, scores []model.LineScore) []model.ReconciledGame {
	home := make(map[string][]*float64)
	away := make(map[string][]*float64)
	for i := range scores {
		s := &scores[i]
		key := model.NormalizeID(s.GameID)
		if s.TeamIDHome != nil {
			home[key] = append(home[key], s.PtsHome)
		}
		if s.TeamIDAway != nil {
			away[key] = append(away[key], s.PtsAway)
		}
	}

	games = joinPoints(games, home, func(g *model.ReconciledGame, pts *float64) { g.PtsHome = pts })
	return joinPoints(games, away, func(g *model.ReconciledGame, pts *float64) { g.PtsAway = pts })
}

func joinPoints(
	games []model.ReconciledGame,
	points map[string][]*float64,
	assign func(*model.ReconciledGame, *float64),
) []model.ReconciledGame {
	out := make([]model.ReconciledGame, 0, len(games))
	for _, g := range games {
		matches := points[model.NormalizeID(g.GameID)]
		if len(matches) == 0 {
			assign(&g, nil)
			out = append(out, g)
			continue
		}
		for _, pts := range matches {
			joined := g
			assign(&joined, pts)
			out = append(out, joined)
		}
	}
	return out
}
