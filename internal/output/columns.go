package output

import (
	"strconv"

	"github.com/festy23/nba_pipeline/internal/game/model"
)

// Export column names that are always present, in order.
var (
	coreColumns = []string{
		"game_id", "game_date", "home_team_id", "visitor_team_id", "attendance", "game_time",
	}
	homeTeamColumns = []string{"home_team_name", "home_team_abbr"}
	awayTeamColumns = []string{"away_team_name", "away_team_abbr"}
	pointsColumns   = []string{"pts_home", "pts_away"}
	derivedColumns  = []string{
		"season", "month", "day_of_week", "is_weekend", "is_playoff_month",
		"home_win", "total_points", "point_difference", "is_rivalry",
	}
)

type fieldGroup int

const (
	groupInfo fieldGroup = iota
	groupSummary
	groupHomeTeam
	groupAwayTeam
)

// column is one export column; fixed columns have extract set, pass-through ones a group.
type column struct {
	name    string
	group   fieldGroup
	extract func(*model.Game) string
}

func (c column) value(g *model.Game) string {
	if c.extract != nil {
		return c.extract(g)
	}
	var fields model.Fields
	switch c.group {
	case groupInfo:
		fields = g.InfoExtra
	case groupSummary:
		fields = g.SummaryExtra
	case groupHomeTeam:
		fields = g.HomeTeam.Extra
	case groupAwayTeam:
		fields = g.AwayTeam.Extra
	}
	v, _ := fields.Get(c.name)
	return str(v)
}

// layout builds the export header. Pass-through columns whose names are already taken by a
// fixed or earlier column are left out, so the export never carries two columns of one name.
func layout(games []model.Game) []column {
	fixed := fixedExtractors()
	reserved := make(map[string]bool, len(fixed))
	for name := range fixed {
		reserved[name] = true
	}

	var columns []column
	addFixed := func(names []string) {
		for _, name := range names {
			columns = append(columns, column{name: name, extract: fixed[name]})
		}
	}
	addExtras := func(group fieldGroup, pick func(*model.Game) model.Fields) {
		for i := range games {
			for _, f := range pick(&games[i]) {
				if reserved[f.Name] {
					continue
				}
				reserved[f.Name] = true
				columns = append(columns, column{name: f.Name, group: group})
			}
		}
	}

	addFixed(coreColumns)
	addExtras(groupInfo, func(g *model.Game) model.Fields { return g.InfoExtra })
	addExtras(groupSummary, func(g *model.Game) model.Fields { return g.SummaryExtra })
	addFixed(homeTeamColumns)
	addExtras(groupHomeTeam, func(g *model.Game) model.Fields { return g.HomeTeam.Extra })
	addFixed(awayTeamColumns)
	addExtras(groupAwayTeam, func(g *model.Game) model.Fields { return g.AwayTeam.Extra })
	addFixed(pointsColumns)
	addFixed(derivedColumns)
	return columns
}

func fixedExtractors() map[string]func(*model.Game) string {
	return map[string]func(*model.Game) string{
		"game_id":          func(g *model.Game) string { return g.GameID },
		"game_date":        func(g *model.Game) string { return g.GameDate.Format(model.DateLayout) },
		"home_team_id":     func(g *model.Game) string { return str(g.HomeTeamID) },
		"visitor_team_id":  func(g *model.Game) string { return str(g.VisitorTeamID) },
		"attendance":       func(g *model.Game) string { return number(g.Attendance) },
		"game_time":        func(g *model.Game) string { return g.GameTime },
		"home_team_name":   func(g *model.Game) string { return str(g.HomeTeam.Name) },
		"home_team_abbr":   func(g *model.Game) string { return str(g.HomeTeam.Abbreviation) },
		"away_team_name":   func(g *model.Game) string { return str(g.AwayTeam.Name) },
		"away_team_abbr":   func(g *model.Game) string { return str(g.AwayTeam.Abbreviation) },
		"pts_home":         func(g *model.Game) string { return optionalNumber(g.PtsHome) },
		"pts_away":         func(g *model.Game) string { return optionalNumber(g.PtsAway) },
		"season":           func(g *model.Game) string { return strconv.Itoa(g.Season) },
		"month":            func(g *model.Game) string { return strconv.Itoa(g.Month) },
		"day_of_week":      func(g *model.Game) string { return strconv.Itoa(g.DayOfWeek) },
		"is_weekend":       func(g *model.Game) string { return flag(g.IsWeekend) },
		"is_playoff_month": func(g *model.Game) string { return flag(g.IsPlayoffMonth) },
		"is_rivalry":       func(g *model.Game) string { return flag(g.IsRivalry) },
		"home_win": func(g *model.Game) string {
			if g.Outcome == nil {
				return ""
			}
			return strconv.Itoa(g.Outcome.HomeWin)
		},
		"total_points": func(g *model.Game) string {
			if g.Outcome == nil {
				return ""
			}
			return number(g.Outcome.TotalPoints)
		},
		"point_difference": func(g *model.Game) string {
			if g.Outcome == nil {
				return ""
			}
			return number(g.Outcome.PointDifference)
		},
	}
}

func str(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func optionalNumber(v *float64) string {
	if v == nil {
		return ""
	}
	return number(*v)
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
