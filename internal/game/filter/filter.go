// Package filter restricts reconciled games to a year window and removes duplicate game ids.
package filter

import (
	"github.com/festy23/nba_pipeline/internal/game/model"
)

// Default inclusive year window.
const (
	DefaultMinYear = 2010
	DefaultMaxYear = 2023
)

// ByYear keeps games whose game_date year lies in [minYear, maxYear].
// Games without a date are dropped. Input order is preserved.
func ByYear(games []model.ReconciledGame, minYear, maxYear int) []model.ReconciledGame {
	kept := make([]model.ReconciledGame, 0, len(games))
	for _, g := range games {
		if g.GameDate == nil {
			continue
		}
		year := g.GameDate.Year()
		if year < minYear || year > maxYear {
			continue
		}
		kept = append(kept, g)
	}
	return kept
}

// Deduplicate keeps the first game encountered for every game_id.
func Deduplicate(games []model.ReconciledGame) []model.ReconciledGame {
	seen := make(map[string]struct{}, len(games))
	kept := make([]model.ReconciledGame, 0, len(games))
	for _, g := range games {
		key := model.NormalizeID(g.GameID)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, g)
	}
	return kept
}
