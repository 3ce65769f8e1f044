package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festy23/nba_pipeline/internal/game/model"
)

func game(id, date string) model.ReconciledGame {
	g := model.ReconciledGame{GameID: id}
	if date != "" {
		d, err := time.Parse(model.DateLayout, date)
		if err != nil {
			panic(err)
		}
		g.GameDate = &d
	}
	return g
}

func ids(games []model.ReconciledGame) []string {
	out := make([]string, len(games))
	for i, g := range games {
		out[i] = g.GameID
	}
	return out
}

func TestByYear(t *testing.T) {
	games := []model.ReconciledGame{
		game("a", "2009-12-31"),
		game("b", "2010-01-01"),
		game("c", ""),
		game("d", "2023-12-31"),
		game("e", "2024-01-01"),
		game("f", "2015-06-15"),
	}

	tests := []struct {
		name    string
		minYear int
		maxYear int
		want    []string
	}{
		{name: "default window is inclusive", minYear: DefaultMinYear, maxYear: DefaultMaxYear, want: []string{"b", "d", "f"}},
		{name: "single year", minYear: 2015, maxYear: 2015, want: []string{"f"}},
		{name: "empty window", minYear: 2030, maxYear: 2031, want: []string{}},
		{name: "inverted window", minYear: 2023, maxYear: 2010, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(ByYear(games, tt.minYear, tt.maxYear)))
		})
	}
}

func TestByYear_DropsMissingDates(t *testing.T) {
	kept := ByYear([]model.ReconciledGame{game("x", ""), game("y", "")}, 0, 9999)
	assert.Empty(t, kept)
}

func TestDeduplicate(t *testing.T) {
	t.Run("first occurrence wins", func(t *testing.T) {
		first := game("0021500001", "2015-10-27")
		first.Attendance = ptr(100)
		second := game("0021500001", "2015-10-27")
		second.Attendance = ptr(200)

		kept := Deduplicate([]model.ReconciledGame{first, game("0021500002", "2015-10-28"), second})

		require.Len(t, kept, 2)
		assert.Equal(t, []string{"0021500001", "0021500002"}, ids(kept))
		assert.Equal(t, 100.0, *kept[0].Attendance)
	})

	t.Run("ids compared in canonical form", func(t *testing.T) {
		kept := Deduplicate([]model.ReconciledGame{game("21500001", ""), game("0021500001", ""), game("21500001.0", "")})

		assert.Equal(t, []string{"21500001"}, ids(kept))
	})

	t.Run("no duplicates", func(t *testing.T) {
		games := []model.ReconciledGame{game("1", ""), game("2", ""), game("3", "")}
		assert.Equal(t, []string{"1", "2", "3"}, ids(Deduplicate(games)))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Deduplicate(nil))
	})
}

func ptr(f float64) *float64 {
	return &f
}
