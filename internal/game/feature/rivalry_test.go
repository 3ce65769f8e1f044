package feature

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRivalrySet_Contains(t *testing.T) {
	set := NewRivalrySet(DefaultRivalries)

	for _, p := range DefaultRivalries {
		assert.True(t, set.Contains(p.A, p.B), "%s-%s", p.A, p.B)
		assert.True(t, set.Contains(p.B, p.A), "%s-%s", p.B, p.A)
	}
	assert.False(t, set.Contains("LAL", "LAL"))
	assert.False(t, set.Contains("PHI", "NYK"))
	assert.False(t, set.Contains("", "BOS"))
	assert.Equal(t, len(DefaultRivalries), set.Len())
}

func TestNewRivalrySet_SkipsBlankPairs(t *testing.T) {
	set := NewRivalrySet([]Pair{{A: "LAL", B: ""}, {A: " mia ", B: "orl"}, {A: "MIA", B: "ORL"}})

	assert.Equal(t, 1, set.Len())
	assert.True(t, set.Contains("ORL", "MIA"))
}

func writeRivalries(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rivalries.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRivalries(t *testing.T) {
	t.Run("empty path yields defaults", func(t *testing.T) {
		pairs, err := LoadRivalries("")
		require.NoError(t, err)
		assert.Equal(t, DefaultRivalries, pairs)
	})

	t.Run("valid file", func(t *testing.T) {
		path := writeRivalries(t, "rivalries:\n  - {a: MIA, b: NYK}\n  - a: DAL\n    b: SAS\n")

		pairs, err := LoadRivalries(path)

		require.NoError(t, err)
		assert.Equal(t, []Pair{{A: "MIA", B: "NYK"}, {A: "DAL", B: "SAS"}}, pairs)
		assert.True(t, NewRivalrySet(pairs).Contains("SAS", "DAL"))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadRivalries(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeRivalries(t, "rivalries: [a: {")

		_, err := LoadRivalries(path)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse")
	})

	t.Run("empty abbreviation", func(t *testing.T) {
		path := writeRivalries(t, "rivalries:\n  - {a: MIA, b: NYK}\n  - {a: LAL}\n")

		_, err := LoadRivalries(path)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "pair 2")
	})
}
