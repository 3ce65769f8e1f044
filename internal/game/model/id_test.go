package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"plain integer", "1610612747", "1610612747"},
		{"float artifact", "1610612747.0", "1610612747"},
		{"zero padded", "0021900001", "21900001"},
		{"surrounding spaces", "  1610612738 ", "1610612738"},
		{"non integral stays", "12.5", "12.5"},
		{"text stays", "LAL", "LAL"},
		{"blank", "   ", ""},
		{"too large stays", "1e20", "1e20"},
		{"nan stays", "NaN", "NaN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeID(tt.raw))
		})
	}
}

func TestNormalizeIDPtr(t *testing.T) {
	assert.Nil(t, NormalizeIDPtr(nil))

	blank := "  "
	assert.Nil(t, NormalizeIDPtr(&blank))

	raw := "1610612747.0"
	got := NormalizeIDPtr(&raw)
	if assert.NotNil(t, got) {
		assert.Equal(t, "1610612747", *got)
	}
	assert.Equal(t, "1610612747.0", raw)
}
