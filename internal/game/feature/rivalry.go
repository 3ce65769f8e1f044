package feature

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Pair is an unordered pair of team abbreviations.
type Pair struct {
	A string `yaml:"a"`
	B string `yaml:"b"`
}

// DefaultRivalries is the fixed rivalry configuration.
var DefaultRivalries = []Pair{
	{A: "LAL", B: "BOS"},
	{A: "LAL", B: "LAC"},
	{A: "BOS", B: "PHI"},
	{A: "NYK", B: "BOS"},
	{A: "CHI", B: "DET"},
	{A: "GSW", B: "LAC"},
}

// RivalrySet answers whether two teams form a rivalry, regardless of order.
type RivalrySet struct {
	pairs map[Pair]struct{}
}

// NewRivalrySet builds a set from the given pairs. Abbreviations are compared
// case-insensitively after trimming.
func NewRivalrySet(pairs []Pair) RivalrySet {
	set := RivalrySet{pairs: make(map[Pair]struct{}, len(pairs))}
	for _, p := range pairs {
		a, b := normalizeAbbr(p.A), normalizeAbbr(p.B)
		if a == "" || b == "" {
			continue
		}
		set.pairs[Pair{A: a, B: b}] = struct{}{}
	}
	return set
}

// Contains checks both orientations of the pair.
func (s RivalrySet) Contains(home, away string) bool {
	a, b := normalizeAbbr(home), normalizeAbbr(away)
	if a == "" || b == "" {
		return false
	}
	if _, ok := s.pairs[Pair{A: a, B: b}]; ok {
		return true
	}
	_, ok := s.pairs[Pair{A: b, B: a}]
	return ok
}

// Len returns the number of configured pairs.
func (s RivalrySet) Len() int {
	return len(s.pairs)
}

func normalizeAbbr(abbr string) string {
	return strings.ToUpper(strings.TrimSpace(abbr))
}

type rivalryFile struct {
	Rivalries []Pair `yaml:"rivalries"`
}

// LoadRivalries reads rivalry pairs from a YAML file of the form
//
//	rivalries:
//	  - {a: LAL, b: BOS}
//
// An empty path yields DefaultRivalries.
func LoadRivalries(path string) ([]Pair, error) {
	if path == "" {
		return DefaultRivalries, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rivalries file: %w", err)
	}

	var file rivalryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse rivalries file %s: %w", path, err)
	}
	for i, p := range file.Rivalries {
		if normalizeAbbr(p.A) == "" || normalizeAbbr(p.B) == "" {
			return nil, fmt.Errorf("rivalries file %s: pair %d has an empty abbreviation", path, i+1)
		}
	}
	return file.Rivalries, nil
}
