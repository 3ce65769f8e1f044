package source

import (
	"strconv"
	"strings"
	"time"
)

// nullTokens are cell values read as null, matching the markers common tabular tools emit.
var nullTokens = map[string]struct{}{
	"":     {},
	"NA":   {},
	"N/A":  {},
	"n/a":  {},
	"#N/A": {},
	"NaN":  {},
	"nan":  {},
	"-nan": {},
	"NULL": {},
	"null": {},
	"None": {},
	"<NA>": {},
	"NaT":  {},
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05-07:00",
	"01/02/2006",
	"2006/01/02",
}

// cellValue turns a raw cell into a nullable string.
func cellValue(raw string) *string {
	if _, isNull := nullTokens[strings.TrimSpace(raw)]; isNull {
		return nil
	}
	return &raw
}

func parseFloat(v *string) *float64 {
	if v == nil {
		return nil
	}
	s := strings.ReplaceAll(strings.TrimSpace(*v), ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// parseDate returns nil for values no layout accepts.
func parseDate(v *string) *time.Time {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	return &s
}
