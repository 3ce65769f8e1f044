package model

import (
	"math"
	"strconv"
	"strings"
)

// NormalizeID returns the canonical string form of an identifier.
// Integral numeric values lose float and zero-padding artifacts ("1610612747.0" and
// "01610612747" both become "1610612747"); anything else is only trimmed.
func NormalizeID(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return s
	}
	if f != math.Trunc(f) || math.Abs(f) >= 1e15 {
		return s
	}
	return strconv.FormatInt(int64(f), 10)
}

// NormalizeIDPtr applies NormalizeID to a nullable identifier. Blank values become nil.
func NormalizeIDPtr(raw *string) *string {
	if raw == nil {
		return nil
	}
	id := NormalizeID(*raw)
	if id == "" {
		return nil
	}
	return &id
}
