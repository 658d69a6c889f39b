package util

import (
	"math"
	"strconv"
)

// ParseID parses a positive path identifier.
func ParseID(s string) (uint, bool) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// Percentage returns part/total*100 rounded to one decimal, and 0 when total is 0.
func Percentage(part, total int64) float64 {
	if total <= 0 {
		return 0.0
	}
	pct := math.Round(float64(part)/float64(total)*1000) / 10
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}
