package viz

import (
	"math"
	"strconv"
)

// FormatNum renders a probability or any numeric value to four decimal
// places. Non-finite input formats as "0.0000", matching the tolerant
// display contract of the front end this engine feeds.
func FormatNum(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0.0000"
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// FormatPercent renders v as a percentage to four decimal places.
func FormatPercent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0.0000%"
	}
	return strconv.FormatFloat(v*100, 'f', 4, 64) + "%"
}
