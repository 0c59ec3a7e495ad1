package utils

import "math"

func RoundTwoDecimals(value float64) float64 {
	return math.Round(value*100) / 100
}

// PercentChange computes (current-previous)/previous*100 with the panel
// edge cases: 0 when both are zero, 100 when only previous is zero.
func PercentChange(current, previous int64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return RoundTwoDecimals(float64(current-previous) / float64(previous) * 100)
}
