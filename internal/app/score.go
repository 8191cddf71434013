package app

import "strconv"

// ComputeScore returns 100 * yes / total. A zero total scores 0.
func ComputeScore(yes, total int) float64 {
	if total <= 0 {
		return 0
	}
	return 100 * float64(yes) / float64(total)
}

// Average is the arithmetic mean of history, 0 for an empty history.
func Average(history []float64) float64 {
	if len(history) == 0 {
		return 0
	}
	var sum float64
	for _, s := range history {
		sum += s
	}
	return sum / float64(len(history))
}

// FormatPercent renders v as the shortest decimal that round-trips, followed by "%".
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}
