package utils

import (
	"math"
	"time"
)

// WholeDaysUntil returns the signed number of days from now until target,
// rounded up so that a deadline 29.5 days away counts as 30. Negative values
// mean the target is in the past.
func WholeDaysUntil(now, target time.Time) int {
	days := target.Sub(now).Hours() / 24
	return int(math.Ceil(days))
}
