// Package billing computes time-based table charges. The same functions back
// the close-out total and the live accrued display so both always agree.
package billing

import (
	"math"
	"time"
)

// ElapsedHours returns the fractional hours between start and end. A negative
// interval, possible after a wall-clock adjustment, clamps to zero so a
// session can never bill a negative amount.
func ElapsedHours(start, end time.Time) float64 {
	elapsed := end.Sub(start)
	if elapsed < 0 {
		return 0
	}

	return elapsed.Hours()
}

// RoundCurrency rounds to two decimals, half away from zero.
func RoundCurrency(value float64) float64 {
	return math.Floor(value*100+0.5) / 100
}

// Cost returns the charge for the interval at the given hourly rate.
func Cost(start, end time.Time, hourlyRate float64) float64 {
	return RoundCurrency(ElapsedHours(start, end) * hourlyRate)
}
