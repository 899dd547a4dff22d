// Package investment projects the future value of a monthly contribution
// stream.
package investment

import (
	"math"

	"github.com/dmolina/homeplan/pkg/constants"
)

// FutureValue returns the value of contributing monthlyAmount at the end of
// each month for the given number of months at the given nominal annual rate
// (ordinary annuity). A zero rate degenerates to the plain sum of
// contributions. Non-positive amounts or horizons yield 0.
func FutureValue(monthlyAmount float64, months int, annualRatePercent float64) float64 {
	if monthlyAmount <= 0 || months <= 0 {
		return 0
	}

	monthlyRate := annualRatePercent / constants.PercentageMultiplier / constants.MonthsPerYear
	if monthlyRate == 0 {
		return monthlyAmount * float64(months)
	}

	return monthlyAmount * (math.Pow(1+monthlyRate, float64(months)) - 1) / monthlyRate
}
