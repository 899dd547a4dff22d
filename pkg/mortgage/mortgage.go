// Package mortgage estimates fixed-rate amortized mortgage installments.
package mortgage

import (
	"math"

	"github.com/dmolina/homeplan/pkg/constants"
)

// Quota returns the monthly installment for a 30 year fixed-rate mortgage on
// the given price using the standard amortization formula.
//
// Without an ICO guarantee the buyer puts 20% down and the bank finances 80%.
// With the guarantee the down payment disappears but the financed principal,
// and therefore the installment, becomes the full price.
func Quota(price float64, withICO bool) float64 {
	principal := price * constants.FinancedShare
	if withICO {
		principal = price
	}

	monthlyRate := constants.MortgageAnnualRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
	return principal * monthlyRate / (1 - math.Pow(1+monthlyRate, -constants.MortgageTermMonths))
}
