// Package savings computes purchase targets and simulates how long
// compounding savings take to reach them.
package savings

import (
	"github.com/dmolina/homeplan/pkg/constants"
	"github.com/dmolina/homeplan/pkg/mathutil"
)

// Params holds the savings-side configuration shared by every scenario.
type Params struct {
	InitialCapital float64
	InterestRate   float64 // nominal annual %, applied monthly
	Cushion        float64
	ExpensesFixed  float64
	Investment     float64
	HasICO         bool
	HasITP         bool
}

// Disposable returns the monthly amount left for saving after fixed expenses
// and the investment contribution. May be negative.
func Disposable(netMonthly float64, p Params) float64 {
	return netMonthly - p.ExpensesFixed - p.Investment
}

// PurchaseTarget returns the total cash needed to close a purchase: down
// payment plus transfer tax plus the safety cushion. An ICO guarantee removes
// the down payment requirement; ITP eligibility applies the reduced tax rate.
func PurchaseTarget(price float64, p Params) float64 {
	downPaymentRate := constants.DownPaymentRate
	if p.HasICO {
		downPaymentRate = 0
	}
	transferTaxRate := constants.TransferTaxStandard
	if p.HasITP {
		transferTaxRate = constants.TransferTaxReduced
	}
	return price*downPaymentRate + price*transferTaxRate + p.Cushion
}

// MonthsToTarget simulates monthly compounding from the initial capital until
// the balance reaches the target, and reports whether the target is reachable.
//
// The month count preserves the historical sentinel values: 999 when monthly
// savings are non-positive (no simulation is run), and the 600 month cap when
// the target is not reached within a 50 year horizon. The boolean makes
// reachability explicit so callers never have to reinterpret those sentinels.
func MonthsToTarget(target, monthlySavings float64, p Params) (int, bool) {
	if monthlySavings <= 0 {
		return constants.UnreachableMonths, false
	}

	balance := p.InitialCapital
	monthlyRatePercent := p.InterestRate / constants.MonthsPerYear
	months := 0

	for balance < target && months < constants.MaxSimulationMonths {
		balance += monthlySavings + mathutil.ApplyPercentage(balance, monthlyRatePercent)
		months++
	}

	return months, balance >= target
}
