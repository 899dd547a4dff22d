// Package tax computes net salary figures under a simplified Spanish
// IRPF and social security model. The model is an approximation intended
// for affordability planning, not fiscal compliance.
package tax

import (
	"math"

	"github.com/dmolina/homeplan/pkg/constants"
)

// Social security parameters (general regime approximation).
const (
	// SocialSecurityRate is the worker-side contribution rate
	// (common contingencies + unemployment + training).
	SocialSecurityRate = 0.0635

	// MaxContributionBase is the annual cap on the contribution base.
	MaxContributionBase = 56646.0
)

// IRPF parameters.
const (
	// ExpenseDeduction is the flat deduction on earned income.
	ExpenseDeduction = 2000.0

	// EarnedIncomeAllowance is the full allowance for low earned incomes.
	EarnedIncomeAllowance = 6498.0

	// AllowanceFullLimit is the gross income below which the full allowance applies.
	AllowanceFullLimit = 14047.50

	// AllowanceTaperLimit is the gross income above which no allowance applies;
	// between the two limits the allowance tapers linearly.
	AllowanceTaperLimit = 19747.50

	// AllowanceTaperSlope is the taper rate within the window.
	AllowanceTaperSlope = 1.14

	// PersonalMinimum is the base personal exemption.
	PersonalMinimum = 5550.0

	// WithholdingExemptionLimit approximates the gross income below which no
	// withholding applies for taxpayers without children.
	WithholdingExemptionLimit = 15876.0
)

// bracket is one marginal step of the progressive scale.
type bracket struct {
	limit float64
	rate  float64
}

// brackets is the combined state+regional progressive scale.
var brackets = []bracket{
	{limit: 12450, rate: 0.19},
	{limit: 20200, rate: 0.24},
	{limit: 35200, rate: 0.30},
	{limit: 60000, rate: 0.37},
	{limit: 300000, rate: 0.45},
	{limit: math.Inf(1), rate: 0.47},
}

// Result holds the full breakdown of a gross to net conversion.
type Result struct {
	GrossAnnual        float64
	NetAnnual          float64
	NetMonthly         float64
	NetMonthlyProrated float64
	NumPayments        int
	SocialSecurity     float64
	IRPFAnnual         float64
	RetentionRate      float64
}

// NetSalary converts a gross annual salary into its net figures.
// numPayments is 12 or 14; age and children adjust the personal and family
// minimum exemption. Inputs outside those domains are the caller's
// responsibility to sanitize.
func NetSalary(grossAnnual float64, numPayments, age, children int) Result {
	contributionBase := math.Min(grossAnnual, MaxContributionBase)
	socialSecurity := contributionBase * SocialSecurityRate

	taxableBase := math.Max(0, grossAnnual-socialSecurity-ExpenseDeduction-earnedIncomeAllowance(grossAnnual))
	minimum := personalFamilyMinimum(age, children)

	irpfAnnual := math.Max(0, quota(taxableBase)-quota(minimum))
	if grossAnnual < WithholdingExemptionLimit && children == 0 {
		irpfAnnual = 0
	}

	netAnnual := grossAnnual - socialSecurity - irpfAnnual

	retentionRate := 0.0
	if grossAnnual > 0 {
		retentionRate = irpfAnnual / grossAnnual * constants.PercentageMultiplier
	}

	return Result{
		GrossAnnual:        grossAnnual,
		NetAnnual:          netAnnual,
		NetMonthly:         netAnnual / float64(numPayments),
		NetMonthlyProrated: netAnnual / constants.MonthsPerYear,
		NumPayments:        numPayments,
		SocialSecurity:     socialSecurity,
		IRPFAnnual:         irpfAnnual,
		RetentionRate:      retentionRate,
	}
}

// earnedIncomeAllowance returns the earned-income reduction, full below the
// first limit and tapering linearly to zero at the second.
func earnedIncomeAllowance(grossAnnual float64) float64 {
	switch {
	case grossAnnual < AllowanceFullLimit:
		return EarnedIncomeAllowance
	case grossAnnual < AllowanceTaperLimit:
		return EarnedIncomeAllowance - AllowanceTaperSlope*(grossAnnual-AllowanceFullLimit)
	default:
		return 0
	}
}

// personalFamilyMinimum computes the personal and family minimum exemption.
// Age supplements are cumulative; the child allowance is a step function.
func personalFamilyMinimum(age, children int) float64 {
	minimum := PersonalMinimum
	if age > 65 {
		minimum += 1150
	}
	if age > 75 {
		minimum += 1400
	}
	if children >= 1 {
		minimum += 2400
	}
	if children >= 2 {
		minimum += 2700
	}
	if children >= 3 {
		minimum += 4000
	}
	if children >= 4 {
		minimum += 4500 * float64(children-3)
	}
	return minimum
}

// quota applies the progressive scale to a base. The same function is used
// on the taxable base and on the minimum exemption; the difference between
// the two quotas is the annual tax.
func quota(base float64) float64 {
	remaining := base
	total := 0.0
	prevLimit := 0.0

	for _, b := range brackets {
		taxable := math.Min(remaining, b.limit-prevLimit)
		if taxable <= 0 {
			break
		}
		total += taxable * b.rate
		remaining -= taxable
		prevLimit = b.limit
	}
	return total
}
