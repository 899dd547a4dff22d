// Package risk classifies mortgage affordability from the installment to
// income ratio.
package risk

import (
	"github.com/dmolina/homeplan/pkg/constants"
	"github.com/dmolina/homeplan/pkg/mathutil"
)

// Level is a discrete affordability band.
type Level struct {
	Band  int
	Label string
}

// threshold maps an exclusive upper ratio bound to a band.
type threshold struct {
	upperRatio float64
	level      Level
}

var thresholds = []threshold{
	{20, Level{Band: 1, Label: "Excellent"}},
	{25, Level{Band: 2, Label: "Very Safe"}},
	{30, Level{Band: 3, Label: "Safe"}},
	{35, Level{Band: 4, Label: "Caution"}},
	{40, Level{Band: 5, Label: "High Risk"}},
}

// critical is the open-ended top band.
var critical = Level{Band: 6, Label: "Critical"}

// Classify maps a monthly installment and income to an affordability band.
// The classification is monotone: a higher ratio never yields a lower band.
// A zero income makes the ratio undefined; callers must guard that case
// before classifying (see Ratio).
func Classify(quota, monthlyIncome float64) Level {
	ratio := Ratio(quota, monthlyIncome)
	for _, t := range thresholds {
		if ratio < t.upperRatio {
			return t.level
		}
	}
	return critical
}

// Ratio returns the installment as a percentage of monthly income, or 0 when
// the income is zero within currency tolerance.
func Ratio(quota, monthlyIncome float64) float64 {
	if mathutil.IsZero(monthlyIncome) {
		return 0
	}
	return quota / monthlyIncome * constants.PercentageMultiplier
}

// Elevated reports whether the band is outside policy (bands 4 through 6).
func (l Level) Elevated() bool {
	return l.Band >= 4
}
