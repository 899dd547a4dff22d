// Package report builds the scenario by house affordability matrix from a
// resolved configuration.
package report

import (
	"fmt"
	"time"

	"github.com/dmolina/homeplan/internal/config"
	"github.com/dmolina/homeplan/pkg/adapters"
	"github.com/dmolina/homeplan/pkg/datetime"
	"github.com/dmolina/homeplan/pkg/investment"
	"github.com/dmolina/homeplan/pkg/mathutil"
	"github.com/dmolina/homeplan/pkg/mortgage"
	"github.com/dmolina/homeplan/pkg/risk"
	"github.com/dmolina/homeplan/pkg/savings"
	"go.uber.org/zap"
)

// Row holds the affordability results for one house under one scenario.
type Row struct {
	HouseID         string
	House           string
	Price           float64
	Target          float64
	Months          int
	Reachable       bool
	AchievementDate string
	Quota           float64
	Ratio           float64
	RatioDefined    bool
	Risk            risk.Level
	Projection      float64
}

// Report holds all results for one salary scenario.
type Report struct {
	ScenarioID  string
	Scenario    string
	Income      float64
	Savings     float64
	SavingsRate float64
	Rows        []Row
}

// Build computes the affordability matrix for all scenarios and houses using
// the current time for achievement dates.
func Build(logger *zap.Logger, conf config.Configuration) []Report {
	return BuildAt(logger, conf, time.Now())
}

// BuildAt computes the affordability matrix with an injectable reference time
// for deterministic achievement dates.
func BuildAt(logger *zap.Logger, conf config.Configuration, now time.Time) []Report {
	if logger == nil {
		logger = zap.NewNop()
	}

	params := adapters.SavingsParams(conf.Params)

	var results []Report
	for _, scenario := range conf.Scenarios {
		monthlySavings := savings.Disposable(scenario.EffectiveMonthly, params)

		result := Report{
			ScenarioID:  scenario.ID,
			Scenario:    scenario.Label,
			Income:      scenario.EffectiveMonthly,
			Savings:     monthlySavings,
			SavingsRate: mathutil.CalculatePercentage(monthlySavings, scenario.EffectiveMonthly),
		}

		if monthlySavings <= 0 {
			logger.Debug(fmt.Sprintf("scenario %s has no disposable savings (%.2f); goals will be unreachable",
				scenario.Label, monthlySavings),
				zap.String("op", "report.BuildAt"),
			)
		}

		for _, house := range conf.Houses {
			target := savings.PurchaseTarget(house.Price, params)
			months, reachable := savings.MonthsToTarget(target, monthlySavings, params)
			quota := mortgage.Quota(house.Price, conf.Params.HasICO)

			row := Row{
				HouseID:   house.ID,
				House:     house.Label,
				Price:     house.Price,
				Target:    target,
				Months:    months,
				Reachable: reachable,
				Quota:     quota,
			}

			if reachable {
				row.AchievementDate = datetime.AddMonths(now, months)
			}

			// A zero income makes the installment ratio undefined; leave
			// the risk cell unclassified rather than dividing by zero.
			if scenario.EffectiveMonthly > 0 {
				row.Ratio = mathutil.Round(risk.Ratio(quota, scenario.EffectiveMonthly))
				row.RatioDefined = true
				row.Risk = risk.Classify(quota, scenario.EffectiveMonthly)
			}

			if conf.Params.ShowInvestmentProjection {
				row.Projection = investment.FutureValue(conf.Params.Investment, months, conf.Params.InvestmentReturnRate)
			}

			result.Rows = append(result.Rows, row)
		}

		results = append(results, result)
	}

	return results
}
