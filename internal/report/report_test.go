package report

import (
	"testing"
	"time"

	"github.com/dmolina/homeplan/internal/config"
	"github.com/dmolina/homeplan/pkg/mathutil"
)

func fixedNow() time.Time {
	return time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
}

func baseConfiguration() config.Configuration {
	conf := config.Configuration{
		Params: config.Params{
			ExpensesFixed:            500,
			Investment:               100,
			ShowInvestmentProjection: true,
		},
		Scenarios: []config.SalaryScenario{{Label: "Base", NetMonthly: 2000}},
		Houses:    []config.HouseGoal{{Label: "Piso", Price: 100000}},
	}
	conf.Resolve(nil)
	return conf
}

func TestBuildAtMatrix(t *testing.T) {
	conf := baseConfiguration()
	results := BuildAt(nil, conf, fixedNow())

	if len(results) != 1 {
		t.Fatalf("expected 1 scenario report, got %d", len(results))
	}
	result := results[0]

	if result.Scenario != "Base" || result.Income != 2000 {
		t.Errorf("unexpected scenario header: %+v", result)
	}
	if result.Savings != 1400 {
		t.Errorf("Savings = %v, expected 1400", result.Savings)
	}
	if !mathutil.WithinTolerance(result.SavingsRate, 70, 0.01) {
		t.Errorf("SavingsRate = %v, expected 70", result.SavingsRate)
	}

	if len(result.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(result.Rows))
	}
	row := result.Rows[0]

	// Target: 20% down + 10% transfer tax, no cushion.
	if row.Target != 30000 {
		t.Errorf("Target = %v, expected 30000", row.Target)
	}
	// 1400/month flat: 21 months is 29400, 22 months is 30800.
	if row.Months != 22 || !row.Reachable {
		t.Errorf("Months = %d reachable = %t, expected 22 reachable", row.Months, row.Reachable)
	}
	if row.AchievementDate != "2026-11" {
		t.Errorf("AchievementDate = %s, expected 2026-11", row.AchievementDate)
	}
	if row.Quota < 337 || row.Quota > 338 {
		t.Errorf("Quota = %.2f, expected around 337.28", row.Quota)
	}
	if !row.RatioDefined {
		t.Fatal("ratio should be defined for positive income")
	}
	// The stored ratio is rounded to two decimals for display.
	if !mathutil.WithinTolerance(row.Ratio, row.Quota/2000*100, 0.01) {
		t.Errorf("Ratio = %.2f inconsistent with quota %.2f", row.Ratio, row.Quota)
	}
	if row.Risk.Band != 1 {
		t.Errorf("Risk band = %d, expected 1 at ~17%% ratio", row.Risk.Band)
	}
	// Zero return rate: projection is the plain contribution sum.
	if row.Projection != 100*22 {
		t.Errorf("Projection = %v, expected 2200", row.Projection)
	}
}

func TestBuildAtZeroIncome(t *testing.T) {
	conf := config.Configuration{
		Params:    config.Params{ExpensesFixed: 600},
		Scenarios: []config.SalaryScenario{{Label: "No income", NetMonthly: 0}},
		Houses:    []config.HouseGoal{{Label: "Piso", Price: 100000}},
	}
	conf.Resolve(nil)

	results := BuildAt(nil, conf, fixedNow())
	row := results[0].Rows[0]

	if row.Months != 999 || row.Reachable {
		t.Errorf("Months = %d reachable = %t, expected 999 unreachable", row.Months, row.Reachable)
	}
	if row.AchievementDate != "" {
		t.Errorf("AchievementDate = %q, expected empty for unreachable goal", row.AchievementDate)
	}
	if row.RatioDefined {
		t.Error("ratio must be undefined for zero income")
	}
	if row.Risk.Band != 0 {
		t.Errorf("Risk band = %d, expected unclassified", row.Risk.Band)
	}
}

func TestBuildAtProjectionGated(t *testing.T) {
	conf := baseConfiguration()
	conf.Params.ShowInvestmentProjection = false

	results := BuildAt(nil, conf, fixedNow())
	if projection := results[0].Rows[0].Projection; projection != 0 {
		t.Errorf("Projection = %v, expected 0 when disabled", projection)
	}
}

func TestBuildAtFullMatrixShape(t *testing.T) {
	conf := config.Configuration{
		Scenarios: []config.SalaryScenario{
			{Label: "A", NetMonthly: 1500},
			{Label: "B", NetMonthly: 2500},
			{Label: "C", NetMonthly: 3500},
		},
		Houses: []config.HouseGoal{
			{Label: "H1", Price: 90000},
			{Label: "H2", Price: 180000},
		},
	}
	conf.Resolve(nil)

	results := BuildAt(nil, conf, fixedNow())
	if len(results) != 3 {
		t.Fatalf("expected 3 scenario reports, got %d", len(results))
	}
	for _, result := range results {
		if len(result.Rows) != 2 {
			t.Errorf("scenario %s: expected 2 rows, got %d", result.Scenario, len(result.Rows))
		}
	}
}

func TestBuildAtDeterministic(t *testing.T) {
	conf := baseConfiguration()
	first := BuildAt(nil, conf, fixedNow())
	second := BuildAt(nil, conf, fixedNow())

	if len(first) != len(second) {
		t.Fatal("runs returned different shapes")
	}
	for i := range first {
		if len(first[i].Rows) != len(second[i].Rows) {
			t.Fatal("runs returned different row counts")
		}
		for j := range first[i].Rows {
			if first[i].Rows[j] != second[i].Rows[j] {
				t.Errorf("row %d/%d differs between identical runs", i, j)
			}
		}
	}
}
