package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoadConfiguration(t *testing.T) {
	path := writeTempConfig(t, `
params:
  initialCapital: 20000
  interestRate: 2.0
  cushion: 5000
  expensesFixed: 900
  investment: 200
  hasICO: true
  hasITP: true
  showInvestmentProjection: true
  investmentReturnRate: 5.0
scenarios:
  - label: Current salary
    netMonthly: 1850
  - label: After promotion
    grossAnnual: 30000
    numPayments: 14
    age: 30
    children: 0
houses:
  - label: Flat downtown
    price: 150000
logging:
  level: debug
  format: console
output:
  format: csv
`)

	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration returned error: %v", err)
	}

	if conf.Params.InitialCapital != 20000 {
		t.Errorf("InitialCapital = %v, expected 20000", conf.Params.InitialCapital)
	}
	if !conf.Params.HasICO || !conf.Params.HasITP || !conf.Params.ShowInvestmentProjection {
		t.Errorf("boolean params not loaded: %+v", conf.Params)
	}
	if len(conf.Scenarios) != 2 {
		t.Fatalf("expected 2 scenarios, got %d", len(conf.Scenarios))
	}
	if conf.Scenarios[0].NetMonthly != 1850 {
		t.Errorf("direct scenario NetMonthly = %v, expected 1850", conf.Scenarios[0].NetMonthly)
	}
	if conf.Scenarios[1].GrossAnnual != 30000 || conf.Scenarios[1].NumPayments != 14 {
		t.Errorf("calculator scenario not loaded: %+v", conf.Scenarios[1])
	}
	if len(conf.Houses) != 1 || conf.Houses[0].Price != 150000 {
		t.Errorf("houses not loaded: %+v", conf.Houses)
	}
	if conf.Logging.Level != "debug" || conf.Output.Format != "csv" {
		t.Errorf("logging/output not loaded: %+v %+v", conf.Logging, conf.Output)
	}
}

// The HTTP API unmarshals configurations with yaml.v3 directly, which matches
// struct fields case-sensitively; the camelCase keys of the documented format
// must map through the yaml tags, not just through viper's case folding.
func TestYAMLUnmarshalCamelCaseKeys(t *testing.T) {
	doc := `
params:
  initialCapital: 10000
  interestRate: 2.0
  cushion: 5000
  expensesFixed: 500
  investment: 100
  hasICO: true
  hasITP: true
  showInvestmentProjection: true
  investmentReturnRate: 5.0
scenarios:
  - label: Promotion
    grossAnnual: 30000
    numPayments: 14
    age: 30
    children: 1
  - label: Base
    netMonthly: 2000
houses:
  - label: Piso
    price: 100000
`

	var conf Configuration
	if err := yaml.Unmarshal([]byte(doc), &conf); err != nil {
		t.Fatalf("yaml.Unmarshal returned error: %v", err)
	}

	p := conf.Params
	if p.InitialCapital != 10000 || p.InterestRate != 2.0 || p.ExpensesFixed != 500 {
		t.Errorf("multi-word params not unmarshalled: %+v", p)
	}
	if !p.HasICO || !p.HasITP || !p.ShowInvestmentProjection || p.InvestmentReturnRate != 5.0 {
		t.Errorf("boolean and rate params not unmarshalled: %+v", p)
	}

	if len(conf.Scenarios) != 2 {
		t.Fatalf("expected 2 scenarios, got %d", len(conf.Scenarios))
	}
	calc := conf.Scenarios[0]
	if calc.GrossAnnual != 30000 || calc.NumPayments != 14 || calc.Children != 1 {
		t.Errorf("calculator scenario fields not unmarshalled: %+v", calc)
	}
	if conf.Scenarios[1].NetMonthly != 2000 {
		t.Errorf("netMonthly not unmarshalled: %+v", conf.Scenarios[1])
	}
	if len(conf.Houses) != 1 || conf.Houses[0].Price != 100000 {
		t.Errorf("houses not unmarshalled: %+v", conf.Houses)
	}
}

func TestLoadConfigurationMissingFile(t *testing.T) {
	if _, err := LoadConfiguration(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestValidateConfiguration(t *testing.T) {
	tests := []struct {
		name            string
		conf            Configuration
		expectedPhrases []string
	}{
		{
			name: "Empty collections",
			conf: Configuration{},
			expectedPhrases: []string{
				"no salary scenarios defined",
				"no house goals defined",
			},
		},
		{
			name: "Duplicate labels",
			conf: Configuration{
				Scenarios: []SalaryScenario{
					{Label: "Base", NetMonthly: 1800},
					{Label: "Base", NetMonthly: 2000},
				},
				Houses: []HouseGoal{
					{Label: "Piso", Price: 100000},
					{Label: "Piso", Price: 120000},
				},
			},
			expectedPhrases: []string{
				`duplicate scenario label "Base"`,
				`duplicate house label "Piso"`,
			},
		},
		{
			name: "Scenario without income and bad payments",
			conf: Configuration{
				Scenarios: []SalaryScenario{
					{Label: "Empty"},
					{Label: "Odd payments", GrossAnnual: 20000, NumPayments: 13},
				},
				Houses: []HouseGoal{{Label: "Piso", Price: 100000}},
			},
			expectedPhrases: []string{
				"neither a net monthly amount nor a gross annual salary",
				"numPayments must be 12 or 14, got 13",
			},
		},
		{
			name: "No disposable savings",
			conf: Configuration{
				Params: Params{ExpensesFixed: 1500, Investment: 400},
				Scenarios: []SalaryScenario{
					{Label: "Tight", NetMonthly: 1800},
				},
				Houses: []HouseGoal{{Label: "Piso", Price: 100000}},
			},
			expectedPhrases: []string{"leaves no disposable savings"},
		},
		{
			name: "Non-positive house price",
			conf: Configuration{
				Scenarios: []SalaryScenario{{Label: "Base", NetMonthly: 1800}},
				Houses:    []HouseGoal{{Label: "Free house", Price: 0}},
			},
			expectedPhrases: []string{"non-positive price"},
		},
		{
			name: "Projection enabled without investment",
			conf: Configuration{
				Params:    Params{ShowInvestmentProjection: true},
				Scenarios: []SalaryScenario{{Label: "Base", NetMonthly: 1800}},
				Houses:    []HouseGoal{{Label: "Piso", Price: 100000}},
			},
			expectedPhrases: []string{"investment projection is enabled"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := tt.conf.ValidateConfiguration()
			joined := strings.Join(warnings, "\n")
			for _, phrase := range tt.expectedPhrases {
				if !strings.Contains(joined, phrase) {
					t.Errorf("expected warning containing %q, got:\n%s", phrase, joined)
				}
			}
		})
	}
}

func TestValidateConfigurationClean(t *testing.T) {
	conf := Configuration{
		Params: Params{InitialCapital: 1000, InterestRate: 2},
		Scenarios: []SalaryScenario{
			{Label: "Base", NetMonthly: 1800},
			{Label: "Promotion", GrossAnnual: 30000, NumPayments: 12, Age: 30},
		},
		Houses: []HouseGoal{{Label: "Piso", Price: 100000}},
	}
	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
}
