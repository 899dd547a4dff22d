// Package config defines the data structures related to configuration and
// includes functions for loading, resolving, and validating the config.
package config

import (
	"fmt"

	"github.com/dmolina/homeplan/pkg/constants"
	"github.com/spf13/viper"
)

// DateTimeLayout is the output date format for projected dates.
const DateTimeLayout = constants.DateTimeLayout

// Configuration holds all configuration for homeplan.
type Configuration struct {
	Params    Params           `yaml:"params"`
	Scenarios []SalaryScenario `yaml:"scenarios"`
	Houses    []HouseGoal      `yaml:"houses"`
	Logging   LoggingConfig    `yaml:"logging,omitempty"`
	Output    OutputConfig     `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// Params holds the global purchase and savings parameters shared by every
// scenario and house pair.
type Params struct {
	InitialCapital           float64 `yaml:"initialCapital"`
	InterestRate             float64 `yaml:"interestRate"` // nominal annual % on the savings balance
	Cushion                  float64 `yaml:"cushion"`
	ExpensesFixed            float64 `yaml:"expensesFixed"`
	Investment               float64 `yaml:"investment"`
	HasICO                   bool    `yaml:"hasICO"`
	HasITP                   bool    `yaml:"hasITP"`
	ShowInvestmentProjection bool    `yaml:"showInvestmentProjection"`
	InvestmentReturnRate     float64 `yaml:"investmentReturnRate"` // nominal annual % for the projection
}

// SalaryScenario is one income hypothesis. It is either a direct net monthly
// entry (NetMonthly) or a calculator entry (GrossAnnual plus the withholding
// inputs); Resolve fills in the effective figures either way.
type SalaryScenario struct {
	ID          string  `yaml:"id,omitempty"`
	Label       string  `yaml:"label"`
	NetMonthly  float64 `yaml:"netMonthly,omitempty"`
	GrossAnnual float64 `yaml:"grossAnnual,omitempty"`
	NumPayments int     `yaml:"numPayments,omitempty"`
	Age         int     `yaml:"age,omitempty"`
	Children    int     `yaml:"children,omitempty"`

	// Resolved fields; populated by Resolve, never read from YAML.
	Calculated       bool    `yaml:"-"`
	EffectiveMonthly float64 `yaml:"-"`
	DisplayNet       float64 `yaml:"-"`
	RetentionRate    float64 `yaml:"-"`
}

// HouseGoal is one candidate home purchase.
type HouseGoal struct {
	ID    string  `yaml:"id,omitempty"`
	Label string  `yaml:"label"`
	Price float64 `yaml:"price"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Warnings do not stop a run; the calculator is permissive
// by design and callers decide how to surface them.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Params.InitialCapital < 0 {
		warnings = append(warnings, "params.initialCapital is negative; treating savings as starting below zero")
	}
	if c.Params.InterestRate < 0 {
		warnings = append(warnings, "params.interestRate is negative")
	}
	if c.Params.ExpensesFixed < 0 || c.Params.Investment < 0 {
		warnings = append(warnings, "monthly outflows (expensesFixed, investment) should not be negative")
	}
	if c.Params.ShowInvestmentProjection && c.Params.Investment <= 0 {
		warnings = append(warnings, "investment projection is enabled but the monthly investment amount is 0")
	}

	if len(c.Scenarios) == 0 {
		warnings = append(warnings, "no salary scenarios defined; the report will be empty")
	}
	if len(c.Houses) == 0 {
		warnings = append(warnings, "no house goals defined; the report will be empty")
	}

	seenScenarios := make(map[string]bool)
	for _, scenario := range c.Scenarios {
		if scenario.Label == "" {
			warnings = append(warnings, "scenario with empty label")
		} else if seenScenarios[scenario.Label] {
			warnings = append(warnings, fmt.Sprintf("duplicate scenario label %q", scenario.Label))
		}
		seenScenarios[scenario.Label] = true

		if scenario.GrossAnnual <= 0 && scenario.NetMonthly <= 0 {
			warnings = append(warnings, fmt.Sprintf("scenario %q has neither a net monthly amount nor a gross annual salary", scenario.Label))
		} else if scenario.NetMonthly > 0 &&
			scenario.NetMonthly-c.Params.ExpensesFixed-c.Params.Investment <= 0 {
			warnings = append(warnings, fmt.Sprintf("scenario %q leaves no disposable savings under the current expenses and investment", scenario.Label))
		}
		if scenario.GrossAnnual > 0 && scenario.NumPayments != 0 &&
			scenario.NumPayments != 12 && scenario.NumPayments != 14 {
			warnings = append(warnings, fmt.Sprintf("scenario %q: numPayments must be 12 or 14, got %d", scenario.Label, scenario.NumPayments))
		}
	}

	seenHouses := make(map[string]bool)
	for _, house := range c.Houses {
		if house.Label == "" {
			warnings = append(warnings, "house with empty label")
		} else if seenHouses[house.Label] {
			warnings = append(warnings, fmt.Sprintf("duplicate house label %q", house.Label))
		}
		seenHouses[house.Label] = true

		if house.Price <= 0 {
			warnings = append(warnings, fmt.Sprintf("house %q has a non-positive price", house.Label))
		}
	}

	return warnings
}
