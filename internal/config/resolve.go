package config

import (
	"fmt"
	"math"

	"github.com/dmolina/homeplan/pkg/tax"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Resolve assigns ids to scenarios and houses that lack one and derives the
// effective monthly income for every scenario. Calculator entries run through
// the tax model; the stored figure is always the prorated (annual/12) net so
// downstream monthly savings math stays uniform regardless of payment count.
func (c *Configuration) Resolve(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}

	for i := range c.Scenarios {
		scenario := &c.Scenarios[i]
		if scenario.ID == "" {
			scenario.ID = uuid.NewString()
		}

		if scenario.GrossAnnual > 0 && scenario.NetMonthly <= 0 {
			numPayments := scenario.NumPayments
			if numPayments != 12 && numPayments != 14 {
				numPayments = 12
			}
			result := tax.NetSalary(scenario.GrossAnnual, numPayments, scenario.Age, scenario.Children)

			scenario.Calculated = true
			scenario.NumPayments = numPayments
			scenario.EffectiveMonthly = math.Round(result.NetMonthlyProrated)
			scenario.DisplayNet = math.Round(result.NetMonthly)
			scenario.RetentionRate = result.RetentionRate

			logger.Debug(fmt.Sprintf("resolved scenario %s from gross %.2f to effective monthly %.2f",
				scenario.Label, scenario.GrossAnnual, scenario.EffectiveMonthly),
				zap.String("op", "config.Resolve"),
			)
		} else {
			scenario.Calculated = false
			scenario.EffectiveMonthly = scenario.NetMonthly
			scenario.DisplayNet = scenario.NetMonthly
		}
	}

	for i := range c.Houses {
		if c.Houses[i].ID == "" {
			c.Houses[i].ID = uuid.NewString()
		}
	}
}

// PaymentBreakdown describes how a scenario's net annual income lands in the
// bank. For 14-payment scenarios the two extra full payments arrive in summer
// and at Christmas; this is informational only and does not affect the
// prorated figure the simulator uses.
type PaymentBreakdown struct {
	PerPayment   float64
	NumPayments  int
	ExtraMonths  []string
	ExtraPerUnit float64
}

// Breakdown returns the display payment breakdown for a resolved scenario.
func (s *SalaryScenario) Breakdown() PaymentBreakdown {
	breakdown := PaymentBreakdown{
		PerPayment:  s.DisplayNet,
		NumPayments: s.NumPayments,
	}
	if breakdown.NumPayments == 0 {
		breakdown.NumPayments = 12
	}
	if breakdown.NumPayments == 14 {
		breakdown.ExtraMonths = []string{"June", "December"}
		breakdown.ExtraPerUnit = s.DisplayNet
	}
	return breakdown
}
