// Package adapters converts between internal configuration types and the
// parameter structs of the calculation packages, keeping the calculation
// packages free of configuration dependencies.
package adapters

import (
	"github.com/dmolina/homeplan/internal/config"
	"github.com/dmolina/homeplan/pkg/savings"
)

// SavingsParams converts the global configuration parameters into the
// savings package's parameter struct.
func SavingsParams(p config.Params) savings.Params {
	return savings.Params{
		InitialCapital: p.InitialCapital,
		InterestRate:   p.InterestRate,
		Cushion:        p.Cushion,
		ExpensesFixed:  p.ExpensesFixed,
		Investment:     p.Investment,
		HasICO:         p.HasICO,
		HasITP:         p.HasITP,
	}
}
