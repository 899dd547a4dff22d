// Package constants provides shared constants for the homeplan application.
package constants

// DateTimeLayout is the month resolution used for projected achievement dates
// and is also the output date format.
const DateTimeLayout = "2006-01"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)

// Savings simulation constants
const (
	// MaxSimulationMonths caps the months-to-target loop at a 50 year horizon.
	MaxSimulationMonths = 600

	// UnreachableMonths is the sentinel month count returned when monthly
	// savings are non-positive and the goal can never be reached.
	UnreachableMonths = 999
)

// Mortgage policy constants
const (
	// MortgageAnnualRate is the assumed fixed nominal annual rate.
	MortgageAnnualRate = 3.0

	// MortgageTermMonths is the assumed fixed term (30 years).
	MortgageTermMonths = 360

	// FinancedShare is the fraction of the price the bank finances when there
	// is no public guarantee; the remainder is the buyer's down payment.
	FinancedShare = 0.80
)

// Purchase target constants
const (
	// DownPaymentRate is the down payment share of the price without an ICO
	// guarantee.
	DownPaymentRate = 0.20

	// TransferTaxStandard is the standard property transfer tax rate.
	TransferTaxStandard = 0.10

	// TransferTaxReduced is the reduced property transfer tax rate for
	// qualifying buyers.
	TransferTaxReduced = 0.04
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML
	// configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)
