// Package constants provides shared constants for the auction-analyzer application.
package constants

import "math"

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

// Acquisition defaults
const (
	// AuctioneerFeeRate is the auctioneer commission over the winning bid
	AuctioneerFeeRate = 0.05

	// DefaultITBIPercent is the usual municipal transfer tax percentage
	DefaultITBIPercent = 2.0

	// MaxITBIPercent is the highest transfer tax percentage accepted as input
	MaxITBIPercent = 3.0

	// NotaryRateFinanced covers registration only; the deed is part of the financing contract
	NotaryRateFinanced = 0.004

	// NotaryRateUnfinanced covers deed and registration
	NotaryRateUnfinanced = 0.01
)

// Financing defaults
const (
	// DefaultDownPaymentRate is the usual auction minimum down payment
	DefaultDownPaymentRate = 0.05

	// DefaultFinancingTermYears is used when no term is given
	DefaultFinancingTermYears = 30

	// MandatoryInsuranceMonthlyRate is charged monthly over the financed principal
	MandatoryInsuranceMonthlyRate = 0.0008

	// AdministrativeFeeMonthly is a flat monthly institutional fee
	AdministrativeFeeMonthly = 25.0
)

// Profitability defaults
const (
	// CapitalGainsTaxRate applies to positive resale gains
	CapitalGainsTaxRate = 0.15
)

// Alert thresholds
const (
	// RenovationAlertRatio is the renovation share of the auction value that raises a warning
	RenovationAlertRatio = 0.30

	// LowSavingsPercent is the minimum savings against appraisal before an info alert
	LowSavingsPercent = 10.0

	// LowRentalReturnPercent is the minimum acceptable annual rental return
	LowRentalReturnPercent = 6.0

	// HighInterestRatePercent is the annual rate above which financing is flagged
	HighInterestRatePercent = 12.0

	// GoodOpportunityPercent is the savings against appraisal considered a good deal
	GoodOpportunityPercent = 20.0
)

// Unbounded marks the open upper end of the last property tax bracket.
var Unbounded = math.Inf(1)

// Input defaults applied by the configuration layer
const (
	// DefaultAnalysisPeriodMonths is the holding period used when none is given
	DefaultAnalysisPeriodMonths = 12
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"

	// OutputFormatYAML is the YAML output format
	OutputFormatYAML = "yaml"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// DefaultEnvFile is the optional dotenv file loaded before configuration
	DefaultEnvFile = ".env"

	// EnvPrefix prefixes environment variable overrides, e.g. AUCTION_OUTPUT_FORMAT
	EnvPrefix = "AUCTION"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultShutdownTimeoutSeconds bounds graceful shutdown
	DefaultShutdownTimeoutSeconds = 10

	// DefaultReadHeaderTimeoutSeconds bounds how long a client may take to send headers
	DefaultReadHeaderTimeoutSeconds = 10

	// RequestIDHeader carries the per-request identifier
	RequestIDHeader = "X-Request-ID"
)
