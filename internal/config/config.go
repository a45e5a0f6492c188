// Package config defines the scenario file layout and loads it, applying
// defaults and environment overrides.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/iwvelando/auction-analyzer/internal/calculator"
	"github.com/iwvelando/auction-analyzer/pkg/constants"
	"github.com/iwvelando/auction-analyzer/pkg/propertytax"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration holds everything an auction-analyzer run needs.
type Configuration struct {
	Property  calculator.PropertyInput `yaml:"property"`
	Rates     calculator.Rates         `yaml:"rates,omitempty"`
	Optimizer *OptimizerConfig         `yaml:"optimizer,omitempty"`
	Logging   LoggingConfig            `yaml:"logging,omitempty"`
	Output    OutputConfig             `yaml:"output,omitempty"`
}

// OptimizerConfig asks for the highest bid that keeps Metric at or above
// Target percent. MinBid and MaxBid optionally bound the search.
type OptimizerConfig struct {
	Metric string  `yaml:"metric"` // profitMargin, annualReturn, savingsPercent
	Target float64 `yaml:"target"`
	MinBid float64 `yaml:"minBid,omitempty"`
	MaxBid float64 `yaml:"maxBid,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json, yaml
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %w", err)
	}

	return decode(v)
}

// LoadEnvFile loads KEY=VALUE pairs from a dotenv file into the process
// environment. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("could not load env file %s: %w", path, err)
	}
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", constants.OutputFormatPretty)

	v.SetDefault("property.itbiPercent", constants.DefaultITBIPercent)
	v.SetDefault("property.analysisPeriodMonths", constants.DefaultAnalysisPeriodMonths)

	defaults := calculator.DefaultRates()
	v.SetDefault("rates.auctioneerFeeRate", defaults.AuctioneerFeeRate)
	v.SetDefault("rates.notaryRateFinanced", defaults.NotaryRateFinanced)
	v.SetDefault("rates.notaryRateUnfinanced", defaults.NotaryRateUnfinanced)
	v.SetDefault("rates.capitalGainsTaxRate", defaults.CapitalGainsTaxRate)
	v.SetDefault("rates.mandatoryInsuranceMonthlyRate", defaults.MandatoryInsuranceMonthlyRate)
	v.SetDefault("rates.administrativeFeeMonthly", defaults.AdministrativeFeeMonthly)
	v.SetDefault("rates.defaultDownPaymentRate", defaults.DefaultDownPaymentRate)
	v.SetDefault("rates.defaultFinancingTermYears", defaults.DefaultFinancingTermYears)
	v.SetDefault("rates.defaultItbiPercent", defaults.DefaultITBIPercent)
	v.SetDefault("rates.maxItbiPercent", defaults.MaxITBIPercent)
	v.SetDefault("rates.renovationAlertRatio", defaults.RenovationAlertRatio)
	v.SetDefault("rates.lowSavingsPercent", defaults.LowSavingsPercent)
	v.SetDefault("rates.lowRentalReturnPercent", defaults.LowRentalReturnPercent)
	v.SetDefault("rates.highInterestRatePercent", defaults.HighInterestRatePercent)
	v.SetDefault("rates.goodOpportunityPercent", defaults.GoodOpportunityPercent)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if len(configuration.Rates.PropertyTaxBrackets) == 0 {
		configuration.Rates.PropertyTaxBrackets = propertytax.DefaultTable()
	}

	return &configuration, nil
}

// PropertyInput returns the property section with its objective normalised,
// so spellings such as "sell" or "own-use" are accepted in files.
func (c *Configuration) PropertyInput() (calculator.PropertyInput, error) {
	in := c.Property
	objective, err := calculator.ParseObjective(string(in.Objective))
	if err != nil {
		return calculator.PropertyInput{}, err
	}
	in.Objective = objective
	return in, nil
}

// Calculator builds an engine bound to the configured rates.
func (c *Configuration) Calculator() (*calculator.Calculator, error) {
	return calculator.New(c.Rates)
}

// ValidateConfiguration returns warnings about the configuration file itself.
// Property warnings are reported by the analysis when the input is evaluated.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Optimizer != nil && strings.TrimSpace(c.Optimizer.Metric) == "" {
		warnings = append(warnings, "optimizer section has no metric and will be skipped")
	}

	if c.Logging.OutputFile != "" {
		if _, err := os.Stat(c.Logging.OutputFile); err == nil {
			warnings = append(warnings, fmt.Sprintf("log output file %s exists and will be appended to", c.Logging.OutputFile))
		}
	}

	return warnings
}
