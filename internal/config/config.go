package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Columns ColumnsConfig `yaml:"columns" envconfig:"COLUMNS"`
}

// LoggingConfig contains logging configuration. Defaults are applied in
// applyDefaults rather than struct tags: envconfig writes tag defaults over
// file-loaded values whenever the variable is unset.
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format      string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output      string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// ColumnsConfig describes how the combined position sheet is cleaned and
// presented. Numeric and percentage columns are matched against header text
// exactly; exclusion prefixes are matched case-sensitively against the
// leading characters of the account column value. Columns named here but
// absent from the data are ignored.
type ColumnsConfig struct {
	// AccountColumn is the header of the account-identifier column used for
	// boilerplate row exclusion and width sizing.
	AccountColumn string `yaml:"account_column" envconfig:"ACCOUNT_COLUMN" validate:"required"`

	// Numeric columns receive the currency display format.
	Numeric []string `yaml:"numeric" envconfig:"NUMERIC"`

	// Percentage columns are normalized (value / 100) and receive the
	// percentage display format.
	Percentage []string `yaml:"percentage" envconfig:"PERCENTAGE"`

	// ExclusionPrefixes removes boilerplate rows that brokerage exports
	// embed below the data (disclaimers, download stamps).
	ExclusionPrefixes []string `yaml:"exclusion_prefixes" envconfig:"EXCLUSION_PREFIXES"`
}

// Default column lists for the brokerage position exports this tool was
// built around. Overridable via config file or POSSHEET_COLUMNS_* env vars.
var (
	defaultNumericColumns = []string{
		"Last Price",
		"Last Price Change",
		"Current Value",
		"Today's Gain/Loss Dollar",
		"Total Gain/Loss Dollar",
		"Cost Basis Total",
		"Average Cost Basis",
	}

	defaultPercentageColumns = []string{
		"Today's Gain/Loss Percent",
		"Total Gain/Loss Percent",
		"Percent Of Account",
	}

	defaultExclusionPrefixes = []string{
		"The data and information",
		"Brokerage services are",
		"Date downloaded",
	}
)

// Load loads configuration from an optional YAML file and environment
// variables. Environment variables (prefix POSSHEET) take precedence over
// the file; the file takes precedence over built-in defaults. An empty
// configFile skips the file step entirely.
func Load(configFile string) (*Config, error) {
	var cfg Config

	if configFile != "" {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = *fileCfg
	}

	if err := envconfig.Process("POSSHEET", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults fills in values that neither the file nor the environment
// supplied.
func (c *Config) applyDefaults() {
	if len(c.Columns.Numeric) == 0 {
		c.Columns.Numeric = append([]string(nil), defaultNumericColumns...)
	}
	if len(c.Columns.Percentage) == 0 {
		c.Columns.Percentage = append([]string(nil), defaultPercentageColumns...)
	}
	if len(c.Columns.ExclusionPrefixes) == 0 {
		c.Columns.ExclusionPrefixes = append([]string(nil), defaultExclusionPrefixes...)
	}
	if c.Columns.AccountColumn == "" {
		c.Columns.AccountColumn = "Account Number"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "both"
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = filepath.Join("logs", "possheet.log")
	}
}

// validate runs struct-level validation on the configuration
func (c *Config) validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return err
	}
	return nil
}
