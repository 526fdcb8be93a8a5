// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (config.yaml), with ${VAR} environment expansion
//  2. Environment variables (fallback for the secret-ish values)
//
// Example usage:
//
//	cfg, err := config.Load("config.yaml")
//	sheetID := cfg.Sheet.SpreadsheetID
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/singofwalls/checkbook-updater/internal/domain/ledger"
	"github.com/singofwalls/checkbook-updater/internal/domain/matcher"
)

// Config represents the entire application configuration
type Config struct {
	Sheet   SheetConfig    `yaml:"sheet"`
	Bank    BankConfig     `yaml:"bank"`
	Match   matcher.Config `yaml:"match"`
	Storage StorageConfig  `yaml:"storage"`
	Logging LoggingConfig  `yaml:"logging"`
}

// SheetConfig holds the Google Sheet location and layout
type SheetConfig struct {
	SpreadsheetID   string `yaml:"spreadsheet_id"`
	CredentialsPath string `yaml:"credentials_path"`
	TokenPath       string `yaml:"token_path"`
	Name            string `yaml:"name"`
	FieldRow        int    `yaml:"field_row"`
	DateFormat      string `yaml:"date_format"`

	// Methods maps payment methods to description keywords, first match
	// wins. MethodDefault applies when no keyword hits.
	Methods       []ledger.MethodGroup `yaml:"methods"`
	MethodDefault string               `yaml:"method_default"`
}

// BankConfig holds the bank export source settings
type BankConfig struct {
	ExportDir string `yaml:"export_dir"`
	Strict    bool   `yaml:"strict"`
}

// StorageConfig holds the run-history database configuration
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration matching the checkbook sheet's layout
// conventions. A config file only needs to override what differs.
func Default() *Config {
	return &Config{
		Sheet: SheetConfig{
			SpreadsheetID:   os.Getenv("CHECKBOOK_SPREADSHEET_ID"),
			CredentialsPath: getEnv("CHECKBOOK_CREDENTIALS", "credentials.json"),
			TokenPath:       getEnv("CHECKBOOK_TOKEN", "token.json"),
			Name:            "Sheet1",
			FieldRow:        5,
			DateFormat:      "01/02/2006",
			Methods:         ledger.DefaultMethodGroups(),
			MethodDefault:   "Card",
		},
		Bank: BankConfig{
			ExportDir: getEnv("CHECKBOOK_BANK_DIR", "exports"),
		},
		Match: matcher.DefaultConfig(),
		Storage: StorageConfig{
			DatabasePath: getEnv("CHECKBOOK_DB_PATH", "checkbook.db"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}
}

// Load reads and parses the config file over the defaults. Environment
// variables referenced as ${VAR} in the file are expanded before parsing.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault tries to load from the specified path, falls back to the
// defaults when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if os.IsNotExist(err) {
		cfg = Default()
		err = cfg.validate()
	}
	return cfg, err
}

func (c *Config) validate() error {
	if c.Sheet.SpreadsheetID == "" {
		return fmt.Errorf("sheet.spreadsheet_id is required (or set CHECKBOOK_SPREADSHEET_ID)")
	}
	if c.Sheet.FieldRow < 2 {
		return fmt.Errorf("sheet.field_row must leave room for the account row, got %d", c.Sheet.FieldRow)
	}
	if c.Match.Threshold <= 0 {
		return fmt.Errorf("match.threshold must be positive, got %v", c.Match.Threshold)
	}
	return nil
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
