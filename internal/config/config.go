package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	DefaultCredentialsFile            = "./creds.json"
	DefaultCredentialsSpreadsheetName = "UnstoppableUT2 Username and Password Data Spreadsheet"
	DefaultWorkbookNameSuffix         = "UT2 Tracker Spreadsheet"
	DefaultShareRole                  = "writer"
	DefaultPrintDelay                 = 20 * time.Millisecond
)

type Config struct {
	Environment string `toml:"-"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// spreadsheet service
	CredentialsFile            string `toml:"credentials_file"`
	CredentialsSpreadsheetName string `toml:"credentials_spreadsheet_name"`
	CredentialsSpreadsheetID   string `toml:"credentials_spreadsheet_id"`
	WorkbookNameSuffix         string `toml:"workbook_name_suffix"`
	ShareRole                  string `toml:"share_role"`
	HashPasswords              bool   `toml:"hash_passwords"`
	// terminal
	PrintDelayRaw string        `toml:"print_delay"`
	PrintDelay    time.Duration `toml:"-"`
	// telemetry
	PushgatewayURL string `toml:"pushgateway_url"`
	TracingEnabled bool   `toml:"tracing_enabled"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the TOML file at path and returns the config of the given env,
// with defaults applied to the values left empty.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}
	return fromToml(&t, env)
}

// Parse is Load for an already read TOML document.
func Parse(env, data string) (*Config, error) {
	var t Toml
	if _, err := toml.Decode(data, &t); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return fromToml(&t, env)
}

func fromToml(t *Toml, env string) (*Config, error) {
	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}

	cfg.Environment = strings.ToLower(env)
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() error {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.CredentialsFile == "" {
		c.CredentialsFile = DefaultCredentialsFile
	}
	if c.CredentialsSpreadsheetName == "" && c.CredentialsSpreadsheetID == "" {
		c.CredentialsSpreadsheetName = DefaultCredentialsSpreadsheetName
	}
	if c.WorkbookNameSuffix == "" {
		c.WorkbookNameSuffix = DefaultWorkbookNameSuffix
	}
	if c.ShareRole == "" {
		c.ShareRole = DefaultShareRole
	}

	c.PrintDelay = DefaultPrintDelay
	if c.PrintDelayRaw != "" {
		d, err := time.ParseDuration(c.PrintDelayRaw)
		if err != nil {
			return fmt.Errorf("parse print_delay: %w", err)
		}
		if d < 0 {
			return errors.New("print_delay cannot be negative")
		}
		c.PrintDelay = d
	}

	return nil
}
