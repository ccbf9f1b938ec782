package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToml = `
[development]
log_level = "debug"
logs_path = ""
log_to_stdout = true
credentials_file = "./dev-creds.json"
print_delay = "0s"
hash_passwords = true

[production]
logs_path = "/var/log/ut2tracker/ut2tracker.log"
credentials_spreadsheet_id = "1AbCdEf"
pushgateway_url = "http://localhost:9091"
tracing_enabled = true
`

func TestParse_Development(t *testing.T) {
	cfg, err := Parse("dev", testToml)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.LogToStdout)
	assert.Equal(t, "./dev-creds.json", cfg.CredentialsFile)
	assert.Equal(t, DefaultCredentialsSpreadsheetName, cfg.CredentialsSpreadsheetName)
	assert.Empty(t, cfg.CredentialsSpreadsheetID)
	assert.Equal(t, DefaultWorkbookNameSuffix, cfg.WorkbookNameSuffix)
	assert.Equal(t, DefaultShareRole, cfg.ShareRole)
	assert.Equal(t, time.Duration(0), cfg.PrintDelay)
	assert.True(t, cfg.HashPasswords)
	assert.False(t, cfg.TracingEnabled)
}

func TestParse_Production(t *testing.T) {
	cfg, err := Parse("Production", testToml)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, DefaultCredentialsFile, cfg.CredentialsFile)
	assert.Equal(t, "1AbCdEf", cfg.CredentialsSpreadsheetID)
	// resolved by ID, no name lookup
	assert.Empty(t, cfg.CredentialsSpreadsheetName)
	assert.Equal(t, DefaultPrintDelay, cfg.PrintDelay)
	assert.Equal(t, "http://localhost:9091", cfg.PushgatewayURL)
	assert.True(t, cfg.TracingEnabled)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse("staging", testToml)
	assert.EqualError(t, err, "unknown env: staging")

	_, err = Parse("prod", "[development]\nlog_level = \"info\"\n")
	assert.EqualError(t, err, "no config section for env: prod")

	_, err = Parse("dev", "[development]\nprint_delay = \"soon\"\n")
	assert.ErrorContains(t, err, "parse print_delay")

	_, err = Parse("dev", "[development]\nprint_delay = \"-1s\"\n")
	assert.ErrorContains(t, err, "cannot be negative")

	_, err = Parse("dev", "[development\n")
	assert.ErrorContains(t, err, "decode config")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(testToml), 0o600))

	cfg, err := Load("development", path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)

	_, err = Load("development", filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
