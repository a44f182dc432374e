package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidConfig(t *testing.T) {
	count := 2
	cfg := &Config{
		DatabaseURL:     "postgres://localhost:5432/coffee",
		RecurrenceCount: &count,
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_MissingDatabaseURL(t *testing.T) {
	cfg := &Config{}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestValidate_NegativeRecurrenceCount(t *testing.T) {
	count := -1
	cfg := &Config{
		DatabaseURL:     "postgres://localhost:5432/coffee",
		RecurrenceCount: &count,
	}

	err := Validate(cfg)
	assert.Error(t, err)
}

func TestValidate_SMSEnabledRequiresTwilio(t *testing.T) {
	cfg := &Config{
		DatabaseURL: "postgres://localhost:5432/coffee",
		SMSEnabled:  true,
	}

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "twilio")
}

func TestRecurrencesDefault(t *testing.T) {
	cfg := &Config{DatabaseURL: "postgres://localhost:5432/coffee"}
	assert.Equal(t, 3, cfg.Recurrences())

	zero := 0
	cfg.RecurrenceCount = &zero
	assert.Equal(t, 0, cfg.Recurrences())
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "coffee_connect_config.yaml")
	content := []byte(`
databaseURL: postgres://localhost:5432/coffee
recurrenceCount: 1
smsEnabled: true
twilio:
  accountSID: AC123
  fromNumber: "+15550000000"
`)
	require.NoError(t, os.WriteFile(path, content, 0644))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost:5432/coffee", cfg.DatabaseURL)
	assert.Equal(t, 1, cfg.Recurrences())
	assert.True(t, cfg.SMSEnabled)
	assert.Equal(t, "AC123", cfg.Twilio.AccountSID)
}

func TestLoadFromPath_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "coffee_connect_config.yaml")
	content := []byte("databaseURL: postgres://file-value\n")
	require.NoError(t, os.WriteFile(path, content, 0644))

	t.Setenv("DATABASE_URL", "postgres://env-value")
	t.Setenv("TWILIO_AUTH_TOKEN", "secret-token")

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://env-value", cfg.DatabaseURL)
	assert.Equal(t, "secret-token", cfg.Twilio.AuthToken)
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "coffee_connect_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("databaseURL: [broken"), 0644))

	_, err := LoadFromPath(path)
	assert.Error(t, err)
}
