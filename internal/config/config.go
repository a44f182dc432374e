package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// TwilioConfig holds outbound SMS settings. The auth token is never stored
// in the file; it comes from the TWILIO_AUTH_TOKEN environment variable.
type TwilioConfig struct {
	AccountSID string `yaml:"accountSID,omitempty"`
	AuthToken  string `yaml:"-"`
	FromNumber string `yaml:"fromNumber,omitempty"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL     string       `yaml:"databaseURL" validate:"required"`
	RecurrenceCount *int         `yaml:"recurrenceCount,omitempty" validate:"omitempty,min=0,max=52"`
	SMSEnabled      bool         `yaml:"smsEnabled,omitempty"`
	Twilio          TwilioConfig `yaml:"twilio,omitempty"`
}

// DefaultRecurrenceCount is the number of extra weekly occurrences created
// for a repeat-weekly timeslot when the config does not override it.
const DefaultRecurrenceCount = 3

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Recurrences returns the configured recurrence count, defaulting to 3.
func (c *Config) Recurrences() int {
	if c.RecurrenceCount == nil {
		return DefaultRecurrenceCount
	}
	return *c.RecurrenceCount
}

// Load loads and validates the configuration from coffee_connect_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile("coffee_connect_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadWithEnv loads the configuration variant for an environment, e.g.
// coffee_connect_config.test.yaml for "test".
func LoadWithEnv(env string) (*Config, error) {
	name := "coffee_connect_config.yaml"
	if env != "" {
		name = fmt.Sprintf("coffee_connect_config.%s.yaml", env)
	}

	configPath, err := findConfigFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnvOverrides(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.SMSEnabled {
		if cfg.Twilio.AccountSID == "" || cfg.Twilio.FromNumber == "" {
			return fmt.Errorf("config validation failed: smsEnabled requires twilio accountSID and fromNumber")
		}
	}

	return nil
}

// applyEnvOverrides layers secrets and deployment overrides from the
// environment on top of the file values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("TWILIO_AUTH_TOKEN"); v != "" {
		cfg.Twilio.AuthToken = v
	}
}

// findConfigFile searches for the config file in current directory and home directory
func findConfigFile(configFileName string) (string, error) {
	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
