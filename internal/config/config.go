package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

const configFileName = "scheduler_config.yaml"

// GenerationDefaults are the default knobs applied when a caller does not
// set them explicitly
type GenerationDefaults struct {
	ConsiderPreferences bool `yaml:"considerPreferences"`
	AllowOvertime       bool `yaml:"allowOvertime"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL string             `yaml:"databaseURL" validate:"required"`
	ListenAddr  string             `yaml:"listenAddr,omitempty"`
	Generation  GenerationDefaults `yaml:"generation,omitempty"`

	// HolidayRules are RRULE strings (e.g. FREQ=YEARLY;BYMONTH=12;BYMONTHDAY=25)
	// marking dates on which holiday-only staffing blocks apply
	HolidayRules []string `yaml:"holidayRules,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration, looking in the current
// directory first and then the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile()
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

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks holiday rule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, rule := range cfg.HolidayRules {
		if _, err := rrule.StrToRRule(rule); err != nil {
			return fmt.Errorf("invalid rrule in holidayRules[%d]: %w", i, err)
		}
	}

	return nil
}

// findConfigFile searches for the config file in the current directory and
// the user's home directory
func findConfigFile() (string, error) {
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

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
