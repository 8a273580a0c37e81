package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"kuesioner/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Sheet  SheetConfig  `validate:"required"`
	Server ServerConfig `validate:"required"`
	Poll   PollConfig   `validate:"required"`
	Form   FormConfig
	Log    LogConfig
}

// SheetConfig holds the response sheet endpoint settings
type SheetConfig struct {
	EndpointURL string        `validate:"required,url"`
	DataPath    string
	Timeout     time.Duration `validate:"gt=0"`
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string `validate:"required,numeric"`
	GinMode string `validate:"oneof=debug release test"`
}

// PollConfig holds the live refresh settings
type PollConfig struct {
	Interval time.Duration `validate:"gte=1s"`
}

// FormConfig holds questionnaire submission settings
type FormConfig struct {
	RequiredFields []string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `validate:"omitempty,oneof=ERROR WARN INFO DEBUG TRACE"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Sheet:  *loadSheetConfig(),
		Server: *loadServerConfig(),
		Poll:   *loadPollConfig(),
		Form:   *loadFormConfig(),
		Log:    *loadLogConfig(),
	}

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// Validate checks struct tags and the endpoint scheme
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			first := fieldErrs[0]
			return errors.ConfigInvalid(first.Namespace() + " failed '" + first.Tag() + "' check")
		}
		return errors.Wrap(errors.ConfigInvalid(err.Error()), "invalid configuration")
	}

	endpoint, err := url.Parse(c.Sheet.EndpointURL)
	if err != nil || (endpoint.Scheme != "http" && endpoint.Scheme != "https") {
		return errors.ConfigInvalid("SHEET_ENDPOINT_URL must be an http or https URL")
	}
	return nil
}

func loadSheetConfig() *SheetConfig {
	return &SheetConfig{
		EndpointURL: strings.TrimSpace(os.Getenv("SHEET_ENDPOINT_URL")),
		DataPath:    getEnvOrDefault("SHEET_DATA_PATH", ""),
		Timeout:     getEnvDurationOrDefault("HTTP_TIMEOUT", 15*time.Second),
	}
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
	}
}

func loadPollConfig() *PollConfig {
	return &PollConfig{
		Interval: getEnvDurationOrDefault("POLL_INTERVAL", 30*time.Second),
	}
}

func loadFormConfig() *FormConfig {
	return &FormConfig{
		RequiredFields: getEnvListOrDefault("REQUIRED_FIELDS", []string{"nama"}),
	}
}

func loadLogConfig() *LogConfig {
	return &LogConfig{
		Level: strings.ToUpper(getEnvOrDefault("LOG_LEVEL", "INFO")),
	}
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Bare integers are read as seconds
		if seconds := getEnvIntOrDefault(key, -1); seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
