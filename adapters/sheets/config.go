package sheets

import (
	"fmt"
	"net/url"
	"time"
)

// Config holds the connection settings for the response sheet endpoint
type Config struct {
	// EndpointURL is the deployed sheet web app; GET returns the table, POST appends a row.
	EndpointURL string `json:"endpoint_url"`
	// DataPath is a gjson path to the table inside the response body. Empty means the
	// body itself is the table.
	DataPath string `json:"data_path,omitempty"`
	// Timeout bounds each request
	Timeout time.Duration `json:"timeout"`
	// Headers are added to every request
	Headers map[string]string `json:"headers,omitempty"`
}

// DefaultConfig returns sensible defaults; EndpointURL must still be set
func DefaultConfig() *Config {
	return &Config{
		Timeout: 15 * time.Second,
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.EndpointURL == "" {
		return &ValidationError{Field: "EndpointURL", Message: "is required"}
	}

	endpoint, err := url.Parse(c.EndpointURL)
	if err != nil || endpoint.Host == "" || (endpoint.Scheme != "http" && endpoint.Scheme != "https") {
		return &ValidationError{Field: "EndpointURL", Message: "must be an absolute http or https URL"}
	}

	if c.Timeout <= 0 {
		return &ValidationError{Field: "Timeout", Message: "must be positive"}
	}

	return nil
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}
