package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for the crop phenology service
type Config struct {
	// Server configuration
	Port string `env:"PORT,default=8981"`

	// Deployment environment: "local" or "gcp"
	Environment string `env:"ENVIRONMENT,default=local"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL,default=INFO"`
	LogFormat string `env:"LOG_FORMAT,default=text"`

	// GCP configuration (required when Environment is "gcp")
	GCPProjectID string `env:"GCP_PROJECT_ID"`
	GCSBucket    string `env:"GCS_BUCKET"`

	// Local configuration
	LocalReportsDir string `env:"LOCAL_REPORTS_DIR,default=./reports"`
	CropsDBPath     string `env:"CROPS_DB_PATH,default=./data/crops.db"`
	MockupMode      bool   `env:"MOCKUP_MODE,default=false"`

	// Open-Meteo endpoints
	GeocodingAPIURL string `env:"GEOCODING_API_URL,default=https://geocoding-api.open-meteo.com/v1/search"`
	ArchiveAPIURL   string `env:"ARCHIVE_API_URL,default=https://archive-api.open-meteo.com/v1/archive"`
	ClimateAPIURL   string `env:"CLIMATE_API_URL,default=https://climate-api.open-meteo.com/v1/climate"`

	// Agromet advisory feed (RSS/Atom); empty disables the report section
	AdvisoryFeedURL string `env:"ADVISORY_FEED_URL"`

	// OpenAI advisory commentary (optional; empty key disables it)
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIModel  string `env:"OPENAI_MODEL,default=gpt-4o-mini"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Environment {
	case "local", "gcp":
	default:
		return fmt.Errorf("invalid ENVIRONMENT %q: must be \"local\" or \"gcp\"", c.Environment)
	}
	if c.Environment == "gcp" {
		if c.GCSBucket == "" {
			return fmt.Errorf("GCS_BUCKET is required when ENVIRONMENT=gcp")
		}
		if c.GCPProjectID == "" {
			return fmt.Errorf("GCP_PROJECT_ID is required when ENVIRONMENT=gcp")
		}
	}
	return nil
}

// AdvisoryEnabled reports whether the OpenAI advisory section is configured.
func (c *Config) AdvisoryEnabled() bool {
	return c.OpenAIAPIKey != ""
}
