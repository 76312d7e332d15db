package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Config holds the configuration for the trip planner service.
// Environment variables are parsed from the TRIP_PLANNER_ prefix.
type Config struct {
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Persistence: "memory" or "postgres"
	StoreDriver string `envconfig:"STORE_DRIVER" default:"memory"`
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	// Oracle (language-model) collaborator. An empty key selects the
	// deterministic rule-based oracle instead of OpenAI.
	OpenAIAPIKey         string `envconfig:"OPENAI_API_KEY" default:""`
	OpenAIItineraryModel string `envconfig:"OPENAI_ITINERARY_MODEL" default:"gpt-4.1"`
	OpenAIChatModel      string `envconfig:"OPENAI_CHAT_MODEL" default:"gpt-4.1-mini"`

	// Routing collaborator; empty key means degraded mode (zero-length legs).
	RoutesAPIKey string `envconfig:"ROUTES_API_KEY" default:""`

	// Enrichment collaborator (web text grounding for candidates).
	EnrichmentEnabled bool `envconfig:"ENRICHMENT_ENABLED" default:"true"`

	// Pipeline tuning
	MaxStopsPerDay int `envconfig:"MAX_STOPS_PER_DAY" default:"4"`
	FanOutLimit    int `envconfig:"FAN_OUT_LIMIT" default:"4"`

	// When true, activities added via chat are expanded by the detail
	// enricher immediately instead of keeping placeholder fields.
	EnrichOnAdd bool `envconfig:"ENRICH_ON_ADD" default:"false"`

	// Health monitoring
	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"30"`
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"2"`
}

// ResolveDefaults validates driver selection and clamps tuning knobs.
func (c *Config) ResolveDefaults() error {
	switch c.StoreDriver {
	case "memory":
	case "postgres":
		if c.PostgresDSN == "" {
			return fmt.Errorf("STORE_DRIVER=postgres requires POSTGRES_DSN")
		}
	default:
		return fmt.Errorf("unsupported STORE_DRIVER: %s", c.StoreDriver)
	}

	// Per-day stop budget stays in the supported 3..5 band.
	if c.MaxStopsPerDay < 3 {
		c.MaxStopsPerDay = 3
	}
	if c.MaxStopsPerDay > 5 {
		c.MaxStopsPerDay = 5
	}
	if c.FanOutLimit < 1 {
		c.FanOutLimit = 1
	}
	return nil
}

// New creates a new Config by parsing environment variables.
// Example: TRIP_PLANNER_HTTP_PORT, TRIP_PLANNER_STORE_DRIVER.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("TRIP_PLANNER", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("environment", string(cfg.Environment)).
		Str("store_driver", cfg.StoreDriver).
		Int("port", cfg.HTTPPort).
		Bool("openai_key_present", cfg.OpenAIAPIKey != "").
		Bool("routes_key_present", cfg.RoutesAPIKey != "").
		Bool("enrichment_enabled", cfg.EnrichmentEnabled).
		Int("max_stops_per_day", cfg.MaxStopsPerDay).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config specifically for testing.
func NewForTesting() *Config {
	return &Config{
		Environment:               EnvTesting,
		HTTPPort:                  8080,
		StoreDriver:               "memory",
		MaxStopsPerDay:            4,
		FanOutLimit:               4,
		HealthIntervalSeconds:     30,
		HealthProbeTimeoutSeconds: 2,
	}
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool { return c.Environment == EnvTesting }

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool { return c.Environment == EnvProduction }

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string { return fmt.Sprintf(":%d", c.HTTPPort) }
