package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8080"`

	PostgresURL string `env:"POSTGRES_URL,required"`

	// RedisAddr is optional; when empty the aggregated-feed cache is disabled.
	RedisAddr    string        `env:"REDIS_ADDR"`
	FeedCacheTTL time.Duration `env:"FEED_CACHE_TTL" envDefault:"60s"`

	// Provider credentials. A provider whose credentials are absent is
	// disabled silently and contributes no events.
	TicketmasterAPIKey   string `env:"TICKETMASTER_API_KEY"`
	SeatGeekClientID     string `env:"SEATGEEK_CLIENT_ID"`
	SeatGeekClientSecret string `env:"SEATGEEK_CLIENT_SECRET"`
	EventbriteAPIKey     string `env:"EVENTBRITE_API_KEY"`

	ProviderTimeout   time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"8s"`
	ProviderRateLimit float64       `env:"PROVIDER_RATE_LIMIT" envDefault:"5"` // requests per second, per provider

	DefaultRadiusMiles int `env:"DEFAULT_RADIUS_MILES" envDefault:"50"`
	MaxFeedResults     int `env:"MAX_FEED_RESULTS" envDefault:"100"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Attempt to load .env file for local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
