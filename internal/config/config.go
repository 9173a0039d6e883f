package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Defaults sized for public sharing
const (
	DefaultDailyLimit   = 50
	DefaultBotThreshold = 30
	DefaultRadiusMeters = 3000
	DefaultProbeTimeout = 10 * time.Second
)

// Config holds the externally supplied knobs. The core components take
// these as parameters and never hardcode them.
type Config struct {
	GoogleMapsAPIKey string
	OpenAIAPIKey     string

	DailyLimit   int
	BotThreshold int
	RadiusMeters int
	ProbeTimeout time.Duration
}

// FromEnv builds a Config from environment variables, falling back to
// defaults for anything unset. Call godotenv.Load first if a .env file
// should be honored.
func FromEnv() Config {
	return Config{
		GoogleMapsAPIKey: os.Getenv("GOOGLE_MAPS_API_KEY"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		DailyLimit:       envInt("LEADLINE_DAILY_LIMIT", DefaultDailyLimit),
		BotThreshold:     envInt("LEADLINE_BOT_THRESHOLD", DefaultBotThreshold),
		RadiusMeters:     envInt("LEADLINE_RADIUS_METERS", DefaultRadiusMeters),
		ProbeTimeout:     time.Duration(envInt("LEADLINE_PROBE_TIMEOUT_SECONDS", int(DefaultProbeTimeout/time.Second))) * time.Second,
	}
}

// Validate rejects inconsistent knob combinations. The bot threshold must
// sit below the hard daily limit or the flag could never fire first.
func (c Config) Validate() error {
	if c.DailyLimit <= 0 {
		return fmt.Errorf("daily limit must be positive, got %d", c.DailyLimit)
	}
	if c.BotThreshold <= 0 {
		return fmt.Errorf("bot threshold must be positive, got %d", c.BotThreshold)
	}
	if c.BotThreshold >= c.DailyLimit {
		return fmt.Errorf("bot threshold (%d) must be below daily limit (%d)", c.BotThreshold, c.DailyLimit)
	}
	if c.RadiusMeters <= 0 {
		return fmt.Errorf("search radius must be positive, got %d", c.RadiusMeters)
	}
	if c.ProbeTimeout <= 0 || c.ProbeTimeout > 10*time.Second {
		return fmt.Errorf("probe timeout must be between 1s and 10s, got %s", c.ProbeTimeout)
	}
	return nil
}

// HasPlacesKey reports whether real searches are possible
func (c Config) HasPlacesKey() bool {
	return c.GoogleMapsAPIKey != ""
}

// HasScriptKey reports whether AI script generation is possible
func (c Config) HasScriptKey() bool {
	return c.OpenAIAPIKey != ""
}

// envInt reads an integer environment variable with a default
func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
