package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	defaultJWTSecret = "change-me-jwt-secret"
	defaultTimezone  = "Asia/Ho_Chi_Minh"
)

type Config struct {
	AppEnv   string `envconfig:"APP_ENV" default:"dev"`
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	DatabaseURL string `envconfig:"DATABASE_URL" default:"file:culturehub.db?_time_format=sqlite"`

	JWTSecret string        `envconfig:"JWT_SECRET" default:"change-me-jwt-secret"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`

	// Calendar hours and zone-less booking times are interpreted in this zone.
	Timezone string `envconfig:"TIMEZONE" default:"Asia/Ho_Chi_Minh"`

	RateOverridesFile string `envconfig:"RATE_OVERRIDES_FILE"`

	PendingPaymentTTL time.Duration `envconfig:"PENDING_PAYMENT_TTL" default:"15m"`
	SweepInterval     time.Duration `envconfig:"SWEEP_INTERVAL" default:"1m"`

	RedisURL        string `envconfig:"REDIS_URL"`
	RabbitURL       string `envconfig:"RABBIT_URL"`
	BookingExchange string `envconfig:"BOOKING_EXCHANGE" default:"booking.exchange"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS"`

	location *time.Location
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if c.PendingPaymentTTL <= 0 {
		return fmt.Errorf("PENDING_PAYMENT_TTL must be > 0")
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("SWEEP_INTERVAL must be > 0")
	}
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}

	tz := strings.TrimSpace(c.Timezone)
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("invalid TIMEZONE value %q: %w", c.Timezone, err)
	}
	c.location = loc

	if c.IsProduction() {
		if isEmptyOrDefault(c.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
	}
	return nil
}

// Location is the zone resolved by Validate; UTC when Validate was never called.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

func (c *Config) IsProduction() bool {
	return isProdLike(c.AppEnv)
}

// DefaultRateOverrides is the hourly price table applied by facility display name
// before a facility's own base rate.
func DefaultRateOverrides() map[string]int64 {
	return map[string]int64{
		"Sân cầu lông": 50000,
	}
}

// LoadRateOverrides returns the defaults, or the JSON object stored in path when set.
func LoadRateOverrides(path string) (map[string]int64, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return DefaultRateOverrides(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rate overrides %s: %w", path, err)
	}

	rates := map[string]int64{}
	if err := json.Unmarshal(raw, &rates); err != nil {
		return nil, fmt.Errorf("parse rate overrides %s: %w", path, err)
	}
	for name, rate := range rates {
		if rate < 0 {
			return nil, fmt.Errorf("rate override for %q must be >= 0", name)
		}
	}
	return rates, nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}
