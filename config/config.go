package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds application configuration
type Config struct {
	Port     string `toml:"port"`
	LogLevel string `toml:"log_level"`

	RedisAddr string   `toml:"redis_addr"`
	CacheTTL  Duration `toml:"cache_ttl"`

	RateLimitRequests int      `toml:"rate_limit_requests"`
	RateLimitWindow   Duration `toml:"rate_limit_window"`
	CORSOrigin        string   `toml:"cors_origin"`

	CBRURL              string  `toml:"cbr_url"`
	RateRefreshSchedule string  `toml:"rate_refresh_schedule"`
	BankMargin          float64 `toml:"bank_margin"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when neither a file nor the
// environment says otherwise.
func Default() *Config {
	return &Config{
		Port:                "8080",
		LogLevel:            "info",
		CacheTTL:            Duration{24 * time.Hour},
		RateLimitRequests:   5,
		RateLimitWindow:     Duration{time.Minute},
		CORSOrigin:          "http://localhost:3000",
		CBRURL:              "https://www.cbr.ru/DailyInfoWebServ/DailyInfo.asmx",
		RateRefreshSchedule: "@every 6h",
		BankMargin:          5.0,
	}
}

// Load builds the configuration from defaults, the TOML file at path (if
// path is not empty) and environment variables, in that order of precedence.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		path = os.ExpandEnv(path)
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromEnv loads configuration from the file named by LOAN_CONFIG, if any.
func LoadFromEnv() (*Config, error) {
	return Load(os.Getenv("LOAN_CONFIG"))
}

func (c *Config) applyEnv() error {
	c.Port = getEnv("PORT", c.Port)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.RedisAddr = getEnv("REDIS_ADDR", c.RedisAddr)
	c.CORSOrigin = getEnv("CORS_ORIGIN", c.CORSOrigin)
	c.CBRURL = getEnv("CBR_URL", c.CBRURL)
	c.RateRefreshSchedule = getEnv("RATE_REFRESH_SCHEDULE", c.RateRefreshSchedule)

	var err error
	if c.CacheTTL.Duration, err = getEnvDuration("CACHE_TTL", c.CacheTTL.Duration); err != nil {
		return err
	}
	if c.RateLimitWindow.Duration, err = getEnvDuration("RATE_LIMIT_WINDOW", c.RateLimitWindow.Duration); err != nil {
		return err
	}
	if v, ok := os.LookupEnv("RATE_LIMIT_REQUESTS"); ok {
		if c.RateLimitRequests, err = strconv.Atoi(v); err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_REQUESTS %q: %w", v, err)
		}
	}
	if v, ok := os.LookupEnv("BANK_MARGIN"); ok {
		if c.BankMargin, err = strconv.ParseFloat(v, 64); err != nil {
			return fmt.Errorf("invalid BANK_MARGIN %q: %w", v, err)
		}
	}
	return nil
}

// Validate reports the first setting the server cannot start with.
func (c *Config) Validate() error {
	if port, err := strconv.Atoi(c.Port); err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("PORT must be a valid TCP port, got %q", c.Port)
	}
	if c.RateLimitRequests <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive")
	}
	if c.RateLimitWindow.Duration <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	if c.CacheTTL.Duration < 0 {
		return fmt.Errorf("CACHE_TTL must not be negative")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}
