// Package config loads service settings from defaults, an optional config.yaml
// and the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Environment is the deployment environment of the service.
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// ParseEnvironment falls back to Development for unknown values.
func ParseEnvironment(v string) Environment {
	switch Environment(strings.ToLower(strings.TrimSpace(v))) {
	case Production:
		return Production
	case Testing:
		return Testing
	default:
		return Development
	}
}

func (e Environment) IsProduction() bool {
	return e == Production
}

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

var validBackends = []string{BackendMemory, BackendPostgres}

type Config struct {
	// HTTP server
	Port        string
	Environment Environment
	LogLevel    string

	// Storage
	DataBackend    string
	DatabaseURL    string
	MigrateOnStart bool

	// Rate limiting; RateLimitRPS 0 disables it
	RedisURL       string
	RateLimitRPS   float64
	RateLimitBurst int
	BanMaxStrikes  int
	BanDuration    time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("environment", string(Development))
	v.SetDefault("log_level", "info")
	v.SetDefault("data_backend", BackendMemory)
	v.SetDefault("database_url", "")
	v.SetDefault("migrate_on_start", true)
	v.SetDefault("redis_url", "")
	v.SetDefault("rate_limit_rps", 0)
	v.SetDefault("rate_limit_burst", 10)
	v.SetDefault("ban_max_strikes", 5)
	v.SetDefault("ban_duration", "15m")
}

// Load reads config.yaml from the working directory when present. Environment
// variables such as DATABASE_URL override it.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}
	v.AutomaticEnv()

	return &Config{
		Port:           v.GetString("port"),
		Environment:    ParseEnvironment(v.GetString("environment")),
		LogLevel:       v.GetString("log_level"),
		DataBackend:    strings.ToLower(v.GetString("data_backend")),
		DatabaseURL:    v.GetString("database_url"),
		MigrateOnStart: v.GetBool("migrate_on_start"),
		RedisURL:       v.GetString("redis_url"),
		RateLimitRPS:   v.GetFloat64("rate_limit_rps"),
		RateLimitBurst: v.GetInt("rate_limit_burst"),
		BanMaxStrikes:  v.GetInt("ban_max_strikes"),
		BanDuration:    v.GetDuration("ban_duration"),
	}, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("invalid log level '%s'", c.LogLevel))
	}

	if !slices.Contains(validBackends, c.DataBackend) {
		problems = append(problems, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}
	if c.DataBackend == BackendPostgres && c.DatabaseURL == "" {
		problems = append(problems, "DATABASE_URL cannot be empty when using the postgres backend")
	}

	if c.RedisURL != "" {
		if u, err := url.Parse(c.RedisURL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid Redis URL '%s': %v", c.RedisURL, err))
		} else if u.Scheme != "redis" && u.Scheme != "rediss" {
			problems = append(problems, fmt.Sprintf("invalid Redis URL scheme '%s': must be 'redis' or 'rediss'", u.Scheme))
		}
	}

	if c.RateLimitRPS < 0 {
		problems = append(problems, "rate limit must not be negative")
	}
	if c.RateLimitRPS > 0 && c.RateLimitBurst < 1 {
		problems = append(problems, "rate limit burst must be at least 1")
	}
	if c.BanMaxStrikes < 0 {
		problems = append(problems, "ban strikes must not be negative")
	}
	if c.BanDuration <= 0 {
		problems = append(problems, "ban duration must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
