package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"

	NotifierLog   = "log"
	NotifierAsynq = "asynq"
	NotifierNone  = "none"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Coordinator booking throttle.
	BookingRateLimit  int           `mapstructure:"BOOKING_RATE_LIMIT"`
	BookingRateWindow time.Duration `mapstructure:"BOOKING_RATE_WINDOW"`
	RateLimitBackend  string        `mapstructure:"RATE_LIMIT_BACKEND"`

	// Redis configuration.
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	RedisRateLimitDB int    `mapstructure:"REDIS_RATE_LIMIT_DB"`
	RedisQueueDB     int    `mapstructure:"REDIS_QUEUE_DB"`

	// Booking event delivery.
	Notifier          string `mapstructure:"NOTIFIER"`
	WorkerConcurrency int    `mapstructure:"WORKER_CONCURRENCY"`

	AllowReset       bool          `mapstructure:"ALLOW_RESET"`
	CORSAllowOrigins []string      `mapstructure:"CORS_ALLOW_ORIGINS"`
	ShutdownTimeout  time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

// AppConfig is the configuration last returned by LoadConfig.
var AppConfig Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("BOOKING_RATE_LIMIT", 5)
	v.SetDefault("BOOKING_RATE_WINDOW", "60s")
	v.SetDefault("RATE_LIMIT_BACKEND", BackendMemory)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_RATE_LIMIT_DB", 0)
	v.SetDefault("REDIS_QUEUE_DB", 1)
	v.SetDefault("NOTIFIER", NotifierLog)
	v.SetDefault("WORKER_CONCURRENCY", 5)
	v.SetDefault("ALLOW_RESET", true)
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
	v.SetDefault("SHUTDOWN_TIMEOUT", "5s")
}

// LoadConfig reads config.yaml from "." or "./config" when present, then lets
// environment variables override it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	cfg.CORSAllowOrigins = splitOrigins(cfg.CORSAllowOrigins)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	AppConfig = cfg
	return &cfg, nil
}

// splitOrigins accepts both a YAML list and a comma separated env value.
func splitOrigins(in []string) []string {
	var out []string
	for _, item := range in {
		for _, o := range strings.Split(item, ",") {
			if o = strings.TrimSpace(o); o != "" {
				out = append(out, o)
			}
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func (c *Config) Validate() error {
	switch {
	case c.BookingRateLimit <= 0:
		return fmt.Errorf("config: BOOKING_RATE_LIMIT must be positive, got %d", c.BookingRateLimit)
	case c.BookingRateWindow <= 0:
		return fmt.Errorf("config: BOOKING_RATE_WINDOW must be positive, got %s", c.BookingRateWindow)
	case c.MaxRequestsPerMin <= 0:
		return fmt.Errorf("config: MAX_REQUESTS_PER_MIN must be positive, got %d", c.MaxRequestsPerMin)
	case c.WorkerConcurrency <= 0:
		return fmt.Errorf("config: WORKER_CONCURRENCY must be positive, got %d", c.WorkerConcurrency)
	}
	switch c.RateLimitBackend {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("config: unknown RATE_LIMIT_BACKEND %q", c.RateLimitBackend)
	}
	switch c.Notifier {
	case NotifierLog, NotifierAsynq, NotifierNone:
	default:
		return fmt.Errorf("config: unknown NOTIFIER %q", c.Notifier)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
