package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Auth      AuthConfig      `mapstructure:"auth"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Store     StoreConfig     `mapstructure:"store"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Email     EmailConfig     `mapstructure:"email"`
	SMS       SMSConfig       `mapstructure:"sms"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// AuthConfig holds API key authentication settings.
type AuthConfig struct {
	APIKeys []string `mapstructure:"api_keys"`
}

// CORSConfig holds CORS policy settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

// RateLimitConfig holds per-IP rate limiting settings.
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// StoreConfig selects the backing store for templates and senders.
type StoreConfig struct {
	Backend string `mapstructure:"backend"` // "memory" or "redis"
}

// RedisConfig holds Redis connection settings (used when store.backend is "redis").
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// EmailConfig holds email transport settings.
type EmailConfig struct {
	Transport   string       `mapstructure:"transport"` // "smtp" or "resend"
	FromAddress string       `mapstructure:"from_address"`
	SMTP        SMTPConfig   `mapstructure:"smtp"`
	Resend      ResendConfig `mapstructure:"resend"`
}

// SMTPConfig holds SMTP relay settings.
type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	StartTLS bool   `mapstructure:"starttls"`
}

// ResendConfig holds Resend API settings.
type ResendConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// SMSConfig holds SMS transport settings.
type SMSConfig struct {
	Transport  string       `mapstructure:"transport"` // "twilio"
	FromNumber string       `mapstructure:"from_number"`
	Twilio     TwilioConfig `mapstructure:"twilio"`
}

// TwilioConfig holds Twilio account credentials.
type TwilioConfig struct {
	AccountSID string `mapstructure:"account_sid"`
	AuthToken  string `mapstructure:"auth_token"`
}

// MetricsConfig holds Prometheus exposition settings.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Load reads configuration from config.yaml and environment variables.
// Environment variables use the NOTIGATE_ prefix and underscore separators.
// Example: NOTIGATE_SERVER_PORT overrides server.port in config.yaml.
func Load() (*Config, error) {
	v := viper.New()

	// Config file settings
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Load .env file if it exists
	_ = godotenv.Load()

	// Environment variable settings
	v.SetEnvPrefix("NOTIGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("store.backend", "memory")
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("email.transport", "smtp")
	v.SetDefault("email.from_address", "noreply@localhost")
	v.SetDefault("email.smtp.host", "localhost")
	v.SetDefault("email.smtp.port", 587)
	v.SetDefault("email.smtp.starttls", true)
	v.SetDefault("sms.transport", "twilio")
	v.SetDefault("rate_limit.requests_per_second", 10)
	v.SetDefault("rate_limit.burst", 20)
	v.SetDefault("metrics.enabled", true)

	// Read config file (optional — env vars can provide everything)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Handle comma-separated API keys from env var
	if apiKeysStr := v.GetString("auth.api_keys"); apiKeysStr != "" && len(cfg.Auth.APIKeys) == 0 {
		keys := strings.Split(apiKeysStr, ",")
		for i := range keys {
			keys[i] = strings.TrimSpace(keys[i])
		}
		cfg.Auth.APIKeys = keys
	}

	return &cfg, nil
}
