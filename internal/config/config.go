// Package config loads the service configuration from a YAML file, a .env
// file, and environment variables, in increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/skillsenselab/quizapi/internal/logger"
	"github.com/skillsenselab/quizapi/internal/middleware"
	"github.com/skillsenselab/quizapi/internal/store"
)

// envPrefix namespaces environment overrides, e.g. QUIZAPI_JWT_SECRET.
const envPrefix = "QUIZAPI"

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *ServerConfig) ApplyDefaults() {
	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 15 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 15 * time.Second
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
}

// Addr returns the listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig holds token signing settings.
type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
}

// TracingConfig holds the optional OTLP trace exporter settings.
type TracingConfig struct {
	Enabled    bool    `mapstructure:"enabled"`
	Endpoint   string  `mapstructure:"endpoint"`
	Insecure   bool    `mapstructure:"insecure"`
	SampleRate float64 `mapstructure:"sample_rate"`
}

// Config is the composite service configuration.
type Config struct {
	Environment string                     `mapstructure:"environment"`
	Server      ServerConfig               `mapstructure:"server"`
	Logging     logger.Config              `mapstructure:"logging"`
	JWT         JWTConfig                  `mapstructure:"jwt"`
	RateLimit   middleware.RateLimitConfig `mapstructure:"rate_limit"`
	CORS        middleware.CORSConfig      `mapstructure:"cors"`
	Database    store.Config               `mapstructure:"database"`
	Tracing     TracingConfig              `mapstructure:"tracing"`
}

// ApplyDefaults fills every section's defaults.
func (c *Config) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	c.Server.ApplyDefaults()
	c.Logging.ApplyDefaults()
	c.RateLimit.ApplyDefaults()
	c.CORS.ApplyDefaults()
	c.Database.ApplyDefaults()
	if c.JWT.TTL == 0 {
		c.JWT.TTL = time.Hour
	}
}

// Validate rejects configurations the service cannot run with.
func (c *Config) Validate() error {
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("jwt.secret must be at least 32 bytes")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535 (got %d)", c.Server.Port)
	}
	return c.Logging.Validate()
}

// Load reads configuration from an optional YAML file plus environment
// variables. An empty path searches ./config.yml and ./cmd/quizapi/config.yml.
// A .env file next to the working directory is loaded first when present.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("loading .env: %w", err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindDefaults(v)

	if path == "" {
		for _, candidate := range []string{"./config.yml", "./cmd/quizapi/config.yml"} {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// bindDefaults registers every key with viper so AutomaticEnv can resolve
// environment overrides even when the key is absent from the YAML file.
func bindDefaults(v *viper.Viper) {
	v.SetDefault("environment", "")
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 0)
	v.SetDefault("server.read_timeout", "0s")
	v.SetDefault("server.write_timeout", "0s")
	v.SetDefault("server.shutdown_timeout", "0s")
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.output", "")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.ttl", "0s")
	v.SetDefault("rate_limit.requests_per_minute", 0)
	v.SetDefault("rate_limit.auth_requests_per_minute", 0)
	v.SetDefault("rate_limit.cleanup_interval", "0s")
	v.SetDefault("cors.allowed_origins", []string{})
	v.SetDefault("cors.allow_credentials", false)
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("database.log_level", "")
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.insecure", true)
	v.SetDefault("tracing.sample_rate", 1.0)
}
