// Package config loads sessionkit settings from file, environment and
// defaults via viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store backend selectors for TOKEN_STORE_BACKEND.
const (
	StoreBackendFile   = "file"
	StoreBackendMemory = "memory"
	StoreBackendRedis  = "redis"
)

// Config holds everything the session manager and its collaborators need.
// Tags use mapstructure for viper unmarshalling.
type Config struct {
	APIBaseURL string `mapstructure:"API_BASE_URL"`

	// Route-level contract: the two navigation targets the session manager
	// redirects to. Concrete paths are deployment configuration.
	LoginRoute   string `mapstructure:"LOGIN_ROUTE"`
	LandingRoute string `mapstructure:"LANDING_ROUTE"`

	DefaultAvatarURL     string        `mapstructure:"DEFAULT_AVATAR_URL"`
	AvatarResolveTimeout time.Duration `mapstructure:"AVATAR_RESOLVE_TIMEOUT"`
	AvatarCacheTTL       time.Duration `mapstructure:"AVATAR_CACHE_TTL"`

	ExpiryBuffer     time.Duration `mapstructure:"EXPIRY_BUFFER"`
	WatchdogInterval time.Duration `mapstructure:"WATCHDOG_INTERVAL"`

	TokenStoreBackend string `mapstructure:"TOKEN_STORE_BACKEND"`
	TokenStorePath    string `mapstructure:"TOKEN_STORE_PATH"`
	RedisAddr         string `mapstructure:"REDIS_ADDR"`
	RedisPassword     string `mapstructure:"REDIS_PASSWORD"`
	RedisDB           int    `mapstructure:"REDIS_DB"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogPretty bool   `mapstructure:"LOG_PRETTY"`
}

// Load reads configuration from file, environment variables, and defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath("/etc/sessionkit/")
	v.AddConfigPath("$HOME/.sessionkit")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("API_BASE_URL", "http://localhost:3000/api")
	v.SetDefault("LOGIN_ROUTE", "/login")
	v.SetDefault("LANDING_ROUTE", "/dashboard")
	v.SetDefault("DEFAULT_AVATAR_URL", "/images/profile/default-avatar.png")
	v.SetDefault("AVATAR_RESOLVE_TIMEOUT", 5*time.Second)
	v.SetDefault("AVATAR_CACHE_TTL", 10*time.Minute)
	v.SetDefault("EXPIRY_BUFFER", 60*time.Second)
	v.SetDefault("WATCHDOG_INTERVAL", 5*time.Second)
	v.SetDefault("TOKEN_STORE_BACKEND", StoreBackendFile)
	v.SetDefault("TOKEN_STORE_PATH", "") // empty means the store's own default
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", false)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine: defaults and env vars cover it.
		// Anything else (permissions, malformed yaml) is a real error.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unable to decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.TokenStoreBackend {
	case StoreBackendFile, StoreBackendMemory, StoreBackendRedis:
	default:
		return fmt.Errorf("config: unknown token store backend %q", c.TokenStoreBackend)
	}
	if c.APIBaseURL == "" {
		return fmt.Errorf("config: API_BASE_URL is required")
	}
	if c.WatchdogInterval <= 0 {
		return fmt.Errorf("config: WATCHDOG_INTERVAL must be positive")
	}
	if c.ExpiryBuffer < 0 {
		return fmt.Errorf("config: EXPIRY_BUFFER must not be negative")
	}
	return nil
}
