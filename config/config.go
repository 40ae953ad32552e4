package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Ledger    LedgerConfig    `mapstructure:"ledger"`
	Feed      FeedConfig      `mapstructure:"feed"`
	API       APIConfig       `mapstructure:"api"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // debug, release, test
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LedgerConfig sizes the in-memory ledger and its synthetic history.
type LedgerConfig struct {
	Capacity     int       `mapstructure:"capacity"` // 0 = unbounded
	LookbackDays int       `mapstructure:"lookback_days"`
	Merchants    int       `mapstructure:"merchants"`
	StartTime    time.Time `mapstructure:"start_time"` // Simulated clock at boot
	Seed         int64     `mapstructure:"seed"`       // 0 = time-based
}

type FeedConfig struct {
	RefreshInterval      time.Duration `mapstructure:"refresh_interval"`
	ReconnectInterval    time.Duration `mapstructure:"reconnect_interval"`
	MaxReconnectAttempts int           `mapstructure:"max_reconnect_attempts"`
	ConnectDelay         time.Duration `mapstructure:"connect_delay"`
	MaxClockJump         time.Duration `mapstructure:"max_clock_jump"`
	FixedStep            time.Duration `mapstructure:"fixed_step"` // 0 = randomized jump
}

type APIConfig struct {
	SimulatedLatency time.Duration `mapstructure:"simulated_latency"`
	RecentLimit      int           `mapstructure:"recent_limit"`
	TopMerchants     int           `mapstructure:"top_merchants"`
	ExportLimit      int           `mapstructure:"export_limit"`
}

type RedisConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Host      string        `mapstructure:"host"`
	Port      int           `mapstructure:"port"`
	Password  string        `mapstructure:"password"`
	DB        int           `mapstructure:"db"`
	ExportTTL time.Duration `mapstructure:"export_ttl"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// RateLimitConfig caps requests per client per minute. Enforced only when
// Redis is enabled.
type RateLimitConfig struct {
	Export int64 `mapstructure:"export"`
	Feed   int64 `mapstructure:"feed"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// DefaultStartTime is the simulated clock at boot unless configured.
var DefaultStartTime = time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: MPULSE_.
// Nested keys use underscore: MPULSE_LEDGER_CAPACITY, MPULSE_FEED_FIXED_STEP, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("ledger.capacity", 10000)
	v.SetDefault("ledger.lookback_days", 365)
	v.SetDefault("ledger.merchants", 50)
	v.SetDefault("ledger.start_time", DefaultStartTime.Format(time.RFC3339))
	v.SetDefault("ledger.seed", 0)
	v.SetDefault("feed.refresh_interval", "1s")
	v.SetDefault("feed.reconnect_interval", "5s")
	v.SetDefault("feed.max_reconnect_attempts", 5)
	v.SetDefault("feed.connect_delay", "250ms")
	v.SetDefault("feed.max_clock_jump", "10000s")
	v.SetDefault("feed.fixed_step", "0s")
	v.SetDefault("api.simulated_latency", "0s")
	v.SetDefault("api.recent_limit", 40)
	v.SetDefault("api.top_merchants", 5)
	v.SetDefault("api.export_limit", 1000)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.export_ttl", "1m")
	v.SetDefault("ratelimit.export", 30)
	v.SetDefault("ratelimit.feed", 20)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: MPULSE_LEDGER_CAPACITY -> ledger.capacity
	v.SetEnvPrefix("MPULSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects settings the ledger and feed cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Ledger.Capacity < 0:
		return fmt.Errorf("ledger.capacity must be >= 0, got %d", c.Ledger.Capacity)
	case c.Ledger.LookbackDays < 0:
		return fmt.Errorf("ledger.lookback_days must be >= 0, got %d", c.Ledger.LookbackDays)
	case c.Ledger.Merchants < 1:
		return fmt.Errorf("ledger.merchants must be >= 1, got %d", c.Ledger.Merchants)
	case c.Feed.RefreshInterval <= 0:
		return fmt.Errorf("feed.refresh_interval must be positive")
	case c.Feed.MaxReconnectAttempts < 0:
		return fmt.Errorf("feed.max_reconnect_attempts must be >= 0")
	case c.Server.Mode != "debug" && c.Server.Mode != "release" && c.Server.Mode != "test":
		return fmt.Errorf("server.mode must be debug, release or test, got %q", c.Server.Mode)
	}
	return nil
}
