package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all client configuration
type Config struct {
	App    AppConfig
	API    APIConfig
	Stream StreamConfig
	Log    LogConfig
	Status StatusConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
}

// APIConfig holds the REST collaborator settings
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// StreamConfig holds event channel transport settings
type StreamConfig struct {
	RedisHost      string
	RedisPort      int
	RedisPassword  string
	RedisDB        int
	ChannelPrefix  string
	ConnectTimeout time.Duration
	BackoffInitial time.Duration
	BackoffMax     time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// StatusConfig holds the local status endpoint settings
type StatusConfig struct {
	Enabled bool
	Port    string
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with STOREFRONT_ prefix (e.g., STOREFRONT_STREAM_REDIS_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
		},
		API: APIConfig{
			BaseURL: v.GetString("api.base_url"),
			Timeout: v.GetDuration("api.timeout"),
		},
		Stream: StreamConfig{
			RedisHost:      v.GetString("stream.redis_host"),
			RedisPort:      v.GetInt("stream.redis_port"),
			RedisPassword:  v.GetString("stream.redis_password"),
			RedisDB:        v.GetInt("stream.redis_db"),
			ChannelPrefix:  v.GetString("stream.channel_prefix"),
			ConnectTimeout: v.GetDuration("stream.connect_timeout"),
			BackoffInitial: v.GetDuration("stream.backoff_initial"),
			BackoffMax:     v.GetDuration("stream.backoff_max"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Status: StatusConfig{
			Enabled: v.GetBool("status.enabled"),
			Port:    v.GetString("status.port"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "storefront-client"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "http://localhost:8080/api/v1"
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = 30 * time.Second
	}
	if cfg.Stream.RedisHost == "" {
		cfg.Stream.RedisHost = "localhost"
	}
	if cfg.Stream.RedisPort == 0 {
		cfg.Stream.RedisPort = 6379
	}
	if cfg.Stream.ChannelPrefix == "" {
		cfg.Stream.ChannelPrefix = "storefront"
	}
	if cfg.Stream.ConnectTimeout == 0 {
		cfg.Stream.ConnectTimeout = 20 * time.Second
	}
	if cfg.Stream.BackoffInitial == 0 {
		cfg.Stream.BackoffInitial = 500 * time.Millisecond
	}
	if cfg.Stream.BackoffMax == 0 {
		cfg.Stream.BackoffMax = 5 * time.Second
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.Status.Port == "" {
		cfg.Status.Port = "9090"
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute URL, got %q", c.API.BaseURL)
	}
	if c.Stream.BackoffInitial > c.Stream.BackoffMax {
		return fmt.Errorf("stream.backoff_initial (%s) cannot exceed stream.backoff_max (%s)",
			c.Stream.BackoffInitial, c.Stream.BackoffMax)
	}
	if c.Stream.RedisPort <= 0 || c.Stream.RedisPort > 65535 {
		return fmt.Errorf("stream.redis_port must be a valid port, got %d", c.Stream.RedisPort)
	}
	return nil
}

// RedisAddr returns the host:port address of the event channel broker
func (s *StreamConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", s.RedisHost, s.RedisPort)
}
