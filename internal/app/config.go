package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Config represents the runtime configuration for the Youths4Change gateway.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Backend    BackendConfig    `mapstructure:"backend"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Media      MediaConfig      `mapstructure:"media"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port     int    `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`
}

// BackendConfig points the gateway at the organisation's REST backend.
type BackendConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CacheConfig controls the in-memory response cache.
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// MediaConfig describes the third-party media host used for proof uploads.
type MediaConfig struct {
	UploadURL    string `mapstructure:"upload_url"`
	UploadPreset string `mapstructure:"upload_preset"`
	Folder       string `mapstructure:"folder"`
}

// MonitoringConfig enables health checks and metrics.
type MonitoringConfig struct {
	Prometheus PrometheusConfig `mapstructure:"prometheus"`
}

// PrometheusConfig toggles metrics endpoints.
type PrometheusConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
}

// LoadConfig reads configuration from the given file, applying environment
// overrides with the Y4C_ prefix and sensible defaults. An empty path falls
// back to config.yaml in the working directory when present.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("backend.base_url", "http://localhost:5000")
	v.SetDefault("backend.timeout", 30*time.Second)
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("monitoring.prometheus.enabled", true)
	v.SetDefault("monitoring.prometheus.endpoint", "/metrics")

	v.SetEnvPrefix("Y4C")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	decodeHook := mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
	if err := v.Unmarshal(&cfg, viper.DecodeHook(decodeHook)); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the loaded configuration for obvious mistakes and fills in
// safe values where a zero would misbehave.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: invalid server port %d", c.Server.Port)
	}
	if strings.TrimSpace(c.Backend.BaseURL) == "" {
		return errors.New("config: backend base_url is required")
	}
	if c.Backend.Timeout <= 0 {
		c.Backend.Timeout = 30 * time.Second
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = 5 * time.Minute
	}
	return nil
}
