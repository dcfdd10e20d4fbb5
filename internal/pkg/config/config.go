package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all agent configuration.
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Backend       BackendConfig       `mapstructure:"backend"`
	Routing       RoutingConfig       `mapstructure:"routing"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	Map           MapConfig           `mapstructure:"map"`
	Token         TokenConfig         `mapstructure:"token"`
	NATS          NATSConfig          `mapstructure:"nats"`
	Valkey        ValkeyConfig        `mapstructure:"valkey"`
	Telemetry     TelemetryConfig     `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
}

type BackendConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"`
}

type RoutingConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Profile string `mapstructure:"profile"`
	Timeout int    `mapstructure:"timeout"`
}

type NotificationsConfig struct {
	PollInterval int `mapstructure:"poll_interval"`
}

type MapConfig struct {
	TileURL        string  `mapstructure:"tile_url"`
	CenterLat      float64 `mapstructure:"center_lat"`
	CenterLon      float64 `mapstructure:"center_lon"`
	LatitudeDelta  float64 `mapstructure:"latitude_delta"`
	LongitudeDelta float64 `mapstructure:"longitude_delta"`
}

type TokenConfig struct {
	// Path overrides the default token location under the user config dir.
	Path string `mapstructure:"path"`
}

type NATSConfig struct {
	URL string `mapstructure:"url"`
}

type ValkeyConfig struct {
	Addr string `mapstructure:"addr"`
}

type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	OTLPAddr    string `mapstructure:"otlp_addr"`
	Enabled     bool   `mapstructure:"enabled"`
}

// Load reads configuration from file and environment variables.
func Load(service string) (*Config, error) {
	v := viper.New()

	// Defaults (map defaults center on Kathmandu)
	v.SetDefault("server.port", 7600)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("backend.base_url", "http://localhost:8000/api")
	v.SetDefault("backend.timeout", 15)
	v.SetDefault("routing.base_url", "https://router.project-osrm.org")
	v.SetDefault("routing.profile", "driving")
	v.SetDefault("routing.timeout", 15)
	v.SetDefault("notifications.poll_interval", 15)
	v.SetDefault("map.tile_url", "https://tile.openstreetmap.org/{z}/{x}/{y}.png")
	v.SetDefault("map.center_lat", 27.7172)
	v.SetDefault("map.center_lon", 85.3240)
	v.SetDefault("map.latitude_delta", 0.0922)
	v.SetDefault("map.longitude_delta", 0.0421)
	v.SetDefault("token.path", "")
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("valkey.addr", "localhost:6379")
	v.SetDefault("telemetry.service_name", service)
	v.SetDefault("telemetry.otlp_addr", "localhost:4317")
	v.SetDefault("telemetry.enabled", false)

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: SADAK_BACKEND_BASE_URL → backend.base_url
	v.SetEnvPrefix("SADAK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.Backend.BaseURL == "" {
		errs = append(errs, "backend.base_url is required")
	}
	if c.Routing.BaseURL == "" {
		errs = append(errs, "routing.base_url is required")
	}
	if c.Routing.Profile == "" {
		errs = append(errs, "routing.profile is required")
	}
	if c.Notifications.PollInterval <= 0 {
		errs = append(errs, "notifications.poll_interval must be positive")
	}
	if c.Map.LatitudeDelta <= 0 || c.Map.LongitudeDelta <= 0 {
		errs = append(errs, "map.latitude_delta and map.longitude_delta must be positive")
	}
	if c.NATS.URL == "" {
		errs = append(errs, "nats.url is required")
	}
	if c.Valkey.Addr == "" {
		errs = append(errs, "valkey.addr is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
