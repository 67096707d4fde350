package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
	Zones    ZonesConfig    `yaml:"zones" mapstructure:"zones"`
	Content  ContentConfig  `yaml:"content" mapstructure:"content"`
	Places   PlacesConfig   `yaml:"places" mapstructure:"places"`
	Location LocationConfig `yaml:"location" mapstructure:"location"`
	Intake   IntakeConfig   `yaml:"intake" mapstructure:"intake"`
	Submit   SubmitConfig   `yaml:"submit" mapstructure:"submit"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port             int      `yaml:"port" mapstructure:"port"`
	CORSOrigins      []string `yaml:"cors_origins" mapstructure:"cors_origins"`
	BatchConcurrency int      `yaml:"batch_concurrency" mapstructure:"batch_concurrency"`
	BatchMaxCoords   int      `yaml:"batch_max_coords" mapstructure:"batch_max_coords"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// ZonesConfig points at an optional catalog file; empty means the built-in
// reference zones.
type ZonesConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ContentConfig points at an optional reference-content file.
type ContentConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// PlacesConfig configures the reverse place lookup.
type PlacesConfig struct {
	BaseURL      string  `yaml:"base_url" mapstructure:"base_url"`
	UserAgent    string  `yaml:"user_agent" mapstructure:"user_agent"`
	RateLimitRPS float64 `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
	CacheEnabled bool    `yaml:"cache_enabled" mapstructure:"cache_enabled"`
	CachePath    string  `yaml:"cache_path" mapstructure:"cache_path"`
	CacheTTLDays int     `yaml:"cache_ttl_days" mapstructure:"cache_ttl_days"`
}

// LocationConfig configures the static device-location source used by the
// CLI. Denied simulates a visitor refusing the location prompt.
type LocationConfig struct {
	Latitude    *float64 `yaml:"latitude" mapstructure:"latitude"`
	Longitude   *float64 `yaml:"longitude" mapstructure:"longitude"`
	Denied      bool     `yaml:"denied" mapstructure:"denied"`
	TimeoutSecs int      `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// IntakeConfig configures wizard sessions.
type IntakeConfig struct {
	SessionTTLMins    int `yaml:"session_ttl_mins" mapstructure:"session_ttl_mins"`
	SweepIntervalMins int `yaml:"sweep_interval_mins" mapstructure:"sweep_interval_mins"`
}

// SubmitConfig configures the claim submission sink. An empty webhook URL
// selects the logging stub.
type SubmitConfig struct {
	WebhookURL string `yaml:"webhook_url" mapstructure:"webhook_url"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("INTAKE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.batch_concurrency", 4)
	v.SetDefault("server.batch_max_coords", 100)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("places.base_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("places.user_agent", "pfas-intake/1.0")
	v.SetDefault("places.rate_limit_rps", 1)
	v.SetDefault("places.cache_enabled", true)
	v.SetDefault("places.cache_path", "places_cache.db")
	v.SetDefault("places.cache_ttl_days", 30)
	v.SetDefault("location.timeout_secs", 10)
	v.SetDefault("intake.session_ttl_mins", 120)
	v.SetDefault("intake.sweep_interval_mins", 10)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
