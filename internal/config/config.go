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
	Geocode  GeocodeConfig  `yaml:"geocode" mapstructure:"geocode"`
	Cascade  CascadeConfig  `yaml:"cascade" mapstructure:"cascade"`
	Registry RegistryConfig `yaml:"registry" mapstructure:"registry"`
	Austin   AustinConfig   `yaml:"austin" mapstructure:"austin"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// GeocodeConfig configures the Nominatim geocoding client.
type GeocodeConfig struct {
	BaseURL      string  `yaml:"base_url" mapstructure:"base_url"`
	UserAgent    string  `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs  int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RateLimitRPS float64 `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
}

// CascadeConfig configures the adapter cascade dispatcher.
type CascadeConfig struct {
	PaceDelayMS         int    `yaml:"pace_delay_ms" mapstructure:"pace_delay_ms"`
	DistantCountyMarker string `yaml:"distant_county_marker" mapstructure:"distant_county_marker"`
	DistantCityPrefix   string `yaml:"distant_city_prefix" mapstructure:"distant_city_prefix"`
	DistantCountyPrefix string `yaml:"distant_county_prefix" mapstructure:"distant_county_prefix"`
}

// RegistryConfig points at an optional adapter registry YAML file.
// When empty, the built-in jurisdiction table is used.
type RegistryConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// AustinConfig configures the Austin direct-fetch adapter.
type AustinConfig struct {
	SearchPageURL string `yaml:"search_page_url" mapstructure:"search_page_url"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PERMIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("geocode.base_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("geocode.user_agent", "Spyglass-PermitBot/1.0 (+https://spyglassrealty.com)")
	v.SetDefault("geocode.timeout_secs", 30)
	v.SetDefault("geocode.rate_limit_rps", 1)
	v.SetDefault("cascade.pace_delay_ms", 400)
	v.SetDefault("cascade.distant_county_marker", "Harris")
	v.SetDefault("cascade.distant_city_prefix", "City of Houston")
	v.SetDefault("cascade.distant_county_prefix", "Harris County")
	v.SetDefault("austin.search_page_url", "https://abc.austintexas.gov/web/permit/public-search-other")

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
