package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// Logging
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// CORS
	CorsOrigins []string `mapstructure:"CORS_ORIGINS"`

	// Cache
	CacheDir           string `mapstructure:"CACHE_DIR"`
	ShotCacheTTLHours  int    `mapstructure:"SHOT_CACHE_TTL_HOURS"`
	ImageCacheTTLHours int    `mapstructure:"IMAGE_CACHE_TTL_HOURS"`
	JanitorSchedule    string `mapstructure:"JANITOR_SCHEDULE"`

	// NBA data
	CurrentSeason   string `mapstructure:"CURRENT_SEASON"`
	StatsBaseURL    string `mapstructure:"NBA_STATS_BASE_URL"`
	HeadshotBaseURL string `mapstructure:"NBA_HEADSHOT_BASE_URL"`

	// External API behavior
	FetchDelayMs       int           `mapstructure:"FETCH_DELAY_MS"`
	ExternalAPITimeout time.Duration `mapstructure:"EXTERNAL_API_TIMEOUT"`

	// Rendering
	HeatmapResolution int     `mapstructure:"HEATMAP_RESOLUTION"`
	HeatmapBandwidth  float64 `mapstructure:"HEATMAP_BANDWIDTH"`
	HeatmapThreshold  float64 `mapstructure:"HEATMAP_THRESHOLD"`
	SimpleLegend      bool    `mapstructure:"SIMPLE_LEGEND"`

	// Request limiting, per client IP. Zero disables it.
	RateLimitPerMinute int `mapstructure:"RATE_LIMIT_PER_MINUTE"`

	// Background jobs
	EnableJanitor bool `mapstructure:"ENABLE_JANITOR"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "")
	viper.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")

	// Cache defaults: shot data goes stale daily, headshots weekly
	viper.SetDefault("CACHE_DIR", "nba_cache")
	viper.SetDefault("SHOT_CACHE_TTL_HOURS", 24)
	viper.SetDefault("IMAGE_CACHE_TTL_HOURS", 168)
	viper.SetDefault("JANITOR_SCHEDULE", "0 */6 * * *")

	viper.SetDefault("CURRENT_SEASON", "2024-25")
	viper.SetDefault("NBA_STATS_BASE_URL", "https://stats.nba.com")
	viper.SetDefault("NBA_HEADSHOT_BASE_URL", "https://cdn.nba.com/headshots/nba/latest/1040x760")

	viper.SetDefault("FETCH_DELAY_MS", 600) // informal stats API rate limit
	viper.SetDefault("EXTERNAL_API_TIMEOUT", "10s")

	viper.SetDefault("HEATMAP_RESOLUTION", 74)
	viper.SetDefault("HEATMAP_BANDWIDTH", 0.4)
	viper.SetDefault("HEATMAP_THRESHOLD", 0.05)
	viper.SetDefault("SIMPLE_LEGEND", false)

	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 120)

	viper.SetDefault("ENABLE_JANITOR", true)

	// Read from environment
	viper.AutomaticEnv()

	// Read config file if exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Parse CORS origins from comma-separated string
	if corsStr := viper.GetString("CORS_ORIGINS"); corsStr != "" {
		config.CorsOrigins = strings.Split(corsStr, ",")
	}

	return &config, nil
}

func (c *Config) ShotTTL() time.Duration {
	return time.Duration(c.ShotCacheTTLHours) * time.Hour
}

func (c *Config) ImageTTL() time.Duration {
	return time.Duration(c.ImageCacheTTLHours) * time.Hour
}

func (c *Config) FetchDelay() time.Duration {
	return time.Duration(c.FetchDelayMs) * time.Millisecond
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
