package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Catalog  CatalogConfig
	Search   SearchConfig
	Realtime RealtimeConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	StaticDir      string   `mapstructure:"static_dir"`
}

// CatalogConfig holds catalog feed configuration
type CatalogConfig struct {
	SourceURL   string `mapstructure:"source_url"`
	SiteOrigin  string `mapstructure:"site_origin"`
	AssetPrefix string `mapstructure:"asset_prefix"`
	HeaderMode  string `mapstructure:"header_mode"` // "auto", "present", or "absent"
}

// SearchConfig holds search behavior configuration
type SearchConfig struct {
	PageSize           int      `mapstructure:"page_size"`
	FallbackQuery      string   `mapstructure:"fallback_query"`
	BrandStopWords     []string `mapstructure:"brand_stop_words"`
	EnableDebugLogging bool     `mapstructure:"enable_debug_logging"`
}

// RealtimeConfig holds realtime speech API configuration
type RealtimeConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/shopvoice/")

	// Environment variable settings
	v.SetEnvPrefix("SHOPVOICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.static_dir", "./public")

	// Catalog defaults. Empty-string defaults register the keys so env
	// overrides are visible to Unmarshal.
	v.SetDefault("catalog.source_url", "")
	v.SetDefault("catalog.site_origin", "")
	v.SetDefault("catalog.asset_prefix", "")
	v.SetDefault("catalog.header_mode", "auto")

	// Search defaults
	v.SetDefault("search.page_size", 6)
	v.SetDefault("search.fallback_query", "")
	v.SetDefault("search.brand_stop_words", []string{})
	v.SetDefault("search.enable_debug_logging", false)

	// Realtime defaults
	v.SetDefault("realtime.api_key", "")
	v.SetDefault("realtime.base_url", "https://api.openai.com")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Catalog.SourceURL == "" {
		return fmt.Errorf("catalog source URL is required (set SHOPVOICE_CATALOG_SOURCE_URL)")
	}

	switch config.Catalog.HeaderMode {
	case "auto", "present", "absent":
	default:
		return fmt.Errorf("catalog header mode must be 'auto', 'present', or 'absent', got: %s", config.Catalog.HeaderMode)
	}

	if config.Search.PageSize < 1 {
		return fmt.Errorf("search page size must be at least 1, got: %d", config.Search.PageSize)
	}

	return nil
}
