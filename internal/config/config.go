package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	APIKey             string        `mapstructure:"alphavantage_api_key"`
	BaseURL            string        `mapstructure:"alphavantage_base_url"`
	HTTPTimeoutSeconds int64         `mapstructure:"http_timeout_seconds"`
	HTTPTimeout        time.Duration `mapstructure:"-"`
	ValidateInputs     bool          `mapstructure:"validate_inputs"`

	// PublishersFile points at the publisher sink declarations. Empty means
	// log-only output.
	PublishersFile string `mapstructure:"publishers_file"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "vantage-fetcher")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("alphavantage_base_url", "https://www.alphavantage.co/query")
	v.SetDefault("http_timeout_seconds", 30)
	v.SetDefault("validate_inputs", false)
	v.SetDefault("publishers_file", "")

	v.AutomaticEnv()
	// The API key is a secret with no default, and Unmarshal only visits keys
	// viper already knows about. Bind it explicitly so ALPHAVANTAGE_API_KEY
	// (exported or from configs/.env) reaches the struct.
	v.MustBindEnv("alphavantage_api_key")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("alphavantage_api_key is required (set ALPHAVANTAGE_API_KEY)")
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("alphavantage_base_url must not be empty")
	}
	if cfg.HTTPTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid http_timeout_seconds (must be positive seconds)")
	}
	cfg.HTTPTimeout = time.Duration(cfg.HTTPTimeoutSeconds) * time.Second

	return &cfg, nil
}
