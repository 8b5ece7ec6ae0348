package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Scoring   ScoringConfig   `mapstructure:"scoring"`
	OCR       OCRConfig       `mapstructure:"ocr"`
	Auth      AuthConfig      `mapstructure:"auth"`
	DevServer DevServerConfig `mapstructure:"devserver"`
}

// ScoringConfig holds the remote scoring service settings
type ScoringConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// OCRConfig holds text extraction settings
type OCRConfig struct {
	Languages []string `mapstructure:"languages"`
}

// AuthConfig holds the local credential store settings
type AuthConfig struct {
	CredentialsFile string `mapstructure:"credentials_file"`
}

// DevServerConfig holds settings for the canned scoring stand-in
type DevServerConfig struct {
	Host               string `mapstructure:"host"`
	Port               string `mapstructure:"port"`
	RatePerSecond      int    `mapstructure:"rate_per_second"`
	MaxRequestBodySize int64  `mapstructure:"max_request_body_size"`
}

// ServerAddress returns the dev server listen address
func (c DevServerConfig) ServerAddress() string {
	return strings.TrimSpace(c.Host) + ":" + strings.TrimSpace(c.Port)
}

// Load reads configuration from an optional config file and NUTRISCAN_*
// environment variables, applying defaults for everything unset. An
// empty path skips the file lookup beyond the standard locations.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".nutriscan"))
		}
	}

	v.SetEnvPrefix("NUTRISCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Only a missing file is tolerable; a file that exists but does
		// not parse must never fall back to defaults silently.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("scoring.base_url", "http://localhost:5000")
	v.SetDefault("scoring.request_timeout", "30s")

	v.SetDefault("ocr.languages", []string{"eng"})

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	v.SetDefault("auth.credentials_file", filepath.Join(home, ".nutriscan", "credentials.json"))

	v.SetDefault("devserver.host", "0.0.0.0")
	v.SetDefault("devserver.port", "5000")
	v.SetDefault("devserver.rate_per_second", 10)
	v.SetDefault("devserver.max_request_body_size", 1<<20)
}

func validate(cfg *Config) error {
	u, err := url.Parse(cfg.Scoring.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("scoring.base_url must be an absolute URL, got %q", cfg.Scoring.BaseURL)
	}
	if cfg.Scoring.RequestTimeout <= 0 {
		return fmt.Errorf("scoring.request_timeout must be > 0 (got %s)", cfg.Scoring.RequestTimeout)
	}
	if len(cfg.OCR.Languages) == 0 {
		return fmt.Errorf("ocr.languages must not be empty")
	}
	if p, err := strconv.Atoi(strings.TrimSpace(cfg.DevServer.Port)); err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("invalid devserver.port: %q", cfg.DevServer.Port)
	}
	if cfg.DevServer.MaxRequestBodySize <= 0 {
		return fmt.Errorf("devserver.max_request_body_size must be > 0 (got %d)", cfg.DevServer.MaxRequestBodySize)
	}
	return nil
}
