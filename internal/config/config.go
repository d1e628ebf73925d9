package config

import (
	"cmp"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/spf13/viper"

	"github.com/thisispriyanshii/edviron-frontend/internal/common"
)

// Viper keys.
const (
	KeyAPIBaseURL    = "api.base_url"
	KeyAPITimeout    = "api.timeout"
	KeyAPIRate       = "api.requests_per_second"
	KeySessionPath   = "session.path"
	KeyUITheme       = "ui.theme"
	KeyLoggingLevel  = "logging.level"
	KeyLoggingFormat = "logging.format"
	KeyLoggingFile   = "logging.file"
)

// Themes are the accepted ui.theme values.
var Themes = []string{"default", "catppuccin-mocha"}

// Config is the resolved configuration.
type Config struct {
	Logging common.LogConfig
	API     APIConfig
	Session SessionConfig
	UI      UIConfig
}

// APIConfig configures the backend client.
type APIConfig struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
}

// SessionConfig locates the persisted credential.
type SessionConfig struct {
	Path string
}

// UIConfig configures the dashboard.
type UIConfig struct {
	Theme string
}

// SetDefaults registers default values on v.
// API_URL, the key used by the web dashboard's .env files, replaces the
// built-in base URL default.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyAPIBaseURL, cmp.Or(os.Getenv("API_URL"), "http://localhost:3000"))
	v.SetDefault(KeyAPITimeout, 30*time.Second)
	v.SetDefault(KeyAPIRate, 10.0)
	v.SetDefault(KeyUITheme, "default")
	v.SetDefault(KeyLoggingLevel, "info")
	v.SetDefault(KeyLoggingFormat, "console")

	if dir, err := DataDir(); err == nil {
		v.SetDefault(KeySessionPath, filepath.Join(dir, "session.json"))
		v.SetDefault(KeyLoggingFile, filepath.Join(dir, "edviron.log"))
	}
}

// Load resolves and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		API: APIConfig{
			BaseURL:           v.GetString(KeyAPIBaseURL),
			Timeout:           v.GetDuration(KeyAPITimeout),
			RequestsPerSecond: v.GetFloat64(KeyAPIRate),
		},
		Session: SessionConfig{Path: ExpandPath(v.GetString(KeySessionPath))},
		UI:      UIConfig{Theme: v.GetString(KeyUITheme)},
		Logging: common.LogConfig{
			Level:  v.GetString(KeyLoggingLevel),
			Format: v.GetString(KeyLoggingFormat),
			File:   ExpandPath(v.GetString(KeyLoggingFile)),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("%w: %s", common.ErrMissingConfig, KeyAPIBaseURL)
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %s must be an http(s) URL, got %q", common.ErrInvalidConfig, KeyAPIBaseURL, c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("%w: %s must be positive", common.ErrInvalidConfig, KeyAPITimeout)
	}
	if c.API.RequestsPerSecond <= 0 {
		return fmt.Errorf("%w: %s must be positive", common.ErrInvalidConfig, KeyAPIRate)
	}
	if c.Session.Path == "" {
		return fmt.Errorf("%w: %s", common.ErrMissingConfig, KeySessionPath)
	}
	if !slices.Contains(Themes, c.UI.Theme) {
		return fmt.Errorf("%w: unknown %s %q", common.ErrInvalidConfig, KeyUITheme, c.UI.Theme)
	}
	return nil
}
