package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/vidyasagar/tframe/internal/browser"
)

// EnvPrefix prefixes every environment override, e.g. TFRAME_HOMEPAGE.
const EnvPrefix = "TFRAME"

// Config holds tframe user configuration.
type Config struct {
	Theme              string `json:"theme" envconfig:"THEME"`
	Homepage           string `json:"homepage" envconfig:"HOMEPAGE"`
	LoadTimeoutSeconds int    `json:"load_timeout_seconds" envconfig:"LOAD_TIMEOUT_SECONDS"`
	Sandbox            string `json:"sandbox" envconfig:"SANDBOX"`
	GlamourStyle       string `json:"glamour_style" envconfig:"GLAMOUR_STYLE"`
	LogLevel           string `json:"log_level" envconfig:"LOG_LEVEL"`
	path               string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Theme:              "default",
		Homepage:           browser.DefaultHomepage,
		LoadTimeoutSeconds: 30,
		Sandbox:            "allow-scripts allow-same-origin",
		GlamourStyle:       "auto",
		LogLevel:           "info",
	}
}

// LoadConfig loads configuration from path, or from the standard config
// directory when path is empty. A missing file is created with defaults.
// Environment variables override values from the file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "config.json")
	}

	cfg := DefaultConfig()
	cfg.path = path

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Best effort: a read-only config dir still gets defaults.
		_ = cfg.Save()
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	cfg.path = path
	return &cfg, nil
}

// LoadTimeout returns the frame load timeout; zero disables it.
func (c *Config) LoadTimeout() time.Duration {
	if c.LoadTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.LoadTimeoutSeconds) * time.Second
}

// Path returns the file the configuration was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Save writes the configuration to disk.
func (c *Config) Save() error {
	if c.path == "" {
		dir, err := configDir()
		if err != nil {
			return err
		}
		c.path = filepath.Join(dir, "config.json")
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(c.path, data, 0o644)
}

// DataDir returns the data directory for persistent storage.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "tframe"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "tframe"), nil
		}
		return filepath.Join(home, ".tframe"), nil
	default:
		if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
			return filepath.Join(xdgData, "tframe"), nil
		}
		return filepath.Join(home, ".local", "share", "tframe"), nil
	}
}

func configDir() (string, error) {
	if runtime.GOOS != "linux" && runtime.GOOS != "freebsd" && runtime.GOOS != "openbsd" {
		// Same location as the data directory outside XDG systems.
		return DataDir()
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "tframe"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}
	return filepath.Join(home, ".config", "tframe"), nil
}
