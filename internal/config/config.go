package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/JingYiJun/ClassicIndex/internal/log"
)

const (
	DefaultPort           = "3000"
	DefaultBackendURL     = "http://localhost:8000"
	DefaultBackendTimeout = 30 * time.Second
	DefaultServerURL      = "http://localhost:3000"
	DefaultAllowedOrigin  = "http://localhost:3000"

	appDir = "classicindex"
)

// ServerConfig configures the search proxy
type ServerConfig struct {
	Port           string
	BackendURL     string
	BackendTimeout time.Duration
	AllowedOrigins []string
	Debug          bool
}

// LoadServer reads the proxy configuration from the environment. Values found
// in the given .env files (default ".env") fill in variables that are not set;
// a missing file is not an error.
func LoadServer(envFiles ...string) (*ServerConfig, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		log.ForService("config").Debugf("no .env file loaded: %v", err)
	}

	cfg := &ServerConfig{
		Port:           getEnvWithDefault("PORT", DefaultPort),
		BackendURL:     NormalizeBaseURL(getEnvWithDefault("API_BASE_URL", DefaultBackendURL)),
		BackendTimeout: DefaultBackendTimeout,
		AllowedOrigins: splitList(getEnvWithDefault("ALLOWED_ORIGINS", DefaultAllowedOrigin)),
		Debug:          os.Getenv("DEBUG") == "1" || strings.EqualFold(os.Getenv("DEBUG"), "true"),
	}

	if raw := os.Getenv("BACKEND_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("parsing BACKEND_TIMEOUT: %w", err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("BACKEND_TIMEOUT must be positive, got %s", raw)
		}
		cfg.BackendTimeout = d
	}

	return cfg, nil
}

// NormalizeBaseURL trims whitespace and trailing slashes. An empty result falls
// back to the default backend URL.
func NormalizeBaseURL(raw string) string {
	u := strings.TrimRight(strings.TrimSpace(raw), "/")
	if u == "" {
		return DefaultBackendURL
	}
	return u
}

// ClientConfig configures the terminal client
type ClientConfig struct {
	ServerURL string `toml:"server_url"`
	DataDir   string `toml:"data_dir"`
}

// LoadClient reads the TOML file at path. A missing file yields defaults.
func LoadClient(path string) (*ClientConfig, error) {
	var cfg ClientConfig

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("unmarshaling config: %w", err)
		}
	}

	cfg.ServerURL = strings.TrimRight(strings.TrimSpace(cfg.ServerURL), "/")
	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultServerURL
	}

	if cfg.DataDir == "" {
		dir, err := DefaultDataDir()
		if err != nil {
			return nil, fmt.Errorf("getting default data directory: %w", err)
		}
		cfg.DataDir = dir
	}

	return &cfg, nil
}

// PreferencesDir is where the preference store keeps its files
func (c *ClientConfig) PreferencesDir() string {
	return filepath.Join(c.DataDir, "prefs")
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/classicindex/config.toml
func DefaultConfigPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, appDir, "config.toml"), nil
}

// DefaultDataDir returns $XDG_DATA_HOME/classicindex
func DefaultDataDir() (string, error) {
	dir := os.Getenv("XDG_DATA_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		dir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dir, appDir), nil
}

// getEnvWithDefault returns the value of an environment variable or a default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
