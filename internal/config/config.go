package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds everything the binaries read from config.toml
type Config struct {
	APIBase   string
	StorePath string
	LogPath   string
	Timeout   time.Duration
	LogLevel  string
	Theme     string
}

const (
	DefaultConfigPath = "~/.config/jsonbrowse/config.toml"
	DefaultAPIBase    = "https://jsonplaceholder.typicode.com"
	DefaultStorePath  = "~/.local/share/jsonbrowse/store.db"
	DefaultLogPath    = "~/.local/share/jsonbrowse/jsonbrowse.log"
	DefaultTimeout    = 5 * time.Second
	DefaultLogLevel   = "info"
	DefaultTheme      = "default"

	EnvAPIBase   = "JSONBROWSE_API"
	EnvStorePath = "JSONBROWSE_STORE"
)

// Defaults returns the configuration used when no file exists
func Defaults() Config {
	return Config{
		APIBase:   DefaultAPIBase,
		StorePath: mustExpand(DefaultStorePath),
		LogPath:   mustExpand(DefaultLogPath),
		Timeout:   DefaultTimeout,
		LogLevel:  DefaultLogLevel,
		Theme:     DefaultTheme,
	}
}

// Load reads the config at path (DefaultConfigPath when empty), falling back
// to defaults when the file is missing. JSONBROWSE_API and JSONBROWSE_STORE
// override the file.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Defaults()

	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
		applyEnv(&cfg)
		return cfg, nil
	case err != nil:
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBase   string `toml:"api_base"`
		StorePath string `toml:"store_path"`
		LogPath   string `toml:"log_path"`
		Timeout   string `toml:"timeout"`
		LogLevel  string `toml:"log_level"`
		Theme     string `toml:"theme"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBase); v != "" {
		cfg.APIBase = v
	}
	if v := strings.TrimSpace(raw.StorePath); v != "" {
		cfg.StorePath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogPath); v != "" {
		cfg.LogPath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.Timeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: timeout %q: %w", v, err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("parse config: timeout must be positive, got %s", d)
		}
		cfg.Timeout = d
	}
	if v := strings.ToLower(strings.TrimSpace(raw.LogLevel)); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.ToLower(strings.TrimSpace(raw.Theme)); v != "" {
		cfg.Theme = v
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if env := strings.TrimSpace(os.Getenv(EnvAPIBase)); env != "" {
		cfg.APIBase = env
	}
	if env := strings.TrimSpace(os.Getenv(EnvStorePath)); env != "" {
		cfg.StorePath = mustExpand(env)
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(DefaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
