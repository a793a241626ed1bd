// Package config loads bossrush settings from an optional YAML file with
// BOSSRUSH_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the full runtime configuration.
type Config struct {
	SaveDir    string    `yaml:"save_dir"`
	ContentDir string    `yaml:"content_dir"` // empty = built-in content
	LogLevel   string    `yaml:"log_level"`
	LogFormat  string    `yaml:"log_format"`
	LogFile    string    `yaml:"log_file"` // empty = discard
	Animation  Animation `yaml:"animation"`
}

// Animation holds controller tuning that content authors may adjust.
type Animation struct {
	CrossFade   float64 `yaml:"crossfade"`
	DampingRate float64 `yaml:"damping_rate"`
}

// Default returns the built-in configuration.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		SaveDir:   filepath.Join(home, ".bossrush", "saves"),
		LogLevel:  "info",
		LogFormat: "text",
		Animation: Animation{
			CrossFade:   0.18,
			DampingRate: 16,
		},
	}
}

// Load reads path (if non-empty) over the defaults, then applies
// environment overrides. A missing file at the default path is not an
// error; a missing explicit path is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultPath returns ~/.bossrush/config.yaml if it exists, else "".
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	p := filepath.Join(home, ".bossrush", "config.yaml")
	if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
		return ""
	}
	return p
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.SaveDir == "" {
		return errors.New("config: save_dir is required")
	}
	if c.Animation.CrossFade < 0 {
		return fmt.Errorf("config: animation.crossfade must be >= 0, got %v", c.Animation.CrossFade)
	}
	if c.Animation.DampingRate <= 0 {
		return fmt.Errorf("config: animation.damping_rate must be > 0, got %v", c.Animation.DampingRate)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("config: log_format must be text or json, got %q", c.LogFormat)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *float64) error {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		*dst = f
		return nil
	}

	str("BOSSRUSH_SAVE_DIR", &cfg.SaveDir)
	str("BOSSRUSH_CONTENT_DIR", &cfg.ContentDir)
	str("BOSSRUSH_LOG_LEVEL", &cfg.LogLevel)
	str("BOSSRUSH_LOG_FORMAT", &cfg.LogFormat)
	str("BOSSRUSH_LOG_FILE", &cfg.LogFile)
	if err := num("BOSSRUSH_CROSSFADE", &cfg.Animation.CrossFade); err != nil {
		return err
	}
	return num("BOSSRUSH_DAMPING_RATE", &cfg.Animation.DampingRate)
}
