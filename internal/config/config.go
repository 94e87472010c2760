// Package config loads nowplayd's TOML configuration.
package config

import (
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	// PollIntervalMs is the player poll interval in milliseconds.
	PollIntervalMs int `koanf:"poll_interval_ms"`

	// Log level: "debug", "info", "warn", "error".
	LogLevel string `koanf:"log_level"`

	// Scrobbling behavior.
	Scrobbling ScrobblingConfig `koanf:"scrobbling"`

	// Last.fm scrobbling (enables the remote service when configured)
	Lastfm LastfmConfig `koanf:"lastfm"`
}

// ScrobblingConfig controls when a play becomes eligible for submission.
type ScrobblingConfig struct {
	Percent  int   `koanf:"percent"`  // fraction of the track to play (1-100, default: 50)
	Seconds  int   `koanf:"seconds"`  // fixed eligibility point, overrides percent when > 0
	Podcasts *bool `koanf:"podcasts"` // scrobble podcast episodes (default: true)
}

// LastfmConfig holds Last.fm API credentials.
type LastfmConfig struct {
	APIKey    string `koanf:"api_key"`
	APISecret string `koanf:"api_secret"`
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	configPaths := getConfigPaths()

	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	applyDefaults(cfg)
	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/nowplayd/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "nowplayd", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func applyDefaults(cfg *Config) {
	if cfg.PollIntervalMs <= 0 {
		cfg.PollIntervalMs = 1000
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Scrobbling.Percent <= 0 || cfg.Scrobbling.Percent > 100 {
		cfg.Scrobbling.Percent = 50
	}
	if cfg.Scrobbling.Seconds < 0 {
		cfg.Scrobbling.Seconds = 0
	}
}

// HasLastfmConfig returns true if Last.fm scrobbling is configured.
func (c *Config) HasLastfmConfig() bool {
	return c.Lastfm.APIKey != "" && c.Lastfm.APISecret != ""
}

// ScrobblePodcasts returns whether podcast episodes should be scrobbled.
func (c *Config) ScrobblePodcasts() bool {
	if c.Scrobbling.Podcasts == nil {
		return true
	}
	return *c.Scrobbling.Podcasts
}
