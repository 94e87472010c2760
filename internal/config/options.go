package config

import (
	"context"

	"github.com/nowplayd/nowplayd/internal/scrobbler"
)

// Store serves scrobbling options from the loaded configuration. It
// implements the controller's options interface.
type Store struct {
	cfg *Config
}

// NewStore wraps a loaded configuration.
func NewStore(cfg *Config) *Store {
	return &Store{cfg: cfg}
}

// ScrobblePodcasts reports whether podcast episodes should be tracked.
func (s *Store) ScrobblePodcasts(_ context.Context) (bool, error) {
	return s.cfg.ScrobblePodcasts(), nil
}

// ScrobbleThreshold returns the configured eligibility threshold.
func (s *Store) ScrobbleThreshold(_ context.Context) (scrobbler.Threshold, error) {
	return scrobbler.Threshold{
		Percent: s.cfg.Scrobbling.Percent,
		Seconds: s.cfg.Scrobbling.Seconds,
	}, nil
}
