// Package history records completed listens in the local database so
// plays are kept even when no remote service is linked.
package history

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/nowplayd/nowplayd/internal/scrobbler"
	"github.com/nowplayd/nowplayd/internal/song"
	"github.com/nowplayd/nowplayd/internal/state"
)

// Service writes listens to the local state database. It implements
// scrobbler.Scrobbler so it participates in submission like any remote
// service.
type Service struct {
	state *state.Manager
	log   *log.Logger
}

// NewService creates a local history service backed by the state database.
func NewService(st *state.Manager, logger *log.Logger) *Service {
	return &Service{
		state: st,
		log:   logger.With("service", "history"),
	}
}

func (s *Service) ID() string   { return "history" }
func (s *Service) Name() string { return "Local history" }

// NowPlaying is a no-op; the local history only records completed listens.
func (s *Service) NowPlaying(_ context.Context, _ *song.Song) scrobbler.Result {
	return scrobbler.ResultOK
}

// Scrobble appends the listen to the local history.
func (s *Service) Scrobble(ctx context.Context, sng *song.Song) scrobbler.Result {
	if err := ctx.Err(); err != nil {
		return scrobbler.ResultErrorOther
	}

	err := s.state.AddListen(state.Listen{
		ID:          uuid.NewString(),
		Connector:   sng.ConnectorID,
		Artist:      sng.Parsed.Artist,
		Track:       sng.Parsed.Track,
		Album:       sng.Parsed.Album,
		DurationSec: sng.Parsed.Duration,
		ScrobbledAt: time.Now(),
	})
	if err != nil {
		s.log.Warn("recording listen failed", "error", err)
		return scrobbler.ResultErrorOther
	}
	return scrobbler.ResultOK
}

// ToggleLove stores the love marker locally.
func (s *Service) ToggleLove(ctx context.Context, sng *song.Song, loved bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.state.SetLoved(sng.StorageKey(), loved)
}
