package lastfm

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nowplayd/nowplayd/internal/scrobbler"
	"github.com/nowplayd/nowplayd/internal/song"
)

// Last.fm ignores submissions for tracks shorter than 30 seconds.
const minScrobbleDuration = 30 * time.Second

// Service submits plays to Last.fm. It implements scrobbler.Scrobbler.
type Service struct {
	client *Client
	log    *log.Logger
}

// NewService wraps a Last.fm client as a scrobbling service.
func NewService(client *Client, logger *log.Logger) *Service {
	return &Service{
		client: client,
		log:    logger.With("service", "lastfm"),
	}
}

func (s *Service) ID() string   { return "lastfm" }
func (s *Service) Name() string { return "Last.fm" }

// NowPlaying updates the user's "now playing" status on Last.fm.
func (s *Service) NowPlaying(ctx context.Context, sng *song.Song) scrobbler.Result {
	if err := ctx.Err(); err != nil {
		return scrobbler.ResultErrorOther
	}
	if !s.client.IsAuthenticated() {
		return scrobbler.ResultErrorAuth
	}

	if err := s.client.UpdateNowPlaying(trackFor(sng)); err != nil {
		s.log.Warn("now playing update failed", "error", err)
		return resultForError(err)
	}
	return scrobbler.ResultOK
}

// Scrobble submits a completed play to Last.fm. Tracks shorter than the
// service minimum are reported as ignored rather than submitted.
func (s *Service) Scrobble(ctx context.Context, sng *song.Song) scrobbler.Result {
	if err := ctx.Err(); err != nil {
		return scrobbler.ResultErrorOther
	}
	track := trackFor(sng)
	if track.Duration > 0 && track.Duration < minScrobbleDuration {
		s.log.Debug("track below service minimum, not submitting",
			"track", track.Track, "duration", track.Duration)
		return scrobbler.ResultIgnored
	}

	if !s.client.IsAuthenticated() {
		return scrobbler.ResultErrorAuth
	}

	if err := s.client.Scrobble(track); err != nil {
		s.log.Warn("scrobble failed", "error", err)
		return resultForError(err)
	}
	return scrobbler.ResultOK
}

// ToggleLove marks or unmarks the track as loved on Last.fm.
func (s *Service) ToggleLove(ctx context.Context, sng *song.Song, loved bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !s.client.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	return s.client.Love(sng.Parsed.Artist, sng.Parsed.Track, loved)
}

func trackFor(sng *song.Song) ScrobbleTrack {
	return ScrobbleTrack{
		Artist:    sng.Parsed.Artist,
		Track:     sng.Parsed.Track,
		Album:     sng.Parsed.Album,
		Duration:  time.Duration(sng.Parsed.Duration) * time.Second,
		Timestamp: sng.StartedAt,
	}
}

func resultForError(err error) scrobbler.Result {
	if isAuthError(err) {
		return scrobbler.ResultErrorAuth
	}
	return scrobbler.ResultErrorOther
}
