package lastfm

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/nowplayd/nowplayd/internal/scrobbler"
	"github.com/nowplayd/nowplayd/internal/song"
)

func newTestService() *Service {
	client := NewClient("key", "secret")
	return NewService(client, log.New(io.Discard))
}

func testSong(duration int) *song.Song {
	return song.New("test", song.Info{
		Artist:   "Artist",
		Track:    "Track",
		Duration: duration,
	})
}

func TestService_RequiresAuthentication(t *testing.T) {
	svc := newTestService()
	s := testSong(200)

	if got := svc.NowPlaying(context.Background(), s); got != scrobbler.ResultErrorAuth {
		t.Errorf("NowPlaying = %v, want %v", got, scrobbler.ResultErrorAuth)
	}
	if got := svc.Scrobble(context.Background(), s); got != scrobbler.ResultErrorAuth {
		t.Errorf("Scrobble = %v, want %v", got, scrobbler.ResultErrorAuth)
	}
	if err := svc.ToggleLove(context.Background(), s, true); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("ToggleLove error = %v, want ErrNotAuthenticated", err)
	}
}

func TestService_ShortTrackIgnored(t *testing.T) {
	svc := newTestService()

	// Below the 30 second service minimum the track is reported as
	// ignored without contacting the API.
	if got := svc.Scrobble(context.Background(), testSong(20)); got != scrobbler.ResultIgnored {
		t.Errorf("Scrobble = %v, want %v", got, scrobbler.ResultIgnored)
	}
}

func TestService_CanceledContext(t *testing.T) {
	svc := newTestService()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if got := svc.NowPlaying(ctx, testSong(200)); got != scrobbler.ResultErrorOther {
		t.Errorf("NowPlaying = %v, want %v", got, scrobbler.ResultErrorOther)
	}
}

func TestService_Identity(t *testing.T) {
	svc := newTestService()
	if svc.ID() != "lastfm" || svc.Name() != "Last.fm" {
		t.Errorf("identity = %q/%q", svc.ID(), svc.Name())
	}
}
