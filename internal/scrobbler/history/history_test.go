package history

import (
	"context"
	"database/sql"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"

	"github.com/nowplayd/nowplayd/internal/scrobbler"
	"github.com/nowplayd/nowplayd/internal/song"
	"github.com/nowplayd/nowplayd/internal/state"
)

func newTestService(t *testing.T) (*Service, *state.Manager) {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	st, err := state.NewWithDB(db)
	if err != nil {
		t.Fatalf("failed to init state: %v", err)
	}

	return NewService(st, log.New(io.Discard)), st
}

func TestScrobble_RecordsListen(t *testing.T) {
	svc, st := newTestService(t)

	s := song.New("mpris", song.Info{
		Artist:   "Artist",
		Track:    "Track",
		Album:    "Album",
		Duration: 240,
	})

	if got := svc.Scrobble(context.Background(), s); got != scrobbler.ResultOK {
		t.Fatalf("Scrobble = %v, want %v", got, scrobbler.ResultOK)
	}

	listens, err := st.RecentListens(10)
	if err != nil {
		t.Fatalf("RecentListens: %v", err)
	}
	if len(listens) != 1 {
		t.Fatalf("got %d listens, want 1", len(listens))
	}
	l := listens[0]
	if l.Artist != "Artist" || l.Track != "Track" || l.Connector != "mpris" || l.DurationSec != 240 {
		t.Errorf("listen = %+v", l)
	}
	if l.ID == "" {
		t.Error("listen has empty id")
	}
}

func TestToggleLove_StoresMarker(t *testing.T) {
	svc, st := newTestService(t)

	s := song.New("mpris", song.Info{Artist: "A", Track: "T"})
	if err := svc.ToggleLove(context.Background(), s, true); err != nil {
		t.Fatalf("ToggleLove: %v", err)
	}

	loved, err := st.IsLoved(s.StorageKey())
	if err != nil {
		t.Fatalf("IsLoved: %v", err)
	}
	if !loved {
		t.Error("IsLoved = false after ToggleLove(true)")
	}
}

func TestNowPlaying_NoOp(t *testing.T) {
	svc, _ := newTestService(t)
	s := song.New("mpris", song.Info{Artist: "A", Track: "T"})
	if got := svc.NowPlaying(context.Background(), s); got != scrobbler.ResultOK {
		t.Errorf("NowPlaying = %v, want %v", got, scrobbler.ResultOK)
	}
}
