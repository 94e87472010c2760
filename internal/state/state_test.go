package state

import (
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nowplayd/nowplayd/internal/song"
)

// setupTestDB creates an in-memory SQLite database with the schema initialized.
func setupTestDB(t *testing.T) *Manager {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := initSchema(db); err != nil {
		t.Fatalf("failed to init schema: %v", err)
	}

	return &Manager{db: db}
}

func TestLastfmSession_RoundTrip(t *testing.T) {
	m := setupTestDB(t)

	s, err := m.GetLastfmSession()
	if err != nil {
		t.Fatalf("GetLastfmSession: %v", err)
	}
	if s != nil {
		t.Errorf("expected nil session on empty db, got %+v", s)
	}

	if err := m.SaveLastfmSession("user", "key123"); err != nil {
		t.Fatalf("SaveLastfmSession: %v", err)
	}

	s, err = m.GetLastfmSession()
	if err != nil {
		t.Fatalf("GetLastfmSession: %v", err)
	}
	if s == nil || s.Username != "user" || s.SessionKey != "key123" {
		t.Errorf("session = %+v, want user/key123", s)
	}

	// Saving again replaces the single row.
	if err := m.SaveLastfmSession("user2", "key456"); err != nil {
		t.Fatalf("SaveLastfmSession (update): %v", err)
	}
	s, _ = m.GetLastfmSession()
	if s.Username != "user2" {
		t.Errorf("Username = %q, want user2", s.Username)
	}

	if err := m.DeleteLastfmSession(); err != nil {
		t.Fatalf("DeleteLastfmSession: %v", err)
	}
	s, _ = m.GetLastfmSession()
	if s != nil {
		t.Error("session survived delete")
	}
}

func TestSongInfo_RoundTrip(t *testing.T) {
	m := setupTestDB(t)
	key := uint64(0xDEADBEEFCAFE)

	_, ok, err := m.GetSongInfo(key)
	if err != nil {
		t.Fatalf("GetSongInfo: %v", err)
	}
	if ok {
		t.Error("found an edit on empty db")
	}

	edit := song.Edit{Artist: "A", Track: "T", Album: "Al"}
	if err := m.SaveSongInfo(key, edit); err != nil {
		t.Fatalf("SaveSongInfo: %v", err)
	}

	got, ok, err := m.GetSongInfo(key)
	if err != nil || !ok {
		t.Fatalf("GetSongInfo = (%v, %v), want edit", ok, err)
	}
	if got != edit {
		t.Errorf("edit = %+v, want %+v", got, edit)
	}

	if err := m.RemoveSongInfo(key); err != nil {
		t.Fatalf("RemoveSongInfo: %v", err)
	}
	_, ok, _ = m.GetSongInfo(key)
	if ok {
		t.Error("edit survived removal")
	}
}

func TestLoved_RoundTrip(t *testing.T) {
	m := setupTestDB(t)
	key := uint64(42)

	loved, err := m.IsLoved(key)
	if err != nil {
		t.Fatalf("IsLoved: %v", err)
	}
	if loved {
		t.Error("IsLoved = true on empty db")
	}

	if err := m.SetLoved(key, true); err != nil {
		t.Fatalf("SetLoved: %v", err)
	}
	if loved, _ = m.IsLoved(key); !loved {
		t.Error("IsLoved = false after SetLoved(true)")
	}

	if err := m.SetLoved(key, false); err != nil {
		t.Fatalf("SetLoved: %v", err)
	}
	if loved, _ = m.IsLoved(key); loved {
		t.Error("IsLoved = true after SetLoved(false)")
	}
}

func TestListeningHistory(t *testing.T) {
	m := setupTestDB(t)

	base := time.Now().Truncate(time.Second)
	for i, track := range []string{"first", "second", "third"} {
		err := m.AddListen(Listen{
			ID:          track,
			Connector:   "mpris",
			Artist:      "A",
			Track:       track,
			DurationSec: 300,
			ScrobbledAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("AddListen: %v", err)
		}
	}

	listens, err := m.RecentListens(2)
	if err != nil {
		t.Fatalf("RecentListens: %v", err)
	}
	if len(listens) != 2 {
		t.Fatalf("got %d listens, want 2", len(listens))
	}
	if listens[0].Track != "third" || listens[1].Track != "second" {
		t.Errorf("listens out of order: %q, %q", listens[0].Track, listens[1].Track)
	}
	if !listens[0].ScrobbledAt.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("ScrobbledAt = %v, want %v", listens[0].ScrobbledAt, base.Add(2*time.Minute))
	}
}
