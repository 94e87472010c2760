package state

import (
	"database/sql"
	"errors"
	"time"

	"github.com/nowplayd/nowplayd/internal/song"
)

// SaveSongInfo stores a user correction for the song key, replacing any
// previous one.
func (m *Manager) SaveSongInfo(key uint64, e song.Edit) error {
	now := time.Now().Unix()
	_, err := m.db.Exec(`
		INSERT INTO song_edits (key, artist, track, album, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			artist = excluded.artist,
			track = excluded.track,
			album = excluded.album,
			updated_at = excluded.updated_at
	`, int64(key), e.Artist, e.Track, e.Album, now)
	return err
}

// GetSongInfo returns the stored correction for the song key, if any.
func (m *Manager) GetSongInfo(key uint64) (song.Edit, bool, error) {
	var e song.Edit
	err := m.db.QueryRow(`
		SELECT artist, track, album FROM song_edits WHERE key = ?
	`, int64(key)).Scan(&e.Artist, &e.Track, &e.Album)

	if errors.Is(err, sql.ErrNoRows) {
		return song.Edit{}, false, nil
	}
	if err != nil {
		return song.Edit{}, false, err
	}
	return e, true, nil
}

// RemoveSongInfo deletes the stored correction for the song key.
func (m *Manager) RemoveSongInfo(key uint64) error {
	_, err := m.db.Exec(`DELETE FROM song_edits WHERE key = ?`, int64(key))
	return err
}

// SetLoved stores the love marker for the song key.
func (m *Manager) SetLoved(key uint64, loved bool) error {
	now := time.Now().Unix()
	_, err := m.db.Exec(`
		INSERT INTO loved_tracks (key, loved, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			loved = excluded.loved,
			updated_at = excluded.updated_at
	`, int64(key), loved, now)
	return err
}

// IsLoved returns the stored love marker for the song key.
func (m *Manager) IsLoved(key uint64) (bool, error) {
	var loved bool
	err := m.db.QueryRow(`
		SELECT loved FROM loved_tracks WHERE key = ?
	`, int64(key)).Scan(&loved)

	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return loved, nil
}
