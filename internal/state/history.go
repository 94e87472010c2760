package state

import (
	"time"
)

// Listen is one recorded play in the local listening history.
type Listen struct {
	ID          string
	Connector   string
	Artist      string
	Track       string
	Album       string
	DurationSec int
	ScrobbledAt time.Time
}

// AddListen records a play in the local history.
func (m *Manager) AddListen(l Listen) error {
	_, err := m.db.Exec(`
		INSERT INTO listening_history (id, connector, artist, track, album, duration_seconds, scrobbled_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, l.ID, l.Connector, l.Artist, l.Track, l.Album, l.DurationSec, l.ScrobbledAt.Unix())
	return err
}

// RecentListens returns up to limit plays, most recent first.
func (m *Manager) RecentListens(limit int) ([]Listen, error) {
	rows, err := m.db.Query(`
		SELECT id, connector, artist, track, album, duration_seconds, scrobbled_at
		FROM listening_history
		ORDER BY scrobbled_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listens []Listen
	for rows.Next() {
		var l Listen
		var scrobbledAt int64
		if err := rows.Scan(&l.ID, &l.Connector, &l.Artist, &l.Track, &l.Album, &l.DurationSec, &scrobbledAt); err != nil {
			return nil, err
		}
		l.ScrobbledAt = time.Unix(scrobbledAt, 0)
		listens = append(listens, l)
	}
	return listens, rows.Err()
}
