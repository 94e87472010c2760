package state

import (
	"database/sql"
)

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS lastfm_session (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			username TEXT NOT NULL,
			session_key TEXT NOT NULL,
			linked_at INTEGER NOT NULL
		);

		-- User-supplied corrections, keyed by the song's storage key
		-- (hash of connector + raw identity fields).
		CREATE TABLE IF NOT EXISTS song_edits (
			key INTEGER PRIMARY KEY,
			artist TEXT NOT NULL DEFAULT '',
			track TEXT NOT NULL DEFAULT '',
			album TEXT NOT NULL DEFAULT '',
			updated_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS listening_history (
			id TEXT PRIMARY KEY,
			connector TEXT NOT NULL,
			artist TEXT NOT NULL,
			track TEXT NOT NULL,
			album TEXT NOT NULL DEFAULT '',
			duration_seconds INTEGER NOT NULL DEFAULT 0,
			scrobbled_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_history_scrobbled_at ON listening_history(scrobbled_at DESC);

		CREATE TABLE IF NOT EXISTS loved_tracks (
			key INTEGER PRIMARY KEY,
			loved INTEGER NOT NULL DEFAULT 0,
			updated_at INTEGER NOT NULL
		);
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	return err
}
