// Package connector defines the boundary between player-state adapters
// and the tracking controller: the snapshot an adapter delivers on each
// poll, and the pure predicates that classify it.
package connector

import "github.com/nowplayd/nowplayd/internal/song"

// Connector describes the playback surface a controller tracks.
type Connector struct {
	ID    string
	Label string
}

// State is a point-in-time report of player state from an adapter.
// Durations and positions are in seconds. UniqueID and IsPodcast are
// optional; adapters that cannot tell leave them zero.
type State struct {
	Artist      string
	Track       string
	Album       string
	UniqueID    string
	Duration    int
	CurrentTime int
	IsPlaying   bool
	TrackArt    string
	IsPodcast   bool
}

// SongInfo converts the snapshot into the entity's field set.
func (st State) SongInfo() song.Info {
	return song.Info{
		Artist:      st.Artist,
		Track:       st.Track,
		Album:       st.Album,
		UniqueID:    st.UniqueID,
		Duration:    st.Duration,
		CurrentTime: st.CurrentTime,
		IsPlaying:   st.IsPlaying,
		TrackArt:    st.TrackArt,
		IsPodcast:   st.IsPodcast,
	}
}

// IsStateEmpty reports whether the snapshot carries nothing to track:
// no artist+track pair, no unique identifier, and no duration. The
// playing flag does not matter; an empty snapshot is handled like an
// explicit reset.
func IsStateEmpty(st State) bool {
	if st.Artist != "" && st.Track != "" {
		return false
	}
	return st.UniqueID == "" && st.Duration == 0
}

// IsSongChanged reports whether the snapshot describes a different track
// than the given parsed fields. Only identity fields count: position,
// art, and the playing flag never make a track "changed".
func IsSongChanged(parsed song.Info, st State) bool {
	return parsed.Artist != st.Artist ||
		parsed.Track != st.Track ||
		parsed.Album != st.Album ||
		parsed.UniqueID != st.UniqueID
}
