// Package song defines the track entity owned by the tracking controller.
//
// A Song carries two copies of its metadata: Raw holds the values exactly
// as the adapter reported them, Parsed holds the working copy that the
// normalization pipeline and user edits mutate. Keeping both means a late
// correction never requires rebuilding the entity from scratch.
package song

import (
	"fmt"
	"hash/fnv"
	"time"
)

// Info holds one copy of a song's metadata fields.
// Durations and positions are in seconds.
type Info struct {
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

// Flags holds the lifecycle markers of a song. All of them are monotonic
// for the lifetime of the entity; only wholesale replacement clears them.
type Flags struct {
	IsSkipped         bool // user asked to ignore this play
	IsReplaying       bool // entity was created by a detected replay
	IsScrobbled       bool // terminal: edits are rejected once set
	IsMarkedAsPlaying bool // a now-playing submission was initiated
	IsValid           bool // normalization produced a usable track
	IsCorrectedByUser bool // parsed fields carry a saved user edit
	IsLoved           bool // love marker as last toggled by the user
}

// Edit carries user-supplied corrections to a song's identity fields.
type Edit struct {
	Artist string
	Track  string
	Album  string
}

// Song is a single detected playback instance.
// The controller owns exactly one Song at a time, or none.
type Song struct {
	ConnectorID string
	Raw         Info
	Parsed      Info
	Flags       Flags
	StartedAt   time.Time
}

// New creates a song from an adapter snapshot. Parsed starts as a copy
// of Raw and diverges as normalization and edits are applied.
func New(connectorID string, raw Info) *Song {
	return &Song{
		ConnectorID: connectorID,
		Raw:         raw,
		Parsed:      raw,
		StartedAt:   time.Now(),
	}
}

// ResetData discards normalization results and user edits by restoring
// Parsed from Raw. Flags other than validity are kept: the entity's
// identity does not change.
func (s *Song) ResetData() {
	s.Parsed = s.Raw
	s.Flags.IsValid = false
	s.Flags.IsCorrectedByUser = false
}

// ApplyEdit overwrites the parsed identity fields with a user correction.
// Empty edit fields leave the current value in place.
func (s *Song) ApplyEdit(e Edit) {
	if e.Artist != "" {
		s.Parsed.Artist = e.Artist
	}
	if e.Track != "" {
		s.Parsed.Track = e.Track
	}
	if e.Album != "" {
		s.Parsed.Album = e.Album
	}
	s.Flags.IsCorrectedByUser = true
}

// StorageKey returns a stable key for persisting per-song data (user
// edits, love state). It hashes the raw identity fields so the key
// survives normalization and later corrections.
func (s *Song) StorageKey() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s\x00%s\x00%s\x00%s\x00%s",
		s.ConnectorID, s.Raw.Artist, s.Raw.Track, s.Raw.Album, s.Raw.UniqueID)
	return h.Sum64()
}

// String describes the song for logs.
func (s *Song) String() string {
	return fmt.Sprintf("%s - %s", s.Parsed.Artist, s.Parsed.Track)
}
