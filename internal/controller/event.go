package controller

// Event is a discrete controller occurrence reported to the observer,
// separate from mode changes.
type Event int

const (
	// EventControllerReset: the tracked entity was discarded; observers
	// must drop any reference to the previous song.
	EventControllerReset Event = iota
	// EventSongNowPlaying: a now-playing cycle completed (whatever the
	// submission outcome was).
	EventSongNowPlaying
	// EventSongScrobbled: the listen was recorded successfully.
	EventSongScrobbled
	// EventSongUnrecognized: normalization failed for the current input.
	EventSongUnrecognized
)

// String returns the event name.
func (e Event) String() string {
	switch e {
	case EventControllerReset:
		return "ControllerReset"
	case EventSongNowPlaying:
		return "SongNowPlaying"
	case EventSongScrobbled:
		return "SongScrobbled"
	case EventSongUnrecognized:
		return "SongUnrecognized"
	default:
		return "Invalid"
	}
}
