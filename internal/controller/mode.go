package controller

// Mode is the controller state. Exactly one mode is active at a time;
// every transition is reported to the observer.
type Mode int

const (
	// ModeDisabled: the controller ignores all incoming snapshots.
	ModeDisabled Mode = iota
	// ModeBase: no track tracked, or a validated track not playing yet.
	ModeBase
	// ModeLoading: a track is being normalized; transient.
	ModeLoading
	// ModePlaying: track validated and reported as now playing.
	ModePlaying
	// ModeScrobbled: the listen was recorded; terminal for this track.
	ModeScrobbled
	// ModeIgnored: every service intentionally skipped the scrobble.
	ModeIgnored
	// ModeErr: a submission produced no success and was not uniformly ignored.
	ModeErr
	// ModeUnknown: normalization could not produce a valid track.
	ModeUnknown
	// ModeSkipped: the user marked the current track to be ignored.
	ModeSkipped
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeDisabled:
		return "Disabled"
	case ModeBase:
		return "Base"
	case ModeLoading:
		return "Loading"
	case ModePlaying:
		return "Playing"
	case ModeScrobbled:
		return "Scrobbled"
	case ModeIgnored:
		return "Ignored"
	case ModeErr:
		return "Err"
	case ModeUnknown:
		return "Unknown"
	case ModeSkipped:
		return "Skipped"
	default:
		return "Invalid"
	}
}
