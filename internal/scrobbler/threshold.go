package scrobbler

import "time"

// Last.fm scrobbling rules: a track must be longer than 30 seconds, and
// must have played for half its duration or 4 minutes, whichever is less.
const (
	// MinTrackDuration is the minimum track length eligible for scrobbling.
	MinTrackDuration = 30 * time.Second
	// MaxScrobbleTarget caps the required playback time.
	MaxScrobbleTarget = 4 * time.Minute
	// DefaultPercent is the fraction of the track that must play.
	DefaultPercent = 50
)

// Threshold configures when a track becomes eligible for scrobbling.
// Seconds, when nonzero, overrides the percentage with a fixed value.
type Threshold struct {
	Percent int
	Seconds int
}

// ScrobbleDuration computes how long a track of the given duration must
// play before it may be scrobbled. It returns false when the track is
// too short to ever be scrobbled; callers must then leave their
// eligibility countdown unset.
func ScrobbleDuration(track time.Duration, th Threshold) (time.Duration, bool) {
	if track < MinTrackDuration {
		return 0, false
	}

	if th.Seconds > 0 {
		target := time.Duration(th.Seconds) * time.Second
		if target > track {
			target = track
		}
		return target, true
	}

	percent := th.Percent
	if percent <= 0 || percent > 100 {
		percent = DefaultPercent
	}
	target := track * time.Duration(percent) / 100
	if target > MaxScrobbleTarget {
		target = MaxScrobbleTarget
	}
	return target, true
}
