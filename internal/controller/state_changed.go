package controller

import (
	"time"

	"github.com/nowplayd/nowplayd/internal/connector"
	"github.com/nowplayd/nowplayd/internal/scrobbler"
	"github.com/nowplayd/nowplayd/internal/song"
)

// OnStateChanged handles one adapter snapshot. It classifies the
// snapshot as empty, changed, replaying, or unchanged, and advances the
// state machine accordingly. Non-blocking: external calls it triggers
// run on their own goroutines.
func (c *Controller) OnStateChanged(st connector.State) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled {
		return
	}

	if connector.IsStateEmpty(st) {
		if st.IsPlaying {
			c.log.Warn("empty snapshot claims playing; treating as reset")
		}
		if c.cur != nil {
			c.resetStateLocked()
			c.setModeLocked(ModeBase)
		}
		return
	}

	// A pending replay signal makes an identical snapshot count as a
	// fresh play of the same track.
	changed := c.cur == nil || connector.IsSongChanged(c.cur.Parsed, st)
	if changed || c.isReplaying {
		if st.IsPlaying {
			c.processNewStateLocked(st)
		} else if c.cur != nil {
			c.resetStateLocked()
			c.setModeLocked(ModeBase)
		} else if c.mode != ModeBase {
			c.setModeLocked(ModeBase)
		}
		return
	}

	if c.processing {
		// Normalization for this identity is still pending; the next
		// poll will carry the same data.
		return
	}
	c.updateCurrentSongLocked(st)
}

// processNewStateLocked starts tracking a new (or replayed) song.
func (c *Controller) processNewStateLocked(st connector.State) {
	replay := c.isReplaying
	c.resetStateLocked() // also clears the replay signal and its timer

	s := song.New(c.conn.ID, st.SongInfo())
	s.Flags.IsReplaying = replay
	c.cur = s
	c.log.Info("now tracking", "song", s, "replay", replay)

	if st.IsPodcast && !c.scrobblePodcasts {
		s.Flags.IsSkipped = true
		c.setModeLocked(ModeSkipped)
		c.deps.Observer.OnSongUpdated(s)
		return
	}

	// Both timers start now, with the scrobble routine wired to the
	// eligibility timer up front: the unset target keeps either from
	// firing until the track validates and the timers are sized. Intake
	// only happens on playing snapshots, so the timers start counting;
	// later handlers only ever pause or resume them.
	c.playbackTimer.Start(c.onScrobbleTimer)
	c.replayTimer.Start(c.onReplayTimer)

	c.setModeLocked(ModeLoading)
	c.deps.Observer.OnSongUpdated(s)

	c.processing = true
	go c.processSong(s, c.gen)
}

// processSong runs the external normalization pipeline and applies its
// result, unless the entity was replaced in the meantime.
func (c *Controller) processSong(s *song.Song, gen uint64) {
	valid := c.deps.Pipeline.Process(c.ctx, s)

	th, err := c.deps.Options.ScrobbleThreshold(c.ctx)
	if err != nil {
		c.log.Warn("failed to read scrobble threshold, keeping previous", "err", err)
		th = c.currentThreshold()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen || c.cur != s {
		// Stale result: the entity was replaced while processing.
		return
	}
	c.processing = false
	c.threshold = th
	c.onProcessedLocked(s, valid)
}

func (c *Controller) currentThreshold() scrobbler.Threshold {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.threshold
}

func (c *Controller) onProcessedLocked(s *song.Song, valid bool) {
	s.Flags.IsValid = valid
	if !valid {
		c.log.Warn("could not recognize track", "song", s)
		c.setModeLocked(ModeUnknown)
		c.deps.Observer.OnEvent(EventSongUnrecognized)
		return
	}

	c.updateTimersLocked(s)
	c.deps.Observer.OnSongUpdated(s)

	switch {
	case !s.Parsed.IsPlaying:
		// Valid but paused: submission waits for playback to resume.
		c.setModeLocked(ModeBase)
	case c.playbackTimer.HasExpired():
		// The countdown already completed (re-validation after an edit);
		// report now playing without a fresh submission.
		c.deps.Observer.OnEvent(EventSongNowPlaying)
	default:
		c.sendNowPlayingLocked(s)
	}
}

// updateTimersLocked sizes both countdowns from the track duration and
// the configured threshold. The timers are already running; targets are
// set in place so elapsed time counts immediately.
func (c *Controller) updateTimersLocked(s *song.Song) {
	if c.playbackTimer.HasExpired() {
		c.log.Warn("ignoring timer update after scrobble countdown expired", "song", s)
		return
	}

	duration := time.Duration(s.Parsed.Duration) * time.Second
	target, ok := scrobbler.ScrobbleDuration(duration, c.threshold)
	if !ok {
		// Too short to ever scrobble; the unset target keeps the
		// eligibility timer from firing.
		c.log.Warn("track too short to scrobble", "song", s, "duration", duration)
		return
	}

	c.playbackTimer.SetTarget(target)
	c.replayTimer.SetTarget(duration)
	c.log.Debug("scrobble countdown sized", "song", s, "target", target)
}

// updateCurrentSongLocked applies an unchanged snapshot to the tracked
// entity: mutable fields are copied over, a nonzero differing duration
// triggers the correction path, and playing-flag transitions drive the
// timers.
func (c *Controller) updateCurrentSongLocked(st connector.State) {
	s := c.cur
	if s.Flags.IsSkipped {
		return
	}

	wasPlaying := s.Parsed.IsPlaying
	s.Parsed.CurrentTime = st.CurrentTime
	s.Parsed.IsPlaying = st.IsPlaying
	s.Parsed.TrackArt = st.TrackArt

	if st.Duration != 0 && st.Duration != s.Parsed.Duration {
		s.Parsed.Duration = st.Duration
		if s.Flags.IsValid {
			c.updateTimersLocked(s)
		}
	}

	if st.IsPlaying != wasPlaying {
		c.onPlayingStateChangedLocked(st.IsPlaying)
	}
}

func (c *Controller) onPlayingStateChangedLocked(playing bool) {
	if !playing {
		c.playbackTimer.Pause()
		c.replayTimer.Pause()
		return
	}

	c.playbackTimer.Resume()
	c.replayTimer.Resume()

	s := c.cur
	if s.Flags.IsValid && !s.Flags.IsMarkedAsPlaying {
		c.sendNowPlayingLocked(s)
	} else {
		// Re-assert the mode so observers resynchronize after the pause.
		c.setModeLocked(c.mode)
	}
}

// sendNowPlayingLocked submits the track as now playing. The entity is
// marked before the call so a concurrent resume cannot submit twice.
func (c *Controller) sendNowPlayingLocked(s *song.Song) {
	s.Flags.IsMarkedAsPlaying = true
	gen := c.gen

	go func() {
		results := c.deps.Submitter.NowPlaying(c.ctx, s)

		c.mu.Lock()
		defer c.mu.Unlock()
		if gen != c.gen || c.cur != s {
			return
		}
		if scrobbler.AnyResult(results, scrobbler.ResultOK) {
			c.setModeLocked(ModePlaying)
		} else {
			c.log.Warn("now-playing submission failed", "song", s, "results", results)
			c.setModeLocked(ModeErr)
		}
		c.deps.Observer.OnEvent(EventSongNowPlaying)
	}()
}

// onScrobbleTimer fires when the eligibility countdown completes. It was
// wired at timer start, before any target was known; the timer's own
// unset-target guard prevented premature firing.
func (c *Controller) onScrobbleTimer() {
	c.mu.Lock()
	s := c.cur
	gen := c.gen
	c.mu.Unlock()
	if s == nil {
		return
	}

	results := c.deps.Submitter.Scrobble(c.ctx, s)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen || c.cur != s {
		return
	}

	switch {
	case scrobbler.AnyResult(results, scrobbler.ResultOK):
		s.Flags.IsScrobbled = true
		c.setModeLocked(ModeScrobbled)
		c.deps.Observer.OnSongUpdated(s)
		c.deps.Observer.OnEvent(EventSongScrobbled)
		c.log.Info("scrobbled", "song", s)
	case scrobbler.AllResults(results, scrobbler.ResultIgnored):
		c.setModeLocked(ModeIgnored)
	default:
		c.log.Warn("scrobble submission failed", "song", s, "results", results)
		c.setModeLocked(ModeErr)
	}
}

// onReplayTimer fires when the full track duration has played: the same
// snapshot arriving again now means the track restarted.
func (c *Controller) onReplayTimer() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.isReplaying = true
}
