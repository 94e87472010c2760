package controller

import (
	"context"
	"fmt"

	"github.com/nowplayd/nowplayd/internal/song"
)

// ResetSongData clears any saved user edits for the current song and
// re-enters normalization from the adapter-provided raw fields.
func (c *Controller) ResetSongData() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled {
		return ErrDisabled
	}
	s := c.cur
	if s == nil {
		return ErrNoCurrentSong
	}

	if err := c.deps.Edits.RemoveSongInfo(s.StorageKey()); err != nil {
		return fmt.Errorf("remove song info: %w", err)
	}
	s.ResetData()
	c.reprocessLocked(s)
	return nil
}

// SetUserSongData persists user-supplied corrected fields and re-enters
// normalization, which applies them. Rejected once the song is scrobbled.
func (c *Controller) SetUserSongData(e song.Edit) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled {
		return ErrDisabled
	}
	s := c.cur
	if s == nil {
		return ErrNoCurrentSong
	}
	if s.Flags.IsScrobbled {
		return ErrSongScrobbled
	}

	if err := c.deps.Edits.SaveSongInfo(s.StorageKey(), e); err != nil {
		return fmt.Errorf("save song info: %w", err)
	}
	s.ResetData()
	c.reprocessLocked(s)
	return nil
}

// ToggleLove delegates the love marker to the submission capability and
// then forces the local flag regardless of the remote outcome.
func (c *Controller) ToggleLove(ctx context.Context, loved bool) error {
	c.mu.Lock()
	if !c.enabled {
		c.mu.Unlock()
		return ErrDisabled
	}
	s := c.cur
	if s == nil {
		c.mu.Unlock()
		return ErrNoCurrentSong
	}
	if !s.Flags.IsValid {
		c.mu.Unlock()
		return ErrSongInvalid
	}
	c.mu.Unlock()

	if err := c.deps.Submitter.ToggleLove(ctx, s, loved); err != nil {
		c.log.Warn("toggle love failed on some services", "song", s, "err", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cur != s {
		return nil
	}
	s.Flags.IsLoved = loved
	c.deps.Observer.OnSongUpdated(s)
	return nil
}

// SkipCurrentSong marks the current track to be ignored: both countdowns
// are canceled and no submission will happen for it.
func (c *Controller) SkipCurrentSong() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled {
		return ErrDisabled
	}
	s := c.cur
	if s == nil {
		return ErrNoCurrentSong
	}

	s.Flags.IsSkipped = true
	// A submission already in flight must not override the skip when it
	// returns; bumping the generation makes its completion path bail.
	c.gen++
	c.playbackTimer.Reset()
	c.replayTimer.Reset()
	c.setModeLocked(ModeSkipped)
	c.deps.Observer.OnSongUpdated(s)
	c.log.Info("skipped", "song", s)
	return nil
}

// reprocessLocked hands the current entity back to the pipeline after an
// edit or reset, invalidating any stale in-flight result.
func (c *Controller) reprocessLocked(s *song.Song) {
	c.gen++
	c.processing = true
	c.setModeLocked(ModeLoading)
	go c.processSong(s, c.gen)
}
