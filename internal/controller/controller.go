// Package controller implements the playback-tracking state machine: it
// classifies incoming player snapshots, owns the current song entity and
// the two countdown timers, and turns aggregated submission outcomes
// into mode transitions.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/nowplayd/nowplayd/internal/connector"
	"github.com/nowplayd/nowplayd/internal/pipeline"
	"github.com/nowplayd/nowplayd/internal/scrobbler"
	"github.com/nowplayd/nowplayd/internal/song"
	"github.com/nowplayd/nowplayd/internal/timer"
)

// Precondition violations. These are usage errors: they fail immediately
// and are never retried or swallowed.
var (
	ErrNoCurrentSong  = errors.New("no song is currently tracked")
	ErrSongScrobbled  = errors.New("song is already scrobbled")
	ErrSongInvalid    = errors.New("song is not valid")
	ErrDisabled       = errors.New("controller is disabled")
	ErrNotInitialized = errors.New("controller is not initialized")
)

// Observer receives controller notifications. The host must implement
// all three methods, even as no-ops. Callbacks run on controller
// goroutines while its handlers hold the state lock, so they must be
// quick and must not call back into the controller.
type Observer interface {
	// OnSongUpdated signals that the current song's data changed.
	OnSongUpdated(s *song.Song)
	// OnModeChanged reports the controller mode, possibly re-asserted.
	OnModeChanged(mode Mode)
	// OnEvent reports a discrete controller event.
	OnEvent(e Event)
}

// Submitter is the external multi-service submission capability.
// Implemented by scrobbler.Manager.
type Submitter interface {
	NowPlaying(ctx context.Context, s *song.Song) []scrobbler.Result
	Scrobble(ctx context.Context, s *song.Song) []scrobbler.Result
	ToggleLove(ctx context.Context, s *song.Song, loved bool) error
}

// OptionsStore reads controller configuration. Values may change
// between reads.
type OptionsStore interface {
	ScrobblePodcasts(ctx context.Context) (bool, error)
	ScrobbleThreshold(ctx context.Context) (scrobbler.Threshold, error)
}

// EditStore persists user-supplied song corrections.
type EditStore interface {
	SaveSongInfo(key uint64, e song.Edit) error
	RemoveSongInfo(key uint64) error
}

// Deps are the external collaborators a controller consumes.
type Deps struct {
	Pipeline  pipeline.Pipeline
	Submitter Submitter
	Options   OptionsStore
	Edits     EditStore
	Observer  Observer
	Logger    *log.Logger
}

// Controller tracks one playback surface. All state is owned exclusively
// by the instance and mutated only under its mutex; snapshot handling,
// timer expiry, and user operations never interleave.
type Controller struct {
	mu   sync.Mutex
	log  *log.Logger
	conn connector.Connector
	deps Deps

	ctx    context.Context
	cancel context.CancelFunc

	mode Mode
	cur  *song.Song

	// playbackTimer counts towards scrobble eligibility, replayTimer
	// towards the full track duration for replay detection. Both are
	// started at intake and only sized once the track validates.
	playbackTimer *timer.Timer
	replayTimer   *timer.Timer

	isReplaying bool // replay signal, consumed by the next classification
	processing  bool // normalization pending for the current entity
	enabled     bool
	ready       bool
	gen         uint64 // invalidates stale in-flight work

	scrobblePodcasts bool
	threshold        scrobbler.Threshold
}

// New creates a disabled controller for the given playback surface.
// Call Init before Enable.
func New(conn connector.Connector, deps Deps) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		log:           deps.Logger.With("connector", conn.ID),
		conn:          conn,
		deps:          deps,
		ctx:           ctx,
		cancel:        cancel,
		mode:          ModeDisabled,
		playbackTimer: timer.New(),
		replayTimer:   timer.New(),
		threshold:     scrobbler.Threshold{Percent: scrobbler.DefaultPercent},
	}
}

// Init reads the configuration the state machine depends on. The host
// must call it once, before Enable; it returns readiness.
func (c *Controller) Init(ctx context.Context) error {
	podcasts, err := c.deps.Options.ScrobblePodcasts(ctx)
	if err != nil {
		return fmt.Errorf("read scrobble podcasts option: %w", err)
	}
	th, err := c.deps.Options.ScrobbleThreshold(ctx)
	if err != nil {
		return fmt.Errorf("read scrobble threshold option: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.scrobblePodcasts = podcasts
	c.threshold = th
	c.ready = true
	return nil
}

// Enable starts accepting snapshots.
func (c *Controller) Enable() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.ready {
		return ErrNotInitialized
	}
	if c.enabled {
		return nil
	}
	c.enabled = true
	c.setModeLocked(ModeBase)
	return nil
}

// Disable discards the tracked song and ignores snapshots until Enable.
func (c *Controller) Disable() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.enabled {
		return
	}
	if c.cur != nil {
		c.resetStateLocked()
	}
	c.enabled = false
	c.setModeLocked(ModeDisabled)
}

// Finish tears the controller down. Pending timer work and in-flight
// submissions are abandoned.
func (c *Controller) Finish() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancel()
	if c.cur != nil {
		c.resetStateLocked()
	}
	c.enabled = false
	c.setModeLocked(ModeDisabled)
}

// Connector returns the descriptor of the tracked playback surface.
func (c *Controller) Connector() connector.Connector {
	return c.conn
}

// CurrentSong returns the tracked song, or nil. The entity stays owned
// by the controller; callers must not retain it across a reset.
func (c *Controller) CurrentSong() *song.Song {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cur
}

// Mode returns the active controller mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// setModeLocked records the mode and notifies the observer. Re-asserting
// the current mode is legal and re-emits the notification.
func (c *Controller) setModeLocked(m Mode) {
	c.mode = m
	c.deps.Observer.OnModeChanged(m)
}

// resetStateLocked discards the tracked entity, cancels both timers and
// any in-flight normalization or submission interest, and tells the
// observer to drop its references.
func (c *Controller) resetStateLocked() {
	c.gen++
	c.processing = false
	c.isReplaying = false
	c.playbackTimer.Reset()
	c.replayTimer.Reset()
	c.cur = nil
	c.deps.Observer.OnEvent(EventControllerReset)
}
