//go:build linux

// Package mpris polls MPRIS media players over D-Bus and feeds their
// playback state to the tracking controller.
package mpris

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/godbus/dbus/v5"

	"github.com/nowplayd/nowplayd/internal/connector"
)

const (
	busPrefix  = "org.mpris.MediaPlayer2."
	objectPath = "/org/mpris/MediaPlayer2"
	playerIfce = "org.mpris.MediaPlayer2.Player"
)

// StateSink receives one playback snapshot per poll. Satisfied by the
// tracking controller.
type StateSink interface {
	OnStateChanged(st connector.State)
}

// Poller periodically reads the state of MPRIS players on the session
// bus and delivers it to the sink. When several players are present the
// one that is actively playing wins; ties break on bus name.
type Poller struct {
	conn     *dbus.Conn
	sink     StateSink
	interval time.Duration
	log      *log.Logger
}

// NewPoller connects to the session bus.
func NewPoller(sink StateSink, interval time.Duration, logger *log.Logger) (*Poller, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, err
	}
	return &Poller{
		conn:     conn,
		sink:     sink,
		interval: interval,
		log:      logger.With("component", "mpris"),
	}, nil
}

// Run polls until the context is canceled.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.sink.OnStateChanged(p.snapshot())
		}
	}
}

// Close releases the bus connection.
func (p *Poller) Close() error {
	return p.conn.Close()
}

// snapshot reads the current state of the chosen player. An empty State
// means no player is present.
func (p *Poller) snapshot() connector.State {
	names, err := p.playerNames()
	if err != nil {
		p.log.Warn("listing players failed", "error", err)
		return connector.State{}
	}
	if len(names) == 0 {
		return connector.State{}
	}

	chosen := ""
	chosenState := connector.State{}
	for _, name := range names {
		st, err := p.readPlayer(name)
		if err != nil {
			p.log.Debug("reading player failed", "player", name, "error", err)
			continue
		}
		if chosen == "" || (st.IsPlaying && !chosenState.IsPlaying) {
			chosen = name
			chosenState = st
		}
	}
	return chosenState
}

func (p *Poller) playerNames() ([]string, error) {
	var names []string
	err := p.conn.BusObject().Call("org.freedesktop.DBus.ListNames", 0).Store(&names)
	if err != nil {
		return nil, err
	}

	var players []string
	for _, name := range names {
		if strings.HasPrefix(name, busPrefix) {
			players = append(players, name)
		}
	}
	sort.Strings(players)
	return players, nil
}

func (p *Poller) readPlayer(name string) (connector.State, error) {
	obj := p.conn.Object(name, objectPath)

	status, err := obj.GetProperty(playerIfce + ".PlaybackStatus")
	if err != nil {
		return connector.State{}, err
	}
	meta, err := obj.GetProperty(playerIfce + ".Metadata")
	if err != nil {
		return connector.State{}, err
	}

	st := stateFromMetadata(meta)
	st.IsPlaying = status.Value() == "Playing"

	// Position is optional; some players do not export it.
	if pos, err := obj.GetProperty(playerIfce + ".Position"); err == nil {
		if us, ok := pos.Value().(int64); ok {
			st.CurrentTime = int(us / 1_000_000)
		}
	}

	return st, nil
}

// stateFromMetadata maps an MPRIS metadata dictionary onto a snapshot.
func stateFromMetadata(v dbus.Variant) connector.State {
	meta, ok := v.Value().(map[string]dbus.Variant)
	if !ok {
		return connector.State{}
	}

	var st connector.State
	if artists, ok := meta["xesam:artist"].Value().([]string); ok && len(artists) > 0 {
		st.Artist = artists[0]
	}
	st.Track, _ = meta["xesam:title"].Value().(string)
	st.Album, _ = meta["xesam:album"].Value().(string)
	st.TrackArt, _ = meta["mpris:artUrl"].Value().(string)
	st.UniqueID, _ = meta["xesam:url"].Value().(string)

	if length, ok := meta["mpris:length"].Value().(int64); ok {
		st.Duration = int(length / 1_000_000)
	}

	return st
}
