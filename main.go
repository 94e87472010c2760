package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nowplayd/nowplayd/internal/config"
	"github.com/nowplayd/nowplayd/internal/connector"
	"github.com/nowplayd/nowplayd/internal/controller"
	"github.com/nowplayd/nowplayd/internal/mpris"
	"github.com/nowplayd/nowplayd/internal/notify"
	"github.com/nowplayd/nowplayd/internal/pipeline"
	"github.com/nowplayd/nowplayd/internal/scrobbler"
	"github.com/nowplayd/nowplayd/internal/scrobbler/history"
	"github.com/nowplayd/nowplayd/internal/scrobbler/lastfm"
	"github.com/nowplayd/nowplayd/internal/song"
	"github.com/nowplayd/nowplayd/internal/state"
)

func main() {
	authFlag := flag.Bool("auth", false, "link a Last.fm account and exit")
	historyFlag := flag.Int("history", 0, "print the N most recent listens and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)

	st, err := state.Open()
	if err != nil {
		logger.Fatal("opening state database failed", "error", err)
	}
	defer st.Close()

	switch {
	case *authFlag:
		if err := runAuth(cfg, st); err != nil {
			logger.Fatal("Last.fm authentication failed", "error", err)
		}
	case *historyFlag > 0:
		if err := printHistory(st, *historyFlag); err != nil {
			logger.Fatal("reading history failed", "error", err)
		}
	default:
		if err := runDaemon(cfg, st, logger); err != nil && !errors.Is(err, context.Canceled) {
			logger.Fatal("daemon stopped", "error", err)
		}
	}
}

func newLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

func runDaemon(cfg *config.Config, st *state.Manager, logger *log.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	manager := scrobbler.NewManager()
	manager.Register(history.NewService(st, logger))

	if cfg.HasLastfmConfig() {
		client := lastfm.NewClient(cfg.Lastfm.APIKey, cfg.Lastfm.APISecret)
		sess, err := st.GetLastfmSession()
		if err != nil {
			return fmt.Errorf("read Last.fm session: %w", err)
		}
		if sess != nil {
			client.SetSessionKey(sess.SessionKey)
			logger.Info("Last.fm linked", "user", sess.Username)
		} else {
			logger.Warn("Last.fm configured but not linked, run nowplayd -auth")
		}
		manager.Register(lastfm.NewService(client, logger))
	}

	notifier, err := notify.New()
	if err != nil {
		return fmt.Errorf("create notifier: %w", err)
	}

	obs := &desktopObserver{notifier: notifier, log: logger}

	ctrl := controller.New(
		connector.Connector{ID: "mpris", Label: "MPRIS player"},
		controller.Deps{
			Pipeline:  pipeline.NewProcessor(st, logger),
			Submitter: manager,
			Options:   config.NewStore(cfg),
			Edits:     st,
			Observer:  obs,
			Logger:    logger,
		},
	)
	if err := ctrl.Init(ctx); err != nil {
		return fmt.Errorf("init controller: %w", err)
	}
	if err := ctrl.Enable(); err != nil {
		return fmt.Errorf("enable controller: %w", err)
	}
	defer ctrl.Finish()

	interval := time.Duration(cfg.PollIntervalMs) * time.Millisecond
	poller, err := mpris.NewPoller(ctrl, interval, logger)
	if err != nil {
		return fmt.Errorf("connect to session bus: %w", err)
	}
	defer poller.Close()

	logger.Info("nowplayd started", "poll_interval", interval)
	return poller.Run(ctx)
}

// desktopObserver raises desktop notifications for tracking milestones.
// Callbacks run while the controller holds its lock, so the D-Bus calls
// happen on separate goroutines.
type desktopObserver struct {
	notifier notify.Notifier
	log      *log.Logger

	mu     sync.Mutex
	artist string
	track  string
	icon   string
	lastID uint32
}

func (o *desktopObserver) OnSongUpdated(s *song.Song) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.artist = s.Parsed.Artist
	o.track = s.Parsed.Track
	o.icon = iconFromArt(s.Parsed.TrackArt)
}

func (o *desktopObserver) OnModeChanged(mode controller.Mode) {
	o.log.Debug("mode changed", "mode", mode)
}

func (o *desktopObserver) OnEvent(e controller.Event) {
	switch e {
	case controller.EventSongNowPlaying:
		go o.send("Now playing")
	case controller.EventSongScrobbled:
		go o.send("Scrobbled")
	case controller.EventControllerReset, controller.EventSongUnrecognized:
	}
}

func (o *desktopObserver) send(title string) {
	o.mu.Lock()
	n := notify.Notification{
		Title:      title,
		Body:       fmt.Sprintf("%s - %s", o.artist, o.track),
		Icon:       o.icon,
		Timeout:    5000,
		ReplacesID: o.lastID,
		Urgency:    notify.UrgencyLow,
	}
	o.mu.Unlock()

	id, err := o.notifier.Notify(n)
	if err != nil {
		o.log.Debug("notification failed", "error", err)
		return
	}

	o.mu.Lock()
	o.lastID = id
	o.mu.Unlock()
}

// iconFromArt turns an MPRIS art URL into a notification icon path.
// Only local files are usable; remote URLs are dropped.
func iconFromArt(artURL string) string {
	if path, ok := strings.CutPrefix(artURL, "file://"); ok {
		return path
	}
	return ""
}

// runAuth walks the user through the Last.fm desktop authorization flow
// and stores the resulting session.
func runAuth(cfg *config.Config, st *state.Manager) error {
	if !cfg.HasLastfmConfig() {
		return errors.New("lastfm api_key and api_secret must be set in config.toml")
	}

	client := lastfm.NewClient(cfg.Lastfm.APIKey, cfg.Lastfm.APISecret)
	token, err := client.GetToken()
	if err != nil {
		return err
	}

	fmt.Printf("Open this URL in your browser and authorize nowplayd:\n\n  %s\n\n", client.AuthURL(token))
	fmt.Print("Press Enter once you have authorized... ")
	if _, err := bufio.NewReader(os.Stdin).ReadString('\n'); err != nil {
		return err
	}

	username, sessionKey, err := client.GetSession(token)
	if err != nil {
		return err
	}
	if err := st.SaveLastfmSession(username, sessionKey); err != nil {
		return fmt.Errorf("store session: %w", err)
	}

	fmt.Printf("Linked Last.fm account %q.\n", username)
	return nil
}

// printHistory dumps the most recent listens from the local database.
func printHistory(st *state.Manager, limit int) error {
	listens, err := st.RecentListens(limit)
	if err != nil {
		return err
	}
	if len(listens) == 0 {
		fmt.Println("No listens recorded yet.")
		return nil
	}

	for _, l := range listens {
		line := fmt.Sprintf("%s  %s - %s", l.ScrobbledAt.Format("2006-01-02 15:04"), l.Artist, l.Track)
		if l.Album != "" {
			line += fmt.Sprintf(" (%s)", l.Album)
		}
		fmt.Println(line)
	}
	return nil
}
