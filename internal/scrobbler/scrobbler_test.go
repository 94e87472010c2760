package scrobbler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nowplayd/nowplayd/internal/song"
)

type fakeService struct {
	id     string
	result Result
	delay  time.Duration
	love   error

	nowPlayingCalls int
	scrobbleCalls   int
}

func (f *fakeService) ID() string   { return f.id }
func (f *fakeService) Name() string { return f.id }

func (f *fakeService) NowPlaying(_ context.Context, _ *song.Song) Result {
	time.Sleep(f.delay)
	f.nowPlayingCalls++
	return f.result
}

func (f *fakeService) Scrobble(_ context.Context, _ *song.Song) Result {
	time.Sleep(f.delay)
	f.scrobbleCalls++
	return f.result
}

func (f *fakeService) ToggleLove(_ context.Context, _ *song.Song, _ bool) error {
	return f.love
}

func TestManager_ResultsFollowRegistrationOrder(t *testing.T) {
	m := NewManager()
	// The slower service registers first; its result must still come first.
	m.Register(&fakeService{id: "slow", result: ResultErrorOther, delay: 20 * time.Millisecond})
	m.Register(&fakeService{id: "fast", result: ResultOK})

	s := song.New("mpris", song.Info{Artist: "A", Track: "T"})
	results := m.Scrobble(context.Background(), s)

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0] != ResultErrorOther || results[1] != ResultOK {
		t.Errorf("results = %v, want [error-other ok]", results)
	}
}

func TestManager_NoServices(t *testing.T) {
	m := NewManager()
	s := song.New("mpris", song.Info{Artist: "A", Track: "T"})

	results := m.NowPlaying(context.Background(), s)
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
	if AllResults(results, ResultIgnored) {
		t.Error("empty result set must not count as all-ignored")
	}
}

func TestManager_ToggleLoveJoinsErrors(t *testing.T) {
	m := NewManager()
	errLove := errors.New("love failed")
	m.Register(&fakeService{id: "ok"})
	m.Register(&fakeService{id: "bad", love: errLove})

	s := song.New("mpris", song.Info{Artist: "A", Track: "T"})
	err := m.ToggleLove(context.Background(), s, true)

	if !errors.Is(err, errLove) {
		t.Errorf("ToggleLove error = %v, want wrapped %v", err, errLove)
	}
}
