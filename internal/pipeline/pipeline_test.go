package pipeline

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"

	"github.com/nowplayd/nowplayd/internal/song"
)

type fakeEdits struct {
	edits map[uint64]song.Edit
	err   error
}

func (f *fakeEdits) GetSongInfo(key uint64) (song.Edit, bool, error) {
	if f.err != nil {
		return song.Edit{}, false, f.err
	}
	e, ok := f.edits[key]
	return e, ok, nil
}

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestProcessor_ValidSong(t *testing.T) {
	p := NewProcessor(nil, testLogger())
	s := song.New("mpris", song.Info{Artist: "  Artist ", Track: "Track\t", Duration: 300})

	assert.True(t, p.Process(context.Background(), s))
	assert.Equal(t, "Artist", s.Parsed.Artist)
	assert.Equal(t, "Track", s.Parsed.Track)
	assert.True(t, s.Flags.IsValid)
	assert.Equal(t, "  Artist ", s.Raw.Artist, "raw fields must stay untouched")
}

func TestProcessor_MissingIdentity(t *testing.T) {
	p := NewProcessor(nil, testLogger())
	s := song.New("mpris", song.Info{Artist: "A", Duration: 300})

	assert.False(t, p.Process(context.Background(), s), "no track title")
	assert.False(t, s.Flags.IsValid)
}

func TestProcessor_AppliesSavedEdit(t *testing.T) {
	s := song.New("mpris", song.Info{Artist: "Wrong", Track: "T"})
	edits := &fakeEdits{edits: map[uint64]song.Edit{
		s.StorageKey(): {Artist: "Right"},
	}}
	p := NewProcessor(edits, testLogger())

	assert.True(t, p.Process(context.Background(), s))
	assert.Equal(t, "Right", s.Parsed.Artist)
	assert.True(t, s.Flags.IsCorrectedByUser)
}

func TestProcessor_EditLookupFailureIsNonFatal(t *testing.T) {
	edits := &fakeEdits{err: errors.New("db closed")}
	p := NewProcessor(edits, testLogger())
	s := song.New("mpris", song.Info{Artist: "A", Track: "T"})

	assert.True(t, p.Process(context.Background(), s), "edit store failure must not invalidate the song")
}

func TestProcessor_CanceledContext(t *testing.T) {
	p := NewProcessor(nil, testLogger())
	s := song.New("mpris", song.Info{Artist: "A", Track: "T"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.False(t, p.Process(ctx, s))
}
