// Package pipeline normalizes and validates song entities before they
// are reported to tracking services.
package pipeline

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nowplayd/nowplayd/internal/song"
)

// Pipeline validates a song, mutating its parsed fields in place, and
// reports whether the entity is now valid. The controller keeps at most
// one call outstanding per entity.
type Pipeline interface {
	Process(ctx context.Context, s *song.Song) bool
}

// EditSource looks up a saved user edit by song storage key.
type EditSource interface {
	GetSongInfo(key uint64) (song.Edit, bool, error)
}

// Processor is the default pipeline: it cleans up the parsed fields,
// applies any saved user edit, and marks the song valid when the
// identity fields required for submission are present.
type Processor struct {
	edits EditSource
	log   *log.Logger
}

// NewProcessor creates a processor. edits may be nil when no edit store
// is configured.
func NewProcessor(edits EditSource, logger *log.Logger) *Processor {
	return &Processor{edits: edits, log: logger}
}

// Process runs the normalization steps. It only mutates parsed fields;
// raw fields stay as the adapter reported them.
func (p *Processor) Process(ctx context.Context, s *song.Song) bool {
	if err := ctx.Err(); err != nil {
		return false
	}

	normalizeFields(s)
	p.applyUserEdit(s)

	valid := s.Parsed.Artist != "" && s.Parsed.Track != ""
	s.Flags.IsValid = valid
	return valid
}

func normalizeFields(s *song.Song) {
	s.Parsed.Artist = strings.TrimSpace(s.Parsed.Artist)
	s.Parsed.Track = strings.TrimSpace(s.Parsed.Track)
	s.Parsed.Album = strings.TrimSpace(s.Parsed.Album)
	if s.Parsed.Duration < 0 {
		s.Parsed.Duration = 0
	}
	if s.Parsed.CurrentTime < 0 {
		s.Parsed.CurrentTime = 0
	}
}

func (p *Processor) applyUserEdit(s *song.Song) {
	if p.edits == nil {
		return
	}
	edit, ok, err := p.edits.GetSongInfo(s.StorageKey())
	if err != nil {
		p.log.Warn("failed to look up saved song edit", "song", s, "err", err)
		return
	}
	if ok {
		s.ApplyEdit(edit)
	}
}
