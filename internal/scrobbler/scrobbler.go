// Package scrobbler defines the submission capability: the set of remote
// tracking services a listen is reported to, and the per-service outcome
// collections the controller aggregates.
package scrobbler

import (
	"context"
	"errors"
	"sync"

	"github.com/nowplayd/nowplayd/internal/song"
)

// Scrobbler is one tracking service backend.
type Scrobbler interface {
	// ID returns a unique identifier for this service instance.
	ID() string
	// Name returns a human-readable service name.
	Name() string
	// NowPlaying reports the track as currently playing.
	NowPlaying(ctx context.Context, s *song.Song) Result
	// Scrobble permanently records a completed listen.
	Scrobble(ctx context.Context, s *song.Song) Result
	// ToggleLove sets or clears the love marker for the track.
	ToggleLove(ctx context.Context, s *song.Song, loved bool) error
}

// Manager fans submissions out to every registered service and collects
// their outcomes in registration order.
type Manager struct {
	mu       sync.RWMutex
	services []Scrobbler
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{}
}

// Register adds a service. Registration order fixes the outcome order.
func (m *Manager) Register(s Scrobbler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.services = append(m.services, s)
}

// Services returns the registered services in registration order.
func (m *Manager) Services() []Scrobbler {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Scrobbler, len(m.services))
	copy(out, m.services)
	return out
}

// NowPlaying reports the track to every service concurrently and returns
// one outcome per service, ordered by registration.
func (m *Manager) NowPlaying(ctx context.Context, s *song.Song) []Result {
	return m.fanOut(func(svc Scrobbler) Result {
		return svc.NowPlaying(ctx, s)
	})
}

// Scrobble records the listen on every service concurrently and returns
// one outcome per service, ordered by registration.
func (m *Manager) Scrobble(ctx context.Context, s *song.Song) []Result {
	return m.fanOut(func(svc Scrobbler) Result {
		return svc.Scrobble(ctx, s)
	})
}

// ToggleLove sets or clears the love marker on every service. Individual
// service errors are joined; the caller applies the local flag regardless.
func (m *Manager) ToggleLove(ctx context.Context, s *song.Song, loved bool) error {
	services := m.Services()
	errs := make([]error, len(services))

	var wg sync.WaitGroup
	for i, svc := range services {
		wg.Add(1)
		go func(i int, svc Scrobbler) {
			defer wg.Done()
			errs[i] = svc.ToggleLove(ctx, s, loved)
		}(i, svc)
	}
	wg.Wait()

	return errors.Join(errs...)
}

func (m *Manager) fanOut(call func(Scrobbler) Result) []Result {
	services := m.Services()
	results := make([]Result, len(services))

	var wg sync.WaitGroup
	for i, svc := range services {
		wg.Add(1)
		go func(i int, svc Scrobbler) {
			defer wg.Done()
			results[i] = call(svc)
		}(i, svc)
	}
	wg.Wait()

	return results
}
