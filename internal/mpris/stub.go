//go:build !linux

// Package mpris polls MPRIS media players over D-Bus and feeds their
// playback state to the tracking controller.
package mpris

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nowplayd/nowplayd/internal/connector"
)

// StateSink receives one playback snapshot per poll. Satisfied by the
// tracking controller.
type StateSink interface {
	OnStateChanged(st connector.State)
}

// Poller is a no-op on non-Linux platforms; MPRIS needs a session bus.
type Poller struct{}

// NewPoller returns a no-op poller on non-Linux platforms.
func NewPoller(_ StateSink, _ time.Duration, _ *log.Logger) (*Poller, error) {
	return &Poller{}, nil
}

// Run blocks until the context is canceled.
func (p *Poller) Run(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

// Close is a no-op on non-Linux platforms.
func (p *Poller) Close() error {
	return nil
}
