//go:build !linux

package notify

// stubNotifier drops notifications; there is no session bus to reach a
// notification server on non-Linux platforms.
type stubNotifier struct{}

// New returns a no-op notifier on non-Linux platforms. Tracking carries
// on without milestone popups.
func New() (Notifier, error) {
	return &stubNotifier{}, nil
}

func (s *stubNotifier) Notify(_ Notification) (uint32, error) {
	return 0, nil
}

func (s *stubNotifier) Close(_ uint32) error {
	return nil
}
