package scrobbler

import (
	"testing"
	"time"
)

func TestScrobbleDuration(t *testing.T) {
	tests := []struct {
		name  string
		track time.Duration
		th    Threshold
		want  time.Duration
		ok    bool
	}{
		{"half of 300s", 300 * time.Second, Threshold{Percent: 50}, 150 * time.Second, true},
		{"too short", 20 * time.Second, Threshold{Percent: 50}, 0, false},
		{"capped at 4 minutes", time.Hour, Threshold{Percent: 50}, 4 * time.Minute, true},
		{"fixed seconds", 300 * time.Second, Threshold{Seconds: 60}, 60 * time.Second, true},
		{"fixed seconds clamped to track", 40 * time.Second, Threshold{Seconds: 90}, 40 * time.Second, true},
		{"zero percent falls back to default", 200 * time.Second, Threshold{}, 100 * time.Second, true},
		{"out-of-range percent falls back", 200 * time.Second, Threshold{Percent: 150}, 100 * time.Second, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ScrobbleDuration(tt.track, tt.th)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ScrobbleDuration(%v, %+v) = (%v, %v), want (%v, %v)",
					tt.track, tt.th, got, ok, tt.want, tt.ok)
			}
		})
	}
}
