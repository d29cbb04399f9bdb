package notify

import (
	"testing"

	"github.com/nandakim/bgm/internal/store"
)

func TestUrgencyValues(t *testing.T) {
	// Verify urgency constants match D-Bus spec
	if UrgencyLow != 0 {
		t.Errorf("UrgencyLow = %d, want 0", UrgencyLow)
	}
	if UrgencyNormal != 1 {
		t.Errorf("UrgencyNormal = %d, want 1", UrgencyNormal)
	}
	if UrgencyCritical != 2 {
		t.Errorf("UrgencyCritical = %d, want 2", UrgencyCritical)
	}
}

func TestNowPlaying(t *testing.T) {
	track := &store.Track{Title: "Intro", Artist: "Someone"}

	n := NowPlaying(track, 7)
	if n.Title != "Intro" {
		t.Errorf("Title = %q, want %q", n.Title, "Intro")
	}
	if n.Body != "Someone" {
		t.Errorf("Body = %q, want %q", n.Body, "Someone")
	}
	if n.ReplacesID != 7 {
		t.Errorf("ReplacesID = %d, want 7", n.ReplacesID)
	}
	if n.Urgency != UrgencyLow {
		t.Errorf("Urgency = %d, want UrgencyLow", n.Urgency)
	}
}

func TestNowPlayingNilTrack(t *testing.T) {
	n := NowPlaying(nil, 0)
	if n.Title != "Now Playing" {
		t.Errorf("Title = %q, want fallback", n.Title)
	}
	if n.Body != "" {
		t.Errorf("Body = %q, want empty", n.Body)
	}
}
