package playback

import (
	"testing"

	"github.com/nandakim/bgm/internal/store"
)

func TestNextURL_Empty(t *testing.T) {
	if got := NextURL(store.State{}); got != "" {
		t.Errorf("NextURL(empty) = %q, want \"\"", got)
	}
}

func TestNextURL_Sequential(t *testing.T) {
	r := store.NewSeededReducer(1, 2)
	s := r.Apply(store.State{}, store.SetTracks{Tracks: testTracks(3)})

	if got := NextURL(s); got != "/audio/track1.mp3" {
		t.Errorf("NextURL = %q, want track1", got)
	}

	s = r.Apply(s, store.SetCurrentIndex{Index: 2})
	if got := NextURL(s); got != "/audio/track0.mp3" {
		t.Errorf("NextURL at last position = %q, want wrap to track0", got)
	}
}

func TestNextURL_Random_FollowsShuffleOrder(t *testing.T) {
	r := store.NewSeededReducer(9, 4)
	s := store.State{Mode: store.Random}
	s = r.Apply(s, store.SetTracks{Tracks: testTracks(5)})

	url := NextURL(s)

	next := r.Apply(s, store.Next{})
	if want := next.Tracks[next.CurrentIndex].URL; url != want {
		t.Errorf("NextURL = %q, want %q (the track Next would select)", url, want)
	}
}

func TestNextURL_DoesNotMutateState(t *testing.T) {
	r := store.NewSeededReducer(1, 2)
	s := r.Apply(store.State{}, store.SetTracks{Tracks: testTracks(3)})
	before := s.CurrentIndex

	_ = NextURL(s)

	if s.CurrentIndex != before {
		t.Error("NextURL mutated the state")
	}
}
