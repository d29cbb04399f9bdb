package store

import (
	"testing"
	"time"
)

func testTracks(n int) []Track {
	tracks := make([]Track, n)
	for i := range tracks {
		tracks[i] = Track{
			ID:  string(rune('a' + i)),
			URL: "/audio/track" + string(rune('0'+i)) + ".mp3",
		}
	}
	return tracks
}

func TestApply_SetTracks(t *testing.T) {
	r := NewSeededReducer(1, 2)

	s := r.Apply(State{CurrentIndex: 3}, SetTracks{Tracks: testTracks(5)})

	if len(s.Tracks) != 5 {
		t.Fatalf("len(Tracks) = %d, want 5", len(s.Tracks))
	}
	if s.CurrentIndex != 0 {
		t.Errorf("CurrentIndex = %d, want 0", s.CurrentIndex)
	}
	if s.ShuffledIndices != nil {
		t.Error("ShuffledIndices should be nil in sequential mode")
	}
}

func TestApply_SetTracks_RegeneratesShuffleInRandomMode(t *testing.T) {
	r := NewSeededReducer(1, 2)
	s := State{Mode: Random}

	s = r.Apply(s, SetTracks{Tracks: testTracks(6)})

	if len(s.ShuffledIndices) != 6 {
		t.Fatalf("len(ShuffledIndices) = %d, want 6", len(s.ShuffledIndices))
	}
}

func TestApply_SetTracks_DoesNotAliasInput(t *testing.T) {
	r := NewSeededReducer(1, 2)
	in := testTracks(3)

	s := r.Apply(State{}, SetTracks{Tracks: in})
	in[0].URL = "/mutated.mp3"

	if s.Tracks[0].URL == "/mutated.mp3" {
		t.Error("state tracks alias the input slice")
	}
}

func TestApply_SetCurrentIndex(t *testing.T) {
	r := NewSeededReducer(1, 2)
	s := r.Apply(State{}, SetTracks{Tracks: testTracks(4)})
	s.CurrentTime = 30 * time.Second

	s = r.Apply(s, SetCurrentIndex{Index: 2})

	if s.CurrentIndex != 2 {
		t.Errorf("CurrentIndex = %d, want 2", s.CurrentIndex)
	}
	if s.CurrentTime != 0 {
		t.Errorf("CurrentTime = %v, want 0 after track change", s.CurrentTime)
	}
}

func TestApply_SetCurrentIndex_OutOfRangeIgnored(t *testing.T) {
	r := NewSeededReducer(1, 2)
	s := r.Apply(State{}, SetTracks{Tracks: testTracks(4)})
	s = r.Apply(s, SetCurrentIndex{Index: 1})

	for _, idx := range []int{-1, 4, 99} {
		got := r.Apply(s, SetCurrentIndex{Index: idx})
		if got.CurrentIndex != 1 {
			t.Errorf("SetCurrentIndex(%d): CurrentIndex = %d, want 1 (unchanged)", idx, got.CurrentIndex)
		}
	}
}

func TestApply_TogglePlayPause(t *testing.T) {
	r := NewSeededReducer(1, 2)
	s := r.Apply(State{}, SetTracks{Tracks: testTracks(2)})

	s = r.Apply(s, TogglePlayPause{})
	if !s.Playing {
		t.Error("Playing = false after first toggle, want true")
	}
	s = r.Apply(s, TogglePlayPause{})
	if s.Playing {
		t.Error("Playing = true after second toggle, want false")
	}
}

func TestApply_TogglePlayPause_EmptyListNoOp(t *testing.T) {
	r := NewSeededReducer(1, 2)

	s := r.Apply(State{}, TogglePlayPause{})

	if s.Playing {
		t.Error("toggling an empty player should not set Playing")
	}
}

func TestApply_Next_Sequential(t *testing.T) {
	r := NewSeededReducer(1, 2)
	s := r.Apply(State{}, SetTracks{Tracks: testTracks(5)})

	s = r.Apply(s, Next{})
	if s.CurrentIndex != 1 {
		t.Errorf("CurrentIndex = %d, want 1", s.CurrentIndex)
	}
}

func TestApply_Next_WrapsAtEnd(t *testing.T) {
	r := NewSeededReducer(1, 2)
	s := r.Apply(State{}, SetTracks{Tracks: testTracks(5)})
	s = r.Apply(s, SetCurrentIndex{Index: 4})

	s = r.Apply(s, Next{})

	if s.CurrentIndex != 0 {
		t.Errorf("CurrentIndex = %d, want 0 (wrap-around)", s.CurrentIndex)
	}
}

func TestApply_Previous_WrapsAtStart(t *testing.T) {
	r := NewSeededReducer(1, 2)
	s := r.Apply(State{}, SetTracks{Tracks: testTracks(5)})

	s = r.Apply(s, Previous{})

	if s.CurrentIndex != 4 {
		t.Errorf("CurrentIndex = %d, want 4 (wrap-around)", s.CurrentIndex)
	}
}

func TestApply_NextPrevious_Inverse(t *testing.T) {
	for _, mode := range []Mode{Sequential, Random} {
		r := NewSeededReducer(7, 11)
		s := State{Mode: mode}
		s = r.Apply(s, SetTracks{Tracks: testTracks(7)})
		s = r.Apply(s, SetCurrentIndex{Index: 3})

		got := r.Apply(r.Apply(s, Next{}), Previous{})
		if got.CurrentIndex != 3 {
			t.Errorf("mode %v: Next then Previous: CurrentIndex = %d, want 3", mode, got.CurrentIndex)
		}

		got = r.Apply(r.Apply(s, Previous{}), Next{})
		if got.CurrentIndex != 3 {
			t.Errorf("mode %v: Previous then Next: CurrentIndex = %d, want 3", mode, got.CurrentIndex)
		}
	}
}

func TestApply_Next_StaysInBounds(t *testing.T) {
	for _, mode := range []Mode{Sequential, Random} {
		r := NewSeededReducer(3, 5)
		s := State{Mode: mode}
		s = r.Apply(s, SetTracks{Tracks: testTracks(6)})

		for i := 0; i < 20; i++ {
			s = r.Apply(s, Next{})
			if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Tracks) {
				t.Fatalf("mode %v: CurrentIndex = %d out of bounds after %d steps", mode, s.CurrentIndex, i+1)
			}
		}
	}
}

func TestApply_Next_RandomVisitsAllTracks(t *testing.T) {
	r := NewSeededReducer(5, 9)
	s := State{Mode: Random}
	s = r.Apply(s, SetTracks{Tracks: testTracks(6)})

	seen := map[int]bool{s.CurrentIndex: true}
	for i := 0; i < 5; i++ {
		s = r.Apply(s, Next{})
		seen[s.CurrentIndex] = true
	}

	if len(seen) != 6 {
		t.Errorf("one full cycle visited %d distinct tracks, want 6", len(seen))
	}
}

func TestApply_Next_EmptyListNoOp(t *testing.T) {
	r := NewSeededReducer(1, 2)

	s := r.Apply(State{}, Next{})

	if len(s.Tracks) != 0 || s.CurrentIndex != 0 {
		t.Error("Next on empty state should be a no-op")
	}
}

func TestApply_SetVolume_Clamps(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-10, 0},
		{0, 0},
		{42, 42},
		{100, 100},
		{150, 100},
	}

	r := NewSeededReducer(1, 2)
	for _, tt := range tests {
		s := r.Apply(State{}, SetVolume{Volume: tt.in})
		if s.Volume != tt.want {
			t.Errorf("SetVolume(%d): Volume = %d, want %d", tt.in, s.Volume, tt.want)
		}
	}
}

func TestApply_SetMuted(t *testing.T) {
	r := NewSeededReducer(1, 2)

	s := r.Apply(State{}, SetMuted{Muted: true})
	if !s.Muted {
		t.Error("Muted = false, want true")
	}
	s = r.Apply(s, SetMuted{Muted: false})
	if s.Muted {
		t.Error("Muted = true, want false")
	}
}

func TestApply_SetCurrentTime_NegativeClampedToZero(t *testing.T) {
	r := NewSeededReducer(1, 2)

	s := r.Apply(State{}, SetCurrentTime{Time: -5 * time.Second})

	if s.CurrentTime != 0 {
		t.Errorf("CurrentTime = %v, want 0", s.CurrentTime)
	}
}

func TestApply_SetPlaybackMode_ToRandomGeneratesShuffle(t *testing.T) {
	r := NewSeededReducer(1, 2)
	s := r.Apply(State{}, SetTracks{Tracks: testTracks(5)})

	s = r.Apply(s, SetPlaybackMode{Mode: Random})

	if s.Mode != Random {
		t.Errorf("Mode = %v, want Random", s.Mode)
	}
	if len(s.ShuffledIndices) != 5 {
		t.Fatalf("len(ShuffledIndices) = %d, want 5", len(s.ShuffledIndices))
	}
}

func TestApply_SetPlaybackMode_ToSequentialDropsShuffle(t *testing.T) {
	r := NewSeededReducer(1, 2)
	s := State{Mode: Random}
	s = r.Apply(s, SetTracks{Tracks: testTracks(5)})

	s = r.Apply(s, SetPlaybackMode{Mode: Sequential})

	if s.ShuffledIndices != nil {
		t.Error("ShuffledIndices should be nil after switching to sequential")
	}
}

func TestApply_SetPlaybackMode_SameModeKeepsShuffle(t *testing.T) {
	r := NewSeededReducer(1, 2)
	s := State{Mode: Random}
	s = r.Apply(s, SetTracks{Tracks: testTracks(5)})
	before := append([]int(nil), s.ShuffledIndices...)

	s = r.Apply(s, SetPlaybackMode{Mode: Random})

	for i, v := range s.ShuffledIndices {
		if before[i] != v {
			t.Fatal("setting the same mode should not regenerate the shuffle")
		}
	}
}

func TestState_CurrentTrack(t *testing.T) {
	r := NewSeededReducer(1, 2)

	if (State{}).CurrentTrack() != nil {
		t.Error("CurrentTrack() should be nil for empty state")
	}

	s := r.Apply(State{}, SetTracks{Tracks: testTracks(3)})
	s = r.Apply(s, SetCurrentIndex{Index: 2})

	track := s.CurrentTrack()
	if track == nil {
		t.Fatal("CurrentTrack() returned nil")
	}
	if track.ID != "c" {
		t.Errorf("CurrentTrack().ID = %q, want c", track.ID)
	}
}
