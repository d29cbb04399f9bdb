package playback

import "github.com/nandakim/bgm/internal/store"

// NextURL returns the URL of the track that would play after the
// current one under the active ordering, without mutating any state.
// Returns "" for an empty list. A single-track list wraps onto itself,
// which still yields a useful warm-cache hint for looping playlists.
func NextURL(s store.State) string {
	n := len(s.Tracks)
	if n == 0 {
		return ""
	}
	pos := (s.Position() + 1) % n
	return s.Tracks[s.TrackAtPosition(pos)].URL
}
