package store

import "time"

// Mode defines the track ordering.
type Mode int

const (
	Sequential Mode = iota
	Random
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Sequential:
		return "sequential"
	case Random:
		return "random"
	default:
		return "unknown"
	}
}

// ParseMode converts a playlist document mode string to a Mode.
// Unrecognized values fall back to Sequential.
func ParseMode(s string) Mode {
	if s == "random" {
		return Random
	}
	return Sequential
}

// State is the single source of truth for the player.
//
// CurrentIndex is always a raw index into Tracks, regardless of Mode.
// In Random mode the playback order is given by ShuffledIndices, a
// permutation of [0, len(Tracks)) that is regenerated wholesale whenever
// the track list or the mode changes - never patched incrementally.
//
// Playing is the intended state; the audio adapter's actual state may lag
// behind or reject (autoplay blocking), which the orchestrator reconciles.
// CurrentTime and Duration are mirrored from the adapter and are not
// authoritative anywhere else.
type State struct {
	Tracks          []Track
	CurrentIndex    int
	Mode            Mode
	ShuffledIndices []int
	Playing         bool
	Volume          int // 0-100
	Muted           bool
	CurrentTime     time.Duration
	Duration        time.Duration
}

// CurrentTrack returns the current track, or nil if the list is empty.
func (s State) CurrentTrack() *Track {
	if len(s.Tracks) == 0 || s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Tracks) {
		return nil
	}
	t := s.Tracks[s.CurrentIndex]
	return &t
}

// IsEmpty returns true if the state holds no tracks.
func (s State) IsEmpty() bool {
	return len(s.Tracks) == 0
}

// Position returns the logical position of the current track within the
// active ordering: the raw index in sequential mode, the position within
// ShuffledIndices in random mode. Returns -1 for an empty list.
func (s State) Position() int {
	if len(s.Tracks) == 0 {
		return -1
	}
	if s.Mode != Random || len(s.ShuffledIndices) != len(s.Tracks) {
		return s.CurrentIndex
	}
	for pos, raw := range s.ShuffledIndices {
		if raw == s.CurrentIndex {
			return pos
		}
	}
	return s.CurrentIndex
}

// TrackAtPosition resolves a logical position within the active ordering
// back to a raw track index.
func (s State) TrackAtPosition(pos int) int {
	if pos < 0 || pos >= len(s.Tracks) {
		return 0
	}
	if s.Mode == Random && len(s.ShuffledIndices) == len(s.Tracks) {
		return s.ShuffledIndices[pos]
	}
	return pos
}
