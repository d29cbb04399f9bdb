// Package store holds all logical player state behind a pure reducer:
// intent in, new state out. It performs no I/O and owns no timers; the
// only randomness is the explicit shuffle step, whose source is
// injectable for tests.
package store

import "math/rand/v2"

// Reducer applies actions to player state.
type Reducer struct {
	rng *rand.Rand
}

// NewReducer creates a reducer with a randomly seeded shuffle source.
func NewReducer() *Reducer {
	return NewSeededReducer(rand.Uint64(), rand.Uint64())
}

// NewSeededReducer creates a reducer with a deterministic shuffle source.
func NewSeededReducer(seed1, seed2 uint64) *Reducer {
	return &Reducer{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

// Apply returns the state resulting from applying the action. The input
// state is never mutated.
func (r *Reducer) Apply(s State, a Action) State {
	switch a := a.(type) {
	case SetTracks:
		tracks := make([]Track, len(a.Tracks))
		copy(tracks, a.Tracks)
		s.Tracks = tracks
		s.CurrentIndex = 0
		s.CurrentTime = 0
		s.Duration = 0
		if s.Mode == Random {
			s.ShuffledIndices = r.shuffledIndices(len(tracks))
		} else {
			s.ShuffledIndices = nil
		}
		return s

	case SetCurrentIndex:
		if a.Index < 0 || a.Index >= len(s.Tracks) {
			return s
		}
		s.CurrentIndex = a.Index
		s.CurrentTime = 0
		s.Duration = 0
		return s

	case SetPlaying:
		if s.IsEmpty() {
			return s
		}
		s.Playing = a.Playing
		return s

	case TogglePlayPause:
		if s.IsEmpty() {
			return s
		}
		s.Playing = !s.Playing
		return s

	case Next:
		return r.step(s, +1)

	case Previous:
		return r.step(s, -1)

	case SetVolume:
		s.Volume = clampVolume(a.Volume)
		return s

	case SetMuted:
		s.Muted = a.Muted
		return s

	case SetCurrentTime:
		s.CurrentTime = max(a.Time, 0)
		return s

	case SetDuration:
		s.Duration = max(a.Duration, 0)
		return s

	case SetPlaybackMode:
		if a.Mode == s.Mode {
			return s
		}
		s.Mode = a.Mode
		if a.Mode == Random {
			s.ShuffledIndices = r.shuffledIndices(len(s.Tracks))
		} else {
			s.ShuffledIndices = nil
		}
		return s

	default:
		return s
	}
}

// step moves one position through the active ordering with wrap-around
// and resolves the new position back to a raw index.
func (r *Reducer) step(s State, delta int) State {
	n := len(s.Tracks)
	if n == 0 {
		return s
	}
	pos := (s.Position() + delta + n) % n
	s.CurrentIndex = s.TrackAtPosition(pos)
	s.CurrentTime = 0
	s.Duration = 0
	return s
}

func clampVolume(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
