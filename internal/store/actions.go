package store

import "time"

// Action is an intent dispatched to the reducer. The set of actions is
// closed: everything that can change player state is listed here.
type Action interface {
	isAction()
}

// SetTracks replaces the track list wholesale and resets the current
// index to 0.
type SetTracks struct {
	Tracks []Track
}

// SetCurrentIndex selects a track by raw index. Out-of-range indices are
// ignored.
type SetCurrentIndex struct {
	Index int
}

// SetPlaying sets the intended playing state.
type SetPlaying struct {
	Playing bool
}

// TogglePlayPause flips the intended playing state.
type TogglePlayPause struct{}

// Next advances one step in the active ordering, wrapping at the end.
type Next struct{}

// Previous retreats one step in the active ordering, wrapping at the start.
type Previous struct{}

// SetVolume stores a volume level, clamped to [0,100].
type SetVolume struct {
	Volume int
}

// SetMuted sets the muted flag.
type SetMuted struct {
	Muted bool
}

// SetCurrentTime mirrors the adapter's playback position.
type SetCurrentTime struct {
	Time time.Duration
}

// SetDuration mirrors the adapter's track duration.
type SetDuration struct {
	Duration time.Duration
}

// SetPlaybackMode switches between sequential and random ordering.
// Switching to random regenerates the shuffle permutation.
type SetPlaybackMode struct {
	Mode Mode
}

func (SetTracks) isAction()       {}
func (SetCurrentIndex) isAction() {}
func (SetPlaying) isAction()      {}
func (TogglePlayPause) isAction() {}
func (Next) isAction()            {}
func (Previous) isAction()        {}
func (SetVolume) isAction()       {}
func (SetMuted) isAction()        {}
func (SetCurrentTime) isAction()  {}
func (SetDuration) isAction()     {}
func (SetPlaybackMode) isAction() {}
