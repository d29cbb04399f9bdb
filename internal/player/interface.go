package player

import "time"

// Interface is the audio adapter contract. Exactly one implementation
// instance is live at a time: it owns the single underlying playable
// resource, and Play on a new URL fully tears down the previous one.
type Interface interface {
	// Play loads the resource at url and starts playback. It returns
	// ErrPlaybackBlocked (possibly wrapped) when audio output has not
	// yet been unlocked by a user gesture; any other non-nil error is a
	// resource failure (fetch or decode).
	Play(url string) error
	Stop()
	Pause()
	Resume()
	Toggle()
	State() State
	Position() time.Duration
	Duration() time.Duration
	// SeekTo moves to an absolute position, silently clamped to
	// [0, Duration].
	SeekTo(pos time.Duration)
	SetVolume(level float64) // 0.0 to 1.0
	Volume() float64
	SetMuted(muted bool)
	Muted() bool
	// Unlock marks audio output as enabled by a genuine user gesture.
	// Before the first Unlock, Play is rejected with ErrPlaybackBlocked.
	Unlock()
	// FinishedChan delivers exactly one signal per completed playthrough.
	FinishedChan() <-chan struct{}
	// Errors delivers asynchronous resource failures detected after Play
	// has returned (mid-stream decode errors).
	Errors() <-chan error
}

// Verify Player implements Interface at compile time.
var _ Interface = (*Player)(nil)
