package playback

import (
	"time"

	"github.com/nandakim/bgm/internal/player"
	"github.com/nandakim/bgm/internal/store"
)

// Service is the playback orchestrator contract. It owns the store,
// reconciles it against the audio adapter, and applies the
// autoplay/error/auto-advance policy.
//
// Every transport method is a genuine user gesture: it unlocks audio
// output, clears the autoplay-blocked flag and cancels any pending
// error skip. TryAutoplay is the one exception - it is the app-level
// playback attempt made without a gesture and may end up blocked.
type Service interface {
	// Transport (user gestures)
	Play() error
	Pause()
	Toggle() error
	Stop()
	Next() error
	Previous() error
	Select(index int) error
	SeekTo(pos time.Duration)

	// TryAutoplay attempts playback without a user gesture.
	TryAutoplay() error

	// Volume and mode
	SetVolume(v int) // 0-100
	SetMuted(muted bool)
	ToggleMute() bool
	SetMode(m store.Mode)

	// ReplaceTracks swaps the track list wholesale, cancelling pending
	// skips, preload hints and the blocked flag.
	ReplaceTracks(tracks []store.Track)

	// State queries
	Snapshot() store.State
	Status() Status
	Blocked() bool
	Adapter() player.Interface

	// Event subscription
	Subscribe() *Subscription

	// Lifecycle
	Close() error
}
