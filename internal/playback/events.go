package playback

import (
	"time"

	"github.com/nandakim/bgm/internal/store"
)

// StatusChange is emitted when the orchestrator's state machine moves.
type StatusChange struct {
	Previous Status
	Current  Status
}

// TrackChange is emitted when the current track changes, whether from a
// user action (next/previous/select) or from auto-advance and error
// skips. It is not emitted for pause/resume.
type TrackChange struct {
	Previous      *store.Track
	Current       *store.Track
	PreviousIndex int
	Index         int
}

// TracksChange is emitted when the track list is replaced wholesale.
type TracksChange struct {
	Tracks []store.Track
	Index  int
}

// PositionChange is emitted periodically while playing and after seeks.
type PositionChange struct {
	Position time.Duration
	Duration time.Duration
}

// BlockedChange is emitted when the autoplay-blocked flag flips. The
// host surfaces a "tap to play" affordance while Blocked is true.
type BlockedChange struct {
	Blocked bool
}

// ErrorEvent is emitted when a resource fails. Err carries the raw
// cause for logs; anything user-facing goes through errmsg instead.
type ErrorEvent struct {
	Operation string // e.g. "play", "stream"
	URL       string
	Err       error
}
