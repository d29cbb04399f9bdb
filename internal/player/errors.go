package player

import (
	"errors"
	"time"
)

// ErrPlaybackBlocked is returned by Play when audio output has not been
// unlocked by a user gesture yet. It is the policy analog of a browser
// autoplay rejection: the track is healthy and must not be skipped, the
// player just has to wait for the user.
var ErrPlaybackBlocked = errors.New("audio output locked pending user gesture")

// Class divides Play failures into the two categories the orchestrator
// reacts to differently.
type Class int

const (
	// ClassNone means no error.
	ClassNone Class = iota
	// ClassBlocked is a policy rejection; wait for a user gesture.
	ClassBlocked
	// ClassResource is a broken resource (fetch or decode failure);
	// skip to the next track.
	ClassResource
)

// String returns the class name.
func (c Class) String() string {
	switch c {
	case ClassNone:
		return "none"
	case ClassBlocked:
		return "blocked"
	case ClassResource:
		return "resource"
	default:
		return "unknown"
	}
}

// Classify assigns an error from a Play call or the Errors channel to
// its failure class.
func Classify(err error) Class {
	switch {
	case err == nil:
		return ClassNone
	case errors.Is(err, ErrPlaybackBlocked):
		return ClassBlocked
	default:
		return ClassResource
	}
}

// ClampSeek clamps a seek target into [0, duration].
func ClampSeek(pos, duration time.Duration) time.Duration {
	if pos < 0 {
		return 0
	}
	if duration > 0 && pos > duration {
		return duration
	}
	return pos
}
