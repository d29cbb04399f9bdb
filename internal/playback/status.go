package playback

// Status represents the orchestrator's state machine.
//
// Transitions:
//   - Idle/Paused → Loading      on track selection or an autoplay attempt
//   - Loading → Playing          on successful play
//   - Loading → Paused           on an autoplay-policy rejection (blocked
//     flag set; never treated as failure, never skipped)
//   - Loading → ErrorRecovering  on a resource rejection
//   - ErrorRecovering → Loading  via the debounced error skip
//   - Playing → Paused           on track end or user pause
//   - Playing/Paused → Loading   on auto-advance to the next track
type Status int

const (
	Idle Status = iota
	Loading
	Playing
	Paused
	ErrorRecovering
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Loading:
		return "Loading"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	case ErrorRecovering:
		return "ErrorRecovering"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a track is loaded (anything but Idle).
func (s Status) IsActive() bool {
	return s != Idle
}
