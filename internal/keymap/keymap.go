// Package keymap defines the transport key bindings and the pointer
// math for the seek bar and volume slider.
package keymap

// Action represents a user-triggerable transport action.
type Action string

const (
	ActionNone       Action = ""
	ActionPlayPause  Action = "play_pause"
	ActionNextTrack  Action = "next_track"
	ActionPrevTrack  Action = "prev_track"
	ActionVolumeUp   Action = "volume_up"
	ActionVolumeDown Action = "volume_down"
	ActionToggleMute Action = "toggle_mute"
	ActionQuit       Action = "quit"
)

// VolumeStep is the volume change per arrow key press, on the 0-100
// scale.
const VolumeStep = 5

// Binding describes a single key binding for documentation.
type Binding struct {
	Keys        []string
	Action      Action
	Description string
}

// All contains the transport key bindings.
var All = []Binding{
	{[]string{" ", "space"}, ActionPlayPause, "Play/pause"},
	{[]string{"right"}, ActionNextTrack, "Next track"},
	{[]string{"left"}, ActionPrevTrack, "Previous track"},
	{[]string{"up"}, ActionVolumeUp, "Volume +5"},
	{[]string{"down"}, ActionVolumeDown, "Volume -5"},
	{[]string{"m"}, ActionToggleMute, "Toggle mute"},
	{[]string{"q", "ctrl+c"}, ActionQuit, "Quit"},
}
