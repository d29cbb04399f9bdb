// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Playback operations
	OpPlaybackStart  Op = "start playback"
	OpPlaybackSeek   Op = "seek"
	OpPlaybackVolume Op = "change volume"

	// Playlist operations
	OpPlaylistLoad  Op = "load playlist"
	OpPlaylistWatch Op = "watch playlist file"

	// Track operations
	OpTrackLoad    Op = "load track"
	OpTrackPreload Op = "preload track"

	// Settings operations
	OpSettingsLoad Op = "load settings"
	OpSettingsSave Op = "save settings"

	// Initialization
	OpInitialize Op = "initialize player"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// TrackUnavailable is the message shown when a track cannot be played
// and playback moves on to the next one.
func TrackUnavailable(title string) string {
	if title == "" {
		return "Track unavailable, skipping"
	}
	return fmt.Sprintf("'%s' unavailable, skipping", title)
}
