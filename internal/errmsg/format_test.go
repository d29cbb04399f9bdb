package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpPlaybackStart,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpPlaybackStart,
			err:      errors.New("stream closed"),
			expected: "Failed to start playback: stream closed",
		},
		{
			name:     "playlist load operation",
			op:       OpPlaylistLoad,
			err:      errors.New("permission denied"),
			expected: "Failed to load playlist: permission denied",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.op, tt.err); got != tt.expected {
				t.Errorf("Format() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	err := errors.New("404 not found")

	got := FormatWith(OpTrackLoad, "Intro", err)
	want := "Failed to load track 'Intro': 404 not found"
	if got != want {
		t.Errorf("FormatWith() = %q, want %q", got, want)
	}

	if got := FormatWith(OpTrackLoad, "", err); got != Format(OpTrackLoad, err) {
		t.Errorf("empty context should fall back to Format, got %q", got)
	}

	if got := FormatWith(OpTrackLoad, "Intro", nil); got != "" {
		t.Errorf("nil error should return empty string, got %q", got)
	}
}

func TestTrackUnavailable(t *testing.T) {
	if got := TrackUnavailable("Intro"); got != "'Intro' unavailable, skipping" {
		t.Errorf("TrackUnavailable(Intro) = %q", got)
	}
	if got := TrackUnavailable(""); got != "Track unavailable, skipping" {
		t.Errorf("TrackUnavailable(empty) = %q", got)
	}
}
