package config

import (
	"testing"
	"time"
)

func TestGetErrorSkip_Defaults(t *testing.T) {
	cfg := &Config{}

	suppress, delay := cfg.GetErrorSkip()

	if suppress != 1000*time.Millisecond {
		t.Errorf("suppress = %v, want 1s", suppress)
	}
	if delay != 500*time.Millisecond {
		t.Errorf("delay = %v, want 500ms", delay)
	}
}

func TestGetErrorSkip_Override(t *testing.T) {
	cfg := &Config{ErrorSkip: ErrorSkipConfig{SuppressMS: 2000, DelayMS: 250}}

	suppress, delay := cfg.GetErrorSkip()

	if suppress != 2*time.Second {
		t.Errorf("suppress = %v, want 2s", suppress)
	}
	if delay != 250*time.Millisecond {
		t.Errorf("delay = %v, want 250ms", delay)
	}
}

func TestGetErrorSkip_NegativeFallsBack(t *testing.T) {
	cfg := &Config{ErrorSkip: ErrorSkipConfig{SuppressMS: -5, DelayMS: -5}}

	suppress, delay := cfg.GetErrorSkip()

	if suppress != time.Second || delay != 500*time.Millisecond {
		t.Errorf("got (%v, %v), want defaults", suppress, delay)
	}
}

func TestGetDevice(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "web"},
		{"web", "web"},
		{"mobile", "mobile"},
		{"tablet", "web"},
	}

	for _, tt := range tests {
		cfg := &Config{Device: tt.in}
		if got := cfg.GetDevice(); got != tt.want {
			t.Errorf("GetDevice(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExpandPath(t *testing.T) {
	if got := expandPath("/absolute/path"); got != "/absolute/path" {
		t.Errorf("expandPath = %q, want unchanged", got)
	}
	if got := expandPath("~/playlist.json"); got == "~/playlist.json" {
		t.Error("expandPath did not expand ~")
	}
}
