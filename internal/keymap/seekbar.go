package keymap

import "time"

// TimeAtPointer maps a pointer x coordinate on the seek bar to a track
// position, clamped into [0, duration]. Touch coordinates go through
// the same math.
func TimeAtPointer(pointerX, barLeft, barWidth float64, duration time.Duration) time.Duration {
	if barWidth <= 0 || duration <= 0 {
		return 0
	}
	frac := (pointerX - barLeft) / barWidth
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return time.Duration(frac * float64(duration))
}

// SeekDrag tracks an in-progress seek-bar drag. Pointer and touch
// events feed the same state.
type SeekDrag struct {
	active   bool
	barLeft  float64
	barWidth float64
}

// Begin starts a drag over a bar with the given geometry.
func (d *SeekDrag) Begin(barLeft, barWidth float64) {
	d.active = true
	d.barLeft = barLeft
	d.barWidth = barWidth
}

// Move recomputes the seek target for a pointer position. Returns
// false when no drag is active.
func (d *SeekDrag) Move(pointerX float64, duration time.Duration) (time.Duration, bool) {
	if !d.active {
		return 0, false
	}
	return TimeAtPointer(pointerX, d.barLeft, d.barWidth, duration), true
}

// End finishes the drag.
func (d *SeekDrag) End() {
	d.active = false
}

// Active reports whether a drag is in progress.
func (d *SeekDrag) Active() bool {
	return d.active
}

// VolumeSlider holds a volume value while the user drags it. The
// adapter is updated on every tick but the store only sees the value
// on commit, so a drag does not trigger a re-render per pixel.
type VolumeSlider struct {
	pending int
	dirty   bool
}

// Set records a new slider value, clamped to [0,100], and returns it.
func (v *VolumeSlider) Set(volume int) int {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	v.pending = volume
	v.dirty = true
	return v.pending
}

// Commit returns the pending value and whether there was one to
// commit. Called on release or unmount.
func (v *VolumeSlider) Commit() (int, bool) {
	if !v.dirty {
		return 0, false
	}
	v.dirty = false
	return v.pending, true
}
