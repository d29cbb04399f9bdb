// Package visualizer computes the geometry of the circular track
// indicator: N dots on a fixed-radius circle, rotated so the active
// dot always sits at the top. Pure math, no playback state.
package visualizer

import "math"

// TopAngle is the angle of the top of the circle in screen
// coordinates, where angles grow clockwise from the positive x axis
// (y points down on screen).
const TopAngle = 270.0

// Dot is one indicator on the circle.
type Dot struct {
	Index  int     // position within the active ordering
	Angle  float64 // final angle in degrees, normalized to [0,360)
	Active bool
}

// BaseAngle returns the unrotated angle of dot k out of n, in degrees.
// Dot 0 starts at the top; the rest follow clockwise.
func BaseAngle(k, n int) float64 {
	if n <= 0 {
		return TopAngle
	}
	return normalize(TopAngle + float64(k)*step(n))
}

// Rotation returns the rotation applied to the whole assembly so the
// dot at logical position pos lands on the top slot.
func Rotation(pos, n int) float64 {
	if n <= 0 {
		return 0
	}
	return -float64(pos) * step(n)
}

// Layout returns the dots for n tracks with the dot at position pos
// active and rotated to the top. Returns nil for n <= 0.
func Layout(n, pos int) []Dot {
	if n <= 0 {
		return nil
	}
	rot := Rotation(pos, n)
	dots := make([]Dot, n)
	for k := range dots {
		dots[k] = Dot{
			Index:  k,
			Angle:  normalize(BaseAngle(k, n) + rot),
			Active: k == pos,
		}
	}
	return dots
}

// Point converts an angle and radius to screen coordinates relative to
// the circle's center (y grows downward).
func Point(angle, radius float64) (x, y float64) {
	rad := angle * math.Pi / 180
	return radius * math.Cos(rad), radius * math.Sin(rad)
}

func step(n int) float64 {
	return 360.0 / float64(n)
}

func normalize(angle float64) float64 {
	angle = math.Mod(angle, 360)
	if angle < 0 {
		angle += 360
	}
	return angle
}
