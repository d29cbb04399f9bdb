package ui

import (
	"strings"

	"github.com/nandakim/bgm/internal/visualizer"
)

const (
	ringDot       = "●"
	ringDotSmall  = "·"
	ringCellRatio = 2.0 // terminal cells are taller than wide
)

// RenderRing draws the circular track indicator as a text grid. The
// active track's dot always sits at the top of the ring.
func RenderRing(n, pos, radius int) string {
	dots := visualizer.Layout(n, pos)
	if dots == nil || radius < 1 {
		return ""
	}

	width := radius*2*int(ringCellRatio) + 1
	height := radius*2 + 1
	grid := make([][]string, height)
	for y := range grid {
		grid[y] = make([]string, width)
		for x := range grid[y] {
			grid[y][x] = " "
		}
	}

	styles := dotGradient(n)
	cx := float64(width-1) / 2
	cy := float64(radius)

	for _, d := range dots {
		dx, dy := visualizer.Point(d.Angle, float64(radius))
		x := int(cx + dx*ringCellRatio + 0.5)
		y := int(cy + dy + 0.5)
		if y < 0 || y >= height || x < 0 || x >= width {
			continue
		}
		if d.Active {
			grid[y][x] = activeDotStyle.Render(ringDot)
		} else {
			grid[y][x] = styles[d.Index].Render(ringDotSmall)
		}
	}

	lines := make([]string, height)
	for y := range grid {
		lines[y] = strings.TrimRight(strings.Join(grid[y], ""), " ")
	}
	return strings.Join(lines, "\n")
}
