package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/nandakim/bgm/internal/playback"
	"github.com/nandakim/bgm/internal/store"
)

const (
	playSymbol    = "▶"
	pauseSymbol   = "⏸"
	loadingSymbol = "…"
	mutedSymbol   = "🔇"
	randomSymbol  = "⤨"

	// PlayerBarHeight is the rendered height including borders.
	PlayerBarHeight = 3

	minBarWidth = 10
)

// BarState holds everything needed to render the player bar.
type BarState struct {
	Track    *store.Track
	Status   playback.Status
	Blocked  bool
	Position time.Duration
	Duration time.Duration
	Volume   int
	Muted    bool
	Mode     store.Mode
	Message  string // last user-facing error, if any
}

// RenderBar returns the player bar for the given width. Returns the
// empty string when there is nothing to show.
func RenderBar(s BarState, width int) string {
	if s.Track == nil {
		return ""
	}

	innerWidth := max(width-6, 0)

	status := statusSymbol(s)

	title := s.Track.Title
	if title == "" {
		title = "Unknown Track"
	}
	artist := s.Track.Artist

	timeStr := fmt.Sprintf("%s / %s", FormatDuration(s.Position), FormatDuration(s.Duration))
	volStr := volumeLabel(s)
	msgStr := renderMessage(s)

	separator := "   "
	sepWidth := lipgloss.Width(separator)
	fixedWidth := lipgloss.Width(status+"  ") + lipgloss.Width(timeStr) + lipgloss.Width(volStr) + sepWidth*3
	if msgStr != "" {
		fixedWidth += lipgloss.Width(msgStr) + sepWidth
	}

	availableForContent := innerWidth - fixedWidth - minBarWidth

	titleWidth := lipgloss.Width(title)
	artistWidth := lipgloss.Width(artist)

	var styledTitle, styledArtist string
	var usedContentWidth int

	switch {
	case titleWidth+sepWidth+artistWidth <= availableForContent:
		styledTitle = titleStyle.Render(title)
		styledArtist = artistStyle.Render(artist)
		usedContentWidth = titleWidth + sepWidth + artistWidth
	case titleWidth+sepWidth <= availableForContent && artist != "":
		maxArtist := availableForContent - titleWidth - sepWidth
		styledTitle = titleStyle.Render(title)
		styledArtist = artistStyle.Render(Truncate(artist, maxArtist))
		usedContentWidth = titleWidth + sepWidth + maxArtist
	default:
		maxTitle := max(availableForContent, 10)
		styledTitle = titleStyle.Render(Truncate(title, maxTitle))
		styledArtist = ""
		usedContentWidth = min(titleWidth, maxTitle)
	}

	barWidth := max(innerWidth-usedContentWidth-fixedWidth, 5)

	var ratio float64
	if s.Duration > 0 {
		ratio = float64(s.Position) / float64(s.Duration)
	}
	filled := min(int(float64(barWidth)*ratio), barWidth)
	filledBar := progressFilledStyle.Render(strings.Repeat("━", filled))
	emptyBar := progressEmptyStyle.Render(strings.Repeat("─", barWidth-filled))

	var content strings.Builder
	content.WriteString(styledTitle)
	if styledArtist != "" {
		content.WriteString(separator)
		content.WriteString(styledArtist)
	}
	content.WriteString(separator)
	content.WriteString(status)
	content.WriteString("  ")
	content.WriteString(filledBar)
	content.WriteString(emptyBar)
	content.WriteString(separator)
	content.WriteString(timeStyle.Render(timeStr))
	content.WriteString(separator)
	content.WriteString(volStr)
	if msgStr != "" {
		content.WriteString(separator)
		content.WriteString(msgStr)
	}

	return barStyle.Padding(0, 2).Width(width - 2).Render(content.String())
}

const maxMessageWidth = 40

// renderMessage styles the transient user-facing message: the
// tap-to-play hint while blocked, an error notice otherwise.
func renderMessage(s BarState) string {
	if s.Message == "" {
		return ""
	}
	if s.Blocked {
		return blockedStyle.Render(Truncate(s.Message, maxMessageWidth))
	}
	return errorStyle.Render(Truncate(s.Message, maxMessageWidth))
}

func statusSymbol(s BarState) string {
	if s.Blocked {
		return blockedStyle.Render(pauseSymbol)
	}
	switch s.Status {
	case playback.Playing:
		return playSymbol
	case playback.Loading, playback.ErrorRecovering:
		return loadingSymbol
	default:
		return pauseSymbol
	}
}

func volumeLabel(s BarState) string {
	var b strings.Builder
	if s.Mode == store.Random {
		b.WriteString(randomSymbol)
		b.WriteString(" ")
	}
	if s.Muted {
		b.WriteString(mutedSymbol)
	} else {
		fmt.Fprintf(&b, "%d%%", s.Volume)
	}
	return b.String()
}

// FormatDuration renders a duration as m:ss.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}

// Truncate shortens s to maxWidth display cells with an ellipsis.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth == 1 {
		return "…"
	}
	return runewidth.Truncate(s, maxWidth-1, "") + "…"
}
