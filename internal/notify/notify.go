// Package notify provides desktop notifications via D-Bus.
package notify

import "github.com/nandakim/bgm/internal/store"

// Urgency represents notification priority levels per freedesktop spec.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Notification contains data for a desktop notification.
type Notification struct {
	Title      string  // Summary text (required)
	Body       string  // Body text (optional, supports basic markup)
	Icon       string  // Path to image file or icon name (optional)
	Timeout    int32   // ms, -1 = server default, 0 = never expire
	ReplacesID uint32  // 0 = new notification, >0 = replace existing
	Urgency    Urgency // Low, Normal, Critical
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends a notification and returns its ID.
	// Returns 0 and nil error if notifications are disabled or unavailable.
	Notify(n Notification) (uint32, error)
	// Close closes a notification by ID.
	Close(id uint32) error
}

// NowPlaying builds a "now playing" notification for a track. The
// returned notification replaces the previous one so track changes do
// not stack up in the notification tray.
func NowPlaying(track *store.Track, replacesID uint32) Notification {
	n := Notification{
		Title:      "Now Playing",
		Timeout:    3000,
		ReplacesID: replacesID,
		Urgency:    UrgencyLow,
	}
	if track == nil {
		return n
	}
	n.Title = track.Title
	n.Body = track.Artist
	return n
}
