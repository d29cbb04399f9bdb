package store

import "time"

// Track represents a single playable track from the playlist document.
// Tracks are immutable values; the loader is responsible for filtering
// out entries with unusable URLs or corrupt files before they get here.
type Track struct {
	ID       string
	Title    string
	Artist   string
	URL      string
	Duration time.Duration
	FileSize int64 // bytes, 0 if unknown
}
