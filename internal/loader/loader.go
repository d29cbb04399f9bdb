// Package loader fetches the playlist document published by the
// content backend and filters it down to playable tracks before
// anything reaches the store.
package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/nandakim/bgm/internal/store"
)

// MinValidAudioSize is the smallest file size considered a real audio
// file. Entries with a known positive size below this are corrupt
// uploads and never reach the store.
const MinValidAudioSize = 1024

// ErrDisabled means the playlist document asks for no player at all:
// the engine must produce nothing, not a disabled widget.
var ErrDisabled = errors.New("player disabled by configuration")

// Device is the host's device class, matched against the document's
// visibility settings.
type Device int

const (
	DeviceWeb Device = iota
	DeviceMobile
)

// Document is the playlist description published by the backend.
type Document struct {
	Config Config       `json:"config"`
	Tracks []TrackEntry `json:"tracks"`
}

// Config is the player configuration section of the document.
type Config struct {
	Enabled       bool       `json:"enabled"`
	Autoplay      bool       `json:"autoplay"`
	DefaultVolume int        `json:"defaultVolume"`
	PlaybackMode  string     `json:"playbackMode"` // "sequential" or "random"
	Position      string     `json:"position"`     // overlay placement, consumed at mount
	Visibility    Visibility `json:"visibility"`
}

// Visibility controls which device classes show the player.
type Visibility struct {
	ShowOnWeb    bool `json:"showOnWeb"`
	ShowOnMobile bool `json:"showOnMobile"`
}

// VisibleOn reports whether the player should exist on the device.
func (v Visibility) VisibleOn(d Device) bool {
	switch d {
	case DeviceMobile:
		return v.ShowOnMobile
	default:
		return v.ShowOnWeb
	}
}

// TrackEntry is one raw track row from the document.
type TrackEntry struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Artist   string  `json:"artist"`
	URL      string  `json:"url"`
	Duration float64 `json:"duration"` // seconds
	FileSize int64   `json:"fileSize"` // bytes, 0 if unknown
}

// Loader loads and validates playlist documents.
type Loader struct {
	client *http.Client
	log    *zap.Logger
}

// Option configures the loader.
type Option func(*Loader)

// WithLogger sets the structured logger.
func WithLogger(log *zap.Logger) Option {
	return func(l *Loader) { l.log = log }
}

// WithClient replaces the HTTP client (used by tests).
func WithClient(c *http.Client) Option {
	return func(l *Loader) { l.client = c }
}

// New creates a loader.
func New(opts ...Option) *Loader {
	l := &Loader{
		client: &http.Client{Timeout: 15 * time.Second},
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads a playlist document from a file path or HTTP URL.
func (l *Loader) Load(source string) (*Document, error) {
	data, err := l.read(source)
	if err != nil {
		return nil, fmt.Errorf("load playlist document: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse playlist document: %w", err)
	}
	return &doc, nil
}

// Tracks validates the document against the device class and returns
// the filtered playable tracks. Returns ErrDisabled when the engine
// must render nothing.
func (l *Loader) Tracks(doc *Document, device Device) ([]store.Track, error) {
	if !doc.Config.Enabled {
		return nil, fmt.Errorf("%w: disabled", ErrDisabled)
	}
	if !doc.Config.Visibility.VisibleOn(device) {
		return nil, fmt.Errorf("%w: hidden on this device class", ErrDisabled)
	}
	return l.Filter(doc.Tracks), nil
}

// Filter drops entries without a usable URL and entries whose known
// file size marks them as corrupt.
func (l *Loader) Filter(entries []TrackEntry) []store.Track {
	tracks := make([]store.Track, 0, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.URL) == "" {
			l.log.Warn("dropping track without url", zap.String("id", e.ID), zap.String("title", e.Title))
			continue
		}
		if e.FileSize > 0 && e.FileSize < MinValidAudioSize {
			l.log.Warn("dropping corrupt track",
				zap.String("id", e.ID),
				zap.String("title", e.Title),
				zap.String("size", humanize.Bytes(uint64(e.FileSize))),
			)
			continue
		}
		tracks = append(tracks, store.Track{
			ID:       e.ID,
			Title:    e.Title,
			Artist:   e.Artist,
			URL:      e.URL,
			Duration: time.Duration(e.Duration * float64(time.Second)),
			FileSize: e.FileSize,
		})
	}
	return tracks
}

func (l *Loader) read(source string) ([]byte, error) {
	if u, err := url.Parse(source); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		resp, err := l.client.Get(source)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %s", resp.Status)
		}
		return io.ReadAll(resp.Body)
	}
	return os.ReadFile(source)
}
