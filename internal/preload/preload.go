// Package preload warms the cache for the upcoming track. Hints are
// strictly best-effort: a failed or cancelled prefetch must never be
// observable on the playback path.
package preload

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// Only the head of the file is fetched; enough to cover the codec
	// headers and the first seconds of audio.
	hintBytes   = 256 * 1024
	hintTimeout = 30 * time.Second
)

// Preloader issues passive prefetch hints for upcoming track URLs. At
// most one hint is in flight; hinting a new URL retracts the previous
// one.
type Preloader struct {
	mu      sync.Mutex
	client  *http.Client
	log     *zap.Logger
	current string
	cancel  context.CancelFunc
}

// Option configures the preloader.
type Option func(*Preloader)

// WithLogger sets the structured logger.
func WithLogger(log *zap.Logger) Option {
	return func(p *Preloader) { p.log = log }
}

// WithClient replaces the HTTP client (used by tests).
func WithClient(c *http.Client) Option {
	return func(p *Preloader) { p.client = c }
}

// New creates a preloader.
func New(opts ...Option) *Preloader {
	p := &Preloader{
		client: &http.Client{Timeout: hintTimeout},
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Hint requests a warm-up fetch for url. Local (non-HTTP) URLs are
// ignored; re-hinting the active URL is a no-op.
func (p *Preloader) Hint(rawURL string) {
	if !isRemote(rawURL) {
		p.Cancel()
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if rawURL == p.current {
		return
	}
	if p.cancel != nil {
		p.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.current = rawURL
	p.cancel = cancel

	go p.fetch(ctx, rawURL)
}

// Cancel retracts the active hint, if any.
func (p *Preloader) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.current = ""
}

func (p *Preloader) fetch(ctx context.Context, rawURL string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return
	}
	req.Header.Set("Range", "bytes=0-"+strconv.Itoa(hintBytes-1))

	resp, err := p.client.Do(req)
	if err != nil {
		p.log.Debug("preload hint failed", zap.String("url", rawURL), zap.Error(err))
		return
	}
	defer resp.Body.Close()

	// Drain so the transport can reuse the connection; the bytes land
	// in whatever HTTP cache sits between us and the origin.
	n, _ := io.Copy(io.Discard, io.LimitReader(resp.Body, hintBytes))
	p.log.Debug("preload hint completed",
		zap.String("url", rawURL),
		zap.Int64("bytes", n),
	)
}

func isRemote(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.HasPrefix(u.Scheme, "http")
}
