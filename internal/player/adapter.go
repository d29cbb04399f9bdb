// Package player wraps the single live audio resource behind an
// adapter interface. It translates imperative calls (play, pause, seek,
// volume) into beep/speaker operations and emits finished/error events
// back out, isolating every audio backend quirk from the rest of the
// engine.
package player

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

const fetchTimeout = 15 * time.Second

// Player is the real adapter implementation backed by beep.
type Player struct {
	mu sync.Mutex

	state    State
	unlocked bool

	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	source   io.Closer

	volumeLevel float64
	muted       bool

	// generation invalidates callbacks from a torn-down resource so
	// that no two resources ever signal into the engine at once.
	generation int

	finishedCh chan struct{}
	errorsCh   chan error
	seekCh     chan time.Duration

	client *http.Client

	speakerRate        beep.SampleRate
	speakerInitialized bool
}

// New creates an adapter with audio output still locked.
func New() *Player {
	p := &Player{
		state:       Stopped,
		volumeLevel: 1.0,
		finishedCh:  make(chan struct{}, 1),
		errorsCh:    make(chan error, 4),
		seekCh:      make(chan time.Duration, 1),
		client:      &http.Client{Timeout: fetchTimeout},
	}
	go p.seekLoop()
	return p
}

// Unlock enables audio output. Called by the host on the first genuine
// user gesture.
func (p *Player) Unlock() {
	p.mu.Lock()
	p.unlocked = true
	p.mu.Unlock()
}

// Play tears down any current resource, loads the resource at url and
// starts playback.
func (p *Player) Play(rawURL string) error {
	p.Stop()

	p.mu.Lock()
	unlocked := p.unlocked
	p.mu.Unlock()
	if !unlocked {
		return fmt.Errorf("play %s: %w", rawURL, ErrPlaybackBlocked)
	}

	// Fetch and decode outside the lock: a remote resource can take
	// seconds and the transport must stay responsive meanwhile.
	src, err := p.openSource(rawURL)
	if err != nil {
		return fmt.Errorf("open %s: %w", rawURL, err)
	}

	streamer, format, err := decode(rawURL, src)
	if err != nil {
		src.Close()
		return fmt.Errorf("decode %s: %w", rawURL, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.speakerInitialized {
		if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
			streamer.Close()
			src.Close()
			return fmt.Errorf("audio output: %w", err)
		}
		p.speakerRate = format.SampleRate
		p.speakerInitialized = true
	}

	var stream beep.Streamer = streamer
	if format.SampleRate != p.speakerRate {
		stream = beep.Resample(4, format.SampleRate, p.speakerRate, streamer)
	}

	p.source = src
	p.streamer = streamer
	p.format = format
	p.ctrl = &beep.Ctrl{Streamer: stream}
	p.volume = &effects.Volume{
		Streamer: p.ctrl,
		Base:     2,
		Volume:   levelToVolume(p.volumeLevel),
		Silent:   p.muted || p.volumeLevel <= 0,
	}
	p.state = Playing

	p.generation++
	gen := p.generation

	speaker.Play(beep.Seq(p.volume, beep.Callback(func() {
		p.onStreamDone(gen)
	})))

	return nil
}

// onStreamDone moves completion handling off the speaker's mixing
// goroutine. The callback fires with the speaker mutex held, and
// finished needs p.mu, which other methods hold while acquiring the
// speaker mutex; handling it inline would invert the lock order.
func (p *Player) onStreamDone(gen int) {
	go p.finished(gen)
}

// finished handles the end of a playthrough. Stale generations belong
// to resources that were already torn down and are discarded.
func (p *Player) finished(gen int) {
	p.mu.Lock()
	if gen != p.generation {
		p.mu.Unlock()
		return
	}
	err := p.streamer.Err()
	p.teardownLocked()
	p.mu.Unlock()

	if err != nil {
		select {
		case p.errorsCh <- err:
		default:
		}
		return
	}
	select {
	case p.finishedCh <- struct{}{}:
	default:
	}
}

// Stop stops playback and releases the current resource.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == Stopped {
		return
	}
	p.generation++
	speaker.Clear()
	p.teardownLocked()
}

func (p *Player) teardownLocked() {
	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}
	if p.source != nil {
		p.source.Close()
		p.source = nil
	}
	p.ctrl = nil
	p.volume = nil
	p.state = Stopped
}

// Pause pauses playback.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != Playing || p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	p.state = Paused
}

// Resume resumes paused playback.
func (p *Player) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != Paused || p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()
	p.state = Playing
}

// Toggle toggles between playing and paused.
func (p *Player) Toggle() {
	switch p.State() {
	case Playing:
		p.Pause()
	case Paused:
		p.Resume()
	case Stopped:
		// Nothing to toggle when stopped.
	}
}

// State returns the adapter state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Position returns the current playback position.
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := p.streamer.Position()
	speaker.Unlock()
	return p.format.SampleRate.D(pos)
}

// Duration returns the duration of the loaded resource.
func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.streamer == nil {
		return 0
	}
	speaker.Lock()
	n := p.streamer.Len()
	speaker.Unlock()
	return p.format.SampleRate.D(n)
}

// FinishedChan delivers one signal per completed playthrough.
func (p *Player) FinishedChan() <-chan struct{} {
	return p.finishedCh
}

// Errors delivers asynchronous resource failures.
func (p *Player) Errors() <-chan error {
	return p.errorsCh
}

// openSource opens the resource behind a URL. Remote resources are
// buffered in memory so the decoder can seek.
func (p *Player) openSource(rawURL string) (io.ReadSeekCloser, error) {
	u, err := url.Parse(rawURL)
	if err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		resp, err := p.client.Get(rawURL)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %s", resp.Status)
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		return &memorySource{Reader: bytes.NewReader(data)}, nil
	}
	return os.Open(rawURL)
}

// decode picks a decoder from the URL's extension.
func decode(rawURL string, src io.ReadSeekCloser) (beep.StreamSeekCloser, beep.Format, error) {
	ext := strings.ToLower(path.Ext(trimQuery(rawURL)))
	switch ext {
	case ".mp3":
		return mp3.Decode(src)
	case ".flac":
		return flac.Decode(src)
	case ".ogg", ".oga":
		return vorbis.Decode(src)
	case ".wav":
		return wav.Decode(src)
	default:
		return nil, beep.Format{}, fmt.Errorf("unsupported format %q", ext)
	}
}

func trimQuery(rawURL string) string {
	if i := strings.IndexByte(rawURL, '?'); i >= 0 {
		return rawURL[:i]
	}
	return rawURL
}

// memorySource adapts a bytes.Reader to io.ReadSeekCloser.
type memorySource struct {
	*bytes.Reader
}

func (*memorySource) Close() error { return nil }
