package player

import (
	"time"

	"github.com/gopxl/beep/v2/speaker"
)

// SeekTo moves playback to an absolute position, silently clamped to
// [0, Duration]. Non-blocking: only the most recent pending seek is
// honored, so a seek-bar drag never queues up stale positions.
func (p *Player) SeekTo(pos time.Duration) {
	p.mu.Lock()
	active := p.streamer != nil && p.state != Stopped
	p.mu.Unlock()
	if !active {
		return
	}

	select {
	case p.seekCh <- pos:
	default:
		// A seek is already pending; replace it with the newer target.
		select {
		case <-p.seekCh:
		default:
		}
		select {
		case p.seekCh <- pos:
		default:
		}
	}
}

// seekLoop processes seek requests sequentially for the lifetime of the
// adapter.
func (p *Player) seekLoop() {
	for pos := range p.seekCh {
		p.doSeek(pos)
	}
}

func (p *Player) doSeek(pos time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.streamer == nil || p.state == Stopped || p.volume == nil {
		return
	}

	// Silence during the jump to avoid buffer artifacts. The streamer is
	// only touched under the speaker lock: the mixing goroutine owns it
	// between our critical sections.
	speaker.Lock()
	length := p.streamer.Len()
	target := p.format.SampleRate.N(ClampSeek(pos, p.format.SampleRate.D(length)))
	if target >= length {
		target = length - 1
	}
	if target < 0 {
		target = 0
	}
	wasSilent := p.volume.Silent
	p.volume.Silent = true
	_ = p.streamer.Seek(target)
	p.volume.Silent = wasSilent
	speaker.Unlock()
}
