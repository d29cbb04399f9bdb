package player

import (
	"errors"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
)

// stubStreamer stands in for a decoded resource.
type stubStreamer struct {
	err    error
	pos    int
	length int
	closed bool
}

func (s *stubStreamer) Stream(samples [][2]float64) (int, bool) { return 0, false }
func (s *stubStreamer) Err() error                              { return s.err }
func (s *stubStreamer) Len() int                                { return s.length }
func (s *stubStreamer) Position() int                           { return s.pos }
func (s *stubStreamer) Seek(p int) error                        { s.pos = p; return nil }
func (s *stubStreamer) Close() error                            { s.closed = true; return nil }

func newLoadedPlayer(s *stubStreamer) *Player {
	p := New()
	p.streamer = s
	p.format = beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2}
	p.state = Playing
	p.generation = 1
	return p
}

func TestStreamDone_RoutesFinished(t *testing.T) {
	s := &stubStreamer{}
	p := newLoadedPlayer(s)

	p.onStreamDone(1)

	select {
	case <-p.FinishedChan():
	case <-time.After(time.Second):
		t.Fatal("no finished signal after playthrough completion")
	}
	if !s.closed {
		t.Error("streamer not closed on completion")
	}
	if p.State() != Stopped {
		t.Errorf("State() = %v, want Stopped", p.State())
	}
}

func TestStreamDone_RoutesStreamError(t *testing.T) {
	cause := errors.New("stream: connection reset")
	p := newLoadedPlayer(&stubStreamer{err: cause})

	p.onStreamDone(1)

	select {
	case err := <-p.Errors():
		if !errors.Is(err, cause) {
			t.Errorf("Errors() delivered %v, want %v", err, cause)
		}
	case <-time.After(time.Second):
		t.Fatal("no error signal for a failed stream")
	}
}

func TestStreamDone_StaleGenerationDiscarded(t *testing.T) {
	s := &stubStreamer{}
	p := newLoadedPlayer(s)
	p.generation = 2 // the resource behind generation 1 was torn down

	p.onStreamDone(1)

	select {
	case <-p.FinishedChan():
		t.Fatal("stale generation must not signal finished")
	case <-time.After(50 * time.Millisecond):
	}
	if s.closed {
		t.Error("stale generation must not tear down the live resource")
	}
}

// The completion callback runs on the speaker's mixing goroutine with
// the speaker mutex held. It must hand off instead of taking the
// adapter lock inline: pause/volume/seek hold that lock while acquiring
// the speaker mutex, and an inline acquisition deadlocks the mixer.
func TestStreamDone_ReturnsWhileAdapterLockHeld(t *testing.T) {
	p := newLoadedPlayer(&stubStreamer{})

	p.mu.Lock()
	returned := make(chan struct{})
	go func() {
		p.onStreamDone(1)
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(200 * time.Millisecond):
		p.mu.Unlock()
		t.Fatal("completion callback blocked on the adapter lock")
	}
	p.mu.Unlock()

	select {
	case <-p.FinishedChan():
	case <-time.After(time.Second):
		t.Fatal("finished signal lost after handoff")
	}
}

func TestPosition_And_Duration_ReadStreamerUnderSpeakerLock(t *testing.T) {
	p := newLoadedPlayer(&stubStreamer{pos: 44100, length: 44100 * 3})

	if got := p.Position(); got != time.Second {
		t.Errorf("Position() = %v, want 1s", got)
	}
	if got := p.Duration(); got != 3*time.Second {
		t.Errorf("Duration() = %v, want 3s", got)
	}
}

func TestPosition_NoResource(t *testing.T) {
	p := New()

	if got := p.Position(); got != 0 {
		t.Errorf("Position() = %v, want 0", got)
	}
	if got := p.Duration(); got != 0 {
		t.Errorf("Duration() = %v, want 0", got)
	}
}
