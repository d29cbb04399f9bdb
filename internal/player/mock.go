package player

import (
	"sync"
	"time"
)

// Mock is a test double for the adapter. It performs no audio I/O and
// lets tests script play failures and simulate resource events.
type Mock struct {
	mu sync.Mutex

	state       State
	unlocked    bool
	position    time.Duration
	duration    time.Duration
	volumeLevel float64
	muted       bool

	playErrs  map[string]error
	playDelay time.Duration
	playCalls []string
	seekCalls []time.Duration
	stopCalls int

	finishedCh chan struct{}
	errorsCh   chan error
}

// NewMock creates a mock adapter, already unlocked. Tests exercising
// the blocked path call Lock first.
func NewMock() *Mock {
	return &Mock{
		state:       Stopped,
		unlocked:    true,
		volumeLevel: 1.0,
		playErrs:    make(map[string]error),
		finishedCh:  make(chan struct{}, 1),
		errorsCh:    make(chan error, 4),
	}
}

func (m *Mock) Play(url string) error {
	m.mu.Lock()
	delay := m.playDelay
	m.mu.Unlock()
	if delay > 0 {
		// Simulated fetch/decode time; sleeps outside the mutex so other
		// adapter calls stay responsive, like the real adapter's I/O.
		time.Sleep(delay)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.playCalls = append(m.playCalls, url)
	m.state = Stopped
	m.position = 0

	if !m.unlocked {
		return ErrPlaybackBlocked
	}
	if err := m.playErrs[url]; err != nil {
		return err
	}
	m.state = Playing
	return nil
}

func (m *Mock) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopCalls++
	m.state = Stopped
	m.position = 0
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Playing {
		m.state = Paused
	}
}

func (m *Mock) Resume() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Paused {
		m.state = Playing
	}
}

func (m *Mock) Toggle() {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.state {
	case Playing:
		m.state = Paused
	case Paused:
		m.state = Playing
	case Stopped:
		// Nothing to toggle when stopped.
	}
}

func (m *Mock) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Mock) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *Mock) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

func (m *Mock) SeekTo(pos time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pos = ClampSeek(pos, m.duration)
	m.seekCalls = append(m.seekCalls, pos)
	m.position = pos
}

func (m *Mock) SetVolume(level float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}
	m.volumeLevel = level
}

func (m *Mock) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volumeLevel
}

func (m *Mock) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
}

func (m *Mock) Muted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.muted
}

func (m *Mock) Unlock() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unlocked = true
}

func (m *Mock) FinishedChan() <-chan struct{} { return m.finishedCh }

func (m *Mock) Errors() <-chan error { return m.errorsCh }

// Test helpers

// Lock re-locks audio output so the next Play returns ErrPlaybackBlocked.
func (m *Mock) Lock() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unlocked = false
}

// SetPlayError makes Play fail for the given URL.
func (m *Mock) SetPlayError(url string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playErrs[url] = err
}

// SetPlayDelay makes Play sleep before completing, simulating a slow
// fetch and decode.
func (m *Mock) SetPlayDelay(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playDelay = d
}

// SetState forces the adapter state.
func (m *Mock) SetState(s State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = s
}

// SetDuration sets the reported track duration.
func (m *Mock) SetDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.duration = d
}

// SetPosition sets the reported playback position.
func (m *Mock) SetPosition(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = d
}

// PlayCalls returns the URLs passed to Play, in order.
func (m *Mock) PlayCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.playCalls...)
}

// SeekCalls returns the clamped positions passed to SeekTo, in order.
func (m *Mock) SeekCalls() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.seekCalls...)
}

// StopCalls returns how many times Stop was called.
func (m *Mock) StopCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopCalls
}

// SimulateFinished simulates a completed playthrough.
func (m *Mock) SimulateFinished() {
	m.mu.Lock()
	m.state = Stopped
	m.mu.Unlock()
	select {
	case m.finishedCh <- struct{}{}:
	default:
	}
}

// SimulateError simulates a mid-stream resource failure.
func (m *Mock) SimulateError(err error) {
	m.mu.Lock()
	m.state = Stopped
	m.mu.Unlock()
	select {
	case m.errorsCh <- err:
	default:
	}
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
