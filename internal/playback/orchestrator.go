// Package playback reconciles the playlist store against the audio
// adapter. It is the only writer of player state: user intents and
// adapter events both pass through the orchestrator, which applies the
// autoplay/error/auto-advance policy and fans resulting events out to
// subscribers.
package playback

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nandakim/bgm/internal/player"
	"github.com/nandakim/bgm/internal/store"
)

// ErrNoTracks is returned by transport methods when the track list is
// empty.
var ErrNoTracks = errors.New("no tracks loaded")

const (
	// Empirical tuning values; override with WithSkipDebounce if
	// product needs differ.
	defaultSkipSuppress = 1000 * time.Millisecond
	defaultSkipDelay    = 500 * time.Millisecond

	tickInterval = 500 * time.Millisecond
)

// loadRequest asks the load worker to start playback of a URL. The
// generation lets a stale outcome be discarded on reconciliation.
type loadRequest struct {
	gen int
	url string
}

// Preloader receives best-effort hints about the next track. Hints must
// never block; Cancel retracts the active hint.
type Preloader interface {
	Hint(url string)
	Cancel()
}

// Verify orchestrator implements Service at compile time.
var _ Service = (*orchestrator)(nil)

type orchestrator struct {
	mu sync.Mutex

	adapter player.Interface
	reducer *store.Reducer
	state   store.State

	status  Status
	blocked bool

	skipSuppress time.Duration
	skipDelay    time.Duration
	lastSkip     time.Time
	skipTimer    *time.Timer
	skipGen      int  // invalidates pending skips
	skipPending  bool // a skip timer is armed and not yet fired

	loadGen      int // invalidates in-flight track loads
	loadSpawnGen int // generation of the most recently requested load
	loadCh       chan loadRequest

	preloader Preloader
	log       *zap.Logger

	subs   []*Subscription
	subsMu sync.RWMutex

	done   chan struct{}
	closed bool
}

// Option configures the orchestrator.
type Option func(*orchestrator)

// WithLogger sets the structured logger (zap.NewNop by default).
func WithLogger(log *zap.Logger) Option {
	return func(o *orchestrator) { o.log = log }
}

// WithSkipDebounce overrides the error-skip suppression window and
// advance delay.
func WithSkipDebounce(suppress, delay time.Duration) Option {
	return func(o *orchestrator) {
		o.skipSuppress = suppress
		o.skipDelay = delay
	}
}

// WithPreloader wires a next-track preloader.
func WithPreloader(p Preloader) Option {
	return func(o *orchestrator) { o.preloader = p }
}

// WithReducer replaces the default reducer (used by tests for
// deterministic shuffles).
func WithReducer(r *store.Reducer) Option {
	return func(o *orchestrator) { o.reducer = r }
}

// New creates a playback orchestrator bound to the given adapter and
// starts its event loop.
func New(adapter player.Interface, opts ...Option) Service {
	o := &orchestrator{
		adapter:      adapter,
		reducer:      store.NewReducer(),
		status:       Idle,
		skipSuppress: defaultSkipSuppress,
		skipDelay:    defaultSkipDelay,
		log:          zap.NewNop(),
		loadCh:       make(chan loadRequest, 1),
		done:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(o)
	}
	go o.run()
	go o.loadLoop()
	return o
}

// run is the orchestrator's event loop: adapter events in, policy out.
func (o *orchestrator) run() {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-o.done:
			return
		case <-o.adapter.FinishedChan():
			o.handleTrackFinished()
		case err := <-o.adapter.Errors():
			o.handleStreamError(err)
		case <-ticker.C:
			o.tick()
		}
	}
}

// --- Transport (user gestures) ---

func (o *orchestrator) Play() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state.IsEmpty() {
		return ErrNoTracks
	}
	o.userGestureLocked()

	if o.status == Paused && o.adapter.State() == player.Paused {
		o.adapter.Resume()
		o.dispatch(store.SetPlaying{Playing: true})
		o.setStatus(Playing)
		return nil
	}
	o.playCurrentLocked()
	return nil
}

func (o *orchestrator) Pause() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.userGestureLocked()
	switch o.status {
	case Loading:
		// Abandon the in-flight load; a late success is stopped when it
		// reconciles.
		o.loadGen++
		o.dispatch(store.SetPlaying{Playing: false})
		o.setStatus(Paused)
	case Playing:
		o.adapter.Pause()
		o.dispatch(store.SetPlaying{Playing: false})
		o.setStatus(Paused)
	}
}

func (o *orchestrator) Toggle() error {
	o.mu.Lock()
	playing := o.status == Playing
	o.mu.Unlock()

	if playing {
		o.Pause()
		return nil
	}
	return o.Play()
}

func (o *orchestrator) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.userGestureLocked()
	o.loadGen++
	o.adapter.Stop()
	o.dispatch(store.SetPlaying{Playing: false})
	o.dispatch(store.SetCurrentTime{Time: 0})
	o.setStatus(Idle)
}

func (o *orchestrator) Next() error {
	return o.stepTrack(store.Next{})
}

func (o *orchestrator) Previous() error {
	return o.stepTrack(store.Previous{})
}

func (o *orchestrator) stepTrack(a store.Action) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state.IsEmpty() {
		return ErrNoTracks
	}
	o.userGestureLocked()
	o.changeTrackLocked(a)
	return nil
}

func (o *orchestrator) Select(index int) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state.IsEmpty() {
		return ErrNoTracks
	}
	if index < 0 || index >= len(o.state.Tracks) {
		return nil
	}
	o.userGestureLocked()
	o.changeTrackLocked(store.SetCurrentIndex{Index: index})
	return nil
}

// changeTrackLocked applies an index-changing action and reloads the
// adapter if playback should continue on the new track.
func (o *orchestrator) changeTrackLocked(a store.Action) {
	prev := o.state.CurrentTrack()
	prevIndex := o.state.CurrentIndex

	o.dispatch(a)

	if o.state.CurrentIndex != prevIndex {
		o.emitTrackChange(prev, prevIndex)
	}
	o.hintNextLocked()

	if o.state.Playing || o.status == Playing || o.status == Loading || o.status == ErrorRecovering {
		o.playCurrentLocked()
	} else {
		o.adapter.Stop()
	}
}

func (o *orchestrator) SeekTo(pos time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.userGestureLocked()
	o.adapter.SeekTo(pos)
	o.dispatch(store.SetCurrentTime{Time: player.ClampSeek(pos, o.adapter.Duration())})
	o.emitPosition()
}

// TryAutoplay attempts playback without a user gesture. A blocked
// outcome is expected and leaves the player paused with the blocked
// flag set.
func (o *orchestrator) TryAutoplay() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state.IsEmpty() {
		return ErrNoTracks
	}
	o.playCurrentLocked()
	return nil
}

// --- Volume and mode ---

func (o *orchestrator) SetVolume(v int) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.dispatch(store.SetVolume{Volume: v})
	o.adapter.SetVolume(float64(o.state.Volume) / 100)
}

func (o *orchestrator) SetMuted(muted bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.dispatch(store.SetMuted{Muted: muted})
	o.adapter.SetMuted(muted)
}

func (o *orchestrator) ToggleMute() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.dispatch(store.SetMuted{Muted: !o.state.Muted})
	o.adapter.SetMuted(o.state.Muted)
	return o.state.Muted
}

func (o *orchestrator) SetMode(m store.Mode) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.dispatch(store.SetPlaybackMode{Mode: m})
	o.hintNextLocked()
}

// --- Track list ---

func (o *orchestrator) ReplaceTracks(tracks []store.Track) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.cancelSkipLocked()
	o.setBlocked(false)
	if o.preloader != nil {
		o.preloader.Cancel()
	}

	o.loadGen++
	o.adapter.Stop()
	o.dispatch(store.SetTracks{Tracks: tracks})
	o.dispatch(store.SetPlaying{Playing: false})
	o.setStatus(Idle)

	o.emitTracks()
	o.hintNextLocked()
}

// --- State queries ---

func (o *orchestrator) Snapshot() store.State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *orchestrator) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

func (o *orchestrator) Blocked() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.blocked
}

func (o *orchestrator) Adapter() player.Interface {
	return o.adapter
}

// --- Adapter event handling ---

func (o *orchestrator) handleTrackFinished() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed || o.state.IsEmpty() {
		return
	}
	// Auto-advance under the active ordering; the last logical position
	// wraps back to the first.
	prev := o.state.CurrentTrack()
	prevIndex := o.state.CurrentIndex
	o.dispatch(store.Next{})
	if o.state.CurrentIndex != prevIndex {
		o.emitTrackChange(prev, prevIndex)
	}
	o.hintNextLocked()
	o.playCurrentLocked()
}

func (o *orchestrator) handleStreamError(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return
	}
	url := ""
	if t := o.state.CurrentTrack(); t != nil {
		url = t.URL
	}
	o.emitError("stream", url, err)
	o.scheduleSkipLocked(err)
}

func (o *orchestrator) tick() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.status != Playing {
		return
	}
	o.dispatch(store.SetCurrentTime{Time: o.adapter.Position()})
	o.dispatch(store.SetDuration{Duration: o.adapter.Duration()})
	o.emitPosition()
}

// --- Core policy ---

// playCurrentLocked starts loading the current track. The fetch and
// decode can take seconds for a remote resource, so the load runs off
// the orchestrator lock and its outcome reconciles under a generation
// guard: any newer transport action supersedes it.
func (o *orchestrator) playCurrentLocked() {
	track := o.state.CurrentTrack()
	if track == nil {
		return
	}

	o.setStatus(Loading)
	o.dispatch(store.SetPlaying{Playing: true})

	o.loadGen++
	o.loadSpawnGen = o.loadGen
	req := loadRequest{gen: o.loadGen, url: track.URL}
	select {
	case o.loadCh <- req:
	default:
		// A load is already queued; replace it with the newer target.
		select {
		case <-o.loadCh:
		default:
		}
		select {
		case o.loadCh <- req:
		default:
		}
	}
}

// loadLoop executes track loads sequentially for the lifetime of the
// orchestrator, so two loads can never race for the adapter.
func (o *orchestrator) loadLoop() {
	for {
		select {
		case <-o.done:
			return
		case req := <-o.loadCh:
			err := o.adapter.Play(req.url)
			o.reconcileLoad(req.gen, req.url, err)
		}
	}
}

// reconcileLoad applies the outcome of a track load, classifying any
// rejection: blocked means wait for a gesture, a resource failure means
// a debounced skip.
func (o *orchestrator) reconcileLoad(gen int, url string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed || gen != o.loadGen {
		// Superseded. A newer load tears this one down itself; when the
		// invalidating action wanted silence instead, a late success
		// must not be left playing.
		if err == nil && gen == o.loadSpawnGen {
			o.adapter.Stop()
		}
		return
	}

	switch player.Classify(err) {
	case player.ClassNone:
		o.setBlocked(false)
		o.dispatch(store.SetDuration{Duration: o.adapter.Duration()})
		o.setStatus(Playing)
		o.log.Debug("playback started", zap.String("url", url))

	case player.ClassBlocked:
		// Healthy track held back by policy: surface the tap-to-play
		// affordance and wait. Never skip.
		o.dispatch(store.SetPlaying{Playing: false})
		o.setBlocked(true)
		o.setStatus(Paused)
		o.log.Debug("playback blocked pending user gesture", zap.String("url", url))

	case player.ClassResource:
		o.dispatch(store.SetPlaying{Playing: false})
		o.emitError("play", url, err)
		o.scheduleSkipLocked(err)
	}
}

// scheduleSkipLocked arms the debounced error skip. At most one skip
// fires per suppression window; an error arriving while the window is
// open defers its skip to the window boundary instead of dropping it,
// so a run of broken tracks keeps advancing one position per window.
// The delay before the advance lets concurrent state settle before the
// next load.
func (o *orchestrator) scheduleSkipLocked(cause error) {
	o.setStatus(ErrorRecovering)
	if o.skipPending {
		// An armed skip already covers this error.
		o.log.Debug("error skip already armed", zap.Error(cause))
		return
	}

	fireIn := o.skipDelay
	if !o.lastSkip.IsZero() {
		if until := o.skipSuppress - time.Since(o.lastSkip); until > fireIn {
			fireIn = until
		}
	}

	o.skipGen++
	gen := o.skipGen
	o.skipPending = true
	o.skipTimer = time.AfterFunc(fireIn, func() {
		o.errorSkip(gen)
	})
	o.log.Info("scheduling skip past broken track",
		zap.Error(cause),
		zap.Duration("in", fireIn),
	)
}

func (o *orchestrator) errorSkip(gen int) {
	o.mu.Lock()
	defer o.mu.Unlock()

	// A user action or track list replacement invalidated this skip.
	if o.closed || gen != o.skipGen || o.state.IsEmpty() {
		return
	}
	o.skipPending = false
	o.lastSkip = time.Now()

	prev := o.state.CurrentTrack()
	prevIndex := o.state.CurrentIndex
	o.dispatch(store.Next{})
	if o.state.CurrentIndex != prevIndex {
		o.emitTrackChange(prev, prevIndex)
	}
	o.hintNextLocked()
	o.playCurrentLocked()
}

// cancelSkipLocked invalidates any pending error skip.
func (o *orchestrator) cancelSkipLocked() {
	o.skipGen++
	o.skipPending = false
	if o.skipTimer != nil {
		o.skipTimer.Stop()
		o.skipTimer = nil
	}
}

// userGestureLocked records a genuine user interaction: audio output is
// unlocked, the blocked flag cleared, and any in-flight auto-skip
// cancelled (manual actions always take precedence).
func (o *orchestrator) userGestureLocked() {
	o.adapter.Unlock()
	o.setBlocked(false)
	o.cancelSkipLocked()
}

func (o *orchestrator) hintNextLocked() {
	if o.preloader == nil {
		return
	}
	if url := NextURL(o.state); url != "" {
		o.preloader.Hint(url)
	} else {
		o.preloader.Cancel()
	}
}

// dispatch routes an action through the reducer.
func (o *orchestrator) dispatch(a store.Action) {
	o.state = o.reducer.Apply(o.state, a)
}

// --- Event emission ---

func (o *orchestrator) setStatus(next Status) {
	if o.status == next {
		return
	}
	prev := o.status
	o.status = next
	o.broadcast(func(s *Subscription) {
		s.sendStatus(StatusChange{Previous: prev, Current: next})
	})
}

func (o *orchestrator) setBlocked(blocked bool) {
	if o.blocked == blocked {
		return
	}
	o.blocked = blocked
	o.broadcast(func(s *Subscription) {
		s.sendBlocked(BlockedChange{Blocked: blocked})
	})
}

func (o *orchestrator) emitTrackChange(prev *store.Track, prevIndex int) {
	e := TrackChange{
		Previous:      prev,
		Current:       o.state.CurrentTrack(),
		PreviousIndex: prevIndex,
		Index:         o.state.CurrentIndex,
	}
	o.broadcast(func(s *Subscription) { s.sendTrack(e) })
}

func (o *orchestrator) emitTracks() {
	e := TracksChange{
		Tracks: o.state.Tracks,
		Index:  o.state.CurrentIndex,
	}
	o.broadcast(func(s *Subscription) { s.sendTracks(e) })
}

func (o *orchestrator) emitPosition() {
	e := PositionChange{
		Position: o.state.CurrentTime,
		Duration: o.state.Duration,
	}
	o.broadcast(func(s *Subscription) { s.sendPosition(e) })
}

func (o *orchestrator) emitError(op, url string, err error) {
	o.log.Warn("track unavailable",
		zap.String("op", op),
		zap.String("url", url),
		zap.Error(err),
	)
	e := ErrorEvent{Operation: op, URL: url, Err: err}
	o.broadcast(func(s *Subscription) { s.sendError(e) })
}

func (o *orchestrator) broadcast(send func(*Subscription)) {
	o.subsMu.RLock()
	defer o.subsMu.RUnlock()
	for _, sub := range o.subs {
		send(sub)
	}
}

// --- Subscription and lifecycle ---

func (o *orchestrator) Subscribe() *Subscription {
	o.subsMu.Lock()
	defer o.subsMu.Unlock()
	sub := newSubscription()
	o.subs = append(o.subs, sub)
	return sub
}

func (o *orchestrator) Close() error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return nil
	}
	o.closed = true
	o.cancelSkipLocked()
	if o.preloader != nil {
		o.preloader.Cancel()
	}
	close(o.done)
	o.mu.Unlock()

	o.adapter.Stop()

	o.subsMu.Lock()
	for _, sub := range o.subs {
		sub.close()
	}
	o.subs = nil
	o.subsMu.Unlock()

	return nil
}
