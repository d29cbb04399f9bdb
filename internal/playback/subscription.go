package playback

const eventBufferSize = 16

// Subscription provides event channels for a subscriber. Sends are
// non-blocking; a subscriber that falls behind loses events rather than
// stalling the orchestrator.
type Subscription struct {
	StatusChanged   <-chan StatusChange
	TrackChanged    <-chan TrackChange
	TracksChanged   <-chan TracksChange
	PositionChanged <-chan PositionChange
	BlockedChanged  <-chan BlockedChange
	Error           <-chan ErrorEvent
	Done            <-chan struct{}

	// Internal write channels
	statusCh   chan StatusChange
	trackCh    chan TrackChange
	tracksCh   chan TracksChange
	positionCh chan PositionChange
	blockedCh  chan BlockedChange
	errorCh    chan ErrorEvent
	doneCh     chan struct{}
}

func newSubscription() *Subscription {
	s := &Subscription{
		statusCh:   make(chan StatusChange, eventBufferSize),
		trackCh:    make(chan TrackChange, eventBufferSize),
		tracksCh:   make(chan TracksChange, eventBufferSize),
		positionCh: make(chan PositionChange, eventBufferSize),
		blockedCh:  make(chan BlockedChange, eventBufferSize),
		errorCh:    make(chan ErrorEvent, eventBufferSize),
		doneCh:     make(chan struct{}),
	}
	s.StatusChanged = s.statusCh
	s.TrackChanged = s.trackCh
	s.TracksChanged = s.tracksCh
	s.PositionChanged = s.positionCh
	s.BlockedChanged = s.blockedCh
	s.Error = s.errorCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

func (s *Subscription) sendStatus(e StatusChange) {
	select {
	case s.statusCh <- e:
	default:
		// Drop if buffer full
	}
}

func (s *Subscription) sendTrack(e TrackChange) {
	select {
	case s.trackCh <- e:
	default:
	}
}

func (s *Subscription) sendTracks(e TracksChange) {
	select {
	case s.tracksCh <- e:
	default:
	}
}

func (s *Subscription) sendPosition(e PositionChange) {
	select {
	case s.positionCh <- e:
	default:
	}
}

func (s *Subscription) sendBlocked(e BlockedChange) {
	select {
	case s.blockedCh <- e:
	default:
	}
}

func (s *Subscription) sendError(e ErrorEvent) {
	select {
	case s.errorCh <- e:
	default:
	}
}
