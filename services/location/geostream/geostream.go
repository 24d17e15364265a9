// Package geostream turns an intermittent device position source into a
// monotonic sequence of samples with a latest-only subscription.
package geostream

import (
	"sync"
	"time"

	"github.com/piresc/vigilante/internal/pkg/metrics"
	"github.com/piresc/vigilante/internal/pkg/models"
	"github.com/piresc/vigilante/internal/utils"
)

const (
	// DefaultStaleAfter is the silence interval after which the current position is stale
	DefaultStaleAfter = 30 * time.Second

	// speedWindow is the number of trailing samples kept for speed derivation
	speedWindow = 5
)

// Option configures a Stream
type Option func(*Stream)

// WithClock overrides the wall clock used for staleness
func WithClock(clock models.Clock) Option {
	return func(s *Stream) {
		s.clock = clock
	}
}

// WithStaleAfter overrides DefaultStaleAfter
func WithStaleAfter(d time.Duration) Option {
	return func(s *Stream) {
		if d > 0 {
			s.staleAfter = d
		}
	}
}

// Stream holds the current position of one driver
type Stream struct {
	mu         sync.RWMutex
	window     []models.Position // oldest first, last is current
	acceptedAt time.Time
	lastErr    string
	lastErrAt  time.Time

	staleAfter time.Duration
	clock      models.Clock

	subMu sync.Mutex
	subs  map[*Subscription]struct{}
}

// New creates an empty stream
func New(opts ...Option) *Stream {
	s := &Stream{
		window:     make([]models.Position, 0, speedWindow),
		staleAfter: DefaultStaleAfter,
		subs:       make(map[*Subscription]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Push offers a sample. It is accepted only when its timestamp is strictly
// newer than the current one; otherwise it is dropped and false returned.
func (s *Stream) Push(pos models.Position) bool {
	s.mu.Lock()
	if n := len(s.window); n > 0 && !pos.Timestamp.After(s.window[n-1].Timestamp) {
		s.mu.Unlock()
		metrics.PositionsDropped.Inc()
		return false
	}
	if len(s.window) == speedWindow {
		copy(s.window, s.window[1:])
		s.window = s.window[:speedWindow-1]
	}
	s.window = append(s.window, pos)
	s.acceptedAt = models.NowOr(s.clock)
	// broadcast under mu so subscribers never see an older sample last
	s.broadcast(pos)
	s.mu.Unlock()

	metrics.PositionsAccepted.Inc()
	return true
}

// ReportError records a failure of the geolocation source. The last known
// position is kept.
func (s *Stream) ReportError(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	s.lastErr = err.Error()
	s.lastErrAt = models.NowOr(s.clock)
	s.mu.Unlock()

	metrics.PositionSourceErrors.Inc()
}

// LastError returns the last reported source error, if any
func (s *Stream) LastError() (string, time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr, s.lastErrAt, s.lastErr != ""
}

// Current returns the latest accepted position
func (s *Stream) Current() (models.Position, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.window) == 0 {
		return models.Position{}, false
	}
	return s.window[len(s.window)-1], true
}

// IsStale reports whether no sample has been accepted within the stale interval
func (s *Stream) IsStale(now time.Time) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.window) == 0 {
		return true
	}
	return now.Sub(s.acceptedAt) >= s.staleAfter
}

// SpeedMetersPerSecond derives ground speed from the trailing window using
// the oldest and newest samples.
func (s *Stream) SpeedMetersPerSecond() (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.window) < 2 {
		return 0, false
	}

	first, last := s.window[0], s.window[len(s.window)-1]
	elapsed := last.Timestamp.Sub(first.Timestamp).Seconds()
	if elapsed <= 0 {
		return 0, false
	}

	var meters float64
	for i := 1; i < len(s.window); i++ {
		meters += utils.HaversineMeters(
			utils.GeoPoint{Latitude: s.window[i-1].Latitude, Longitude: s.window[i-1].Longitude},
			utils.GeoPoint{Latitude: s.window[i].Latitude, Longitude: s.window[i].Longitude},
		)
	}
	return meters / elapsed, true
}

// Subscription delivers the latest accepted position. Its channel has a
// single slot that is overwritten, so a slow reader only sees the newest sample.
type Subscription struct {
	stream *Stream
	ch     chan models.Position
	once   sync.Once
}

// C returns the delivery channel
func (sub *Subscription) C() <-chan models.Position {
	return sub.ch
}

// Unsubscribe stops delivery. Safe to call more than once.
func (sub *Subscription) Unsubscribe() {
	sub.once.Do(func() {
		sub.stream.subMu.Lock()
		delete(sub.stream.subs, sub)
		sub.stream.subMu.Unlock()
	})
}

// Subscribe registers a latest-only subscriber
func (s *Stream) Subscribe() *Subscription {
	sub := &Subscription{stream: s, ch: make(chan models.Position, 1)}
	s.subMu.Lock()
	s.subs[sub] = struct{}{}
	s.subMu.Unlock()
	return sub
}

func (s *Stream) broadcast(pos models.Position) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for sub := range s.subs {
		// drain the superseded sample, then deliver
		select {
		case <-sub.ch:
		default:
		}
		select {
		case sub.ch <- pos:
		default:
		}
	}
}
