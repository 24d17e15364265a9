package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/piresc/vigilante/internal/pkg/logger"
	"github.com/piresc/vigilante/internal/pkg/models"
	"github.com/piresc/vigilante/internal/utils"
	"github.com/piresc/vigilante/services/copilot"
	"github.com/piresc/vigilante/services/location/geostream"
	"github.com/piresc/vigilante/services/notification"
	"github.com/piresc/vigilante/services/proximity"
)

// Session is the pipeline of one driver: its position stream, live proximity
// events, notification cooldown and copilot.
type Session struct {
	userID string
	cfg    models.EngineConfig
	deps   Deps

	stream    *geostream.Stream
	sub       *geostream.Subscription
	evaluator *proximity.Evaluator
	throttler *notification.Throttler
	generator *copilot.SessionManager
	copilot   *copilot.Session
	advice    *copilot.Advice

	// premium mirrors the entitlement claim of the driver's latest token
	premium atomic.Bool

	// checked receives once a timer-driven background check completes
	checked chan struct{}

	speakMu  sync.Mutex
	speakSeq uint64

	closeOnce sync.Once
	done      chan struct{}
}

func newSession(userID string, cfg models.EngineConfig, deps Deps) *Session {
	generator := copilot.NewSessionManager(deps.Generators)
	stream := geostream.New(
		geostream.WithClock(deps.Clock),
		geostream.WithStaleAfter(cfg.StaleAfter),
	)
	return &Session{
		userID:    userID,
		cfg:       cfg,
		deps:      deps,
		stream:    stream,
		sub:       stream.Subscribe(),
		evaluator: proximity.NewEvaluator(deps.Clock),
		throttler: notification.NewThrottler(cfg.Cooldown),
		generator: generator,
		copilot:   copilot.NewSession(generator, cfg.CopilotTimeout),
		advice:    copilot.NewAdvice(generator, cfg.CopilotTimeout),
		checked:   make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
}

// Stream returns the driver's position stream
func (s *Session) Stream() *geostream.Stream { return s.stream }

// Evaluator returns the driver's proximity evaluator
func (s *Session) Evaluator() *proximity.Evaluator { return s.evaluator }

// Run consumes the latest position and the background timer until ctx is
// cancelled or the session is closed. The timer is re-armed only once the
// previous background check has finished.
func (s *Session) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-s.done:
			cancel()
		case <-ctx.Done():
		}
	}()

	defer s.sub.Unsubscribe()

	timer := time.NewTimer(s.cfg.BackgroundInterval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.sub.C():
			s.tick(ctx, false)
		case <-timer.C:
			if !s.tick(ctx, true) {
				timer.Reset(s.cfg.BackgroundInterval)
			}
		case <-s.checked:
			timer.Reset(s.cfg.BackgroundInterval)
		}
	}
}

// tick evaluates the current position, publishes markers and, when a new
// hazard entered the radius or the background timer fired, asks for a spoken
// notification. It reports whether a background check was started.
func (s *Session) tick(ctx context.Context, background bool) bool {
	now := models.NowOr(s.deps.Clock)
	prefs := s.preferences(ctx)

	var pos *models.Position
	if current, ok := s.stream.Current(); ok {
		pos = &current
	}

	events := s.evaluator.Evaluate(pos, s.deps.Index, prefs.AlertDistanceMeters)

	if s.deps.Sink != nil {
		s.deps.Sink.PublishMarkers(ctx, models.MarkerUpdate{
			UserID:    s.userID,
			Markers:   s.markers(events, prefs),
			Stale:     s.stream.IsStale(now),
			CreatedAt: now,
		})
	}

	if !background && !proximity.HasNew(events) {
		return false
	}

	var trigger models.ProximityEvent
	for _, ev := range events {
		if ev.IsNew || background {
			trigger = ev
			break
		}
	}

	decision := s.throttler.ShouldNotify(trigger, prefs, now)
	if !decision.Allow {
		logger.Debug("Notification suppressed",
			logger.UserID(s.userID),
			logger.String("reason", decision.Reason))
		return false
	}

	req := models.TriggerRequest{
		Kind:     models.TriggerBackground,
		Position: pos,
		Nearby:   events,
		Language: prefs.Language,
		Premium:  prefs.IsPremiumEntitled,
	}
	go s.speak(ctx, req, prefs, background)
	return background
}

// speak runs a background copilot turn and emits the notification unless a
// newer turn superseded it
func (s *Session) speak(ctx context.Context, req models.TriggerRequest, prefs models.UserPreferences, fromTimer bool) {
	s.speakMu.Lock()
	s.speakSeq++
	seq := s.speakSeq
	s.speakMu.Unlock()

	defer func() {
		if fromTimer {
			select {
			case s.checked <- struct{}{}:
			default:
			}
		}
	}()

	req.Weather = models.UnknownWeather()
	if req.Position != nil && s.deps.Weather != nil {
		req.Weather = s.deps.Weather.CurrentWeather(ctx, req.Position.Latitude, req.Position.Longitude)
	}

	reply := s.copilot.Trigger(ctx, req)

	s.speakMu.Lock()
	superseded := seq != s.speakSeq
	s.speakMu.Unlock()
	if superseded || ctx.Err() != nil {
		return
	}

	if reply.Err != nil {
		logger.Warn("Background notification not generated",
			logger.UserID(s.userID),
			logger.Err(reply.Err))
		return
	}

	if s.deps.Sink != nil {
		s.deps.Sink.PublishNotification(ctx, models.Notification{
			UserID:    s.userID,
			Text:      reply.Text,
			Trigger:   models.TriggerBackground,
			Fallback:  reply.Fallback,
			Volume:    prefs.VoiceVolume,
			Language:  copilot.NormalizeLanguage(prefs.Language),
			Events:    req.Nearby,
			CreatedAt: models.NowOr(s.deps.Clock),
		})
	}
}

// markers flags radar events the driver is passing too fast
func (s *Session) markers(events []models.ProximityEvent, prefs models.UserPreferences) []models.HazardMarker {
	markers := make([]models.HazardMarker, 0, len(events))
	speed, hasSpeed := s.stream.SpeedMetersPerSecond()
	for _, ev := range events {
		marker := models.HazardMarker{Event: ev}
		if hasSpeed && ev.Hazard.IsRadar() && ev.Hazard.SpeedLimit > 0 {
			limit := utils.MetersPerSecondTo(prefs.Units, float64(ev.Hazard.SpeedLimit)/3.6)
			marker.Overspeed = utils.MetersPerSecondTo(prefs.Units, speed) > limit+float64(prefs.SpeedThreshold)
		}
		markers = append(markers, marker)
	}
	return markers
}

// preferences loads the stored settings. Entitlement always comes from the
// token, never from the stored flag.
func (s *Session) preferences(ctx context.Context) models.UserPreferences {
	prefs := models.DefaultPreferences()
	if s.deps.Preferences != nil {
		stored, err := s.deps.Preferences.Get(ctx, s.userID)
		if err != nil {
			logger.Warn("Using default preferences",
				logger.UserID(s.userID),
				logger.Err(err))
		} else {
			prefs = stored
		}
	}
	prefs.IsPremiumEntitled = s.premium.Load()
	return prefs
}

// Manual answers a voice command. It bypasses the auto-read setting and the
// cooldown; entitlement is still enforced by the copilot.
func (s *Session) Manual(ctx context.Context, utterance string) models.CopilotReply {
	prefs := s.preferences(ctx)

	var pos *models.Position
	if current, ok := s.stream.Current(); ok {
		pos = &current
	}

	weather := models.UnknownWeather()
	if pos != nil && s.deps.Weather != nil && prefs.IsPremiumEntitled {
		weather = s.deps.Weather.CurrentWeather(ctx, pos.Latitude, pos.Longitude)
	}

	return s.copilot.Trigger(ctx, models.TriggerRequest{
		Kind:     models.TriggerManual,
		Command:  utterance,
		Position: pos,
		Weather:  weather,
		Nearby:   s.evaluator.Live(),
		Language: prefs.Language,
		Premium:  prefs.IsPremiumEntitled,
	})
}

// Advice answers a legal question in the driver's language
func (s *Session) Advice(ctx context.Context, query string) (string, error) {
	prefs := s.preferences(ctx)
	return s.advice.Ask(ctx, prefs.IsPremiumEntitled, query, prefs.Language)
}

// close tears down the AI session and resets the driver's state
func (s *Session) close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.sub.Unsubscribe()
		s.copilot.CancelAll()
		s.generator.Close()
		s.throttler.Reset()
		s.evaluator.Reset()
	})
}
