// Package engine runs one proximity pipeline per driver session: position
// samples in, map markers and spoken notifications out.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/vigilante/internal/pkg/apperrors"
	"github.com/piresc/vigilante/internal/pkg/logger"
	"github.com/piresc/vigilante/internal/pkg/metrics"
	"github.com/piresc/vigilante/internal/pkg/models"
	nrpkg "github.com/piresc/vigilante/internal/pkg/newrelic"
	"github.com/piresc/vigilante/services/copilot"
	"github.com/piresc/vigilante/services/hazard"
	"github.com/piresc/vigilante/services/notification"
	"github.com/piresc/vigilante/services/preferences"
	"github.com/piresc/vigilante/services/proximity"
	"github.com/piresc/vigilante/services/roadinfo"
)

const (
	// DefaultBackgroundInterval is the minimum gap between background safety checks
	DefaultBackgroundInterval = 300 * time.Second

	// DefaultPruneInterval is how often expired alerts leave the index
	DefaultPruneInterval = time.Minute

	positionErrorCode = "position_unavailable"
)

// Deps are the collaborators shared by every driver session
type Deps struct {
	Index       proximity.Querier
	Hazards     hazard.HazardUC
	Preferences preferences.PreferencesRepo
	Weather     roadinfo.WeatherProvider
	Generators  copilot.GeneratorFactory
	Sink        Sink
	Clock       models.Clock
	APM         *newrelic.Application // optional
}

// Engine owns the driver sessions of this instance
type Engine struct {
	cfg  models.EngineConfig
	deps Deps

	mu       sync.Mutex
	ctx      context.Context
	cancel   context.CancelFunc
	sessions map[string]*Session
	entitled map[string]bool
	wg       sync.WaitGroup
}

// New creates an engine. Zero-valued tunables fall back to their defaults.
func New(cfg models.EngineConfig, deps Deps) *Engine {
	if cfg.BackgroundInterval <= 0 {
		cfg.BackgroundInterval = DefaultBackgroundInterval
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = notification.DefaultCooldown
	}
	if cfg.PruneInterval <= 0 {
		cfg.PruneInterval = DefaultPruneInterval
	}
	if cfg.CopilotTimeout <= 0 {
		cfg.CopilotTimeout = copilot.DefaultTimeout
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Engine{
		cfg:      cfg,
		deps:     deps,
		ctx:      ctx,
		cancel:   cancel,
		sessions: make(map[string]*Session),
		entitled: make(map[string]bool),
	}
}

// Start runs the alert prune loop until Stop is called
func (e *Engine) Start() {
	if e.deps.Hazards == nil {
		return
	}
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		ticker := time.NewTicker(e.cfg.PruneInterval)
		defer ticker.Stop()
		for {
			select {
			case <-e.ctx.Done():
				return
			case <-ticker.C:
				ctx, end := nrpkg.StartBackground(e.ctx, e.deps.APM, "engine.prune")
				e.deps.Hazards.PruneExpired(ctx)
				end()
			}
		}
	}()
}

// Stop ends every session and background loop
func (e *Engine) Stop(ctx context.Context) error {
	e.mu.Lock()
	sessions := make([]*Session, 0, len(e.sessions))
	for userID, s := range e.sessions {
		sessions = append(sessions, s)
		delete(e.sessions, userID)
	}
	e.mu.Unlock()

	for _, s := range sessions {
		s.close()
	}
	metrics.ActiveSessions.Set(0)
	e.cancel()

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("engine stop: %w", ctx.Err())
	}
}

// Session returns the driver's session, starting it on first use
func (e *Engine) Session(userID string) *Session {
	e.mu.Lock()
	defer e.mu.Unlock()

	if s, ok := e.sessions[userID]; ok {
		return s
	}

	s := newSession(userID, e.cfg, e.deps)
	s.premium.Store(e.entitled[userID])
	e.sessions[userID] = s
	metrics.ActiveSessions.Set(float64(len(e.sessions)))

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		s.Run(e.ctx)
	}()

	logger.Info("Driver session started", logger.UserID(userID))
	return s
}

// SetEntitlement records the premium claim of the driver's token. It applies
// to the running session, if any, and to sessions started later.
func (e *Engine) SetEntitlement(userID string, premium bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if premium {
		e.entitled[userID] = true
	} else {
		delete(e.entitled, userID)
	}
	if s, ok := e.sessions[userID]; ok {
		s.premium.Store(premium)
	}
}

func (e *Engine) lookup(userID string) (*Session, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sessions[userID]
	return s, ok
}

// SessionCount returns the number of running sessions
func (e *Engine) SessionCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.sessions)
}

// PushPosition feeds a sample into the driver's stream
func (e *Engine) PushPosition(userID string, pos models.Position) bool {
	return e.Session(userID).Stream().Push(pos)
}

// ReportPositionError records a geolocation failure for the driver
func (e *Engine) ReportPositionError(userID, message string) {
	e.Session(userID).Stream().ReportError(fmt.Errorf("%w: %s", apperrors.ErrSourceUnavailable, message))
	if e.deps.Sink != nil {
		e.deps.Sink.PublishError(e.ctx, userID, positionErrorCode, message)
	}
}

// CurrentPosition returns the driver's last known position
func (e *Engine) CurrentPosition(userID string) (*models.Position, bool) {
	s, ok := e.lookup(userID)
	if !ok {
		return nil, false
	}
	pos, ok := s.Stream().Current()
	if !ok {
		return nil, false
	}
	return &pos, s.Stream().IsStale(models.NowOr(e.deps.Clock))
}

// Proximity returns the driver's live events without re-evaluating
func (e *Engine) Proximity(userID string) []models.ProximityEvent {
	s, ok := e.lookup(userID)
	if !ok {
		return []models.ProximityEvent{}
	}
	return s.Evaluator().Live()
}

// Dismiss hides a live event from the driver's markers until it leaves the radius
func (e *Engine) Dismiss(userID, hazardID string) bool {
	s, ok := e.lookup(userID)
	if !ok {
		return false
	}
	return s.Evaluator().Dismiss(hazardID)
}

// SubmitAlert reports a hazard at the driver's current position
func (e *Engine) SubmitAlert(ctx context.Context, userID string, submission models.AlertSubmission) (models.Hazard, error) {
	var pos *models.Position
	if s, ok := e.lookup(userID); ok {
		if current, ok := s.Stream().Current(); ok {
			pos = &current
		}
	}
	return e.deps.Hazards.SubmitAlert(ctx, userID, submission, pos)
}

// Manual runs a voice command for the driver
func (e *Engine) Manual(ctx context.Context, userID, utterance string) models.CopilotReply {
	return e.Session(userID).Manual(ctx, utterance)
}

// Advice answers a legal question for the driver
func (e *Engine) Advice(ctx context.Context, userID, query string) (string, error) {
	return e.Session(userID).Advice(ctx, query)
}

// Logout tears the driver's session down. The next request starts a fresh one.
func (e *Engine) Logout(userID string) bool {
	e.mu.Lock()
	s, ok := e.sessions[userID]
	if ok {
		delete(e.sessions, userID)
	}
	metrics.ActiveSessions.Set(float64(len(e.sessions)))
	e.mu.Unlock()

	if !ok {
		return false
	}
	s.close()
	logger.Info("Driver session ended", logger.UserID(userID))
	return true
}
