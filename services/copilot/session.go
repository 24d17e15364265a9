// Package copilot phrases proximity context into short spoken replies and
// answers legal questions through an external text generator.
package copilot

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/piresc/vigilante/internal/pkg/apperrors"
	"github.com/piresc/vigilante/internal/pkg/logger"
	"github.com/piresc/vigilante/internal/pkg/metrics"
	"github.com/piresc/vigilante/internal/pkg/models"
)

const (
	// DefaultTimeout bounds one generation call
	DefaultTimeout = 8 * time.Second

	copilotTemperature float32 = 0.4
)

// Session runs copilot turns for one driver. A new manual turn cancels the
// one in flight; a new background turn supersedes the previous background turn.
type Session struct {
	manager *SessionManager
	timeout time.Duration

	mu     sync.Mutex
	cancel map[models.TriggerKind]context.CancelFunc
	seq    map[models.TriggerKind]uint64
}

// NewSession creates a session. A non-positive timeout uses DefaultTimeout.
func NewSession(manager *SessionManager, timeout time.Duration) *Session {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Session{
		manager: manager,
		timeout: timeout,
		cancel:  make(map[models.TriggerKind]context.CancelFunc),
		seq:     make(map[models.TriggerKind]uint64),
	}
}

// Trigger runs one copilot turn. Background failures are replaced by the
// localized fallback phrase with no error; manual failures carry the error
// next to a localized message.
func (s *Session) Trigger(ctx context.Context, req models.TriggerRequest) models.CopilotReply {
	lang := NormalizeLanguage(req.Language)
	kind := req.Kind
	if kind != models.TriggerManual {
		kind = models.TriggerBackground
	}

	if !req.Premium {
		metrics.CopilotReplies.WithLabelValues(string(kind), "denied").Inc()
		return models.CopilotReply{Text: PremiumOnlyPhrase(lang), Err: apperrors.ErrEntitlementDenied}
	}

	command := BackgroundCommand
	if kind == models.TriggerManual {
		command = strings.TrimSpace(req.Command)
		if command == "" {
			metrics.CopilotReplies.WithLabelValues(string(kind), "invalid").Inc()
			return models.CopilotReply{
				Text: phrasesFor(lang).notHeard,
				Err:  apperrors.Validation("empty voice command"),
			}
		}
	}

	turnCtx, done := s.begin(ctx, kind)
	defer done()

	text, err := s.generate(turnCtx, models.GenerationRequest{
		SystemInstruction: copilotInstruction(lang),
		Language:          lang,
		Prompt:            BuildPrompt(command, req),
		Temperature:       copilotTemperature,
	})
	if err == nil {
		metrics.CopilotReplies.WithLabelValues(string(kind), "ok").Inc()
		return models.CopilotReply{Text: text}
	}

	if kind == models.TriggerBackground {
		logger.Warn("Background copilot failed, using fallback phrase",
			logger.String("language", lang),
			logger.Err(err))
		metrics.CopilotReplies.WithLabelValues(string(kind), "fallback").Inc()
		return models.CopilotReply{Text: FallbackPhrase(lang), Fallback: true}
	}

	metrics.CopilotReplies.WithLabelValues(string(kind), "error").Inc()
	return models.CopilotReply{Text: UnavailablePhrase(lang), Fallback: true, Err: err}
}

// begin cancels the in-flight turn of the same kind and returns a context
// bounded by the session timeout
func (s *Session) begin(ctx context.Context, kind models.TriggerKind) (context.Context, func()) {
	turnCtx, cancel := context.WithTimeout(ctx, s.timeout)

	s.mu.Lock()
	if previous, ok := s.cancel[kind]; ok {
		previous()
	}
	s.seq[kind]++
	seq := s.seq[kind]
	s.cancel[kind] = cancel
	s.mu.Unlock()

	return turnCtx, func() {
		cancel()
		s.mu.Lock()
		if s.seq[kind] == seq {
			delete(s.cancel, kind)
		}
		s.mu.Unlock()
	}
}

func (s *Session) generate(ctx context.Context, req models.GenerationRequest) (string, error) {
	return generate(ctx, s.manager, req)
}

type generation struct {
	text string
	err  error
}

// generate bounds the call by ctx even when the generator does not honour
// cancellation; a late result is discarded.
func generate(ctx context.Context, manager *SessionManager, req models.GenerationRequest) (string, error) {
	generator, err := manager.Generator(ctx)
	if err != nil {
		return "", err
	}

	start := time.Now()
	result := make(chan generation, 1)
	go func() {
		text, err := generator.Generate(ctx, req)
		result <- generation{text: text, err: err}
	}()

	var out generation
	select {
	case out = <-result:
		if out.err == nil && ctx.Err() != nil {
			out.err = ctx.Err()
		}
	case <-ctx.Done():
		out.err = ctx.Err()
	}
	metrics.GenerationDurationMs.Observe(float64(time.Since(start).Milliseconds()))

	if out.err != nil {
		return "", apperrors.Generation(out.err)
	}

	text := strings.TrimSpace(out.text)
	if text == "" {
		return "", apperrors.Generation(errors.New("empty response"))
	}
	return text, nil
}

// CancelAll aborts every turn in flight
func (s *Session) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for kind, cancel := range s.cancel {
		cancel()
		delete(s.cancel, kind)
	}
}
