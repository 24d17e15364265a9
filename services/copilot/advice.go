package copilot

import (
	"context"
	"strings"
	"time"

	"github.com/piresc/vigilante/internal/pkg/apperrors"
	"github.com/piresc/vigilante/internal/pkg/models"
)

const adviceTemperature float32 = 0.7

// Advice answers road-traffic legal questions. Unlike the copilot, failures
// are returned so the caller can show them.
type Advice struct {
	manager *SessionManager
	timeout time.Duration
}

// NewAdvice creates a legal assistant on the driver's session manager
func NewAdvice(manager *SessionManager, timeout time.Duration) *Advice {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Advice{manager: manager, timeout: timeout}
}

// Ask answers query in lang
func (a *Advice) Ask(ctx context.Context, premium bool, query, lang string) (string, error) {
	if !premium {
		return "", apperrors.ErrEntitlementDenied
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return "", apperrors.Validation("query is required")
	}
	lang = NormalizeLanguage(lang)

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	return generate(ctx, a.manager, models.GenerationRequest{
		SystemInstruction: adviceInstruction(lang),
		Language:          lang,
		Prompt:            query,
		Temperature:       adviceTemperature,
	})
}
