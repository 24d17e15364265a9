// Package notification gates voice notifications behind entitlement, the
// auto-read setting and a global cooldown.
package notification

import (
	"sync"
	"time"

	"github.com/piresc/vigilante/internal/pkg/metrics"
	"github.com/piresc/vigilante/internal/pkg/models"
)

// DefaultCooldown matches the background re-check interval
const DefaultCooldown = 300 * time.Second

// Throttler decides whether a qualifying event may produce an outward
// notification. The cooldown is global across hazards.
type Throttler struct {
	mu          sync.Mutex
	cooldown    time.Duration
	lastAllowed time.Time
}

// NewThrottler creates a throttler. A non-positive cooldown uses DefaultCooldown.
func NewThrottler(cooldown time.Duration) *Throttler {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Throttler{cooldown: cooldown}
}

// ShouldNotify applies the rules in order and records now when allowed.
// The event is accepted for symmetry with callers but the decision does not
// depend on which hazard triggered it.
func (t *Throttler) ShouldNotify(_ models.ProximityEvent, prefs models.UserPreferences, now time.Time) models.NotificationDecision {
	decision := t.decide(prefs, now)
	metrics.NotificationDecisions.WithLabelValues(decision.Reason).Inc()
	return decision
}

func (t *Throttler) decide(prefs models.UserPreferences, now time.Time) models.NotificationDecision {
	if !prefs.IsPremiumEntitled {
		return models.NotificationDecision{Reason: models.ReasonPremiumRequired}
	}
	if !prefs.AutoReadAlerts {
		return models.NotificationDecision{Reason: models.ReasonAutoReadDisabled}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.lastAllowed.IsZero() && now.Sub(t.lastAllowed) < t.cooldown {
		return models.NotificationDecision{Reason: models.ReasonCooldown}
	}
	t.lastAllowed = now
	return models.NotificationDecision{Allow: true, Reason: models.ReasonAllowed}
}

// LastAllowed returns the time of the last allowed notification
func (t *Throttler) LastAllowed() (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastAllowed, !t.lastAllowed.IsZero()
}

// Reset clears the cooldown
func (t *Throttler) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastAllowed = time.Time{}
}
