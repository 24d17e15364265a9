// Package proximity tracks which hazards are inside a driver's alert radius.
package proximity

import (
	"sort"
	"sync"

	"github.com/piresc/vigilante/internal/pkg/metrics"
	"github.com/piresc/vigilante/internal/pkg/models"
)

// Querier is the read side of the hazard index
type Querier interface {
	Query(lat, lng, radiusMeters float64) []models.HazardDistance
}

type liveEvent struct {
	event     models.ProximityEvent
	dismissed bool
}

// Evaluator owns the live proximity events of one position track
type Evaluator struct {
	mu    sync.Mutex
	live  map[string]*liveEvent
	clock models.Clock
}

// NewEvaluator creates an evaluator with no live events. A nil clock uses the wall clock.
func NewEvaluator(clock models.Clock) *Evaluator {
	return &Evaluator{
		live:  make(map[string]*liveEvent),
		clock: clock,
	}
}

// Evaluate returns the hazards within radiusMeters of pos, nearest first.
// Hazards seen on the previous evaluation keep their FirstSeenAt; hazards
// no longer in range are retired and come back as new events on re-entry.
func (e *Evaluator) Evaluate(pos *models.Position, idx Querier, radiusMeters float64) []models.ProximityEvent {
	if pos == nil {
		return []models.ProximityEvent{}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	metrics.Evaluations.Inc()

	if radiusMeters <= 0 {
		e.live = make(map[string]*liveEvent)
		metrics.LiveEvents.Observe(0)
		return []models.ProximityEvent{}
	}

	now := models.NowOr(e.clock)
	hits := idx.Query(pos.Latitude, pos.Longitude, radiusMeters)

	next := make(map[string]*liveEvent, len(hits))
	events := make([]models.ProximityEvent, 0, len(hits))
	for _, hit := range hits {
		// guard against a querier that ignores the radius
		if hit.DistanceMeters > radiusMeters {
			continue
		}

		entry, tracked := e.live[hit.Hazard.ID]
		if tracked {
			entry.event.Hazard = hit.Hazard
			entry.event.DistanceMeters = hit.DistanceMeters
			entry.event.IsNew = false
		} else {
			entry = &liveEvent{event: models.ProximityEvent{
				Hazard:         hit.Hazard,
				DistanceMeters: hit.DistanceMeters,
				FirstSeenAt:    now,
				IsNew:          true,
			}}
		}
		next[hit.Hazard.ID] = entry

		if !entry.dismissed {
			events = append(events, entry.event)
		}
	}
	e.live = next

	sortEvents(events)
	metrics.LiveEvents.Observe(float64(len(events)))
	return events
}

// Dismiss suppresses a live event until its hazard leaves the radius
func (e *Evaluator) Dismiss(hazardID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry, ok := e.live[hazardID]
	if !ok {
		return false
	}
	entry.dismissed = true
	return true
}

// Live returns the current non-dismissed events as of the last evaluation
func (e *Evaluator) Live() []models.ProximityEvent {
	e.mu.Lock()
	defer e.mu.Unlock()

	events := make([]models.ProximityEvent, 0, len(e.live))
	for _, entry := range e.live {
		if !entry.dismissed {
			events = append(events, entry.event)
		}
	}
	sortEvents(events)
	return events
}

// Reset retires every live event
func (e *Evaluator) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.live = make(map[string]*liveEvent)
}

// HasNew reports whether any event entered the radius on this evaluation
func HasNew(events []models.ProximityEvent) bool {
	for _, ev := range events {
		if ev.IsNew {
			return true
		}
	}
	return false
}

func sortEvents(events []models.ProximityEvent) {
	sort.Slice(events, func(i, j int) bool {
		if events[i].DistanceMeters != events[j].DistanceMeters {
			return events[i].DistanceMeters < events[j].DistanceMeters
		}
		return events[i].Hazard.ID < events[j].Hazard.ID
	})
}
