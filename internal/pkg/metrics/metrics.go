package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PositionsAccepted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vigilante_positions_accepted_total",
		Help: "Total position samples accepted by geo streams",
	})
	PositionsDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vigilante_positions_dropped_total",
		Help: "Total stale or out-of-order position samples dropped",
	})
	PositionSourceErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vigilante_position_source_errors_total",
		Help: "Total geolocation source failures reported by devices",
	})
	Evaluations = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vigilante_proximity_evaluations_total",
		Help: "Total proximity evaluations",
	})
	LiveEvents = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "vigilante_proximity_live_events",
		Help:    "Live proximity events per evaluation",
		Buckets: []float64{0, 1, 2, 3, 5, 10, 20},
	})
	HazardsIndexed = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "vigilante_hazards_indexed",
		Help: "Hazards currently held in the index",
	})
	NotificationDecisions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vigilante_notification_decisions_total",
		Help: "Throttler decisions by reason",
	}, []string{"reason"})
	CopilotReplies = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vigilante_copilot_replies_total",
		Help: "Copilot replies by trigger and outcome",
	}, []string{"trigger", "outcome"})
	GenerationDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "vigilante_generation_duration_ms",
		Help:    "Text generation call duration in milliseconds",
		Buckets: []float64{50, 100, 250, 500, 1000, 2000, 4000, 8000},
	})
	AlertsSubmitted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vigilante_alerts_submitted_total",
		Help: "User alerts accepted by category",
	}, []string{"category"})
	AlertsExpired = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vigilante_alerts_expired_total",
		Help: "User alerts pruned after expiry",
	})
	ProviderRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vigilante_provider_requests_total",
		Help: "Outbound provider requests by provider and status",
	}, []string{"provider", "status"})
	CircuitState = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "vigilante_circuit_breaker_state",
		Help: "Circuit breaker state per upstream (0 closed, 1 open, 2 half-open)",
	}, []string{"name"})
	ActiveSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "vigilante_active_sessions",
		Help: "Driver sessions currently running",
	})
)

func init() {
	prometheus.MustRegister(PositionsAccepted)
	prometheus.MustRegister(PositionsDropped)
	prometheus.MustRegister(PositionSourceErrors)
	prometheus.MustRegister(Evaluations)
	prometheus.MustRegister(LiveEvents)
	prometheus.MustRegister(HazardsIndexed)
	prometheus.MustRegister(NotificationDecisions)
	prometheus.MustRegister(CopilotReplies)
	prometheus.MustRegister(GenerationDurationMs)
	prometheus.MustRegister(AlertsSubmitted)
	prometheus.MustRegister(AlertsExpired)
	prometheus.MustRegister(ProviderRequests)
	prometheus.MustRegister(CircuitState)
	prometheus.MustRegister(ActiveSessions)
}

// Handler exposes the registered metrics for scraping
func Handler() http.Handler { return promhttp.Handler() }
