package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationDecisionsByReason(t *testing.T) {
	before := testutil.ToFloat64(NotificationDecisions.WithLabelValues("cooldown"))

	NotificationDecisions.WithLabelValues("cooldown").Inc()

	assert.Equal(t, before+1, testutil.ToFloat64(NotificationDecisions.WithLabelValues("cooldown")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	AlertsSubmitted.WithLabelValues("police").Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `vigilante_alerts_submitted_total{category="police"}`)
}
