package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/piresc/vigilante/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestPanicRecoveryWithZapMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		panicValue interface{}
		userID     string
		requestID  string
	}{
		{name: "string panic", panicValue: "test panic message"},
		{name: "error panic", panicValue: errors.New("test error panic"), userID: "driver-1"},
		{name: "panic with request id", panicValue: 42, requestID: "req-123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			zapLogger := logger.NewFromCore(core, "test")

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/v1/proximity", nil)
			if tt.requestID != "" {
				req.Header.Set(echo.HeaderXRequestID, tt.requestID)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tt.userID != "" {
				c.Set(ContextUserID, tt.userID)
			}

			handler := PanicRecoveryWithZapMiddleware(zapLogger)(func(c echo.Context) error {
				panic(tt.panicValue)
			})

			assert.NotPanics(t, func() {
				_ = handler(c)
			})
			assert.Equal(t, http.StatusInternalServerError, rec.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, false, body["success"])
			if tt.requestID != "" {
				assert.Equal(t, tt.requestID, body["request_id"])
			}

			entries := logs.FilterMessage("Panic recovered during request processing").All()
			require.Len(t, entries, 1)
			fields := entries[0].ContextMap()
			assert.Equal(t, "/v1/proximity", fields["path"])
			assert.NotEmpty(t, fields["stack_trace"])
			if tt.userID != "" {
				assert.Equal(t, tt.userID, fields["user_id"])
			} else {
				assert.Equal(t, "anonymous", fields["user_id"])
			}
		})
	}
}

func TestPanicRecoveryMiddleware_NoPanic(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	handler := PanicRecoveryWithZapMiddleware(logger.NewFromCore(core, "test"))(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, logs.Len())
}

func TestPanicRecoveryMiddleware_RequiresLogger(t *testing.T) {
	assert.Panics(t, func() {
		PanicRecoveryMiddleware(PanicRecoveryConfig{})
	})
}

func TestSendPanicResponse_AlreadyCommitted(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, c.String(http.StatusOK, "partial"))

	sendPanicResponse(c, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "partial", rec.Body.String())
}
