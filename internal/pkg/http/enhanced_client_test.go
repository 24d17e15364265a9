package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/piresc/vigilante/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func testClient() *EnhancedClient {
	core, _ := observer.New(zapcore.DebugLevel)
	return NewEnhancedClient(logger.NewFromCore(core, "test"), "weather", time.Second)
}

func TestGetJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"main":{"temp":18.5}}`))
	}))
	defer server.Close()

	var out struct {
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
	}
	err := testClient().GetJSON(context.Background(), server.URL, map[string]string{"Authorization": "secret"}, &out)

	require.NoError(t, err)
	assert.Equal(t, 18.5, out.Main.Temp)
}

func TestPostJSON_SendsBodyOnEveryAttempt(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"coordinates":[[-9.1393,38.7223],[-8.6291,41.1579]]}`, string(body))
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	payload := map[string]interface{}{"coordinates": [][2]float64{{-9.1393, 38.7223}, {-8.6291, 41.1579}}}
	var out struct {
		OK bool `json:"ok"`
	}
	err := testClient().PostJSON(context.Background(), server.URL, nil, payload, &out)

	require.NoError(t, err)
	assert.True(t, out.OK)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestDo_ClientErrorIsNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"cod":401,"message":"Invalid API key"}`))
	}))
	defer server.Close()

	var out map[string]interface{}
	err := testClient().GetJSON(context.Background(), server.URL, nil, &out)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
	assert.Contains(t, httpErr.Error(), "Invalid API key")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestDo_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer server.Close()

	var out map[string]interface{}
	err := testClient().GetJSON(context.Background(), server.URL, nil, &out)

	assert.Error(t, err)
}

func TestCircuitStates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := testClient()
	var out map[string]interface{}
	require.NoError(t, client.GetJSON(context.Background(), server.URL, nil, &out))

	assert.Len(t, client.CircuitStates(), 1)
}
