package newrelic

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithSegment_NoTransaction(t *testing.T) {
	called := false
	err := WithSegment(context.Background(), "hazard.query", func() error {
		called = true
		return errors.New("boom")
	})

	assert.True(t, called)
	assert.EqualError(t, err, "boom")
}

func TestWithSegmentAndReturn_NoTransaction(t *testing.T) {
	n, err := WithSegmentAndReturn(context.Background(), "hazard.count", func() (int, error) {
		return 3, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestStartBackground_NilApp(t *testing.T) {
	ctx := context.Background()
	got, end := StartBackground(ctx, nil, "engine.tick")

	assert.Equal(t, ctx, got)
	assert.NotPanics(t, end)
}

func TestInstrumentHTTPRequest_NoTransaction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	resp, err := InstrumentHTTPRequest(context.Background(), req, func() (*http.Response, error) {
		return http.DefaultClient.Do(req)
	})
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
