package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/piresc/vigilante/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestSuccessResponse(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		message    string
		data       interface{}
	}{
		{
			name:       "Success with string data",
			statusCode: http.StatusOK,
			message:    "Operation successful",
			data:       "test data",
		},
		{
			name:       "Success with map data",
			statusCode: http.StatusCreated,
			message:    "Resource created",
			data:       map[string]interface{}{"id": "123", "name": "test"},
		},
		{
			name:       "Success with nil data",
			statusCode: http.StatusOK,
			message:    "Success",
			data:       nil,
		},
		{
			name:       "Success with empty message",
			statusCode: http.StatusOK,
			message:    "",
			data:       "data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := SuccessResponse(c, tt.statusCode, tt.message, tt.data)
			assert.NoError(t, err)
			assert.Equal(t, tt.statusCode, rec.Code)

			var response Response
			err = json.Unmarshal(rec.Body.Bytes(), &response)
			assert.NoError(t, err)
			assert.True(t, response.Success)
			assert.Equal(t, tt.message, response.Message)
			assert.Equal(t, tt.data, response.Data)
		})
	}
}

func TestErrorResponseHandler(t *testing.T) {
	tests := []struct {
		name         string
		statusCode   int
		errorMessage string
	}{
		{
			name:         "Internal server error",
			statusCode:   http.StatusInternalServerError,
			errorMessage: "Internal server error occurred",
		},
		{
			name:         "Bad request",
			statusCode:   http.StatusBadRequest,
			errorMessage: "Invalid request",
		},
		{
			name:         "Empty error message",
			statusCode:   http.StatusNotFound,
			errorMessage: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := ErrorResponseHandler(c, tt.statusCode, tt.errorMessage)
			assert.NoError(t, err)
			assert.Equal(t, tt.statusCode, rec.Code)

			var response ErrorResponse
			err = json.Unmarshal(rec.Body.Bytes(), &response)
			assert.NoError(t, err)
			assert.False(t, response.Success)
			assert.Equal(t, tt.errorMessage, response.Error)
			assert.Equal(t, tt.statusCode, response.Code)
		})
	}
}

func TestBadRequestResponse(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	errorMessage := "Invalid input"
	err := BadRequestResponse(c, errorMessage)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var response ErrorResponse
	err = json.Unmarshal(rec.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.False(t, response.Success)
	assert.Equal(t, errorMessage, response.Error)
	assert.Equal(t, http.StatusBadRequest, response.Code)
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", apperrors.Validation("description is required"), http.StatusBadRequest},
		{"entitlement", apperrors.ErrEntitlementDenied, http.StatusForbidden},
		{"hazard not found", fmt.Errorf("remove: %w", apperrors.ErrHazardNotFound), http.StatusNotFound},
		{"duplicate hazard", apperrors.ErrDuplicateHazard, http.StatusConflict},
		{"generation failure", apperrors.Generation(errors.New("quota")), http.StatusBadGateway},
		{"source unavailable", apperrors.ErrSourceUnavailable, http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusForError(tt.err))
		})
	}
}

func TestAppErrorResponse(t *testing.T) {
	t.Run("classified error keeps its message", func(t *testing.T) {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

		err := AppErrorResponse(c, apperrors.ErrEntitlementDenied)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		var response ErrorResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, apperrors.ErrEntitlementDenied.Error(), response.Error)
	})

	t.Run("unclassified error is hidden", func(t *testing.T) {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

		err := AppErrorResponse(c, errors.New("redis: connection refused"))
		assert.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		var response ErrorResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, "Internal server error", response.Error)
	})
}

func TestTooManyRequestsResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

	assert.NoError(t, TooManyRequestsResponse(c, ""))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
