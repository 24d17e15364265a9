package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/piresc/vigilante/internal/pkg/apperrors"
	"github.com/piresc/vigilante/internal/pkg/middleware"
	"github.com/piresc/vigilante/internal/pkg/models"
	"github.com/piresc/vigilante/internal/utils"
	"github.com/piresc/vigilante/services/engine/mocks"
	"github.com/piresc/vigilante/services/hazard/index"
	"github.com/piresc/vigilante/services/hazard/usecase"
	prefmocks "github.com/piresc/vigilante/services/preferences/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubWeather struct{ snapshot models.WeatherSnapshot }

func (s stubWeather) CurrentWeather(context.Context, float64, float64) models.WeatherSnapshot {
	return s.snapshot
}

type stubRoute struct {
	from, to utils.GeoPoint
}

func (s *stubRoute) Route(_ context.Context, from, to utils.GeoPoint) models.Route {
	s.from, s.to = from, to
	return models.Route{Found: true, Geometry: [][2]float64{{from.Latitude, from.Longitude}, {to.Latitude, to.Longitude}}}
}

type fixture struct {
	handler  *Handler
	engineUC *mocks.MockEngineUC
	prefs    *prefmocks.MockPreferencesRepo
	idx      *index.Index
	route    *stubRoute
}

func setup(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		engineUC: mocks.NewMockEngineUC(ctrl),
		prefs:    prefmocks.NewMockPreferencesRepo(ctrl),
		idx:      index.New(nil),
		route:    &stubRoute{},
	}
	hazardUC := usecase.NewHazardUC(f.idx, nil, nil, nil, models.EngineConfig{}, nil)
	weather := stubWeather{snapshot: models.WeatherSnapshot{Temperature: 18, Condition: "Clear", Known: true}}
	f.handler = NewHandler(f.engineUC, hazardUC, f.prefs, weather, f.route, 0)
	return f
}

func request(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextUserID, "driver-1")
	return c, rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestPushPosition(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		expect     func(f *fixture)
		wantStatus int
	}{
		{
			name: "accepted",
			body: `{"latitude":38.7223,"longitude":-9.1393,"timestamp":"2025-03-01T08:00:00Z"}`,
			expect: func(f *fixture) {
				f.engineUC.EXPECT().PushPosition("driver-1", gomock.Any()).DoAndReturn(
					func(_ string, pos models.Position) bool {
						assert.Equal(t, 38.7223, pos.Latitude)
						assert.Equal(t, time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC), pos.Timestamp.UTC())
						return true
					})
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "missing timestamp is stamped",
			body: `{"latitude":38.7223,"longitude":-9.1393}`,
			expect: func(f *fixture) {
				f.engineUC.EXPECT().PushPosition("driver-1", gomock.Any()).DoAndReturn(
					func(_ string, pos models.Position) bool {
						assert.False(t, pos.Timestamp.IsZero())
						return false
					})
			},
			wantStatus: http.StatusOK,
		},
		{name: "bad latitude", body: `{"latitude":91,"longitude":-9.1393}`, wantStatus: http.StatusBadRequest},
		{name: "malformed", body: `{"latitude":`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			if tt.expect != nil {
				tt.expect(f)
			}
			c, rec := request(http.MethodPost, "/v1/positions", tt.body)

			require.NoError(t, f.handler.PushPosition(c))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestReportPositionError(t *testing.T) {
	f := setup(t)
	f.engineUC.EXPECT().ReportPositionError("driver-1", "GPS signal lost")

	c, rec := request(http.MethodPost, "/v1/positions/error", `{"message":"GPS\nsignal   lost"}`)

	require.NoError(t, f.handler.ReportPositionError(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetProximity(t *testing.T) {
	f := setup(t)
	pos := &models.Position{Latitude: 38.7223, Longitude: -9.1393, Timestamp: time.Now()}
	f.engineUC.EXPECT().CurrentPosition("driver-1").Return(pos, false)
	f.engineUC.EXPECT().Proximity("driver-1").Return([]models.ProximityEvent{
		{Hazard: models.Hazard{ID: "r1", Kind: models.HazardKindRadar}, DistanceMeters: 78},
	})

	c, rec := request(http.MethodGet, "/v1/proximity", "")

	require.NoError(t, f.handler.GetProximity(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	data := decode(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, false, data["stale"])
	assert.Len(t, data["events"], 1)
}

func TestDismissEvent(t *testing.T) {
	f := setup(t)
	f.engineUC.EXPECT().Dismiss("driver-1", "r1").Return(true)
	f.engineUC.EXPECT().Dismiss("driver-1", "r2").Return(false)

	c, rec := request(http.MethodPost, "/v1/proximity/r1/dismiss", "")
	c.SetParamNames("id")
	c.SetParamValues("r1")
	require.NoError(t, f.handler.DismissEvent(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = request(http.MethodPost, "/v1/proximity/r2/dismiss", "")
	c.SetParamNames("id")
	c.SetParamValues("r2")
	require.NoError(t, f.handler.DismissEvent(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetHazards(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.idx.Insert(models.Hazard{ID: "r1", Kind: models.HazardKindRadar, Latitude: 38.7223, Longitude: -9.1393, SpeedLimit: 80}))
	require.NoError(t, f.idx.Insert(models.Hazard{ID: "r2", Kind: models.HazardKindRadar, Latitude: 41.1579, Longitude: -8.6291, SpeedLimit: 120}))

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantCount  int
	}{
		{name: "default radius", query: "?lat=38.7230&lng=-9.1393", wantStatus: http.StatusOK, wantCount: 1},
		{name: "wide radius", query: "?lat=38.7230&lng=-9.1393&radius=50000", wantStatus: http.StatusOK, wantCount: 1},
		{name: "far away", query: "?lat=0&lng=0", wantStatus: http.StatusOK, wantCount: 0},
		{name: "radius too large", query: "?lat=38.7&lng=-9.1&radius=60000", wantStatus: http.StatusBadRequest},
		{name: "missing lng", query: "?lat=38.7", wantStatus: http.StatusBadRequest},
		{name: "not a number", query: "?lat=abc&lng=-9.1", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := request(http.MethodGet, "/v1/hazards"+tt.query, "")

			require.NoError(t, f.handler.GetHazards(c))
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				data, _ := decode(t, rec)["data"].([]interface{})
				assert.Len(t, data, tt.wantCount)
			}
		})
	}
}

func TestDeleteHazard(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		userID     string
		admin      bool
		wantStatus int
	}{
		{name: "driver cannot remove a radar", id: "r1", userID: "driver-1", wantStatus: http.StatusForbidden},
		{name: "admin removes a radar", id: "r1", userID: "ops-1", admin: true, wantStatus: http.StatusOK},
		{name: "reporter removes own alert", id: "a1", userID: "driver-1", wantStatus: http.StatusOK},
		{name: "other driver cannot remove the alert", id: "a1", userID: "driver-2", wantStatus: http.StatusForbidden},
		{name: "unknown hazard", id: "zz", userID: "driver-1", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			require.NoError(t, f.idx.Insert(models.Hazard{ID: "r1", Kind: models.HazardKindRadar, Latitude: 38.7223, Longitude: -9.1393}))
			require.NoError(t, f.idx.Insert(models.Hazard{
				ID: "a1", Kind: models.HazardKindAlert, ReporterID: "driver-1",
				Latitude: 38.7223, Longitude: -9.1393, ExpiresAt: time.Now().Add(time.Hour),
			}))

			c, rec := request(http.MethodDelete, "/v1/hazards/"+tt.id, "")
			c.SetParamNames("id")
			c.SetParamValues(tt.id)
			c.Set(middleware.ContextUserID, tt.userID)
			c.Set(middleware.ContextAdmin, tt.admin)
			require.NoError(t, f.handler.DeleteHazard(c))

			assert.Equal(t, tt.wantStatus, rec.Code)
			_, stillIndexed := f.idx.Get(tt.id)
			assert.Equal(t, tt.wantStatus == http.StatusForbidden, stillIndexed)
		})
	}
}

func TestSubmitAlert(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "created", wantStatus: http.StatusCreated},
		{name: "validation", err: apperrors.Validation("description is required"), wantStatus: http.StatusBadRequest},
		{name: "no position", err: apperrors.ErrSourceUnavailable, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			f.engineUC.EXPECT().
				SubmitAlert(gomock.Any(), "driver-1", models.AlertSubmission{Category: "police", Description: "Operação STOP"}).
				Return(models.Hazard{ID: "a1", Kind: models.HazardKindAlert}, tt.err)

			c, rec := request(http.MethodPost, "/v1/alerts", `{"category":"police","description":"Operação STOP"}`)

			require.NoError(t, f.handler.SubmitAlert(c))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestCopilot(t *testing.T) {
	t.Run("reply", func(t *testing.T) {
		f := setup(t)
		f.engineUC.EXPECT().Manual(gomock.Any(), "driver-1", "há radares?").Return(models.CopilotReply{Text: "Radar a 300 metros."})

		c, rec := request(http.MethodPost, "/v1/copilot", `{"utterance":"há radares?"}`)

		require.NoError(t, f.handler.Copilot(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		data := decode(t, rec)["data"].(map[string]interface{})
		assert.Equal(t, "Radar a 300 metros.", data["text"])
	})

	t.Run("premium only", func(t *testing.T) {
		f := setup(t)
		f.engineUC.EXPECT().Manual(gomock.Any(), "driver-1", "olá").Return(models.CopilotReply{
			Text: "Função Pro.", Err: apperrors.ErrEntitlementDenied,
		})

		c, rec := request(http.MethodPost, "/v1/copilot", `{"utterance":"olá"}`)

		require.NoError(t, f.handler.Copilot(c))
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "Função Pro.", decode(t, rec)["error"])
	})

	t.Run("generator down", func(t *testing.T) {
		f := setup(t)
		f.engineUC.EXPECT().Manual(gomock.Any(), "driver-1", "olá").Return(models.CopilotReply{
			Text: "Copiloto indisponível.", Fallback: true, Err: apperrors.Generation(errors.New("timeout")),
		})

		c, rec := request(http.MethodPost, "/v1/copilot", `{"utterance":"olá"}`)

		require.NoError(t, f.handler.Copilot(c))
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestAdvice(t *testing.T) {
	f := setup(t)
	f.engineUC.EXPECT().Advice(gomock.Any(), "driver-1", "Posso usar o telemóvel?").Return("Não, é contraordenação grave.", nil)
	f.engineUC.EXPECT().Advice(gomock.Any(), "driver-1", "").Return("", apperrors.Validation("query is required"))

	c, rec := request(http.MethodPost, "/v1/advice", `{"query":"Posso usar o telemóvel?"}`)
	require.NoError(t, f.handler.Advice(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = request(http.MethodPost, "/v1/advice", `{"query":""}`)
	require.NoError(t, f.handler.Advice(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetWeather(t *testing.T) {
	f := setup(t)

	c, rec := request(http.MethodGet, "/v1/weather?lat=38.7&lng=-9.1", "")
	require.NoError(t, f.handler.GetWeather(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	data := decode(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "Clear", data["condition"])

	c, rec = request(http.MethodGet, "/v1/weather?lat=38.7", "")
	require.NoError(t, f.handler.GetWeather(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRoute(t *testing.T) {
	f := setup(t)

	c, rec := request(http.MethodGet, "/v1/route?from_lat=38.7223&from_lng=-9.1393&to_lat=41.1579&to_lng=-8.6291", "")
	require.NoError(t, f.handler.GetRoute(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 38.7223, f.route.from.Latitude)
	assert.Equal(t, -8.6291, f.route.to.Longitude)

	c, rec = request(http.MethodGet, "/v1/route?from_lat=38.7223&from_lng=-9.1393", "")
	require.NoError(t, f.handler.GetRoute(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPreferences(t *testing.T) {
	t.Run("get", func(t *testing.T) {
		f := setup(t)
		stored := models.DefaultPreferences()
		stored.IsPremiumEntitled = true
		f.prefs.EXPECT().Get(gomock.Any(), "driver-1").Return(stored, nil)

		c, rec := request(http.MethodGet, "/v1/preferences", "")
		require.NoError(t, f.handler.GetPreferences(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		data := decode(t, rec)["data"].(map[string]interface{})
		assert.Equal(t, "pt", data["language"])
		assert.Equal(t, false, data["is_premium_entitled"])
	})

	t.Run("get store down", func(t *testing.T) {
		f := setup(t)
		f.prefs.EXPECT().Get(gomock.Any(), "driver-1").Return(models.DefaultPreferences(), errors.New("redis down"))

		c, rec := request(http.MethodGet, "/v1/preferences", "")
		require.NoError(t, f.handler.GetPreferences(c))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("partial update keeps defaults", func(t *testing.T) {
		f := setup(t)
		f.prefs.EXPECT().Save(gomock.Any(), "driver-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, prefs models.UserPreferences) error {
				assert.True(t, prefs.IsPremiumEntitled)
				assert.Equal(t, models.UnitsMph, prefs.Units)
				assert.Equal(t, 1000.0, prefs.AlertDistanceMeters)
				return nil
			})

		c, rec := request(http.MethodPut, "/v1/preferences", `{"units":"mph"}`)
		c.Set(middleware.ContextPremium, true)
		require.NoError(t, f.handler.UpdatePreferences(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("free token cannot claim premium", func(t *testing.T) {
		f := setup(t)
		f.prefs.EXPECT().Save(gomock.Any(), "driver-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, prefs models.UserPreferences) error {
				assert.False(t, prefs.IsPremiumEntitled)
				return nil
			})

		c, rec := request(http.MethodPut, "/v1/preferences", `{"is_premium_entitled":true}`)
		c.Set(middleware.ContextPremium, false)
		require.NoError(t, f.handler.UpdatePreferences(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		data := decode(t, rec)["data"].(map[string]interface{})
		assert.Equal(t, false, data["is_premium_entitled"])
	})

	t.Run("invalid update", func(t *testing.T) {
		f := setup(t)

		c, rec := request(http.MethodPut, "/v1/preferences", `{"voice_volume":3}`)
		require.NoError(t, f.handler.UpdatePreferences(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLogout(t *testing.T) {
	f := setup(t)
	f.engineUC.EXPECT().Logout("driver-1").Return(true)

	c, rec := request(http.MethodPost, "/v1/logout", "")
	require.NoError(t, f.handler.Logout(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	data := decode(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, true, data["session_ended"])
}

func TestSyncEntitlement(t *testing.T) {
	tests := []struct {
		name    string
		userID  string
		premium bool
		expect  bool
	}{
		{name: "premium token", userID: "driver-1", premium: true, expect: true},
		{name: "free token", userID: "driver-1", premium: false, expect: true},
		{name: "unauthenticated", userID: "", expect: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			if tt.expect {
				f.engineUC.EXPECT().SetEntitlement(tt.userID, tt.premium)
			}

			c, rec := request(http.MethodGet, "/v1/proximity", "")
			c.Set(middleware.ContextUserID, tt.userID)
			c.Set(middleware.ContextPremium, tt.premium)

			next := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }
			require.NoError(t, f.handler.SyncEntitlement(next)(c))
			assert.Equal(t, http.StatusNoContent, rec.Code)
		})
	}
}
