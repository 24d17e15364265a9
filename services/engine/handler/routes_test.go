package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/piresc/vigilante/internal/pkg/database"
	jwtpkg "github.com/piresc/vigilante/internal/pkg/jwt"
	"github.com/piresc/vigilante/internal/pkg/models"
	"github.com/piresc/vigilante/internal/pkg/websocket"
	httpHandler "github.com/piresc/vigilante/services/engine/handler/http"
	"github.com/piresc/vigilante/services/engine/mocks"
	"github.com/piresc/vigilante/services/hazard/index"
	"github.com/piresc/vigilante/services/hazard/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, redisClient *database.RedisClient, alertLimit int) (*echo.Echo, *mocks.MockEngineUC, string) {
	ctrl := gomock.NewController(t)
	engineUC := mocks.NewMockEngineUC(ctrl)
	hazardUC := usecase.NewHazardUC(index.New(nil), nil, nil, nil, models.EngineConfig{}, nil)

	cfg := &models.Config{
		JWT: models.JWTConfig{Secret: "test-secret", Expiration: 60, Issuer: "vigilante"},
		Engine: models.EngineConfig{
			AlertRateLimit:  alertLimit,
			AlertRateWindow: time.Minute,
		},
	}

	api := httpHandler.NewHandler(engineUC, hazardUC, nil, nil, nil, 0)
	e := echo.New()
	NewHTTPHandler(api, websocket.NewManager(), redisClient, cfg).RegisterRoutes(e)

	token, _, err := jwtpkg.GenerateToken("driver-1", true, cfg.JWT)
	require.NoError(t, err)
	return e, engineUC, token
}

func TestRoutes_RequireToken(t *testing.T) {
	e, engineUC, token := newServer(t, nil, 0)
	engineUC.EXPECT().SetEntitlement("driver-1", true)
	engineUC.EXPECT().CurrentPosition("driver-1").Return(nil, false)
	engineUC.EXPECT().Proximity("driver-1").Return(nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/proximity", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/proximity", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRoutes_MetricsArePublic(t *testing.T) {
	e, _, _ := newServer(t, nil, 0)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRoutes_AlertRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	redisClient := database.NewRedisClientFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	e, engineUC, token := newServer(t, redisClient, 1)
	engineUC.EXPECT().SetEntitlement("driver-1", true).AnyTimes()
	engineUC.EXPECT().SubmitAlert(gomock.Any(), "driver-1", gomock.Any()).
		Return(models.Hazard{ID: "a1", Kind: models.HazardKindAlert}, nil)

	submit := func() int {
		req := httptest.NewRequest(http.MethodPost, "/v1/alerts", strings.NewReader(`{"category":"traffic","description":"Fila na ponte"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusCreated, submit())
	assert.Equal(t, http.StatusTooManyRequests, submit())
}

func TestRoutes_EntitlementFollowsToken(t *testing.T) {
	e, engineUC, _ := newServer(t, nil, 0)
	free, _, err := jwtpkg.GenerateToken("driver-2", false, models.JWTConfig{Secret: "test-secret", Expiration: 60})
	require.NoError(t, err)

	gomock.InOrder(
		engineUC.EXPECT().SetEntitlement("driver-2", false),
		engineUC.EXPECT().Logout("driver-2").Return(false),
	)

	req := httptest.NewRequest(http.MethodPost, "/v1/logout", nil)
	req.Header.Set("Authorization", "Bearer "+free)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
