package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/piresc/vigilante/internal/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRateLimitedEcho(t *testing.T, mr *miniredis.Miniredis, limit int) *echo.Echo {
	client := database.NewRedisClientFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	e := echo.New()
	setUser := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if id := c.Request().Header.Get("X-Test-User"); id != "" {
				c.Set(ContextUserID, id)
			}
			return next(c)
		}
	}
	e.POST("/v1/alerts", func(c echo.Context) error {
		return c.NoContent(http.StatusCreated)
	}, setUser, UserRateLimiter("alerts", limit, time.Minute, client))
	return e
}

func post(e *echo.Echo, user string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/alerts", nil)
	req.Header.Set("X-Test-User", user)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestUserRateLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	e := newRateLimitedEcho(t, mr, 2)

	assert.Equal(t, http.StatusCreated, post(e, "driver-1").Code)

	rec := post(e, "driver-1")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	rec = post(e, "driver-1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	// other users have their own window
	assert.Equal(t, http.StatusCreated, post(e, "driver-2").Code)

	mr.FastForward(time.Minute)
	assert.Equal(t, http.StatusCreated, post(e, "driver-1").Code)
}

func TestUserRateLimiter_RedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	e := newRateLimitedEcho(t, mr, 1)
	mr.Close()

	require.Equal(t, http.StatusCreated, post(e, "driver-1").Code)
	assert.Equal(t, http.StatusCreated, post(e, "driver-1").Code)
}
