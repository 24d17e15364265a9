package logger

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// ZapEchoMiddleware logs every request through the Zap logger and annotates
// the New Relic transaction created by the nrecho middleware
func ZapEchoMiddleware(logger *ZapLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			latency := time.Since(start)
			path := req.URL.Path
			if req.URL.RawQuery != "" {
				path = path + "?" + req.URL.RawQuery
			}

			userID, _ := c.Get("user_id").(string)
			if userID == "" {
				userID = "anonymous"
			}
			requestID := c.Response().Header().Get(echo.HeaderXRequestID)

			txn := newrelic.FromContext(req.Context())
			if txn != nil {
				txn.AddAttribute("user_id", userID)
				txn.AddAttribute("request_id", requestID)
				if err != nil {
					txn.NoticeError(err)
				}
			}

			logger.LogHTTPRequest(txn, req.Method, path, c.RealIP(), userID, requestID, c.Response().Status, latency, err)
			return nil
		}
	}
}
