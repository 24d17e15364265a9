package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/vigilante/internal/pkg/logger"
)

// PanicRecoveryConfig holds configuration for panic recovery middleware
type PanicRecoveryConfig struct {
	Logger *logger.ZapLogger
}

// PanicRecoveryMiddleware creates a middleware that recovers from panics
// and logs them with New Relic integration and stack traces
func PanicRecoveryMiddleware(config PanicRecoveryConfig) echo.MiddlewareFunc {
	if config.Logger == nil {
		panic("PanicRecoveryMiddleware requires a logger")
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					handlePanic(c, r, config)
				}
			}()

			return next(c)
		}
	}
}

// PanicRecoveryWithZapMiddleware creates panic recovery middleware with Zap logger
func PanicRecoveryWithZapMiddleware(zapLogger *logger.ZapLogger) echo.MiddlewareFunc {
	return PanicRecoveryMiddleware(PanicRecoveryConfig{Logger: zapLogger})
}

func handlePanic(c echo.Context, r interface{}, config PanicRecoveryConfig) {
	stackTrace := string(debug.Stack())
	req := c.Request()

	userID := UserID(c)
	if userID == "" {
		userID = "anonymous"
	}
	requestID := getRequestID(c)

	fields := []logger.Field{
		logger.Any("panic_value", r),
		logger.String("panic_type", fmt.Sprintf("%T", r)),
		logger.String("stack_trace", stackTrace),
		logger.String("method", req.Method),
		logger.String("path", req.URL.Path),
		logger.String("client_ip", c.RealIP()),
		logger.String("user_id", userID),
		logger.String("request_id", requestID),
	}

	if txn := newrelic.FromContext(req.Context()); txn != nil {
		txn.NoticeError(newrelic.Error{
			Message: fmt.Sprintf("Panic recovered: %v", r),
			Class:   "PanicError",
			Attributes: map[string]interface{}{
				"panic.type":  fmt.Sprintf("%T", r),
				"http.method": req.Method,
				"http.path":   req.URL.Path,
				"user_id":     userID,
			},
		})
		txn.AddAttribute("panic.recovered", true)
		config.Logger.WithNewRelicContext(txn).Error("Panic recovered during request processing", fields...)
	} else {
		config.Logger.Error("Panic recovered during request processing", fields...)
	}

	sendPanicResponse(c, requestID)
}

func getRequestID(c echo.Context) string {
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

func sendPanicResponse(c echo.Context, requestID string) {
	if c.Response().Committed {
		return
	}

	body := map[string]interface{}{
		"success": false,
		"error":   "An unexpected error occurred while processing your request",
	}
	if requestID != "" {
		body["request_id"] = requestID
	}
	if err := c.JSON(http.StatusInternalServerError, body); err != nil {
		_ = c.String(http.StatusInternalServerError, "Internal Server Error")
	}
}
