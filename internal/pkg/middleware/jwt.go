package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	jwtpkg "github.com/piresc/vigilante/internal/pkg/jwt"
	"github.com/piresc/vigilante/internal/pkg/models"
	"github.com/piresc/vigilante/internal/utils"
)

// Context keys set by JWTAuthMiddleware
const (
	ContextUserID  = "user_id"
	ContextPremium = "premium"
	ContextAdmin   = "admin"
)

// JWTAuthMiddleware creates a middleware for JWT authentication.
// Browsers cannot set headers on websocket upgrades, so a "token" query
// parameter is accepted as well.
func JWTAuthMiddleware(config models.JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, ok := extractToken(c)
			if !ok {
				return utils.UnauthorizedResponse(c, "Authorization header is required")
			}

			claims, err := jwtpkg.ValidateToken(tokenString, config.Secret)
			if err != nil {
				return utils.UnauthorizedResponse(c, "Invalid token")
			}

			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextPremium, claims.Premium)
			c.Set(ContextAdmin, claims.Admin)

			return next(c)
		}
	}
}

func extractToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		token := c.QueryParam("token")
		return token, token != ""
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// UserID returns the authenticated user id, or "" outside JWTAuthMiddleware
func UserID(c echo.Context) string {
	id, _ := c.Get(ContextUserID).(string)
	return id
}

// Premium reports the token's premium entitlement
func Premium(c echo.Context) bool {
	premium, _ := c.Get(ContextPremium).(bool)
	return premium
}

// Admin reports whether the token carries the admin claim
func Admin(c echo.Context) bool {
	admin, _ := c.Get(ContextAdmin).(bool)
	return admin
}
