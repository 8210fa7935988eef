package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// APIKeyAuth requires "Authorization: Bearer <apiKey>". An empty apiKey
// disables the check, which is only acceptable outside production.
func APIKeyAuth(apiKey string, logger *slog.Logger) echo.MiddlewareFunc {
	if apiKey == "" && logger != nil {
		logger.Warn("API key not set, message API is unauthenticated")
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if apiKey == "" {
				return next(c)
			}

			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return unauthorized(c, logger, "missing authorization header")
			}

			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			// constant time, so response timing does not leak the key
			if subtle.ConstantTimeCompare([]byte(token), []byte(apiKey)) != 1 {
				return unauthorized(c, logger, "invalid API key")
			}
			return next(c)
		}
	}
}

func unauthorized(c echo.Context, logger *slog.Logger, reason string) error {
	if logger != nil {
		logger.Warn("authentication_failure",
			slog.String("event_type", "auth_failure"),
			slog.String("ip", c.RealIP()),
			slog.String("path", c.Path()),
			slog.String("reason", reason),
		)
	}
	return echo.NewHTTPError(http.StatusUnauthorized, map[string]string{
		"error": reason,
		"code":  "UNAUTHORIZED",
	})
}
