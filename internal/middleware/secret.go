package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	AdminSecretHeader = "X-Admin-Secret"
	PprofSecretHeader = "X-Pprof-Secret"
)

var errUnauthorized = map[string]string{"error": "unauthorized"}

// RequireSecret rejects requests whose header does not carry secret. An
// empty secret lets every request through, so callers that must stay closed
// should not mount the group at all.
func RequireSecret(header, secret string) echo.MiddlewareFunc {
	secretBytes := []byte(secret)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if secret == "" {
				return next(c)
			}
			provided := c.Request().Header.Get(header)
			if subtle.ConstantTimeCompare([]byte(provided), secretBytes) != 1 {
				return c.JSON(http.StatusUnauthorized, errUnauthorized)
			}
			return next(c)
		}
	}
}
