package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/reviewhub/review-platform/internal/core/ports"
)

// Context keys set by Auth for downstream consumers. Identity always comes
// from the verified token, never from request bodies.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// TokenVerifier is the slice of the token service the session gate needs.
type TokenVerifier interface {
	VerifyAccess(token string) (*ports.TokenClaims, error)
}

// Auth validates the bearer access token and injects the identity into the
// request context. Any verification failure ends the request with 401.
func Auth(tokens TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := tokens.VerifyAccess(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxRole, string(claims.Role))

			return next(c)
		}
	}
}
