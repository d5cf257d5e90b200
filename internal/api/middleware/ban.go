package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reviewhub/review-platform/internal/core/domain"
)

// BanLookup is the slice of the credential store the ban guard needs.
type BanLookup interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// BanGuard denies every protected operation for a banned account, whatever
// its role. The token stays cryptographically valid; the account is simply
// not allowed to act.
func BanGuard(repo BanLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, _ := c.Get(CtxUserID).(string)
			if userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			user, err := repo.FindByID(c.Request().Context(), userID)
			if err != nil {
				// The token refers to an account that no longer exists.
				return echo.NewHTTPError(http.StatusUnauthorized, "unknown account")
			}
			if user.Banned {
				return echo.NewHTTPError(http.StatusForbidden, "account is banned")
			}
			return next(c)
		}
	}
}
