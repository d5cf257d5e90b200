package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/reviewhub/review-platform/internal/core/domain"
)

type stubBanLookup struct {
	user *domain.User
	err  error
}

func (s *stubBanLookup) FindByID(context.Context, string) (*domain.User, error) {
	return s.user, s.err
}

func banRequest(t *testing.T, lookup BanLookup, userID string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set(CtxUserID, userID)
	}

	mw := BanGuard(lookup)
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestBanGuard_AllowsActiveAccount(t *testing.T) {
	rec := banRequest(t, &stubBanLookup{user: &domain.User{ID: "user_1", Role: domain.RoleAdmin}}, "user_1")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestBanGuard_RejectsBannedAccount(t *testing.T) {
	// Even an admin with a valid token is denied once banned.
	rec := banRequest(t, &stubBanLookup{user: &domain.User{ID: "user_1", Role: domain.RoleAdmin, Banned: true}}, "user_1")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestBanGuard_UnknownAccount(t *testing.T) {
	rec := banRequest(t, &stubBanLookup{err: domain.ErrUserNotFound}, "user_1")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestBanGuard_MissingIdentity(t *testing.T) {
	rec := banRequest(t, &stubBanLookup{user: &domain.User{ID: "user_1"}}, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
