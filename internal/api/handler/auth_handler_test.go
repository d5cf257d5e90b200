package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/reviewhub/review-platform/internal/core/domain"
	"github.com/reviewhub/review-platform/internal/core/ports"
)

type stubAuthService struct {
	registerFn       func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error)
	loginFn          func(ctx context.Context, email, password string) (*ports.AuthResult, error)
	refreshFn        func(ctx context.Context, refreshToken string) (string, error)
	resetPasswordFn  func(ctx context.Context, email string) error
	updatePasswordFn func(ctx context.Context, userID, oldPassword, newPassword string) error
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	return s.refreshFn(ctx, refreshToken)
}

func (s *stubAuthService) ResetPassword(ctx context.Context, email string) error {
	return s.resetPasswordFn(ctx, email)
}

func (s *stubAuthService) UpdatePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	return s.updatePasswordFn(ctx, userID, oldPassword, newPassword)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func postJSON(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func sampleResult() *ports.AuthResult {
	return &ports.AuthResult{
		Tokens: &ports.TokenPair{AccessToken: "access123", RefreshToken: "refresh123"},
		User: &domain.User{
			ID:       "user_1",
			FullName: "Alice",
			Username: "alice1",
			Email:    "a@x.com",
			Role:     domain.RoleCustomer,
		},
	}
}

const registerBody = `{"fullName":"Alice","username":"alice1","email":"a@x.com","phoneNumber":"0123456789","role":"customer","password":"secret1"}`

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
			if in.Username != "alice1" || in.Role != "customer" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return sampleResult(), nil
		},
	}
	h := NewAuthHandler(stub, false, time.Hour)

	c, rec := postJSON(e, "/auth/register", registerBody)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			AccessToken string          `json:"accessToken"`
			User        json.RawMessage `json:"user"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Success || resp.Data.AccessToken != "access123" {
		t.Fatalf("unexpected response: %s", rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "refresh123") {
		t.Fatalf("refresh token leaked into response body")
	}

	cookie := findCookie(rec, "refresh_token")
	if cookie == nil {
		t.Fatalf("refresh cookie not set")
	}
	if cookie.Value != "refresh123" || !cookie.HttpOnly || cookie.SameSite != http.SameSiteStrictMode {
		t.Fatalf("unexpected cookie attributes: %+v", cookie)
	}
}

func TestAuthHandler_Register_EmailConflict(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
			return nil, domain.ErrEmailTaken
		},
	}
	h := NewAuthHandler(stub, false, time.Hour)

	c, rec := postJSON(e, "/auth/register", registerBody)
	if err := h.Register(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Email already exists") {
		t.Fatalf("conflict message must name the email field: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, false, time.Hour)

	c, rec := postJSON(e, "/auth/register", "not-json")
	if err := h.Register(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, false, time.Hour)

	c, rec := postJSON(e, "/auth/register", `{"fullName":"Alice"}`)
	if err := h.Register(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.AuthResult, error) {
			if email != "a@x.com" || password != "secret1" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return sampleResult(), nil
		},
	}
	h := NewAuthHandler(stub, false, time.Hour)

	c, rec := postJSON(e, "/auth/login", `{"email":"a@x.com","password":"secret1"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if findCookie(rec, "refresh_token") == nil {
		t.Fatalf("refresh cookie not set")
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.AuthResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub, false, time.Hour)

	c, _ := postJSON(e, "/auth/login", `{"email":"a@x.com","password":"wrongpass"}`)
	err := h.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials to propagate, got %v", err)
	}
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(&stubAuthService{}, false, time.Hour)

	c, rec := postJSON(e, "/auth/logout", "")
	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	cookie := findCookie(rec, "refresh_token")
	if cookie == nil || cookie.Value != "" || cookie.MaxAge != -1 {
		t.Fatalf("expected expired empty cookie, got %+v", cookie)
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		refreshFn: func(ctx context.Context, refreshToken string) (string, error) {
			if refreshToken != "refresh123" {
				t.Fatalf("unexpected token: %s", refreshToken)
			}
			return "newaccess", nil
		},
	}
	h := NewAuthHandler(stub, false, time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh-token", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "refresh123"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "newaccess") {
		t.Fatalf("access token missing from response: %s", rec.Body.String())
	}
}

func TestAuthHandler_Refresh_MissingCookie(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		refreshFn: func(ctx context.Context, refreshToken string) (string, error) {
			t.Fatalf("should not be called")
			return "", nil
		},
	}
	h := NewAuthHandler(stub, false, time.Hour)

	c, rec := postJSON(e, "/auth/refresh-token", "")
	if err := h.Refresh(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_Refresh_InvalidToken(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		refreshFn: func(ctx context.Context, refreshToken string) (string, error) {
			return "", domain.ErrTokenInvalid
		},
	}
	h := NewAuthHandler(stub, false, time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh-token", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "tampered"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Refresh(c); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid to propagate, got %v", err)
	}
}

func TestAuthHandler_ResetPassword(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		resetPasswordFn: func(ctx context.Context, email string) error {
			if email == "unknown@x.com" {
				return domain.ErrUserNotFound
			}
			return nil
		},
	}
	h := NewAuthHandler(stub, false, time.Hour)

	c, _ := postJSON(e, "/auth/reset-password", `{"email":"unknown@x.com"}`)
	if err := h.ResetPassword(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound to propagate, got %v", err)
	}

	c, rec := postJSON(e, "/auth/reset-password", `{"email":"a@x.com"}`)
	if err := h.ResetPassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	res := rec.Result()
	for _, c := range res.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
