package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/reviewhub/review-platform/internal/api/metrics"
	"github.com/reviewhub/review-platform/internal/core/domain"
	"github.com/reviewhub/review-platform/internal/core/ports"
)

// refreshCookieName is the scoped, http-only cookie carrying the refresh
// token. It never appears in a response body.
const refreshCookieName = "refresh_token"

// refreshCookiePath limits the cookie to the auth routes that consume it.
const refreshCookiePath = "/auth"

type AuthHandler struct {
	authService  ports.AuthService
	secureCookie bool
	refreshTTL   time.Duration
}

// NewAuthHandler builds the auth endpoints. secureCookie should be true in
// production so the refresh cookie is https-only.
func NewAuthHandler(authService ports.AuthService, secureCookie bool, refreshTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookie: secureCookie, refreshTTL: refreshTTL}
}

// Register creates a new account and signs it in.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		FullName:    req.FullName,
		Username:    req.Username,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Role:        req.Role,
		Password:    req.Password,
	})
	if err != nil {
		// Registration conflicts answer 400 with the colliding field named,
		// matching the observed behavior of the public signup flow.
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			return echo.NewHTTPError(http.StatusBadRequest, "Email already exists")
		case errors.Is(err, domain.ErrUsernameTaken):
			return echo.NewHTTPError(http.StatusBadRequest, "Username already exists")
		case errors.Is(err, domain.ErrPhoneTaken):
			return echo.NewHTTPError(http.StatusBadRequest, "Phone number already exists")
		}
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(string(res.User.Role)).Inc()
	h.setRefreshCookie(c, res.Tokens.RefreshToken)

	return respond(c, http.StatusCreated, "User created successfully", authResponse{
		AccessToken: res.Tokens.AccessToken,
		User:        toUserResponse(res.User),
	})
}

// Login authenticates by email and password.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.setRefreshCookie(c, res.Tokens.RefreshToken)

	return respond(c, http.StatusOK, "Login successful", authResponse{
		AccessToken: res.Tokens.AccessToken,
		User:        toUserResponse(res.User),
	})
}

// Logout clears the refresh cookie. Idempotent; the refresh token itself is
// not revoked server-side and expires on its own.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.clearRefreshCookie(c)
	return respond(c, http.StatusOK, "Logout successful", nil)
}

// Refresh mints a new access token from the refresh cookie.
//
// @Summary      Refresh the access token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  refreshResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/refresh-token [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	cookie, err := c.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		metrics.TokenRefreshTotal.WithLabelValues("failure").Inc()
		return echo.NewHTTPError(http.StatusUnauthorized, "No refresh token provided")
	}

	access, err := h.authService.Refresh(c.Request().Context(), cookie.Value)
	if err != nil {
		metrics.TokenRefreshTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.TokenRefreshTotal.WithLabelValues("success").Inc()
	return respond(c, http.StatusOK, "Token refreshed successfully", refreshResponse{AccessToken: access})
}

// ResetPassword overwrites the account password with a generated one and
// mails it to the account.
//
// @Summary      Reset a forgotten password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Account email"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.ResetPassword(c.Request().Context(), req.Email); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.PasswordResetsTotal.WithLabelValues("unknown_email").Inc()
		} else {
			metrics.PasswordResetsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.PasswordResetsTotal.WithLabelValues("success").Inc()
	return respond(c, http.StatusOK, "New password has been generated and emailed to you.", nil)
}

func (h *AuthHandler) setRefreshCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     refreshCookiePath,
		Expires:  time.Now().Add(h.refreshTTL),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandler) clearRefreshCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     refreshCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
}
