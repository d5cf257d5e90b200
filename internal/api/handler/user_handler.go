package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reviewhub/review-platform/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
	authService ports.AuthService
}

func NewUserHandler(userService ports.UserService, authService ports.AuthService) *UserHandler {
	return &UserHandler{userService: userService, authService: authService}
}

// List returns all accounts, optionally filtered by role.
//
// @Summary      List accounts
// @Tags         users
// @Produce      json
// @Param        role  query     string  false  "Role filter"
// @Success      200   {object}  listUsersResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context(), c.QueryParam("role"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Users listed successfully", listUsersResponse{
		TotalUsers: len(users),
		Users:      toUserResponses(users),
	})
}

// Show returns one account by id.
//
// @Summary      Fetch an account
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) Show(c echo.Context) error {
	user, err := h.userService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "User fetched successfully", toUserResponse(user))
}

// Create provisions an account with a generated password mailed to it.
//
// @Summary      Create an account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "Account details"
// @Success      201   {object}  userResponse
// @Failure      409   {object}  map[string]string
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.Create(c.Request().Context(), ports.CreateUserInput{
		FullName:    req.FullName,
		Username:    req.Username,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Role:        req.Role,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "User created successfully", toUserResponse(user))
}

// Update replaces an account's profile.
//
// @Summary      Update an account profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Account id"
// @Param        body  body      updateUserRequest  true  "New profile"
// @Success      200   {object}  userResponse
// @Failure      409   {object}  map[string]string
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.Update(c.Request().Context(), c.Param("id"), ports.UpdateUserInput{
		FullName:    req.FullName,
		Username:    req.Username,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Role:        req.Role,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Profile updated successfully", toUserResponse(user))
}

// UpdatePassword changes the password of the authenticated account. The
// identity comes from the verified token, never from the body.
//
// @Summary      Change own password
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      updatePasswordRequest  true  "Old and new password"
// @Success      200   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /users/me/password [patch]
func (h *UserHandler) UpdatePassword(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.UpdatePassword(c.Request().Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Password updated successfully", nil)
}

// UpdateAvatar stores an externally hosted avatar URL.
//
// @Summary      Update avatar URL
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Account id"
// @Param        body  body      updateAvatarRequest  true  "Avatar URL"
// @Success      200   {object}  userResponse
// @Router       /users/{id}/avatar [patch]
func (h *UserHandler) UpdateAvatar(c echo.Context) error {
	var req updateAvatarRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.UpdateAvatar(c.Request().Context(), c.Param("id"), req.AvatarURL)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Avatar updated successfully", toUserResponse(user))
}

// UpdateCover stores an externally hosted cover photo URL.
//
// @Summary      Update cover photo URL
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Account id"
// @Param        body  body      updateCoverRequest  true  "Cover URL"
// @Success      200   {object}  userResponse
// @Router       /users/{id}/cover [patch]
func (h *UserHandler) UpdateCover(c echo.Context) error {
	var req updateCoverRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.UpdateCover(c.Request().Context(), c.Param("id"), req.CoverURL)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Cover photo updated successfully", toUserResponse(user))
}

// ToggleBan flips an account's ban flag.
//
// @Summary      Toggle ban status
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  banResponse
// @Failure      404  {object}  map[string]string
// @Router       /users/{id}/ban [patch]
func (h *UserHandler) ToggleBan(c echo.Context) error {
	banned, err := h.userService.ToggleBan(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	state := "unbanned"
	if banned {
		state = "banned"
	}
	return respond(c, http.StatusOK, fmt.Sprintf("User has been %s", state), banResponse{Banned: banned})
}

// Delete purges an account immediately.
//
// @Summary      Delete an account
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.userService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "User removed successfully", nil)
}
