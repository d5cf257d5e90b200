package handler

import (
	"time"

	"github.com/reviewhub/review-platform/internal/core/domain"
)

type registerRequest struct {
	FullName    string `json:"fullName" validate:"required"`
	Username    string `json:"username" validate:"required,min=3,max=30"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required,numeric,min=10,max=11"`
	Role        string `json:"role" validate:"required,oneof=admin customer shop"`
	Password    string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type resetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type updatePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// authResponse carries the access token and public profile. The refresh
// token travels only in the cookie.
type authResponse struct {
	AccessToken string        `json:"accessToken"`
	User        *userResponse `json:"user"`
}

type refreshResponse struct {
	AccessToken string `json:"accessToken"`
}

// userResponse is the public view of an account: everything except the
// stored secret.
type userResponse struct {
	ID          string    `json:"id"`
	FullName    string    `json:"fullName"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	Role        string    `json:"role"`
	Banned      bool      `json:"banned"`
	AvatarURL   string    `json:"avatarUrl,omitempty"`
	CoverURL    string    `json:"coverUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toUserResponse(u *domain.User) *userResponse {
	if u == nil {
		return nil
	}
	return &userResponse{
		ID:          u.ID,
		FullName:    u.FullName,
		Username:    u.Username,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Role:        string(u.Role),
		Banned:      u.Banned,
		AvatarURL:   u.AvatarURL,
		CoverURL:    u.CoverURL,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func toUserResponses(users []*domain.User) []*userResponse {
	out := make([]*userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}
