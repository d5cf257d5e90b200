package ports

import (
	"context"

	"github.com/reviewhub/review-platform/internal/core/domain"
)

// RegisterInput carries the self-service registration fields. All of them
// are required.
type RegisterInput struct {
	FullName    string
	Username    string
	Email       string
	PhoneNumber string
	Role        string
	Password    string
}

// AuthResult bundles the minted token pair with the authenticated account.
// The refresh token travels only in a scoped cookie, never in a body.
type AuthResult struct {
	Tokens *TokenPair
	User   *domain.User
}

// AuthService orchestrates the account lifecycle: credential issuance,
// refresh, and the two password flows.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// Refresh mints a new access token from a valid refresh token. The
	// refresh token itself is not rotated; it stays valid until expiry.
	Refresh(ctx context.Context, refreshToken string) (string, error)
	// ResetPassword overwrites the stored hash with a freshly generated
	// secret and mails it to the account. The plaintext is never persisted.
	ResetPassword(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, userID, oldPassword, newPassword string) error
}
