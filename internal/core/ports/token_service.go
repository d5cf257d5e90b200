package ports

import "github.com/reviewhub/review-platform/internal/core/domain"

// TokenClaims is the identity a verified token carries.
type TokenClaims struct {
	UserID string
	Role   domain.Role
}

// TokenPair is minted as a unit at registration and login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenService mints and verifies self-contained signed tokens. Verification
// needs no store round-trip; tampering and expiry are detectable from the
// token alone.
type TokenService interface {
	Issue(userID string, role domain.Role) (*TokenPair, error)
	VerifyAccess(token string) (*TokenClaims, error)
	VerifyRefresh(token string) (*TokenClaims, error)
}
