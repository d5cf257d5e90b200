package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/reviewhub/review-platform/internal/core/domain"
	"github.com/reviewhub/review-platform/internal/core/ports"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

type tokenClaims struct {
	UserID    string `json:"uid"`
	Role      string `json:"role"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// TokenService mints and verifies HS256-signed access/refresh token pairs.
// Tokens are self-contained: identity, role, type and expiry are all in the
// claims, so verification needs no store lookup.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenService builds a TokenService. TTL defaults come from config, so
// the durations are taken as given.
func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// Issue mints an access/refresh pair bound to the account identity and role.
func (s *TokenService) Issue(userID string, role domain.Role) (*ports.TokenPair, error) {
	access, err := s.sign(userID, role, tokenTypeAccess, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(userID, role, tokenTypeRefresh, s.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &ports.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyAccess validates an access token and returns its identity claims.
func (s *TokenService) VerifyAccess(token string) (*ports.TokenClaims, error) {
	return s.verify(token, tokenTypeAccess)
}

// VerifyRefresh validates a refresh token and returns its identity claims.
// An access token presented here fails: the two types are not interchangeable.
func (s *TokenService) VerifyRefresh(token string) (*ports.TokenClaims, error) {
	return s.verify(token, tokenTypeRefresh)
}

func (s *TokenService) sign(userID string, role domain.Role, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		UserID:    userID,
		Role:      string(role),
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *TokenService) verify(token, wantType string) (*ports.TokenClaims, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !parsed.Valid || claims.TokenType != wantType {
		return nil, domain.ErrTokenInvalid
	}

	role, ok := domain.ParseRole(claims.Role)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	return &ports.TokenClaims{UserID: claims.UserID, Role: role}, nil
}
