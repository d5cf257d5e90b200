package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/reviewhub/review-platform/internal/core/domain"
	"github.com/reviewhub/review-platform/internal/core/ports"
	"github.com/reviewhub/review-platform/internal/pkg/password"
)

const minPasswordLength = 6

// AuthService implements the account lifecycle: register, login, refresh,
// and the password flows.
type AuthService struct {
	repo   ports.UserRepository
	tokens ports.TokenService
	mailer ports.Mailer
	log    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenService, mailer ports.Mailer, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, mailer: mailer, log: log}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	if in.FullName == "" || in.Username == "" || in.Email == "" || in.PhoneNumber == "" || in.Role == "" || in.Password == "" {
		return nil, domain.ErrMissingFields
	}
	role, ok := domain.ParseRole(in.Role)
	if !ok {
		return nil, domain.ErrInvalidRole
	}
	if len(in.Password) < minPasswordLength {
		return nil, domain.ErrWeakPassword
	}

	// Each identity field is checked on its own so the rejection names the
	// colliding field.
	if err := checkIdentityFree(ctx, s.repo, "", in.Username, in.Email, in.PhoneNumber); err != nil {
		return nil, err
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		FullName:     in.FullName,
		Username:     in.Username,
		Email:        in.Email,
		PhoneNumber:  in.PhoneNumber,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	pair, err := s.tokens.Issue(created.ID, created.Role)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("account registered")

	return &ports.AuthResult{Tokens: pair, User: created}, nil
}

func (s *AuthService) Login(ctx context.Context, email, pass string) (*ports.AuthResult, error) {
	if email == "" || pass == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Same answer as a wrong password: the caller learns nothing
			// about which half failed.
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(pass, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	pair, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("login succeeded")

	return &ports.AuthResult{Tokens: pair, User: user}, nil
}

// Refresh mints a new access token from a still-valid refresh token. The
// refresh token is not rotated; it stays usable until its own expiry.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return "", err
	}

	pair, err := s.tokens.Issue(claims.UserID, claims.Role)
	if err != nil {
		return "", fmt.Errorf("issue tokens: %w", err)
	}
	return pair.AccessToken, nil
}

func (s *AuthService) ResetPassword(ctx context.Context, email string) error {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	plain, err := password.Generate(password.GeneratedLength)
	if err != nil {
		return fmt.Errorf("generate password: %w", err)
	}
	hash, err := password.Hash(plain)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}

	body := fmt.Sprintf("Hello %s,\n\nYour new password is: %s\n\nPlease log in and change it right away.\n", user.FullName, plain)
	if err := s.mailer.Send(ctx, user.Email, "Your new account password", body); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("password reset dispatched")
	return nil
}

func (s *AuthService) UpdatePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return domain.ErrMissingFields
	}
	if len(newPassword) < minPasswordLength {
		return domain.ErrWeakPassword
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !password.Verify(oldPassword, user.PasswordHash) {
		return domain.ErrWrongPassword
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.repo.UpdatePassword(ctx, user.ID, hash)
}

// checkIdentityFree verifies that username, email and phone are each unused.
// excludeID skips the account being updated so it does not collide with
// itself.
func checkIdentityFree(ctx context.Context, repo ports.UserRepository, excludeID, username, email, phone string) error {
	if u, err := repo.FindByUsername(ctx, username); err == nil && u.ID != excludeID {
		return domain.ErrUsernameTaken
	} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	if u, err := repo.FindByEmail(ctx, email); err == nil && u.ID != excludeID {
		return domain.ErrEmailTaken
	} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	if u, err := repo.FindByPhone(ctx, phone); err == nil && u.ID != excludeID {
		return domain.ErrPhoneTaken
	} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	return nil
}
