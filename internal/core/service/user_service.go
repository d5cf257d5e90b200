package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/reviewhub/review-platform/internal/core/domain"
	"github.com/reviewhub/review-platform/internal/core/ports"
	"github.com/reviewhub/review-platform/internal/pkg/password"
)

// UserService implements administrative account management.
type UserService struct {
	repo ports.UserRepository
	mail ports.MailDispatcher
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, mail ports.MailDispatcher, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, mail: mail, log: log}
}

func (s *UserService) List(ctx context.Context, role string) ([]*domain.User, error) {
	var filter domain.Role
	if role != "" {
		parsed, ok := domain.ParseRole(role)
		if !ok {
			return nil, domain.ErrInvalidRole
		}
		filter = parsed
	}
	return s.repo.List(ctx, filter)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// Create provisions an account with a server-generated initial password and
// mails the credentials to the new account. Delivery is asynchronous and
// best-effort; a lost mail is logged by the queue, not surfaced here.
func (s *UserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	if in.FullName == "" || in.Username == "" || in.Email == "" || in.PhoneNumber == "" || in.Role == "" {
		return nil, domain.ErrMissingFields
	}
	role, ok := domain.ParseRole(in.Role)
	if !ok {
		return nil, domain.ErrInvalidRole
	}

	if err := checkIdentityFree(ctx, s.repo, "", in.Username, in.Email, in.PhoneNumber); err != nil {
		return nil, err
	}

	plain, err := password.Generate(password.GeneratedLength)
	if err != nil {
		return nil, fmt.Errorf("generate password: %w", err)
	}
	hash, err := password.Hash(plain)
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

	s.mail.Enqueue(ports.MailJob{
		To:      created.Email,
		Subject: "Your account has been created",
		Body:    fmt.Sprintf("Hello %s,\n\nAn account was created for you. Your temporary password is: %s\n\nPlease log in and change it right away.\n", created.FullName, plain),
	})

	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("account created by admin")

	return created, nil
}

func (s *UserService) Update(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	if in.FullName == "" || in.Username == "" || in.Email == "" || in.PhoneNumber == "" || in.Role == "" {
		return nil, domain.ErrMissingFields
	}
	role, ok := domain.ParseRole(in.Role)
	if !ok {
		return nil, domain.ErrInvalidRole
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := checkIdentityFree(ctx, s.repo, user.ID, in.Username, in.Email, in.PhoneNumber); err != nil {
		return nil, err
	}

	user.FullName = in.FullName
	user.Username = in.Username
	user.Email = in.Email
	user.PhoneNumber = in.PhoneNumber
	user.Role = role
	user.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, user)
}

func (s *UserService) UpdateAvatar(ctx context.Context, id, avatarURL string) (*domain.User, error) {
	return s.updateImage(ctx, id, avatarURL, true)
}

func (s *UserService) UpdateCover(ctx context.Context, id, coverURL string) (*domain.User, error) {
	return s.updateImage(ctx, id, coverURL, false)
}

func (s *UserService) updateImage(ctx context.Context, id, url string, avatar bool) (*domain.User, error) {
	if url == "" {
		return nil, domain.ErrMissingFields
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if avatar {
		user.AvatarURL = url
	} else {
		user.CoverURL = url
	}
	user.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, user)
}

// ToggleBan flips the ban flag and returns the new state. A banned account
// keeps its identity; it just cannot act.
func (s *UserService) ToggleBan(ctx context.Context, id string) (bool, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return false, err
	}

	banned := !user.Banned
	if err := s.repo.SetBanned(ctx, id, banned); err != nil {
		return false, err
	}

	s.log.Info().Str("user_id", id).Bool("banned", banned).Msg("ban status toggled")
	return banned, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Msg("account deleted")
	return nil
}
