package ports

import (
	"context"

	"github.com/reviewhub/review-platform/internal/core/domain"
)

// CreateUserInput carries the administrative-creation fields. The initial
// password is generated server-side and mailed to the account.
type CreateUserInput struct {
	FullName    string
	Username    string
	Email       string
	PhoneNumber string
	Role        string
}

// UpdateUserInput carries a full profile replacement for an account.
type UpdateUserInput struct {
	FullName    string
	Username    string
	Email       string
	PhoneNumber string
	Role        string
}

// UserService covers administrative account management.
type UserService interface {
	List(ctx context.Context, role string) ([]*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error)
	UpdateAvatar(ctx context.Context, id, avatarURL string) (*domain.User, error)
	UpdateCover(ctx context.Context, id, coverURL string) (*domain.User, error)
	// ToggleBan flips the ban flag and returns the new state.
	ToggleBan(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
}
