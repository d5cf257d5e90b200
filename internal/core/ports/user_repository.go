package ports

import (
	"context"

	"github.com/reviewhub/review-platform/internal/core/domain"
)

// UserRepository defines the interface for account persistence.
// Implementations must enforce uniqueness on username, email and phone
// number, and must serialize writes per account (last-writer-wins).
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByPhone(ctx context.Context, phone string) (*domain.User, error)
	List(ctx context.Context, role domain.Role) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SetBanned(ctx context.Context, id string, banned bool) error
	Delete(ctx context.Context, id string) error
}
