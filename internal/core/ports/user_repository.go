package ports

import (
	"context"

	"github.com/soundstash/media-catalog/internal/core/domain"
)

// UserRepository defines persistence operations for user identities.
// Implementations receive emails already normalized by the service layer.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// SetRole changes a user's role. Role mutation is an administrative
	// action only; nothing in the request path calls this.
	SetRole(ctx context.Context, email, role string) error
}
