package ports

import (
	"context"

	"github.com/soundstash/media-catalog/internal/core/domain"
)

// AuthService implements registration, login and profile lookup.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (string, *domain.User, error)
	// Login returns domain.ErrInvalidCredentials for both an unknown email
	// and a wrong password, so callers cannot distinguish the two.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Profile(ctx context.Context, subjectID string) (*domain.User, error)
}
