package ports

import (
	"context"

	"github.com/workforce-hub/auth-api/internal/core/domain"
)

// UserRepository is the external user-record store. Lookups that find
// nothing return domain.ErrUserNotFound; any other error is an
// infrastructure failure.
type UserRepository interface {
	// FindByIdentifier returns the user whose email or phone equals identifier.
	FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
}
