// Package memory holds process-local implementations of the persistence
// ports, used in development and tests.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/workforce-hub/auth-api/internal/core/domain"
)

// UserRepository is a map-backed ports.UserRepository. Email and phone are
// unique across users.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*domain.User)}
}

func clone(u *domain.User) *domain.User {
	c := *u
	if u.Email != nil {
		c.Email = domain.StringPtr(*u.Email)
	}
	if u.Phone != nil {
		c.Phone = domain.StringPtr(*u.Phone)
	}
	return &c
}

func (r *UserRepository) FindByIdentifier(_ context.Context, identifier string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Matches(identifier) {
			return clone(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return clone(u), nil
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conflicts(user) {
		return nil, domain.ErrUserExists
	}

	stored := clone(user)
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	r.users[stored.ID] = stored
	return clone(stored), nil
}

func (r *UserRepository) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	if r.conflicts(user) {
		return nil, domain.ErrUserExists
	}
	r.users[user.ID] = clone(user)
	return clone(user), nil
}

// conflicts reports whether another user already owns user's email or phone.
// Callers hold r.mu.
func (r *UserRepository) conflicts(user *domain.User) bool {
	for id, u := range r.users {
		if id == user.ID {
			continue
		}
		if user.Email != nil && u.Matches(*user.Email) {
			return true
		}
		if user.Phone != nil && u.Matches(*user.Phone) {
			return true
		}
	}
	return false
}
