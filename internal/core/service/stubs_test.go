package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/workforce-hub/auth-api/internal/core/domain"
)

type stubUserRepo struct {
	users     map[string]*domain.User
	seq       int
	findErr   error
	createErr error
	// findMisses makes the next n lookups report not found.
	findMisses int
	updates   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) add(u *domain.User) *domain.User {
	r.seq++
	copy := cloneUser(u)
	if copy.ID == "" {
		copy.ID = fmt.Sprintf("u-%d", r.seq)
	}
	r.users[copy.ID] = copy
	return cloneUser(copy)
}

func (r *stubUserRepo) FindByIdentifier(_ context.Context, identifier string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	if r.findMisses > 0 {
		r.findMisses--
		return nil, domain.ErrUserNotFound
	}
	for _, u := range r.users {
		if u.Matches(identifier) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	return r.add(user), nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.updates++
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

type stubNotifier struct {
	sent []string
	err  error
}

func (n *stubNotifier) Notify(_ context.Context, destination, code string, _ int) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, destination+":"+code)
	return nil
}

type stubTokens struct{ err error }

func (s stubTokens) Issue(user *domain.User) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "token-" + user.ID + "-" + user.Role, nil
}

var errStoreDown = errors.New("store unreachable")

func fixedCode(code string) func() string { return func() string { return code } }

type testClock struct{ t time.Time }

func (c *testClock) Now() time.Time { return c.t }
