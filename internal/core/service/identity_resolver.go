package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/workforce-hub/auth-api/internal/pkg/metrics"
	"github.com/workforce-hub/auth-api/internal/core/domain"
	"github.com/workforce-hub/auth-api/internal/core/ports"
	"github.com/workforce-hub/auth-api/internal/pkg/mask"
)

const defaultUserName = "New User"

// ResolverConfig controls how unknown identifiers are provisioned.
type ResolverConfig struct {
	DefaultName string
	// PlaceholderEmailDomain, when set, gives phone-only users a synthesized
	// email of the form <phone>@<domain>. Addresses in this domain are never
	// accepted as login identifiers.
	PlaceholderEmailDomain string
	// AutoProvision creates a user on first login. When false an unknown
	// identifier resolves to domain.ErrUserNotFound.
	AutoProvision bool
}

// IdentityResolver finds or creates the user behind an identifier.
type IdentityResolver struct {
	repo ports.UserRepository
	cfg  ResolverConfig
	now  func() time.Time
	log  zerolog.Logger
}

func NewIdentityResolver(repo ports.UserRepository, cfg ResolverConfig, log zerolog.Logger) *IdentityResolver {
	if cfg.DefaultName == "" {
		cfg.DefaultName = defaultUserName
	}
	return &IdentityResolver{
		repo: repo,
		cfg:  cfg,
		now:  func() time.Time { return time.Now().UTC() },
		log:  log.With().Str("component", "identity_resolver").Logger(),
	}
}

// Resolve returns the standard-path user for identifier.
func (r *IdentityResolver) Resolve(ctx context.Context, identifier string) (*domain.User, error) {
	if r.isPlaceholder(identifier) {
		r.log.Warn().Str("identifier", mask.Mask(identifier)).Msg("placeholder address used as login identifier")
		return nil, domain.ErrUserNotFound
	}

	user, err := r.repo.FindByIdentifier(ctx, identifier)
	switch {
	case err == nil:
		return user, nil
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("resolve identity: %w", err)
	case !r.cfg.AutoProvision:
		return nil, domain.ErrUserNotFound
	}

	return r.provision(ctx, identifier, r.cfg.DefaultName, domain.RoleUser)
}

// ResolvePrivileged returns the bypass user, creating it if needed. The user
// always ends up with the admin role.
func (r *IdentityResolver) ResolvePrivileged(ctx context.Context, identifier, name string) (*domain.User, error) {
	if name == "" {
		name = r.cfg.DefaultName
	}

	user, err := r.repo.FindByIdentifier(ctx, identifier)
	if errors.Is(err, domain.ErrUserNotFound) {
		user, err = r.provision(ctx, identifier, name, domain.RoleAdmin)
		if err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("resolve privileged identity: %w", err)
	}

	// A concurrent first login may have created the user with another role.
	if user.Role == domain.RoleAdmin {
		return user, nil
	}

	user.Role = domain.RoleAdmin
	user.UpdatedAt = r.now()
	updated, err := r.repo.Update(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("promote bypass user: %w", err)
	}
	return updated, nil
}

func (r *IdentityResolver) provision(ctx context.Context, identifier, name, role string) (*domain.User, error) {
	now := r.now()
	user := &domain.User{
		Name:      name,
		Role:      role,
		Status:    domain.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if domain.IsEmailIdentifier(identifier) {
		user.Email = domain.StringPtr(identifier)
	} else {
		user.Phone = domain.StringPtr(identifier)
		user.Email = r.placeholderEmail(identifier)
	}

	created, err := r.repo.Create(ctx, user)
	if errors.Is(err, domain.ErrUserExists) {
		// Lost a race with a concurrent first login.
		existing, findErr := r.repo.FindByIdentifier(ctx, identifier)
		if findErr != nil && !errors.Is(findErr, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("provision user: %w", findErr)
		}
		return existing, findErr
	}
	if err != nil {
		return nil, fmt.Errorf("provision user: %w", err)
	}

	metrics.UsersProvisionedTotal.WithLabelValues(role).Inc()
	r.log.Info().
		Str("user_id", created.ID).
		Str("identifier", mask.Mask(identifier)).
		Str("role", role).
		Msg("user provisioned")

	return created, nil
}

func (r *IdentityResolver) placeholderEmail(phone string) *string {
	if r.cfg.PlaceholderEmailDomain == "" {
		return nil
	}
	return domain.StringPtr(phone + "@" + r.cfg.PlaceholderEmailDomain)
}

func (r *IdentityResolver) isPlaceholder(identifier string) bool {
	if r.cfg.PlaceholderEmailDomain == "" {
		return false
	}
	_, host, ok := strings.Cut(identifier, "@")
	return ok && strings.EqualFold(strings.TrimSpace(host), r.cfg.PlaceholderEmailDomain)
}
