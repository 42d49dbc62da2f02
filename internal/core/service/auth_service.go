package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/workforce-hub/auth-api/internal/pkg/metrics"
	"github.com/workforce-hub/auth-api/internal/core/domain"
	"github.com/workforce-hub/auth-api/internal/core/ports"
	"github.com/workforce-hub/auth-api/internal/pkg/mask"
)

// AuthServiceConfig wires the collaborators of the OTP login flow.
type AuthServiceConfig struct {
	Ledger   ports.OTPLedger
	Notifier ports.Notifier
	Resolver *IdentityResolver
	Tokens   ports.TokenIssuer
	Bypass   BypassGate
	// ExposeCode returns the issued code in the request-otp response. Never
	// set in production.
	ExposeCode bool
}

// AuthService implements request-otp and verify-otp.
type AuthService struct {
	ledger     ports.OTPLedger
	notifier   ports.Notifier
	resolver   *IdentityResolver
	tokens     ports.TokenIssuer
	bypass     BypassGate
	exposeCode bool
	log        zerolog.Logger
}

func NewAuthService(cfg AuthServiceConfig, log zerolog.Logger) *AuthService {
	return &AuthService{
		ledger:     cfg.Ledger,
		notifier:   cfg.Notifier,
		resolver:   cfg.Resolver,
		tokens:     cfg.Tokens,
		bypass:     cfg.Bypass,
		exposeCode: cfg.ExposeCode && !cfg.Bypass.Production,
		log:        log.With().Str("component", "auth_service").Logger(),
	}
}

// RequestOTP issues a code for identifier, hands it to the notifier and
// returns the masked destination.
func (s *AuthService) RequestOTP(ctx context.Context, identifier string) (ports.OTPChallenge, error) {
	issued, err := s.ledger.Issue(ctx, identifier)
	if err != nil {
		return ports.OTPChallenge{}, fmt.Errorf("issue otp: %w", err)
	}
	metrics.OTPIssuedTotal.Inc()

	ttlSeconds := int(issued.TTL.Seconds())
	if err := s.notifier.Notify(ctx, identifier, issued.Code, ttlSeconds); err != nil {
		return ports.OTPChallenge{}, fmt.Errorf("notify otp: %w", err)
	}

	challenge := ports.OTPChallenge{
		Destination: mask.Mask(identifier),
		TTL:         issued.TTL,
	}
	if s.exposeCode {
		challenge.Code = issued.Code
	}

	s.log.Debug().Str("destination", challenge.Destination).Int("ttl_seconds", ttlSeconds).Msg("otp issued")
	return challenge, nil
}

// VerifyOTP exchanges a correct code for a session. The bypass gate is
// consulted first; when it does not apply the ledger decides.
func (s *AuthService) VerifyOTP(ctx context.Context, identifier, code string) (domain.Session, error) {
	if s.bypass.Allows(identifier) {
		return s.bypassLogin(ctx)
	}

	outcome, err := s.ledger.Verify(ctx, identifier, code)
	if err != nil {
		return domain.Session{}, fmt.Errorf("verify otp: %w", err)
	}
	metrics.OTPVerificationsTotal.WithLabelValues(outcome.String()).Inc()

	if err := outcome.Err(); err != nil {
		s.log.Debug().
			Str("destination", mask.Mask(identifier)).
			Str("outcome", outcome.String()).
			Msg("otp rejected")
		return domain.Session{}, err
	}

	user, err := s.resolver.Resolve(ctx, identifier)
	if err != nil {
		return domain.Session{}, err
	}
	return s.session(user)
}

func (s *AuthService) bypassLogin(ctx context.Context) (domain.Session, error) {
	user, err := s.resolver.ResolvePrivileged(ctx, s.bypass.UserIdentifier(), s.bypass.Name)
	if err != nil {
		return domain.Session{}, err
	}
	metrics.BypassLoginsTotal.Inc()
	s.log.Warn().Str("user_id", user.ID).Msg("development bypass login")
	return s.session(user)
}

func (s *AuthService) session(user *domain.User) (domain.Session, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return domain.Session{}, fmt.Errorf("issue session: %w", err)
	}
	return domain.Session{Token: token, User: user}, nil
}
