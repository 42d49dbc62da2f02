package ports

import (
	"context"
	"time"

	"github.com/workforce-hub/auth-api/internal/core/domain"
)

// OTPChallenge is returned to the caller of request-otp. Code is only
// populated outside production.
type OTPChallenge struct {
	Destination string
	TTL         time.Duration
	Code        string
}

// AuthService drives the OTP login flow.
type AuthService interface {
	RequestOTP(ctx context.Context, identifier string) (OTPChallenge, error)
	VerifyOTP(ctx context.Context, identifier, code string) (domain.Session, error)
}

// UserService serves the authenticated user endpoints.
type UserService interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	UpdateName(ctx context.Context, id, name string) (*domain.User, error)
}
