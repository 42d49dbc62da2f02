package ports

import (
	"context"

	"github.com/workforce-hub/auth-api/internal/core/domain"
)

// OTPLedger holds at most one active passcode per identifier. Issuing a new
// code overwrites the previous one.
type OTPLedger interface {
	Issue(ctx context.Context, identifier string) (domain.IssuedOTP, error)
	// Lookup returns the stored record and whether one exists.
	Lookup(ctx context.Context, identifier string) (domain.OTPRecord, bool, error)
	// Verify checks existence, then code equality, then expiry. It never
	// removes the record.
	Verify(ctx context.Context, identifier, code string) (domain.VerifyOutcome, error)
}

// Notifier delivers a freshly issued code to its destination out of band.
type Notifier interface {
	Notify(ctx context.Context, destination, code string, ttlSeconds int) error
}
