package domain

import (
	"errors"
	"time"
)

// Business rejections surfaced by verify-otp. The messages are part of the
// HTTP contract.
var (
	ErrOTPNotFoundOrExpired = errors.New("OTP not found or expired")
	ErrInvalidOTP           = errors.New("Invalid OTP")
)

// OTPRecord is the single active passcode for an identifier.
type OTPRecord struct {
	Identifier string    `json:"identifier"`
	Code       string    `json:"code"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// Expired reports whether the record is past its validity window at now.
func (r OTPRecord) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// IssuedOTP is what the ledger hands back to the caller after storing a code.
type IssuedOTP struct {
	Code string
	TTL  time.Duration
}

// VerifyOutcome is the four-way result of checking a candidate code.
type VerifyOutcome int

const (
	OutcomeValid VerifyOutcome = iota
	OutcomeNotFound
	OutcomeMismatch
	OutcomeExpired
)

func (o VerifyOutcome) String() string {
	switch o {
	case OutcomeValid:
		return "valid"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeMismatch:
		return "mismatch"
	case OutcomeExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Err maps a failed outcome to the business error returned to the client.
// OutcomeValid maps to nil.
func (o VerifyOutcome) Err() error {
	switch o {
	case OutcomeValid:
		return nil
	case OutcomeMismatch:
		return ErrInvalidOTP
	default:
		return ErrOTPNotFoundOrExpired
	}
}
