package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/workforce-hub/auth-api/internal/core/domain"
	"github.com/workforce-hub/auth-api/internal/core/ledger"
	"github.com/workforce-hub/auth-api/internal/pkg/otpcode"
)

const defaultRetention = 10 * time.Minute

// LedgerOptions tunes an OTPLedger. Zero values fall back to defaults.
type LedgerOptions struct {
	TTL time.Duration
	// Retention keeps an expired record around long enough to report it as
	// expired instead of not found.
	Retention time.Duration
	Now       func() time.Time
	Generate  func() string
}

// OTPLedger is a ports.OTPLedger shared across processes through Redis.
// Key format: otp:<identifier>
type OTPLedger struct {
	client    *redis.Client
	ttl       time.Duration
	retention time.Duration
	now       func() time.Time
	generate  func() string
}

type storedOTP struct {
	Code      string `json:"code"`
	ExpiresAt int64  `json:"expires_at"`
}

// NewOTPLedger creates an OTPLedger wrapping the given Redis client.
func NewOTPLedger(client *redis.Client, opts LedgerOptions) *OTPLedger {
	l := &OTPLedger{
		client:    client,
		ttl:       opts.TTL,
		retention: opts.Retention,
		now:       opts.Now,
		generate:  opts.Generate,
	}
	if l.ttl <= 0 {
		l.ttl = ledger.DefaultTTL
	}
	if l.retention <= 0 {
		l.retention = defaultRetention
	}
	if l.now == nil {
		l.now = time.Now
	}
	if l.generate == nil {
		l.generate = otpcode.Generate
	}
	return l
}

// Issue writes a fresh code for identifier, replacing any previous one.
func (l *OTPLedger) Issue(ctx context.Context, identifier string) (domain.IssuedOTP, error) {
	code := l.generate()
	payload, err := json.Marshal(storedOTP{
		Code:      code,
		ExpiresAt: l.now().Add(l.ttl).UnixMilli(),
	})
	if err != nil {
		return domain.IssuedOTP{}, fmt.Errorf("encode otp: %w", err)
	}

	if err := l.client.Set(ctx, l.key(identifier), payload, l.ttl+l.retention).Err(); err != nil {
		return domain.IssuedOTP{}, fmt.Errorf("store otp: %w", err)
	}
	return domain.IssuedOTP{Code: code, TTL: l.ttl}, nil
}

func (l *OTPLedger) Lookup(ctx context.Context, identifier string) (domain.OTPRecord, bool, error) {
	raw, err := l.client.Get(ctx, l.key(identifier)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.OTPRecord{}, false, nil
	}
	if err != nil {
		return domain.OTPRecord{}, false, fmt.Errorf("load otp: %w", err)
	}

	var s storedOTP
	if err := json.Unmarshal(raw, &s); err != nil {
		return domain.OTPRecord{}, false, fmt.Errorf("decode otp: %w", err)
	}
	return domain.OTPRecord{
		Identifier: identifier,
		Code:       s.Code,
		ExpiresAt:  time.UnixMilli(s.ExpiresAt),
	}, true, nil
}

// Verify applies the same check order as the in-memory ledger. The record
// is left in place.
func (l *OTPLedger) Verify(ctx context.Context, identifier, candidate string) (domain.VerifyOutcome, error) {
	rec, ok, err := l.Lookup(ctx, identifier)
	if err != nil {
		return domain.OutcomeNotFound, err
	}
	return ledger.Evaluate(rec, ok, candidate, l.now()), nil
}

func (l *OTPLedger) key(identifier string) string {
	return "otp:" + identifier
}
