// Package ledger keeps the process-local table of issued passcodes.
//
// The table lives for as long as its Ledger value: it starts empty, records
// are replaced on re-issue and never evicted, and expired entries are simply
// reported as expired when read.
package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/workforce-hub/auth-api/internal/core/domain"
	"github.com/workforce-hub/auth-api/internal/pkg/otpcode"
)

// DefaultTTL is how long an issued code stays valid.
const DefaultTTL = 30 * time.Second

// Options tunes a Ledger. Zero values fall back to defaults.
type Options struct {
	TTL      time.Duration
	Now      func() time.Time
	Generate func() string
}

// Ledger is an in-memory ports.OTPLedger.
type Ledger struct {
	mu       sync.RWMutex
	records  map[string]domain.OTPRecord
	ttl      time.Duration
	now      func() time.Time
	generate func() string
}

// New creates an empty Ledger.
func New(opts Options) *Ledger {
	l := &Ledger{
		records:  make(map[string]domain.OTPRecord),
		ttl:      opts.TTL,
		now:      opts.Now,
		generate: opts.Generate,
	}
	if l.ttl <= 0 {
		l.ttl = DefaultTTL
	}
	if l.now == nil {
		l.now = time.Now
	}
	if l.generate == nil {
		l.generate = otpcode.Generate
	}
	return l
}

// TTL returns the validity window applied to issued codes.
func (l *Ledger) TTL() time.Duration { return l.ttl }

// Issue generates a code for identifier and overwrites any previous record.
func (l *Ledger) Issue(_ context.Context, identifier string) (domain.IssuedOTP, error) {
	code := l.generate()
	rec := domain.OTPRecord{
		Identifier: identifier,
		Code:       code,
		ExpiresAt:  l.now().Add(l.ttl),
	}

	l.mu.Lock()
	l.records[identifier] = rec
	l.mu.Unlock()

	return domain.IssuedOTP{Code: code, TTL: l.ttl}, nil
}

// Lookup returns the stored record for identifier, expired or not.
func (l *Ledger) Lookup(_ context.Context, identifier string) (domain.OTPRecord, bool, error) {
	l.mu.RLock()
	rec, ok := l.records[identifier]
	l.mu.RUnlock()
	return rec, ok, nil
}

// Verify evaluates candidate against the stored record. Records are left in
// place, so a correct code can be verified again until it expires.
func (l *Ledger) Verify(ctx context.Context, identifier, candidate string) (domain.VerifyOutcome, error) {
	rec, ok, err := l.Lookup(ctx, identifier)
	if err != nil {
		return domain.OutcomeNotFound, err
	}
	return Evaluate(rec, ok, candidate, l.now()), nil
}

// Len returns the number of stored records, expired ones included.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// Evaluate applies the verification order shared by every ledger backend:
// existence, then code equality, then expiry.
func Evaluate(rec domain.OTPRecord, found bool, candidate string, now time.Time) domain.VerifyOutcome {
	switch {
	case !found:
		return domain.OutcomeNotFound
	case rec.Code != candidate:
		return domain.OutcomeMismatch
	case rec.Expired(now):
		return domain.OutcomeExpired
	default:
		return domain.OutcomeValid
	}
}
