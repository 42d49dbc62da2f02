package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workforce-hub/auth-api/internal/core/domain"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func sequence(codes ...string) func() string {
	i := 0
	return func() string {
		c := codes[i%len(codes)]
		i++
		return c
	}
}

func newTestLedger(codes ...string) (*Ledger, *fakeClock) {
	clk := &fakeClock{t: time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)}
	l := New(Options{TTL: 30 * time.Second, Now: clk.Now, Generate: sequence(codes...)})
	return l, clk
}

func TestLedger_IssueStoresRecord(t *testing.T) {
	l, clk := newTestLedger("0421")
	ctx := context.Background()

	issued, err := l.Issue(ctx, "+919406038554")
	require.NoError(t, err)
	assert.Equal(t, "0421", issued.Code)
	assert.Equal(t, 30*time.Second, issued.TTL)

	rec, ok, err := l.Lookup(ctx, "+919406038554")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "0421", rec.Code)
	assert.Equal(t, clk.Now().Add(30*time.Second), rec.ExpiresAt)
}

func TestLedger_DefaultsApplied(t *testing.T) {
	l := New(Options{})
	assert.Equal(t, DefaultTTL, l.TTL())

	issued, err := l.Issue(context.Background(), "a@b.co")
	require.NoError(t, err)
	assert.Len(t, issued.Code, 4)
}

func TestLedger_VerifyOutcomes(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		l, _ := newTestLedger("1234")
		_, _ = l.Issue(ctx, "id-1")
		out, err := l.Verify(ctx, "id-1", "1234")
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeValid, out)
	})

	t.Run("not found", func(t *testing.T) {
		l, _ := newTestLedger("1234")
		out, err := l.Verify(ctx, "unknown", "1234")
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeNotFound, out)
	})

	t.Run("mismatch", func(t *testing.T) {
		l, _ := newTestLedger("1234")
		_, _ = l.Issue(ctx, "id-1")
		out, err := l.Verify(ctx, "id-1", "9999")
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeMismatch, out)
	})

	t.Run("expired with correct code", func(t *testing.T) {
		l, clk := newTestLedger("1234")
		_, _ = l.Issue(ctx, "id-1")
		clk.Advance(31 * time.Second)
		out, err := l.Verify(ctx, "id-1", "1234")
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeExpired, out)
	})

	t.Run("expiry boundary is still valid", func(t *testing.T) {
		l, clk := newTestLedger("1234")
		_, _ = l.Issue(ctx, "id-1")
		clk.Advance(30 * time.Second)
		out, err := l.Verify(ctx, "id-1", "1234")
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeValid, out)
	})

	t.Run("wrong code after expiry reports mismatch", func(t *testing.T) {
		l, clk := newTestLedger("1234")
		_, _ = l.Issue(ctx, "id-1")
		clk.Advance(time.Minute)
		out, err := l.Verify(ctx, "id-1", "0000")
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeMismatch, out)
	})
}

func TestLedger_ReissueInvalidatesPreviousCode(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger("1111", "2222")

	first, _ := l.Issue(ctx, "id-1")
	second, _ := l.Issue(ctx, "id-1")
	require.NotEqual(t, first.Code, second.Code)

	out, _ := l.Verify(ctx, "id-1", first.Code)
	assert.Equal(t, domain.OutcomeMismatch, out)

	out, _ = l.Verify(ctx, "id-1", second.Code)
	assert.Equal(t, domain.OutcomeValid, out)
	assert.Equal(t, 1, l.Len())
}

// Codes are not consumed on success; a second verify within the TTL passes.
func TestLedger_VerifyDoesNotConsume(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger("4321")
	_, _ = l.Issue(ctx, "id-1")

	for i := 0; i < 2; i++ {
		out, _ := l.Verify(ctx, "id-1", "4321")
		assert.Equal(t, domain.OutcomeValid, out)
	}
	_, ok, _ := l.Lookup(ctx, "id-1")
	assert.True(t, ok)
}

func TestLedger_IndependentInstances(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestLedger("1234")
	b, _ := newTestLedger("1234")

	_, _ = a.Issue(ctx, "id-1")
	out, _ := b.Verify(ctx, "id-1", "1234")
	assert.Equal(t, domain.OutcomeNotFound, out)
}

func TestVerifyOutcome_Err(t *testing.T) {
	assert.NoError(t, domain.OutcomeValid.Err())
	assert.ErrorIs(t, domain.OutcomeNotFound.Err(), domain.ErrOTPNotFoundOrExpired)
	assert.ErrorIs(t, domain.OutcomeExpired.Err(), domain.ErrOTPNotFoundOrExpired)
	assert.ErrorIs(t, domain.OutcomeMismatch.Err(), domain.ErrInvalidOTP)
}
