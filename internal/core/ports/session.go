package ports

import "github.com/workforce-hub/auth-api/internal/core/domain"

// TokenIssuer mints signed session tokens.
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}

// TokenVerifier validates a session token and returns its claims.
// Expired tokens yield domain.ErrTokenExpired, anything else unusable
// yields domain.ErrInvalidToken.
type TokenVerifier interface {
	Verify(token string) (domain.SessionClaims, error)
}
