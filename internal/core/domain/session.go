package domain

import "errors"

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// SessionClaims is the identity asserted by a session token.
type SessionClaims struct {
	UserID string
	Email  string
	Phone  string
	Role   string
}

// Session is the result of a successful OTP verification.
type Session struct {
	Token string
	User  *User
}
