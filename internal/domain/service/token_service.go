package service

import (
	"errors"
	"time"
)

// ErrTokenExpired reports that a session token's validity window has passed.
// Verification failures for any other reason do not match this sentinel.
var ErrTokenExpired = errors.New("session token expired")

// SessionClaims carries the verified content of a session token: who it was
// issued for and when. Validity against a later password change is re-derived
// by the caller, not stored in the token.
type SessionClaims struct {
	UserID   string
	IssuedAt time.Time
}

// TokenService defines the interface for issuing and verifying session tokens.
// Tokens are stateless bearer credentials; nothing is persisted server-side.
type TokenService interface {
	// Sign issues a signed session token for the given user identifier.
	Sign(userID string) (string, error)

	// Verify checks signature and expiry and returns the embedded claims.
	Verify(token string) (*SessionClaims, error)

	// TTL returns the configured token lifetime, also used for the cookie expiry.
	TTL() time.Duration
}
