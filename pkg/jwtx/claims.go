package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the default lifetime for browser/API sessions.
const DefaultSessionTTL = 30 * 24 * time.Hour

// SessionClaims are the claims carried by a session token. Keep changes
// additive so tokens issued before a deploy still verify.
type SessionClaims struct {
	jwt.RegisteredClaims

	// SID is a random per-login session identifier, mainly for log
	// correlation.
	SID string `json:"sid,omitempty"`

	// Email of the authenticated identity at login time. Informational;
	// the identity row is the source of truth.
	Email string `json:"email,omitempty"`

	// AMR lists authentication methods: "link" for magic-link, "otp" when a
	// TOTP code was also verified.
	AMR []string `json:"amr,omitempty"`
}

// NewSessionClaims builds minimally-correct session claims.
func NewSessionClaims(
	subject, email string,
	amr []string,
	ttl time.Duration,
	issuer string,
	now time.Time,
) SessionClaims {
	return SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		SID:   NewJTI(),
		Email: email,
		AMR:   amr,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the process is in a very bad state.
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(buf)
}
