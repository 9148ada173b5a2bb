package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("jwtx: invalid token")
	ErrTokenExpired = errors.New("jwtx: token expired")
)

// Signer signs and verifies HS256 session tokens with a single shared secret.
// The secret comes from configuration and must be at least 32 bytes.
type Signer struct {
	secret []byte
	issuer string
}

// NewSigner validates the secret and returns a Signer.
func NewSigner(secret []byte, issuer string) (*Signer, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("jwtx: session secret must be at least 32 bytes, got %d", len(secret))
	}
	return &Signer{secret: secret, issuer: issuer}, nil
}

// Sign produces a compact signed token for the claims.
func (s *Signer) Sign(claims SessionClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a compact token, enforcing the HS256 algorithm,
// the issuer, and the expiry.
func (s *Signer) Verify(raw string) (SessionClaims, error) {
	var claims SessionClaims
	token, err := jwt.ParseWithClaims(raw, &claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
			}
			return s.secret, nil
		},
		jwt.WithIssuer(s.issuer),
		jwt.WithValidMethods([]string{"HS256"}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return SessionClaims{}, ErrTokenExpired
		}
		return SessionClaims{}, ErrInvalidToken
	}
	if !token.Valid {
		return SessionClaims{}, ErrInvalidToken
	}
	return claims, nil
}

// Issue is a convenience that builds and signs claims in one call.
func (s *Signer) Issue(subject, email string, amr []string, ttl time.Duration) (string, SessionClaims, error) {
	claims := NewSessionClaims(subject, email, amr, ttl, s.issuer, time.Now().UTC())
	signed, err := s.Sign(claims)
	if err != nil {
		return "", SessionClaims{}, err
	}
	return signed, claims, nil
}
