package domain

import "time"

// LoginToken backs a magic-link login. The raw token handed to the user is
// "<id>.<verifier>": the id locates this row, the verifier is checked against
// VerifierHash (Argon2id). Single use.
type LoginToken struct {
	ID           string
	IdentityID   string
	VerifierHash string
	ExpiresAt    time.Time
	ConsumedAt   *time.Time
	CreatedAt    time.Time
}

// Redeemable reports whether the token can still be consumed at now.
func (t LoginToken) Redeemable(now time.Time) bool {
	return t.ConsumedAt == nil && t.ExpiresAt.After(now)
}
