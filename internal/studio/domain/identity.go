package domain

import "time"

// Identity is an authenticated principal. Email is unique and matched
// case-insensitively against invitations.
type Identity struct {
	ID          string
	Email       string
	DisplayName string
	TOTPSecret  *string    // base32 TOTP secret (nullable)
	MFAEnabled  *time.Time // set when MFA was activated (nullable)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MFAActive reports whether login must include a TOTP code.
func (i Identity) MFAActive() bool {
	return i.MFAEnabled != nil && i.TOTPSecret != nil
}
