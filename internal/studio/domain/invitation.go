package domain

import (
	"strings"
	"time"
)

// InvitationStatus tracks an invitation's lifecycle. Rows are never hard
// deleted; accepted, revoked, and expired are terminal states kept for audit.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationRevoked  InvitationStatus = "revoked"
	InvitationExpired  InvitationStatus = "expired"
)

// Invitation is a single-use, email-targeted, time-limited offer to join a
// studio at a given role. The raw token is only ever held by the invitee; the
// store keeps its SHA-256 fingerprint.
type Invitation struct {
	ID         string
	StudioID   string
	Email      string // normalized lower-case
	Role       Role   // admin or member, never owner
	TokenHash  string
	Status     InvitationStatus
	ExpiresAt  time.Time
	AcceptedAt *time.Time
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Studio is populated by queries that join the studios table.
	Studio Studio
}

// Acceptable reports whether the invitation can still be redeemed at now.
// Pure over its inputs; callers inject the clock.
func (i Invitation) Acceptable(now time.Time) bool {
	if i.Status != InvitationPending {
		return false
	}
	if i.AcceptedAt != nil {
		return false
	}
	if i.ExpiresAt.IsZero() {
		return false
	}
	return i.ExpiresAt.After(now)
}

// NormalizeEmail lower-cases and trims an email address. Invite matching is
// case-insensitive, so every email that touches the invitations table goes
// through this first.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
