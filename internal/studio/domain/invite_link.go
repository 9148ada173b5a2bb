package domain

import "time"

// InviteLink is a studio's long-lived shareable enrollment token: one per
// studio, toggleable, with a fixed default role. Distinct from per-email
// invitations; anyone holding the raw token may self-enroll while enabled.
type InviteLink struct {
	ID          string
	StudioID    string
	TokenHash   string
	DefaultRole Role // never owner
	Enabled     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
