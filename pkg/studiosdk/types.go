package studiosdk

import "time"

// ErrorResponse is the JSON error body every endpoint returns on failure.
// Client code should use the APIError type from errors.go instead.
type ErrorResponse struct {
	// Error is the machine-readable error code (e.g., "validation_error").
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error.
	ErrorDescription string `json:"error_description"`
}

// ============================================================================
// Authentication
// ============================================================================

// LoginRequest asks for a magic-link login email.
type LoginRequest struct {
	// Email is the address the magic link is sent to. The identity is
	// created on first login.
	Email string `json:"email"`

	// DisplayName is used when creating a new identity; ignored otherwise.
	DisplayName string `json:"display_name,omitempty"`
}

// LoginResponse acknowledges a magic-link request.
type LoginResponse struct {
	// Sent is true when the login email was dispatched.
	Sent bool `json:"sent"`

	// DebugToken carries the raw login token in dev/test environments where
	// no email is sent. Never populated in production.
	DebugToken string `json:"debug_token,omitempty"`
}

// RedeemRequest exchanges a magic-link token for a session.
type RedeemRequest struct {
	// Token is the raw login token from the magic link.
	Token string `json:"token"`

	// TOTPCode is required when the identity has MFA active.
	TOTPCode string `json:"totp_code,omitempty"`
}

// SessionResponse is returned after a successful login redemption.
type SessionResponse struct {
	// Token is the signed session token, also set as an HttpOnly cookie.
	Token string `json:"token"`

	// ExpiresIn is the session lifetime in seconds.
	ExpiresIn int `json:"expires_in"`

	Identity Identity `json:"identity"`
}

// Identity is the authenticated principal.
type Identity struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	MFAActive   bool   `json:"mfa_active"`
}

// UpdateProfileRequest changes the identity's display name.
type UpdateProfileRequest struct {
	DisplayName string `json:"display_name"`
}

// ============================================================================
// Access Resolution
// ============================================================================

// AccessResponse is the outcome of resolving which studio context applies.
// State is one of "ready", "no-studios", "needs-picker", "ambiguous-invites".
type AccessResponse struct {
	State    string `json:"state"`
	StudioID string `json:"studio_id,omitempty"`

	// Memberships is populated when State is "needs-picker".
	Memberships []Membership `json:"memberships,omitempty"`

	// Invitations is populated when State is "ambiguous-invites".
	Invitations []Invitation `json:"invitations,omitempty"`

	// AcceptedInvitation reports an invitation auto-accepted during this
	// resolution.
	AcceptedInvitation *AcceptResponse `json:"accepted_invitation,omitempty"`
}

// SwitchStudioRequest selects the current studio for the session.
type SwitchStudioRequest struct {
	StudioID string `json:"studio_id"`
}

// ============================================================================
// Studios & Members
// ============================================================================

type Studio struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateStudioRequest struct {
	Name string `json:"name"`
}

type Membership struct {
	ID         string    `json:"id"`
	StudioID   string    `json:"studio_id"`
	IdentityID string    `json:"identity_id"`
	Role       string    `json:"role"`
	Status     string    `json:"status"`
	JoinedAt   time.Time `json:"joined_at"`

	// Studio is populated by listings that join studio data.
	Studio *Studio `json:"studio,omitempty"`
}

type ChangeRoleRequest struct {
	Role string `json:"role"`
}

// ============================================================================
// Invitations & Invite Links
// ============================================================================

type Invitation struct {
	ID         string     `json:"id"`
	StudioID   string     `json:"studio_id"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	Status     string     `json:"status"`
	ExpiresAt  time.Time  `json:"expires_at"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`

	Studio *Studio `json:"studio,omitempty"`
}

type SendInviteRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type AcceptInviteRequest struct {
	// Token redeems an emailed invitation token. Mutually exclusive with
	// InvitationID.
	Token string `json:"token,omitempty"`

	// InvitationID accepts a specific pending invitation addressed to the
	// authenticated identity (the ambiguous-invites picker path).
	InvitationID string `json:"invitation_id,omitempty"`
}

type AcceptResponse struct {
	StudioID      string `json:"studio_id"`
	AlreadyMember bool   `json:"already_member"`
}

type InviteLink struct {
	StudioID    string `json:"studio_id"`
	DefaultRole string `json:"default_role"`
	Enabled     bool   `json:"enabled"`
}

type RotateInviteLinkRequest struct {
	DefaultRole string `json:"default_role"`
}

type RotateInviteLinkResponse struct {
	// Token is the raw link token, shown once.
	Token string     `json:"token"`
	Link  InviteLink `json:"link"`
}

type SetInviteLinkEnabledRequest struct {
	Enabled bool `json:"enabled"`
}

type JoinByLinkRequest struct {
	Token string `json:"token"`
}

// ============================================================================
// Scheduling
// ============================================================================

type Room struct {
	ID              string `json:"id"`
	StudioID        string `json:"studio_id"`
	Name            string `json:"name"`
	HourlyRateCents int64  `json:"hourly_rate_cents"`
}

type CreateRoomRequest struct {
	Name            string `json:"name"`
	HourlyRateCents int64  `json:"hourly_rate_cents"`
}

// StudioSession is a room booking. Named to avoid clashing with the SDK's
// authenticated Session type.
type StudioSession struct {
	ID       string    `json:"id"`
	StudioID string    `json:"studio_id"`
	RoomID   string    `json:"room_id"`
	Title    string    `json:"title"`
	BookedBy string    `json:"booked_by"`
	Status   string    `json:"status"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

type BookSessionRequest struct {
	RoomID   string    `json:"room_id"`
	Title    string    `json:"title"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

// ============================================================================
// Gear
// ============================================================================

type GearItem struct {
	ID           string `json:"id"`
	StudioID     string `json:"studio_id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	SerialNumber string `json:"serial_number"`
	Status       string `json:"status"`
	Notes        string `json:"notes"`
}

type AddGearRequest struct {
	Name         string `json:"name"`
	Category     string `json:"category,omitempty"`
	SerialNumber string `json:"serial_number,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

type SetGearStatusRequest struct {
	Status string `json:"status"`
}

// ============================================================================
// Invoicing
// ============================================================================

type InvoiceLine struct {
	Description string `json:"description"`
	Quantity    int64  `json:"quantity"`
	UnitCents   int64  `json:"unit_cents"`
}

type CreateInvoiceRequest struct {
	Number      string        `json:"number"`
	ClientName  string        `json:"client_name"`
	ClientEmail string        `json:"client_email,omitempty"`
	TaxRateBps  int64         `json:"tax_rate_bps"`
	Lines       []InvoiceLine `json:"lines"`
}

type Invoice struct {
	ID            string        `json:"id"`
	StudioID      string        `json:"studio_id"`
	Number        string        `json:"number"`
	ClientName    string        `json:"client_name"`
	ClientEmail   string        `json:"client_email,omitempty"`
	Status        string        `json:"status"`
	TaxRateBps    int64         `json:"tax_rate_bps"`
	SubtotalCents int64         `json:"subtotal_cents"`
	TaxCents      int64         `json:"tax_cents"`
	TotalCents    int64         `json:"total_cents"`
	Lines         []InvoiceLine `json:"lines,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

type SetInvoiceStatusRequest struct {
	Status string `json:"status"`
}

// ============================================================================
// MFA
// ============================================================================

type MFAEnrollResponse struct {
	Secret  string `json:"secret"`
	URL     string `json:"url"`
	Issuer  string `json:"issuer"`
	Account string `json:"account"`
}

type MFACodeRequest struct {
	Code string `json:"code"`
}

// ============================================================================
// System
// ============================================================================

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Uptime  string `json:"uptime,omitempty"`
}
