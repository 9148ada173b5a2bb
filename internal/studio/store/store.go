package store

import (
	"context"
	"errors"
	"time"

	"github.com/trackroomhq/trackroom/internal/studio/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrStaleRow is returned by compare-and-swap updates when the expected
	// value no longer matches, i.e. another request won the race.
	ErrStaleRow = errors.New("store: row changed concurrently")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement it. Sub-repositories keep concerns tidy and let a transaction
// expose the same surface as the root store.
type Store interface {
	Identities() Identities
	Studios() Studios
	Memberships() Memberships
	Invitations() Invitations
	InviteLinks() InviteLinks
	LoginTokens() LoginTokens
	Rooms() Rooms
	Sessions() Sessions
	Gear() Gear
	Invoices() Invoices

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction: rolled back if fn errors,
	// committed otherwise. Preferred over Tx for almost everything.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases underlying resources.
	Close() error

	// Ping verifies the database connection is alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store: the same repositories plus Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Identities interface {
	// GetIdentityByID returns an identity by id.
	GetIdentityByID(ctx context.Context, id string) (domain.Identity, error)

	// GetIdentityByEmail matches on the normalized (lower-cased) email.
	GetIdentityByEmail(ctx context.Context, email string) (domain.Identity, error)

	// CreateIdentity inserts a new identity (id is a ULID chosen by the app).
	CreateIdentity(ctx context.Context, identity domain.Identity) error

	// UpdateDisplayName mutates display_name and bumps updated_at.
	UpdateDisplayName(ctx context.Context, identityID, displayName string) error

	// SetTOTPSecret stores a pending TOTP secret for enrollment.
	SetTOTPSecret(ctx context.Context, identityID, secret string) error

	// EnableMFA marks MFA active (sets mfa_enabled to now).
	EnableMFA(ctx context.Context, identityID string) error

	// DisableMFA clears both mfa_enabled and totp_secret.
	DisableMFA(ctx context.Context, identityID string) error
}

type Studios interface {
	// CreateStudio inserts a new studio.
	CreateStudio(ctx context.Context, s domain.Studio) error

	GetStudioByID(ctx context.Context, id string) (domain.Studio, error)
	GetStudioBySlug(ctx context.Context, slug string) (domain.Studio, error)

	// UpdateStudioName renames a studio (slug is immutable).
	UpdateStudioName(ctx context.Context, studioID, name string) error
}

type Memberships interface {
	// GetMembershipByID returns a membership row regardless of status.
	GetMembershipByID(ctx context.Context, id string) (domain.Membership, error)

	// GetMembership returns the row for a (studio, identity) pair, any
	// status. There is at most one per the unique constraint.
	GetMembership(ctx context.Context, studioID, identityID string) (domain.Membership, error)

	// ListActiveMemberships returns an identity's active memberships with
	// Studio populated, ordered by studio creation descending. The studio
	// context resolver depends on this ordering.
	ListActiveMemberships(ctx context.Context, identityID string) ([]domain.Membership, error)

	// ListStudioMembers returns all non-removed memberships of a studio.
	ListStudioMembers(ctx context.Context, studioID string) ([]domain.Membership, error)

	// UpsertMembership inserts or reactivates the (studio, identity) row.
	// Keyed on the unique constraint so concurrent acceptances converge to
	// one row.
	UpsertMembership(ctx context.Context, m domain.Membership) error

	// UpdateMembershipRole is a compare-and-swap: the role is only written
	// when it still equals expected. Returns ErrStaleRow otherwise.
	UpdateMembershipRole(ctx context.Context, membershipID string, next, expected domain.Role) error

	// UpdateMembershipStatus sets the status (soft removal uses "removed").
	UpdateMembershipStatus(ctx context.Context, membershipID string, status domain.MemberStatus) error
}

type Invitations interface {
	// CreateInvitation writes a new invitation (token_hash is the SHA-256
	// fingerprint of the opaque token).
	CreateInvitation(ctx context.Context, inv domain.Invitation) error

	GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error)

	// GetPendingInvitationByTokenHash returns a pending, unexpired
	// invitation by fingerprint.
	GetPendingInvitationByTokenHash(ctx context.Context, hash string) (domain.Invitation, error)

	// GetPendingInvitation returns the pending invitation for a
	// (studio, email) pair, if any.
	GetPendingInvitation(ctx context.Context, studioID, email string) (domain.Invitation, error)

	// ListPendingInvitationsByEmail returns pending, unexpired invitations
	// for a normalized email with Studio populated, newest first.
	ListPendingInvitationsByEmail(ctx context.Context, email string) ([]domain.Invitation, error)

	// ListStudioInvitations returns all invitations of a studio, newest
	// first.
	ListStudioInvitations(ctx context.Context, studioID string) ([]domain.Invitation, error)

	// RefreshInvitation replaces the role, token hash, and expiry of a
	// pending invitation (re-sending instead of duplicating).
	RefreshInvitation(ctx context.Context, id string, role domain.Role, tokenHash string, expiresAt time.Time) error

	// MarkInvitationAccepted sets status=accepted and accepted_at.
	MarkInvitationAccepted(ctx context.Context, id string, acceptedAt time.Time) error

	// MarkInvitationRevoked sets status=revoked.
	MarkInvitationRevoked(ctx context.Context, id string) error

	// MarkInvitationsExpired flips pending invitations whose expiry has
	// passed to the terminal expired status. Rows are never hard-deleted;
	// the history stays for audit. Housekeeping.
	MarkInvitationsExpired(ctx context.Context, asOf time.Time) error
}

type InviteLinks interface {
	// GetInviteLinkByStudio returns the studio's link row, enabled or not.
	GetInviteLinkByStudio(ctx context.Context, studioID string) (domain.InviteLink, error)

	// GetEnabledInviteLinkByTokenHash returns an enabled link by
	// fingerprint.
	GetEnabledInviteLinkByTokenHash(ctx context.Context, hash string) (domain.InviteLink, error)

	// UpsertInviteLink inserts or replaces the studio's single link row.
	UpsertInviteLink(ctx context.Context, link domain.InviteLink) error

	// SetInviteLinkEnabled flips the is_enabled flag.
	SetInviteLinkEnabled(ctx context.Context, studioID string, enabled bool) error
}

type LoginTokens interface {
	CreateLoginToken(ctx context.Context, t domain.LoginToken) error

	GetLoginToken(ctx context.Context, id string) (domain.LoginToken, error)

	// ConsumeLoginToken sets consumed_at if and only if it is still null;
	// returns ErrStaleRow when the token was already consumed.
	ConsumeLoginToken(ctx context.Context, id string, consumedAt time.Time) error

	// DeleteExpiredLoginTokens removes tokens past their expiry.
	// Housekeeping.
	DeleteExpiredLoginTokens(ctx context.Context, before time.Time) error
}

type Rooms interface {
	CreateRoom(ctx context.Context, r domain.Room) error
	GetRoomByID(ctx context.Context, id string) (domain.Room, error)
	ListStudioRooms(ctx context.Context, studioID string) ([]domain.Room, error)
	DeleteRoom(ctx context.Context, id string) error
}

type Sessions interface {
	CreateSession(ctx context.Context, s domain.Session) error
	GetSessionByID(ctx context.Context, id string) (domain.Session, error)

	// ListSessionsInRange returns a studio's scheduled sessions whose
	// interval intersects [from, to), ordered by start time.
	ListSessionsInRange(ctx context.Context, studioID string, from, to time.Time) ([]domain.Session, error)

	// ListRoomSessionsOverlapping returns scheduled sessions in a room whose
	// [starts_at, ends_at) interval intersects [start, end).
	ListRoomSessionsOverlapping(ctx context.Context, roomID string, start, end time.Time) ([]domain.Session, error)

	// CancelSession sets status=cancelled.
	CancelSession(ctx context.Context, id string) error
}

type Gear interface {
	CreateGearItem(ctx context.Context, g domain.GearItem) error
	GetGearItemByID(ctx context.Context, id string) (domain.GearItem, error)
	ListStudioGear(ctx context.Context, studioID string) ([]domain.GearItem, error)
	UpdateGearItemStatus(ctx context.Context, id string, status domain.GearStatus) error
	DeleteGearItem(ctx context.Context, id string) error
}

type Invoices interface {
	// CreateInvoice writes the invoice row and its lines.
	CreateInvoice(ctx context.Context, inv domain.Invoice) error

	// GetInvoiceByID returns the invoice with Lines populated in position
	// order.
	GetInvoiceByID(ctx context.Context, id string) (domain.Invoice, error)

	// ListStudioInvoices returns a studio's invoices (without lines),
	// newest first.
	ListStudioInvoices(ctx context.Context, studioID string) ([]domain.Invoice, error)

	// UpdateInvoiceStatus is a compare-and-swap on status; returns
	// ErrStaleRow when the current status no longer matches expected.
	UpdateInvoiceStatus(ctx context.Context, id string, next, expected domain.InvoiceStatus) error
}
