package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/trackroomhq/trackroom/internal/studio/domain"
	"github.com/trackroomhq/trackroom/internal/studio/store"
	"github.com/trackroomhq/trackroom/pkg/cryptox"
	"github.com/trackroomhq/trackroom/pkg/idx"
	"github.com/trackroomhq/trackroom/pkg/slogx"
)

// DefaultInviteTTL bounds how long an emailed invitation stays acceptable.
const DefaultInviteTTL = 7 * 24 * time.Hour

type InviteService struct {
	Store    store.Store
	Notifier Notifier

	// InviteTTL overrides DefaultInviteTTL when positive.
	InviteTTL time.Duration
}

func (s *InviteService) inviteTTL() time.Duration {
	if s.InviteTTL > 0 {
		return s.InviteTTL
	}
	return DefaultInviteTTL
}

// AcceptResult reports the outcome of an invitation acceptance.
type AcceptResult struct {
	StudioID      string
	AlreadyMember bool
}

// SendInvite creates (or refreshes) a pending invitation for an email address
// and delivers the raw token. Re-inviting the same email rotates the token
// and extends the expiry instead of stacking duplicate rows.
func (s *InviteService) SendInvite(
	ctx context.Context,
	actorID, studioID, email string,
	role domain.Role,
) (domain.Invitation, error) {
	log := slogx.FromContext(ctx)

	if _, err := requireMember(ctx, s.Store, studioID, actorID, domain.RoleAdmin); err != nil {
		return domain.Invitation{}, err
	}

	if role != domain.RoleAdmin && role != domain.RoleMember {
		return domain.Invitation{}, E(KindValidation, "invitations may only grant the admin or member role")
	}

	email = domain.NormalizeEmail(email)
	if email == "" {
		return domain.Invitation{}, E(KindValidation, "a valid email address is required")
	}

	// An already-active member has nothing to accept.
	if existing, err := s.Store.Identities().GetIdentityByEmail(ctx, email); err == nil {
		m, err := s.Store.Memberships().GetMembership(ctx, studioID, existing.ID)
		if err == nil && m.Status == domain.MemberStatusActive {
			return domain.Invitation{}, E(KindValidation, "that email already belongs to an active member")
		}
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return domain.Invitation{}, dbError(err)
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.Invitation{}, dbError(err)
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate invite token", slog.Any("error", err))
		return domain.Invitation{}, internalError(err)
	}
	fingerprint := cryptox.FingerprintToken(token)
	expiresAt := time.Now().UTC().Add(s.inviteTTL())

	inv, err := s.Store.Invitations().GetPendingInvitation(ctx, studioID, email)
	switch {
	case err == nil:
		// Refresh the existing pending invitation instead of duplicating.
		// The re-invite's role wins; the sender may be correcting it.
		if err := s.Store.Invitations().RefreshInvitation(ctx, inv.ID, role, fingerprint, expiresAt); err != nil {
			log.Error("failed to refresh invitation", slog.Any("error", err))
			return domain.Invitation{}, dbError(err)
		}
		inv.Role = role
		inv.TokenHash = fingerprint
		inv.ExpiresAt = expiresAt
	case errors.Is(err, store.ErrNotFound):
		inv = domain.Invitation{
			ID:        idx.New().String(),
			StudioID:  studioID,
			Email:     email,
			Role:      role,
			TokenHash: fingerprint,
			Status:    domain.InvitationPending,
			ExpiresAt: expiresAt,
			CreatedBy: actorID,
		}
		if err := s.Store.Invitations().CreateInvitation(ctx, inv); err != nil {
			log.Error("failed to create invitation", slog.Any("error", err))
			return domain.Invitation{}, dbError(err)
		}
	default:
		return domain.Invitation{}, dbError(err)
	}

	studio, err := s.Store.Studios().GetStudioByID(ctx, studioID)
	if err != nil {
		return domain.Invitation{}, dbError(err)
	}
	if err := s.Notifier.SendInvitation(ctx, email, studio.Name, token); err != nil {
		// Delivery failures leave the invitation intact; the sender can
		// re-invite to rotate the token and retry.
		log.Warn("failed to deliver invitation email",
			slog.String("invitation_id", inv.ID),
			slog.Any("error", err),
		)
	}

	log.Info("invitation sent",
		slog.String("studio_id", studioID),
		slog.String("invitation_id", inv.ID),
		slog.String("role", string(role)),
	)
	return inv, nil
}

// RevokeInvite cancels a pending invitation.
func (s *InviteService) RevokeInvite(ctx context.Context, actorID, studioID, invitationID string) error {
	if _, err := requireMember(ctx, s.Store, studioID, actorID, domain.RoleAdmin); err != nil {
		return err
	}

	inv, err := s.Store.Invitations().GetInvitationByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return E(KindValidation, "invitation not found")
		}
		return dbError(err)
	}
	if inv.StudioID != studioID {
		return E(KindValidation, "invitation not found")
	}

	if err := s.Store.Invitations().MarkInvitationRevoked(ctx, invitationID); err != nil {
		if errors.Is(err, store.ErrStaleRow) {
			return E(KindValidation, "invitation is no longer pending")
		}
		return dbError(err)
	}
	return nil
}

// ListInvites returns every invitation of a studio, newest first.
func (s *InviteService) ListInvites(ctx context.Context, actorID, studioID string) ([]domain.Invitation, error) {
	if _, err := requireMember(ctx, s.Store, studioID, actorID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	invites, err := s.Store.Invitations().ListStudioInvitations(ctx, studioID)
	if err != nil {
		return nil, dbError(err)
	}
	return invites, nil
}

// Accept redeems an invitation for an identity. Effectively-at-most-once:
// the membership upsert is keyed on the (studio, identity) unique constraint
// so concurrent acceptances converge to one row, and a second acceptance
// reports AlreadyMember instead of failing.
//
// Marking the invitation accepted is deliberately best-effort relative to the
// membership write: once the member exists the acceptance has succeeded, and
// a failed status update is logged for monitoring rather than unwinding the
// membership.
func (s *InviteService) Accept(ctx context.Context, identity domain.Identity, inv domain.Invitation) (AcceptResult, error) {
	log := slogx.FromContext(ctx)
	now := time.Now().UTC()

	if domain.NormalizeEmail(identity.Email) != inv.Email {
		return AcceptResult{}, E(KindValidation, "this invitation was issued for a different email address")
	}
	if !inv.Acceptable(now) {
		return AcceptResult{}, E(KindValidation, "this invitation is no longer valid")
	}

	var alreadyMember bool
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		existing, err := tx.Memberships().GetMembership(ctx, inv.StudioID, identity.ID)
		if err == nil && existing.Status == domain.MemberStatusActive {
			alreadyMember = true
			return nil
		}
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}

		m := domain.Membership{
			ID:         idx.New().String(),
			StudioID:   inv.StudioID,
			IdentityID: identity.ID,
			Role:       inv.Role,
			Status:     domain.MemberStatusActive,
			JoinedAt:   now,
		}
		if err == nil {
			// Reuse the existing row's id so the upsert reactivates it.
			m.ID = existing.ID
		}
		return tx.Memberships().UpsertMembership(ctx, m)
	})
	if err != nil {
		log.Error("failed to accept invitation",
			slog.String("invitation_id", inv.ID),
			slog.String("studio_id", inv.StudioID),
			slog.String("identity_id", identity.ID),
			slog.Any("error", err),
		)
		return AcceptResult{}, dbError(err)
	}

	if err := s.Store.Invitations().MarkInvitationAccepted(ctx, inv.ID, now); err != nil {
		// The membership exists; the row staying "pending" is a known
		// relaxed-consistency state, surfaced here for monitoring.
		log.Warn("membership created but invitation not marked accepted",
			slog.String("invitation_id", inv.ID),
			slog.String("studio_id", inv.StudioID),
			slog.Any("error", err),
		)
	}

	log.Info("invitation accepted",
		slog.String("invitation_id", inv.ID),
		slog.String("studio_id", inv.StudioID),
		slog.String("identity_id", identity.ID),
		slog.Bool("already_member", alreadyMember),
	)
	return AcceptResult{StudioID: inv.StudioID, AlreadyMember: alreadyMember}, nil
}

// AcceptByToken resolves a raw invitation token to its record and accepts it
// on behalf of an identity.
func (s *InviteService) AcceptByToken(ctx context.Context, identityID, rawToken string) (AcceptResult, error) {
	identity, err := s.Store.Identities().GetIdentityByID(ctx, identityID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return AcceptResult{}, E(KindAuthenticationRequired, "unknown identity")
		}
		return AcceptResult{}, dbError(err)
	}

	inv, err := s.Store.Invitations().GetPendingInvitationByTokenHash(ctx, cryptox.FingerprintToken(rawToken))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return AcceptResult{}, E(KindValidation, "invalid or expired invitation")
		}
		return AcceptResult{}, dbError(err)
	}

	return s.Accept(ctx, identity, inv)
}

// AcceptByID accepts a specific pending invitation addressed to the identity.
// Used when the identity picks one of several pending invitations.
func (s *InviteService) AcceptByID(ctx context.Context, identityID, invitationID string) (AcceptResult, error) {
	identity, err := s.Store.Identities().GetIdentityByID(ctx, identityID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return AcceptResult{}, E(KindAuthenticationRequired, "unknown identity")
		}
		return AcceptResult{}, dbError(err)
	}

	inv, err := s.Store.Invitations().GetInvitationByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return AcceptResult{}, E(KindValidation, "invitation not found")
		}
		return AcceptResult{}, dbError(err)
	}

	return s.Accept(ctx, identity, inv)
}
