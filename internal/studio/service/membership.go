package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/trackroomhq/trackroom/internal/studio/domain"
	"github.com/trackroomhq/trackroom/internal/studio/store"
	"github.com/trackroomhq/trackroom/pkg/slogx"
)

type MembershipService struct {
	Store store.Store
}

// ListMembers returns a studio's non-removed memberships. Any active member
// may see the roster.
func (s *MembershipService) ListMembers(ctx context.Context, actorID, studioID string) ([]domain.Membership, error) {
	if _, err := requireMember(ctx, s.Store, studioID, actorID, domain.RoleMember); err != nil {
		return nil, err
	}

	members, err := s.Store.Memberships().ListStudioMembers(ctx, studioID)
	if err != nil {
		return nil, dbError(err)
	}
	return members, nil
}

// ChangeRole sets a member's role. Actor and target roles are re-read inside
// the transaction and the write is a compare-and-swap on the target's role,
// so a decision computed against stale roles never lands.
func (s *MembershipService) ChangeRole(ctx context.Context, actorID, studioID, membershipID string, next domain.Role) error {
	log := slogx.FromContext(ctx)

	if _, ok := domain.ParseRole(string(next)); !ok {
		return E(KindValidation, "unknown role")
	}

	// Cheap pre-check outside the transaction; authoritative re-read below.
	if _, err := requireMember(ctx, s.Store, studioID, actorID, domain.RoleMember); err != nil {
		return err
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		actor, err := tx.Memberships().GetMembership(ctx, studioID, actorID)
		if err != nil || actor.Status != domain.MemberStatusActive {
			if err != nil && !errors.Is(err, store.ErrNotFound) {
				return err
			}
			return E(KindNotAMember, "you are not a member of this studio")
		}

		target, err := tx.Memberships().GetMembershipByID(ctx, membershipID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return E(KindMembershipNotFound, "membership not found")
			}
			return err
		}
		if target.StudioID != studioID || target.Status == domain.MemberStatusRemoved {
			return E(KindMembershipNotFound, "membership not found")
		}

		allowed, reason := domain.CanChangeRole(actor.Role, target.Role, target.IdentityID == actorID, next)
		if !allowed {
			log.Warn("role change denied",
				slog.String("studio_id", studioID),
				slog.String("actor_id", actorID),
				slog.String("membership_id", membershipID),
				slog.String("reason", string(reason)),
			)
			if reason == domain.DenyTargetOwner {
				return E(KindCannotChangeOwner, "the owner role cannot be changed")
			}
			return E(KindInsufficientPermissions, "you are not allowed to make this role change")
		}

		if err := tx.Memberships().UpdateMembershipRole(ctx, membershipID, next, target.Role); err != nil {
			if errors.Is(err, store.ErrStaleRow) {
				return E(KindValidation, "the member's role changed concurrently; try again")
			}
			return err
		}
		return nil
	})
	if err != nil {
		var se *Error
		if errors.As(err, &se) {
			return se
		}
		log.Error("failed to change role",
			slog.String("studio_id", studioID),
			slog.String("membership_id", membershipID),
			slog.Any("error", err),
		)
		return dbError(err)
	}

	log.Info("role changed",
		slog.String("studio_id", studioID),
		slog.String("membership_id", membershipID),
		slog.String("role", string(next)),
	)
	return nil
}

// RemoveMember soft-removes a membership. Owners cannot be removed; admins
// and the owner may remove others.
func (s *MembershipService) RemoveMember(ctx context.Context, actorID, studioID, membershipID string) error {
	log := slogx.FromContext(ctx)

	actor, err := requireMember(ctx, s.Store, studioID, actorID, domain.RoleAdmin)
	if err != nil {
		return err
	}

	target, err := s.Store.Memberships().GetMembershipByID(ctx, membershipID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return E(KindMembershipNotFound, "membership not found")
		}
		return dbError(err)
	}
	if target.StudioID != studioID || target.Status == domain.MemberStatusRemoved {
		return E(KindMembershipNotFound, "membership not found")
	}
	if target.Role == domain.RoleOwner {
		return E(KindCannotChangeOwner, "the owner cannot be removed")
	}
	if target.IdentityID == actorID && actor.Role != domain.RoleOwner {
		return E(KindInsufficientPermissions, "use leave to remove yourself")
	}

	if err := s.Store.Memberships().UpdateMembershipStatus(ctx, membershipID, domain.MemberStatusRemoved); err != nil {
		return dbError(err)
	}

	log.Info("member removed",
		slog.String("studio_id", studioID),
		slog.String("membership_id", membershipID),
	)
	return nil
}

// Leave soft-removes the identity's own membership. The owner cannot leave;
// ownership transfer is out of scope of this path.
func (s *MembershipService) Leave(ctx context.Context, identityID, studioID string) error {
	m, err := requireMember(ctx, s.Store, studioID, identityID, domain.RoleMember)
	if err != nil {
		return err
	}
	if m.Role == domain.RoleOwner {
		return E(KindCannotChangeOwner, "the owner cannot leave their own studio")
	}

	if err := s.Store.Memberships().UpdateMembershipStatus(ctx, m.ID, domain.MemberStatusRemoved); err != nil {
		return dbError(err)
	}
	return nil
}
