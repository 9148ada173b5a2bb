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

type InviteLinkService struct {
	Store store.Store
}

// GetLink returns the studio's invite link row. The raw token is only ever
// returned by RotateLink.
func (s *InviteLinkService) GetLink(ctx context.Context, actorID, studioID string) (domain.InviteLink, error) {
	if _, err := requireMember(ctx, s.Store, studioID, actorID, domain.RoleAdmin); err != nil {
		return domain.InviteLink{}, err
	}

	link, err := s.Store.InviteLinks().GetInviteLinkByStudio(ctx, studioID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.InviteLink{}, E(KindValidation, "this studio has no invite link yet")
		}
		return domain.InviteLink{}, dbError(err)
	}
	return link, nil
}

// RotateLink mints a fresh link token at the given default role, replacing
// any previous token, and returns the raw token once. Rotation enables the
// link.
func (s *InviteLinkService) RotateLink(ctx context.Context, actorID, studioID string, defaultRole domain.Role) (string, domain.InviteLink, error) {
	log := slogx.FromContext(ctx)

	if _, err := requireMember(ctx, s.Store, studioID, actorID, domain.RoleAdmin); err != nil {
		return "", domain.InviteLink{}, err
	}
	if defaultRole != domain.RoleAdmin && defaultRole != domain.RoleMember {
		return "", domain.InviteLink{}, E(KindValidation, "invite links may only grant the admin or member role")
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate invite link token", slog.Any("error", err))
		return "", domain.InviteLink{}, internalError(err)
	}

	link := domain.InviteLink{
		ID:          idx.New().String(),
		StudioID:    studioID,
		TokenHash:   cryptox.FingerprintToken(token),
		DefaultRole: defaultRole,
		Enabled:     true,
	}
	if err := s.Store.InviteLinks().UpsertInviteLink(ctx, link); err != nil {
		log.Error("failed to store invite link", slog.Any("error", err))
		return "", domain.InviteLink{}, dbError(err)
	}

	log.Info("invite link rotated",
		slog.String("studio_id", studioID),
		slog.String("default_role", string(defaultRole)),
	)
	return token, link, nil
}

// SetEnabled toggles the invite link without rotating its token.
func (s *InviteLinkService) SetEnabled(ctx context.Context, actorID, studioID string, enabled bool) error {
	if _, err := requireMember(ctx, s.Store, studioID, actorID, domain.RoleAdmin); err != nil {
		return err
	}

	if err := s.Store.InviteLinks().SetInviteLinkEnabled(ctx, studioID, enabled); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return E(KindValidation, "this studio has no invite link yet")
		}
		return dbError(err)
	}
	return nil
}

// Join self-enrolls an identity through an enabled invite link at the link's
// default role. Like invitation acceptance, the membership upsert converges
// concurrent joins onto one row.
func (s *InviteLinkService) Join(ctx context.Context, identityID, rawToken string) (AcceptResult, error) {
	log := slogx.FromContext(ctx)

	link, err := s.Store.InviteLinks().GetEnabledInviteLinkByTokenHash(ctx, cryptox.FingerprintToken(rawToken))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return AcceptResult{}, E(KindValidation, "invalid or disabled invite link")
		}
		return AcceptResult{}, dbError(err)
	}

	var alreadyMember bool
	now := time.Now().UTC()
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		existing, err := tx.Memberships().GetMembership(ctx, link.StudioID, identityID)
		if err == nil && existing.Status == domain.MemberStatusActive {
			alreadyMember = true
			return nil
		}
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}

		m := domain.Membership{
			ID:         idx.New().String(),
			StudioID:   link.StudioID,
			IdentityID: identityID,
			Role:       link.DefaultRole,
			Status:     domain.MemberStatusActive,
			JoinedAt:   now,
		}
		if err == nil {
			m.ID = existing.ID
		}
		return tx.Memberships().UpsertMembership(ctx, m)
	})
	if err != nil {
		log.Error("failed to join via invite link",
			slog.String("studio_id", link.StudioID),
			slog.String("identity_id", identityID),
			slog.Any("error", err),
		)
		return AcceptResult{}, dbError(err)
	}

	log.Info("joined via invite link",
		slog.String("studio_id", link.StudioID),
		slog.String("identity_id", identityID),
		slog.Bool("already_member", alreadyMember),
	)
	return AcceptResult{StudioID: link.StudioID, AlreadyMember: alreadyMember}, nil
}
