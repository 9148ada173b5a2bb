package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/trackroomhq/trackroom/internal/studio/domain"
	"github.com/trackroomhq/trackroom/pkg/cryptox"
)

func TestSendInviteAuthorization(t *testing.T) {
	st := newTestStore(t)
	notifier := &captureNotifier{}
	svc := &InviteService{Store: st, Notifier: notifier}
	ctx := context.Background()

	owner := seedIdentity(t, st, "owner@example.com")
	studio := seedStudio(t, st, owner, "Echo Chamber")
	member := seedIdentity(t, st, "member@example.com")
	seedMember(t, st, studio, member, domain.RoleMember)
	outsider := seedIdentity(t, st, "outsider@example.com")

	t.Run("members cannot invite", func(t *testing.T) {
		_, err := svc.SendInvite(ctx, member.ID, studio.ID, "new@example.com", domain.RoleMember)
		require.Equal(t, KindInsufficientPermissions, KindOf(err))
	})

	t.Run("non-members cannot invite", func(t *testing.T) {
		_, err := svc.SendInvite(ctx, outsider.ID, studio.ID, "new@example.com", domain.RoleMember)
		require.Equal(t, KindNotAMember, KindOf(err))
	})

	t.Run("owner role cannot be granted", func(t *testing.T) {
		_, err := svc.SendInvite(ctx, owner.ID, studio.ID, "new@example.com", domain.RoleOwner)
		require.Equal(t, KindValidation, KindOf(err))
	})

	t.Run("active members cannot be re-invited", func(t *testing.T) {
		_, err := svc.SendInvite(ctx, owner.ID, studio.ID, member.Email, domain.RoleAdmin)
		require.Equal(t, KindValidation, KindOf(err))
	})
}

func TestSendInviteRefreshesPending(t *testing.T) {
	st := newTestStore(t)
	notifier := &captureNotifier{}
	svc := &InviteService{Store: st, Notifier: notifier}
	ctx := context.Background()

	owner := seedIdentity(t, st, "owner@example.com")
	studio := seedStudio(t, st, owner, "Echo Chamber")

	first, err := svc.SendInvite(ctx, owner.ID, studio.ID, "New@Example.com", domain.RoleMember)
	require.NoError(t, err)
	require.Equal(t, "new@example.com", first.Email)

	second, err := svc.SendInvite(ctx, owner.ID, studio.ID, "new@example.com", domain.RoleAdmin)
	require.NoError(t, err)

	// Same row, rotated token, role updated to the re-invite's.
	require.Equal(t, first.ID, second.ID)
	require.NotEqual(t, first.TokenHash, second.TokenHash)
	require.Equal(t, domain.RoleAdmin, second.Role)
	require.Len(t, notifier.inviteTokens, 2)

	invites, err := svc.ListInvites(ctx, owner.ID, studio.ID)
	require.NoError(t, err)
	require.Len(t, invites, 1)
	require.Equal(t, domain.RoleAdmin, invites[0].Role)

	// Accepting after the refresh grants the refreshed role.
	invitee := seedIdentity(t, st, "new@example.com")
	res, err := svc.AcceptByToken(ctx, invitee.ID, notifier.inviteTokens[1])
	require.NoError(t, err)
	require.Equal(t, studio.ID, res.StudioID)

	m, err := st.Memberships().GetMembership(ctx, studio.ID, invitee.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, m.Role)
}

func TestAcceptByTokenRoundTrip(t *testing.T) {
	st := newTestStore(t)
	notifier := &captureNotifier{}
	svc := &InviteService{Store: st, Notifier: notifier}
	ctx := context.Background()

	owner := seedIdentity(t, st, "owner@example.com")
	studio := seedStudio(t, st, owner, "Echo Chamber")
	invitee := seedIdentity(t, st, "invitee@example.com")

	inv, err := svc.SendInvite(ctx, owner.ID, studio.ID, invitee.Email, domain.RoleAdmin)
	require.NoError(t, err)

	// The persisted hash matches the fingerprint of the delivered token.
	require.Len(t, notifier.inviteTokens, 1)
	raw := notifier.inviteTokens[0]
	require.Equal(t, inv.TokenHash, cryptox.FingerprintToken(raw))

	res, err := svc.AcceptByToken(ctx, invitee.ID, raw)
	require.NoError(t, err)
	require.Equal(t, studio.ID, res.StudioID)
	require.False(t, res.AlreadyMember)

	m, err := st.Memberships().GetMembership(ctx, studio.ID, invitee.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, m.Role)

	got, err := st.Invitations().GetInvitationByID(ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationAccepted, got.Status)
	require.NotNil(t, got.AcceptedAt)

	t.Run("token is single use", func(t *testing.T) {
		_, err := svc.AcceptByToken(ctx, invitee.ID, raw)
		require.Equal(t, KindValidation, KindOf(err))
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		_, err := svc.AcceptByToken(ctx, invitee.ID, "not-a-token")
		require.Equal(t, KindValidation, KindOf(err))
	})
}

func TestAcceptIsIdempotent(t *testing.T) {
	st := newTestStore(t)
	svc := &InviteService{Store: st, Notifier: &captureNotifier{}}
	ctx := context.Background()

	owner := seedIdentity(t, st, "owner@example.com")
	studio := seedStudio(t, st, owner, "Echo Chamber")
	invitee := seedIdentity(t, st, "invitee@example.com")

	inv, err := svc.SendInvite(ctx, owner.ID, studio.ID, invitee.Email, domain.RoleMember)
	require.NoError(t, err)

	first, err := svc.Accept(ctx, invitee, inv)
	require.NoError(t, err)
	require.False(t, first.AlreadyMember)

	// Accepting the same record again converges instead of duplicating.
	second, err := svc.Accept(ctx, invitee, inv)
	require.NoError(t, err)
	require.True(t, second.AlreadyMember)

	members, err := st.Memberships().ListStudioMembers(ctx, studio.ID)
	require.NoError(t, err)
	require.Len(t, members, 2) // owner + invitee, no duplicate
}

func TestAcceptEligibility(t *testing.T) {
	st := newTestStore(t)
	svc := &InviteService{Store: st, Notifier: &captureNotifier{}}
	ctx := context.Background()

	owner := seedIdentity(t, st, "owner@example.com")
	studio := seedStudio(t, st, owner, "Echo Chamber")
	invitee := seedIdentity(t, st, "invitee@example.com")
	stranger := seedIdentity(t, st, "stranger@example.com")

	inv, err := svc.SendInvite(ctx, owner.ID, studio.ID, invitee.Email, domain.RoleMember)
	require.NoError(t, err)

	t.Run("wrong email rejected", func(t *testing.T) {
		_, err := svc.Accept(ctx, stranger, inv)
		require.Equal(t, KindValidation, KindOf(err))
	})

	t.Run("expired invitation rejected", func(t *testing.T) {
		stale := inv
		stale.ExpiresAt = time.Now().UTC().Add(-time.Minute)
		_, err := svc.Accept(ctx, invitee, stale)
		require.Equal(t, KindValidation, KindOf(err))
	})

	t.Run("revoked invitation rejected", func(t *testing.T) {
		require.NoError(t, svc.RevokeInvite(ctx, owner.ID, studio.ID, inv.ID))

		got, err := st.Invitations().GetInvitationByID(ctx, inv.ID)
		require.NoError(t, err)
		_, err = svc.Accept(ctx, invitee, got)
		require.Equal(t, KindValidation, KindOf(err))
	})
}

func TestRevokeInvite(t *testing.T) {
	st := newTestStore(t)
	svc := &InviteService{Store: st, Notifier: &captureNotifier{}}
	ctx := context.Background()

	owner := seedIdentity(t, st, "owner@example.com")
	studio := seedStudio(t, st, owner, "Echo Chamber")
	other := seedIdentity(t, st, "other@example.com")
	otherStudio := seedStudio(t, st, other, "Other Room")

	inv, err := svc.SendInvite(ctx, owner.ID, studio.ID, "new@example.com", domain.RoleMember)
	require.NoError(t, err)

	t.Run("cannot revoke across studios", func(t *testing.T) {
		err := svc.RevokeInvite(ctx, other.ID, otherStudio.ID, inv.ID)
		require.Equal(t, KindValidation, KindOf(err))
	})

	t.Run("revoke then double revoke", func(t *testing.T) {
		require.NoError(t, svc.RevokeInvite(ctx, owner.ID, studio.ID, inv.ID))
		err := svc.RevokeInvite(ctx, owner.ID, studio.ID, inv.ID)
		require.Equal(t, KindValidation, KindOf(err))
	})
}
