package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/trackroomhq/trackroom/internal/studio/domain"
	"github.com/trackroomhq/trackroom/internal/studio/store/drivers/sqlite"
	"github.com/trackroomhq/trackroom/pkg/cryptox"
	"github.com/trackroomhq/trackroom/pkg/idx"
)

func TestResolveStudioContext(t *testing.T) {
	t.Parallel()

	memberships := []domain.Membership{
		{StudioID: "studio-b"},
		{StudioID: "studio-a"},
	}

	t.Run("no memberships yields empty decision", func(t *testing.T) {
		decision := ResolveStudioContext("studio-a", nil)
		require.Empty(t, decision.StudioID)
		require.False(t, decision.NeedsAutoSelect)
	})

	t.Run("valid reference is kept", func(t *testing.T) {
		decision := ResolveStudioContext("studio-a", memberships)
		require.Equal(t, "studio-a", decision.StudioID)
		require.False(t, decision.NeedsAutoSelect)
	})

	t.Run("stale reference recommends first membership", func(t *testing.T) {
		decision := ResolveStudioContext("studio-gone", memberships)
		require.Equal(t, "studio-b", decision.StudioID)
		require.True(t, decision.NeedsAutoSelect)
	})

	t.Run("empty reference recommends first membership", func(t *testing.T) {
		decision := ResolveStudioContext("", memberships)
		require.Equal(t, "studio-b", decision.StudioID)
		require.True(t, decision.NeedsAutoSelect)
	})
}

func newAccessService(st *sqlite.Store) *AccessService {
	return &AccessService{
		Store:   st,
		Invites: &InviteService{Store: st, Notifier: &captureNotifier{}},
	}
}

func TestResolveRequiresIdentity(t *testing.T) {
	st := newTestStore(t)
	svc := newAccessService(st)

	_, err := svc.Resolve(context.Background(), "", "")
	require.Equal(t, KindAuthenticationRequired, KindOf(err))

	_, err = svc.Resolve(context.Background(), idx.New().String(), "")
	require.Equal(t, KindAuthenticationRequired, KindOf(err))
}

func TestResolveNoStudios(t *testing.T) {
	st := newTestStore(t)
	svc := newAccessService(st)
	identity := seedIdentity(t, st, "solo@example.com")

	res, err := svc.Resolve(context.Background(), identity.ID, "")
	require.NoError(t, err)
	require.Equal(t, StateNoStudios, res.State)
	require.Empty(t, res.StudioID)
}

func TestResolveSingleStudioAutoSelects(t *testing.T) {
	st := newTestStore(t)
	svc := newAccessService(st)

	owner := seedIdentity(t, st, "owner@example.com")
	studio := seedStudio(t, st, owner, "Echo Chamber")

	res, err := svc.Resolve(context.Background(), owner.ID, "")
	require.NoError(t, err)
	require.Equal(t, StateReady, res.State)
	require.Equal(t, studio.ID, res.StudioID)
	require.True(t, res.CommitStudioRef)
}

func TestResolveValidReferenceIsAuthoritative(t *testing.T) {
	st := newTestStore(t)
	svc := newAccessService(st)

	owner := seedIdentity(t, st, "owner@example.com")
	first := seedStudio(t, st, owner, "First Room")
	seedStudio(t, st, owner, "Second Room")

	res, err := svc.Resolve(context.Background(), owner.ID, first.ID)
	require.NoError(t, err)
	require.Equal(t, StateReady, res.State)
	require.Equal(t, first.ID, res.StudioID)
	require.False(t, res.CommitStudioRef)
}

func TestResolveMultipleStudiosNeedsPicker(t *testing.T) {
	st := newTestStore(t)
	svc := newAccessService(st)

	owner := seedIdentity(t, st, "owner@example.com")
	seedStudio(t, st, owner, "First Room")
	seedStudio(t, st, owner, "Second Room")

	res, err := svc.Resolve(context.Background(), owner.ID, "stale-reference")
	require.NoError(t, err)
	require.Equal(t, StateNeedsPicker, res.State)
	require.Len(t, res.Memberships, 2)
}

func TestResolveSingleInvitationAcceptedInline(t *testing.T) {
	st := newTestStore(t)
	svc := newAccessService(st)
	ctx := context.Background()

	owner := seedIdentity(t, st, "owner@example.com")
	studio := seedStudio(t, st, owner, "Echo Chamber")
	invitee := seedIdentity(t, st, "invitee@example.com")

	// The invitee already owns a studio of their own; the fresh invitation
	// still takes priority.
	own := seedStudio(t, st, invitee, "Side Project")

	_, err := svc.Invites.SendInvite(ctx, owner.ID, studio.ID, invitee.Email, domain.RoleMember)
	require.NoError(t, err)

	res, err := svc.Resolve(ctx, invitee.ID, own.ID)
	require.NoError(t, err)
	require.Equal(t, StateReady, res.State)
	require.Equal(t, studio.ID, res.StudioID)
	require.True(t, res.CommitStudioRef)
	require.NotNil(t, res.Accepted)
	require.False(t, res.Accepted.AlreadyMember)

	m, err := st.Memberships().GetMembership(ctx, studio.ID, invitee.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleMember, m.Role)
	require.Equal(t, domain.MemberStatusActive, m.Status)

	// The invitation is no longer pending, so the next resolution falls
	// through to normal membership resolution.
	res, err = svc.Resolve(ctx, invitee.ID, studio.ID)
	require.NoError(t, err)
	require.Equal(t, StateReady, res.State)
	require.Equal(t, studio.ID, res.StudioID)
	require.Nil(t, res.Accepted)
}

func TestResolveAmbiguousInvitations(t *testing.T) {
	st := newTestStore(t)
	svc := newAccessService(st)
	ctx := context.Background()

	ownerA := seedIdentity(t, st, "a@example.com")
	ownerB := seedIdentity(t, st, "b@example.com")
	studioA := seedStudio(t, st, ownerA, "Room A")
	studioB := seedStudio(t, st, ownerB, "Room B")
	invitee := seedIdentity(t, st, "invitee@example.com")

	_, err := svc.Invites.SendInvite(ctx, ownerA.ID, studioA.ID, invitee.Email, domain.RoleMember)
	require.NoError(t, err)
	_, err = svc.Invites.SendInvite(ctx, ownerB.ID, studioB.ID, invitee.Email, domain.RoleAdmin)
	require.NoError(t, err)

	res, err := svc.Resolve(ctx, invitee.ID, "")
	require.NoError(t, err)
	require.Equal(t, StateAmbiguousInvites, res.State)
	require.Len(t, res.Invitations, 2)

	// No membership was created; the identity must pick first.
	_, err = st.Memberships().GetMembership(ctx, studioA.ID, invitee.ID)
	require.Error(t, err)
}

func TestResolveIgnoresExpiredInvitations(t *testing.T) {
	st := newTestStore(t)
	svc := newAccessService(st)
	ctx := context.Background()

	owner := seedIdentity(t, st, "owner@example.com")
	studio := seedStudio(t, st, owner, "Echo Chamber")
	invitee := seedIdentity(t, st, "invitee@example.com")

	expired := domain.Invitation{
		ID:        idx.New().String(),
		StudioID:  studio.ID,
		Email:     invitee.Email,
		Role:      domain.RoleMember,
		TokenHash: cryptox.FingerprintToken(cryptox.MustGenerateToken(cryptox.TokenSize256)),
		Status:    domain.InvitationPending,
		ExpiresAt: time.Now().UTC().Add(-time.Hour),
		CreatedBy: owner.ID,
	}
	require.NoError(t, st.Invitations().CreateInvitation(ctx, expired))

	res, err := svc.Resolve(ctx, invitee.ID, "")
	require.NoError(t, err)
	require.Equal(t, StateNoStudios, res.State)
}
