package studio_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trackroomhq/trackroom/pkg/studiosdk"
)

func findMembership(t *testing.T, members []studiosdk.Membership, email string, session *studiosdk.Session, identityID string) studiosdk.Membership {
	t.Helper()
	for _, m := range members {
		if m.IdentityID == identityID {
			return m
		}
	}
	t.Fatalf("membership for %s not found", email)
	return studiosdk.Membership{}
}

func TestMembershipManagement(t *testing.T) {
	baseURL, cleanup := setupStudioContainer(t)
	defer cleanup()

	client := studiosdk.NewSDKClient(baseURL)
	ctx := context.Background()

	owner, studio := createStudioWithOwner(t, client, "boss@example.com", "Boss Studio")
	member := inviteAndAccept(t, client, owner, studio.ID, "crew@example.com", "member")

	members, err := owner.ListMembers(ctx, studio.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)

	ownerMembership := findMembership(t, members, "boss@example.com", owner, owner.Identity().ID)
	crewMembership := findMembership(t, members, "crew@example.com", member, member.Identity().ID)
	require.Equal(t, "owner", ownerMembership.Role)
	require.Equal(t, "member", crewMembership.Role)

	t.Run("owner promotes a member", func(t *testing.T) {
		require.NoError(t, owner.ChangeMemberRole(ctx, studio.ID, crewMembership.ID, "admin"))

		refreshed, err := owner.ListMembers(ctx, studio.ID)
		require.NoError(t, err)
		require.Equal(t, "admin", findMembership(t, refreshed, "crew@example.com", member, member.Identity().ID).Role)
	})

	t.Run("admin cannot grant owner", func(t *testing.T) {
		err := member.ChangeMemberRole(ctx, studio.ID, crewMembership.ID, "owner")
		assertAPIError(t, err, studiosdk.ErrorCodeInsufficientPermissions, "admin granting owner")
	})

	t.Run("owner role is immutable", func(t *testing.T) {
		err := owner.ChangeMemberRole(ctx, studio.ID, ownerMembership.ID, "member")
		assertAPIError(t, err, studiosdk.ErrorCodeCannotChangeOwner, "demoting the owner")
	})

	t.Run("unknown membership", func(t *testing.T) {
		err := owner.ChangeMemberRole(ctx, studio.ID, "01ZZZZZZZZZZZZZZZZZZZZZZZZ", "member")
		assertAPIError(t, err, studiosdk.ErrorCodeMembershipNotFound, "changing an unknown membership")
	})

	t.Run("outsider denied", func(t *testing.T) {
		outsider := loginAs(t, client, "outsider@example.com", "Outsider")
		err := outsider.ChangeMemberRole(ctx, studio.ID, crewMembership.ID, "member")
		assertAPIError(t, err, studiosdk.ErrorCodeNotAMember, "outsider changing roles")
	})

	t.Run("owner cannot leave", func(t *testing.T) {
		err := owner.LeaveStudio(ctx, studio.ID)
		assertAPIError(t, err, studiosdk.ErrorCodeCannotChangeOwner, "owner leaving own studio")
	})

	t.Run("removed member loses access", func(t *testing.T) {
		gone := inviteAndAccept(t, client, owner, studio.ID, "temp@example.com", "member")

		current, err := owner.ListMembers(ctx, studio.ID)
		require.NoError(t, err)
		goneMembership := findMembership(t, current, "temp@example.com", gone, gone.Identity().ID)

		require.NoError(t, owner.RemoveMember(ctx, studio.ID, goneMembership.ID))

		_, err = gone.ListMembers(ctx, studio.ID)
		assertAPIError(t, err, studiosdk.ErrorCodeNotAMember, "removed member listing roster")
	})
}

func TestInvitationLifecycle(t *testing.T) {
	baseURL, cleanup := setupStudioContainer(t)
	defer cleanup()

	client := studiosdk.NewSDKClient(baseURL)
	ctx := context.Background()

	owner, studio := createStudioWithOwner(t, client, "inviter@example.com", "Invite Studio")

	t.Run("member cannot invite", func(t *testing.T) {
		member := inviteAndAccept(t, client, owner, studio.ID, "plain@example.com", "member")
		_, err := member.SendInvite(ctx, studio.ID, "friend@example.com", "member")
		assertAPIError(t, err, studiosdk.ErrorCodeInsufficientPermissions, "member sending invites")
	})

	t.Run("owner role cannot be granted by invitation", func(t *testing.T) {
		_, err := owner.SendInvite(ctx, studio.ID, "pretender@example.com", "owner")
		assertAPIError(t, err, studiosdk.ErrorCodeValidation, "inviting as owner")
	})

	t.Run("revoked invitation cannot be accepted", func(t *testing.T) {
		inv, err := owner.SendInvite(ctx, studio.ID, "revoked@example.com", "member")
		require.NoError(t, err)
		require.NoError(t, owner.RevokeInvite(ctx, studio.ID, inv.ID))

		invitee := loginAs(t, client, "revoked@example.com", "Revoked")
		access, err := invitee.ResolveAccess(ctx, "")
		require.NoError(t, err)
		require.Equal(t, "no-studios", access.State, "revoked invitation must not surface")

		_, err = invitee.AcceptInvite(ctx, studiosdk.AcceptInviteRequest{InvitationID: inv.ID})
		assertAPIError(t, err, studiosdk.ErrorCodeValidation, "accepting a revoked invitation")
	})

	t.Run("re-inviting refreshes the pending invitation", func(t *testing.T) {
		first, err := owner.SendInvite(ctx, studio.ID, "repeat@example.com", "member")
		require.NoError(t, err)
		second, err := owner.SendInvite(ctx, studio.ID, "repeat@example.com", "admin")
		require.NoError(t, err)
		require.Equal(t, first.ID, second.ID, "same pending invitation should be refreshed")
		require.Equal(t, "admin", second.Role)

		invites, err := owner.ListInvites(ctx, studio.ID)
		require.NoError(t, err)

		pending := 0
		for _, inv := range invites {
			if inv.Email == "repeat@example.com" && inv.Status == "pending" {
				pending++
			}
		}
		require.Equal(t, 1, pending)
	})
}
