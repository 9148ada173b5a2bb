package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trackroomhq/trackroom/internal/studio/domain"
)

func TestChangeRole(t *testing.T) {
	st := newTestStore(t)
	svc := &MembershipService{Store: st}
	ctx := context.Background()

	owner := seedIdentity(t, st, "owner@example.com")
	studio := seedStudio(t, st, owner, "Echo Chamber")
	admin := seedIdentity(t, st, "admin@example.com")
	adminM := seedMember(t, st, studio, admin, domain.RoleAdmin)
	member := seedIdentity(t, st, "member@example.com")
	memberM := seedMember(t, st, studio, member, domain.RoleMember)

	ownerM, err := st.Memberships().GetMembership(ctx, studio.ID, owner.ID)
	require.NoError(t, err)

	t.Run("member actors are denied", func(t *testing.T) {
		err := svc.ChangeRole(ctx, member.ID, studio.ID, adminM.ID, domain.RoleMember)
		require.Equal(t, KindInsufficientPermissions, KindOf(err))
	})

	t.Run("owner role is immutable", func(t *testing.T) {
		err := svc.ChangeRole(ctx, owner.ID, studio.ID, ownerM.ID, domain.RoleAdmin)
		require.Equal(t, KindCannotChangeOwner, KindOf(err))

		err = svc.ChangeRole(ctx, admin.ID, studio.ID, ownerM.ID, domain.RoleMember)
		require.Equal(t, KindCannotChangeOwner, KindOf(err))
	})

	t.Run("admins cannot change their own role", func(t *testing.T) {
		err := svc.ChangeRole(ctx, admin.ID, studio.ID, adminM.ID, domain.RoleMember)
		require.Equal(t, KindInsufficientPermissions, KindOf(err))
	})

	t.Run("admins cannot promote to owner", func(t *testing.T) {
		err := svc.ChangeRole(ctx, admin.ID, studio.ID, memberM.ID, domain.RoleOwner)
		require.Equal(t, KindInsufficientPermissions, KindOf(err))
	})

	t.Run("owner promotes member to admin", func(t *testing.T) {
		require.NoError(t, svc.ChangeRole(ctx, owner.ID, studio.ID, memberM.ID, domain.RoleAdmin))

		got, err := st.Memberships().GetMembershipByID(ctx, memberM.ID)
		require.NoError(t, err)
		require.Equal(t, domain.RoleAdmin, got.Role)

		// Back down again, this time by the admin.
		require.NoError(t, svc.ChangeRole(ctx, admin.ID, studio.ID, memberM.ID, domain.RoleMember))
	})

	t.Run("unknown membership", func(t *testing.T) {
		err := svc.ChangeRole(ctx, owner.ID, studio.ID, "01ZZZZZZZZZZZZZZZZZZZZZZZZ", domain.RoleAdmin)
		require.Equal(t, KindMembershipNotFound, KindOf(err))
	})

	t.Run("unknown role", func(t *testing.T) {
		err := svc.ChangeRole(ctx, owner.ID, studio.ID, memberM.ID, domain.Role("superuser"))
		require.Equal(t, KindValidation, KindOf(err))
	})
}

func TestRemoveMember(t *testing.T) {
	st := newTestStore(t)
	svc := &MembershipService{Store: st}
	ctx := context.Background()

	owner := seedIdentity(t, st, "owner@example.com")
	studio := seedStudio(t, st, owner, "Echo Chamber")
	member := seedIdentity(t, st, "member@example.com")
	memberM := seedMember(t, st, studio, member, domain.RoleMember)

	ownerM, err := st.Memberships().GetMembership(ctx, studio.ID, owner.ID)
	require.NoError(t, err)

	t.Run("owner cannot be removed", func(t *testing.T) {
		err := svc.RemoveMember(ctx, owner.ID, studio.ID, ownerM.ID)
		require.Equal(t, KindCannotChangeOwner, KindOf(err))
	})

	t.Run("members cannot remove", func(t *testing.T) {
		err := svc.RemoveMember(ctx, member.ID, studio.ID, memberM.ID)
		require.Equal(t, KindInsufficientPermissions, KindOf(err))
	})

	t.Run("removal is a soft delete", func(t *testing.T) {
		require.NoError(t, svc.RemoveMember(ctx, owner.ID, studio.ID, memberM.ID))

		got, err := st.Memberships().GetMembershipByID(ctx, memberM.ID)
		require.NoError(t, err)
		require.Equal(t, domain.MemberStatusRemoved, got.Status)

		// Removed members lose access.
		_, err = svc.ListMembers(ctx, member.ID, studio.ID)
		require.Equal(t, KindNotAMember, KindOf(err))
	})

	t.Run("removed membership cannot be targeted again", func(t *testing.T) {
		err := svc.RemoveMember(ctx, owner.ID, studio.ID, memberM.ID)
		require.Equal(t, KindMembershipNotFound, KindOf(err))
	})
}

func TestLeave(t *testing.T) {
	st := newTestStore(t)
	svc := &MembershipService{Store: st}
	ctx := context.Background()

	owner := seedIdentity(t, st, "owner@example.com")
	studio := seedStudio(t, st, owner, "Echo Chamber")
	member := seedIdentity(t, st, "member@example.com")
	seedMember(t, st, studio, member, domain.RoleMember)

	t.Run("owner cannot leave", func(t *testing.T) {
		err := svc.Leave(ctx, owner.ID, studio.ID)
		require.Equal(t, KindCannotChangeOwner, KindOf(err))
	})

	t.Run("member leaves", func(t *testing.T) {
		require.NoError(t, svc.Leave(ctx, member.ID, studio.ID))

		_, err := svc.ListMembers(ctx, member.ID, studio.ID)
		require.Equal(t, KindNotAMember, KindOf(err))
	})
}

func TestListMembersRequiresMembership(t *testing.T) {
	st := newTestStore(t)
	svc := &MembershipService{Store: st}
	ctx := context.Background()

	owner := seedIdentity(t, st, "owner@example.com")
	studio := seedStudio(t, st, owner, "Echo Chamber")
	outsider := seedIdentity(t, st, "outsider@example.com")

	_, err := svc.ListMembers(ctx, outsider.ID, studio.ID)
	require.Equal(t, KindNotAMember, KindOf(err))

	members, err := svc.ListMembers(ctx, owner.ID, studio.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	require.Equal(t, domain.RoleOwner, members[0].Role)
}
