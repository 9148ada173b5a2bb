package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/trackroomhq/trackroom/internal/studio/domain"
)

func TestCanChangeRole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		actor        domain.Role
		target       domain.Role
		targetIsSelf bool
		next         domain.Role
		allowed      bool
		reason       domain.DenyReason
	}{
		{
			name:  "member actors are never privileged",
			actor: domain.RoleMember, target: domain.RoleMember, next: domain.RoleAdmin,
			allowed: false, reason: domain.DenyActorNotPrivileged,
		},
		{
			name:  "owner role is immutable even for the owner actor",
			actor: domain.RoleOwner, target: domain.RoleOwner, next: domain.RoleAdmin,
			allowed: false, reason: domain.DenyTargetOwner,
		},
		{
			name:  "owner promotes a member to admin",
			actor: domain.RoleOwner, target: domain.RoleMember, next: domain.RoleAdmin,
			allowed: true,
		},
		{
			name:  "admin cannot promote anyone to owner",
			actor: domain.RoleAdmin, target: domain.RoleMember, next: domain.RoleOwner,
			allowed: false, reason: domain.DenyAdminCannotPromote,
		},
		{
			name:  "admin cannot change its own role",
			actor: domain.RoleAdmin, target: domain.RoleAdmin, targetIsSelf: true, next: domain.RoleMember,
			allowed: false, reason: domain.DenySelfChangeNotAllowed,
		},
		{
			name:  "admin demotes another admin",
			actor: domain.RoleAdmin, target: domain.RoleAdmin, next: domain.RoleMember,
			allowed: true,
		},
		{
			name:  "owner demotes an admin",
			actor: domain.RoleOwner, target: domain.RoleAdmin, next: domain.RoleMember,
			allowed: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			allowed, reason := domain.CanChangeRole(tc.actor, tc.target, tc.targetIsSelf, tc.next)
			require.Equal(t, tc.allowed, allowed)
			require.Equal(t, tc.reason, reason)
		})
	}
}

func TestCanChangeRoleIsTotal(t *testing.T) {
	t.Parallel()

	roles := []domain.Role{domain.RoleOwner, domain.RoleAdmin, domain.RoleMember}

	// Exactly one rule fires for every input tuple: an allowed decision has no
	// reason, a denied one names exactly one.
	for _, actor := range roles {
		for _, target := range roles {
			for _, self := range []bool{true, false} {
				for _, next := range roles {
					allowed, reason := domain.CanChangeRole(actor, target, self, next)
					if allowed {
						require.Empty(t, reason)
					} else {
						require.NotEmpty(t, reason)
					}
				}
			}
		}
	}
}

func TestRoleAtLeast(t *testing.T) {
	t.Parallel()

	require.True(t, domain.RoleOwner.AtLeast(domain.RoleAdmin))
	require.True(t, domain.RoleAdmin.AtLeast(domain.RoleAdmin))
	require.False(t, domain.RoleMember.AtLeast(domain.RoleAdmin))
	require.False(t, domain.Role("intern").AtLeast(domain.RoleMember))
}

func TestParseRole(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"owner", "admin", "member"} {
		role, ok := domain.ParseRole(valid)
		require.True(t, ok)
		require.Equal(t, domain.Role(valid), role)
	}

	_, ok := domain.ParseRole("superuser")
	require.False(t, ok)
}
