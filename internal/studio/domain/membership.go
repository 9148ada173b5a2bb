package domain

import "time"

// Role is a membership role within a studio. The set is closed; the
// authorization rules below switch over every value so adding a role forces a
// review of each decision point.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// ParseRole validates a role string.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleOwner, RoleAdmin, RoleMember:
		return Role(s), true
	}
	return "", false
}

// AtLeast reports whether r grants at least the privileges of minimum.
func (r Role) AtLeast(minimum Role) bool {
	return r.rank() >= minimum.rank()
}

func (r Role) rank() int {
	switch r {
	case RoleOwner:
		return 3
	case RoleAdmin:
		return 2
	case RoleMember:
		return 1
	}
	return 0
}

// MemberStatus tracks a membership's lifecycle. Removed memberships are kept
// as rows so the join history survives.
type MemberStatus string

const (
	MemberStatusActive  MemberStatus = "active"
	MemberStatusPending MemberStatus = "pending"
	MemberStatusRemoved MemberStatus = "removed"
)

// Membership ties an Identity to a Studio. At most one row exists per
// (studio, identity) pair; the store enforces this with a unique constraint.
type Membership struct {
	ID         string
	StudioID   string
	IdentityID string
	Role       Role
	Status     MemberStatus
	JoinedAt   time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Studio is populated by list queries that join the studios table.
	Studio Studio
}

// DenyReason explains why a role change was refused.
type DenyReason string

const (
	DenyActorNotPrivileged   DenyReason = "actor-not-privileged"
	DenyTargetOwner          DenyReason = "target-owner"
	DenySelfChangeNotAllowed DenyReason = "self-change-not-allowed"
	DenyAdminCannotPromote   DenyReason = "admin-cannot-promote-owner"
)

// CanChangeRole decides whether an actor may set a target member's role to
// next. First matching rule wins:
//
//  1. Only owners and admins may change roles at all.
//  2. The owner role is immutable through this path, whoever asks.
//  3. Admins may not alter their own role; only the owner touches itself
//     (ownership transfer is a separate mechanism).
//  4. Admins may not promote anyone to owner.
func CanChangeRole(actor, target Role, targetIsSelf bool, next Role) (bool, DenyReason) {
	if actor != RoleOwner && actor != RoleAdmin {
		return false, DenyActorNotPrivileged
	}
	if target == RoleOwner {
		return false, DenyTargetOwner
	}
	if targetIsSelf && actor != RoleOwner {
		return false, DenySelfChangeNotAllowed
	}
	if actor == RoleAdmin && next == RoleOwner {
		return false, DenyAdminCannotPromote
	}
	return true, ""
}
