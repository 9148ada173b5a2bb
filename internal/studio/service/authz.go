package service

import (
	"context"
	"errors"

	"github.com/trackroomhq/trackroom/internal/studio/domain"
	"github.com/trackroomhq/trackroom/internal/studio/store"
)

// requireMember loads the actor's membership in a studio and checks it is
// active and holds at least the minimum role. Callers re-read inside a
// transaction when the subsequent write depends on the role (see ChangeRole).
func requireMember(
	ctx context.Context,
	s store.Store,
	studioID, identityID string,
	minimum domain.Role,
) (domain.Membership, error) {
	m, err := s.Memberships().GetMembership(ctx, studioID, identityID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Membership{}, E(KindNotAMember, "you are not a member of this studio")
		}
		return domain.Membership{}, dbError(err)
	}
	if m.Status != domain.MemberStatusActive {
		return domain.Membership{}, E(KindNotAMember, "you are not a member of this studio")
	}
	if !m.Role.AtLeast(minimum) {
		return domain.Membership{}, E(KindInsufficientPermissions, "your role does not permit this action")
	}
	return m, nil
}
