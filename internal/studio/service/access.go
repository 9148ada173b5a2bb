package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/trackroomhq/trackroom/internal/studio/domain"
	"github.com/trackroomhq/trackroom/internal/studio/store"
	"github.com/trackroomhq/trackroom/pkg/slogx"
)

// ResolutionState is the terminal outcome of one access resolution. States
// are per request; nothing here is persisted.
type ResolutionState string

const (
	// StateReady means a studio context is established.
	StateReady ResolutionState = "ready"

	// StateNoStudios means the identity belongs to no studio and has no
	// pending invitations; the caller routes to a create-studio flow.
	StateNoStudios ResolutionState = "no-studios"

	// StateNeedsPicker means the identity belongs to several studios and no
	// stored reference applies; the caller must present a choice.
	StateNeedsPicker ResolutionState = "needs-picker"

	// StateAmbiguousInvites means several pending invitations match the
	// identity's email; the identity must pick one before anything else.
	StateAmbiguousInvites ResolutionState = "ambiguous-invites"
)

// ContextDecision is the outcome of reconciling a stored current-studio
// reference against authoritative memberships. When NeedsAutoSelect is set
// the StudioID is a recommendation only; the caller decides whether to
// commit it.
type ContextDecision struct {
	StudioID        string
	NeedsAutoSelect bool
}

// ResolveStudioContext reconciles a session's current-studio reference with
// the identity's memberships. The reference is never trusted without a
// matching membership. Pure over its inputs; memberships must arrive in the
// caller's deterministic order (studio creation descending) because the
// first entry is the auto-select recommendation.
func ResolveStudioContext(currentRef string, memberships []domain.Membership) ContextDecision {
	if len(memberships) == 0 {
		return ContextDecision{}
	}
	if currentRef != "" {
		for _, m := range memberships {
			if m.StudioID == currentRef {
				return ContextDecision{StudioID: currentRef}
			}
		}
	}
	return ContextDecision{StudioID: memberships[0].StudioID, NeedsAutoSelect: true}
}

// Resolution is the result of one access resolution pass.
type Resolution struct {
	State    ResolutionState
	StudioID string

	// CommitStudioRef tells the caller to persist StudioID as the session's
	// current-studio reference (auto-select or fresh acceptance).
	CommitStudioRef bool

	// Memberships is populated for StateNeedsPicker.
	Memberships []domain.Membership

	// Invitations is populated for StateAmbiguousInvites.
	Invitations []domain.Invitation

	// Accepted reports an invitation acceptance performed during this
	// resolution, if any.
	Accepted *AcceptResult
}

// AccessService decides which studio context applies to a request. It is the
// single place that reconciles pending invitations, memberships, and the
// session's stored studio reference.
type AccessService struct {
	Store   store.Store
	Invites *InviteService
}

// Resolve runs the full access resolution for an authenticated identity.
// currentRef is the session's stored current-studio reference ("" when
// unset). A single pending invitation is accepted inline and takes priority
// over existing memberships, so fresh invitations stay actionable even for
// identities already in several studios.
func (s *AccessService) Resolve(ctx context.Context, identityID, currentRef string) (Resolution, error) {
	log := slogx.FromContext(ctx)

	if identityID == "" {
		return Resolution{}, E(KindAuthenticationRequired, "sign in to continue")
	}
	identity, err := s.Store.Identities().GetIdentityByID(ctx, identityID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Resolution{}, E(KindAuthenticationRequired, "sign in to continue")
		}
		log.Error("failed to fetch identity", slog.Any("error", err))
		return Resolution{}, dbError(err)
	}

	pending, err := s.Store.Invitations().ListPendingInvitationsByEmail(ctx, domain.NormalizeEmail(identity.Email))
	if err != nil {
		log.Error("failed to list pending invitations", slog.Any("error", err))
		return Resolution{}, dbError(err)
	}
	// The store filters on expiry too, but the eligibility rule stays the
	// single source of truth.
	now := time.Now().UTC()
	acceptable := pending[:0]
	for _, inv := range pending {
		if inv.Acceptable(now) {
			acceptable = append(acceptable, inv)
		}
	}

	if len(acceptable) > 1 {
		return Resolution{State: StateAmbiguousInvites, Invitations: acceptable}, nil
	}

	if len(acceptable) == 1 {
		res, err := s.Invites.Accept(ctx, identity, acceptable[0])
		if err != nil {
			return Resolution{}, err
		}
		return Resolution{
			State:           StateReady,
			StudioID:        res.StudioID,
			CommitStudioRef: true,
			Accepted:        &res,
		}, nil
	}

	memberships, err := s.Store.Memberships().ListActiveMemberships(ctx, identityID)
	if err != nil {
		log.Error("failed to list memberships", slog.Any("error", err))
		return Resolution{}, dbError(err)
	}

	decision := ResolveStudioContext(currentRef, memberships)
	switch {
	case len(memberships) == 0:
		return Resolution{State: StateNoStudios}, nil
	case !decision.NeedsAutoSelect:
		return Resolution{State: StateReady, StudioID: decision.StudioID}, nil
	case len(memberships) == 1:
		return Resolution{
			State:           StateReady,
			StudioID:        decision.StudioID,
			CommitStudioRef: true,
		}, nil
	default:
		return Resolution{State: StateNeedsPicker, Memberships: memberships}, nil
	}
}
