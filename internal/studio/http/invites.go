package http

import (
	"encoding/json"
	"net/http"

	"github.com/trackroomhq/trackroom/internal/studio/domain"
	"github.com/trackroomhq/trackroom/internal/studio/service"
	"github.com/trackroomhq/trackroom/pkg/httpx"
	"github.com/trackroomhq/trackroom/pkg/slogx"
	"github.com/trackroomhq/trackroom/pkg/studiosdk"
)

// InvitesHandler handles email invitations.
type InvitesHandler struct {
	InviteService *service.InviteService
}

// HandleSend handles POST /v1/studios/{id}/invites
//
//	@Summary		Invite someone by email
//	@Description	Creates a pending invitation and emails a single-use token. Re-inviting the same address refreshes the existing invitation instead of creating a duplicate. Requires the admin role.
//	@Tags			Invites
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Studio ID"
//	@Param			request	body		studiosdk.SendInviteRequest	true	"Email and role"
//	@Success		201		{object}	studiosdk.Invitation		"Pending invitation"
//	@Failure		400		{object}	studiosdk.ErrorResponse		"Invalid email, role, or already a member"
//	@Failure		403		{object}	studiosdk.ErrorResponse		"Insufficient role"
//	@Router			/v1/studios/{id}/invites [post].
func (h *InvitesHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	identityID := httpx.IdentityIDFromCtx(ctx)
	studioID := r.PathValue("id")

	var req studiosdk.SendInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		studiosdk.ErrInvalidRequest.WriteError(w)
		return
	}

	role, ok := domain.ParseRole(req.Role)
	if !ok {
		studiosdk.NewAPIError(http.StatusBadRequest, studiosdk.ErrorCodeValidation, "unknown role").WriteError(w)
		return
	}

	inv, err := h.InviteService.SendInvite(ctx, identityID, studioID, req.Email, role)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toInvitation(inv))
}

// HandleList handles GET /v1/studios/{id}/invites
//
//	@Summary		List studio invitations
//	@Description	Lists the studio's invitations, newest first.
//	@Tags			Invites
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string					true	"Studio ID"
//	@Success		200	{array}		studiosdk.Invitation	"Invitations"
//	@Failure		403	{object}	studiosdk.ErrorResponse	"Insufficient role"
//	@Router			/v1/studios/{id}/invites [get].
func (h *InvitesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identityID := httpx.IdentityIDFromCtx(ctx)
	studioID := r.PathValue("id")

	invs, err := h.InviteService.ListInvites(ctx, identityID, studioID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toInvitations(invs))
}

// HandleRevoke handles DELETE /v1/studios/{id}/invites/{invitationID}
//
//	@Summary		Revoke an invitation
//	@Description	Revokes a pending invitation so its token can no longer be redeemed. Requires the admin role.
//	@Tags			Invites
//	@Security		BearerAuth
//	@Param			id				path	string	true	"Studio ID"
//	@Param			invitationID	path	string	true	"Invitation ID"
//	@Success		204				"Revoked"
//	@Failure		400				{object}	studiosdk.ErrorResponse	"Invitation is no longer pending"
//	@Failure		403				{object}	studiosdk.ErrorResponse	"Insufficient role"
//	@Router			/v1/studios/{id}/invites/{invitationID} [delete].
func (h *InvitesHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identityID := httpx.IdentityIDFromCtx(ctx)
	studioID := r.PathValue("id")
	invitationID := r.PathValue("invitationID")

	if err := h.InviteService.RevokeInvite(ctx, identityID, studioID, invitationID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleAccept handles POST /v1/invites/accept
//
//	@Summary		Accept an invitation
//	@Description	Accepts a pending invitation, either by emailed token or by invitation ID (the ambiguous-invites picker path). The invitation's email must match the authenticated identity.
//	@Tags			Invites
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		studiosdk.AcceptInviteRequest	true	"Token or invitation ID"
//	@Success		200		{object}	studiosdk.AcceptResponse		"Membership established"
//	@Failure		400		{object}	studiosdk.ErrorResponse			"Invalid, expired, or mismatched invitation"
//	@Failure		401		{object}	studiosdk.ErrorResponse			"Not authenticated"
//	@Router			/v1/invites/accept [post].
func (h *InvitesHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	identityID := httpx.IdentityIDFromCtx(ctx)

	var req studiosdk.AcceptInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		studiosdk.ErrInvalidRequest.WriteError(w)
		return
	}

	var (
		result service.AcceptResult
		err    error
	)
	switch {
	case req.Token != "":
		result, err = h.InviteService.AcceptByToken(ctx, identityID, req.Token)
	case req.InvitationID != "":
		result, err = h.InviteService.AcceptByID(ctx, identityID, req.InvitationID)
	default:
		studiosdk.NewAPIError(http.StatusBadRequest, studiosdk.ErrorCodeValidation, "either token or invitation_id is required").WriteError(w)
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, studiosdk.AcceptResponse{
		StudioID:      result.StudioID,
		AlreadyMember: result.AlreadyMember,
	})
}
