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

// MembersHandler handles studio membership management.
type MembersHandler struct {
	MembershipService *service.MembershipService
}

// HandleList handles GET /v1/studios/{id}/members
//
//	@Summary		List studio members
//	@Description	Lists the studio's members. Removed members are excluded.
//	@Tags			Members
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string					true	"Studio ID"
//	@Success		200	{array}		studiosdk.Membership	"Members"
//	@Failure		403	{object}	studiosdk.ErrorResponse	"Not a member"
//	@Router			/v1/studios/{id}/members [get].
func (h *MembersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identityID := httpx.IdentityIDFromCtx(ctx)
	studioID := r.PathValue("id")

	members, err := h.MembershipService.ListMembers(ctx, identityID, studioID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toMemberships(members))
}

// HandleChangeRole handles PUT /v1/studios/{id}/members/{membershipID}/role
//
//	@Summary		Change a member's role
//	@Description	Changes a member's role subject to the authorization rule: owners change anyone but themselves below owner, admins change members but cannot grant owner, and the owner role itself is immutable.
//	@Tags			Members
//	@Security		BearerAuth
//	@Accept			json
//	@Param			id				path	string						true	"Studio ID"
//	@Param			membershipID	path	string						true	"Membership ID"
//	@Param			request			body	studiosdk.ChangeRoleRequest	true	"New role"
//	@Success		204				"Role changed"
//	@Failure		403				{object}	studiosdk.ErrorResponse	"Insufficient permissions or owner role targeted"
//	@Failure		404				{object}	studiosdk.ErrorResponse	"Membership not found"
//	@Router			/v1/studios/{id}/members/{membershipID}/role [put].
func (h *MembersHandler) HandleChangeRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	identityID := httpx.IdentityIDFromCtx(ctx)
	studioID := r.PathValue("id")
	membershipID := r.PathValue("membershipID")

	var req studiosdk.ChangeRoleRequest
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

	if err := h.MembershipService.ChangeRole(ctx, identityID, studioID, membershipID, role); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleRemove handles DELETE /v1/studios/{id}/members/{membershipID}
//
//	@Summary		Remove a member
//	@Description	Soft-removes a member from the studio. The owner cannot be removed. Requires the admin role.
//	@Tags			Members
//	@Security		BearerAuth
//	@Param			id				path	string	true	"Studio ID"
//	@Param			membershipID	path	string	true	"Membership ID"
//	@Success		204				"Member removed"
//	@Failure		403				{object}	studiosdk.ErrorResponse	"Insufficient permissions or owner targeted"
//	@Failure		404				{object}	studiosdk.ErrorResponse	"Membership not found"
//	@Router			/v1/studios/{id}/members/{membershipID} [delete].
func (h *MembersHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identityID := httpx.IdentityIDFromCtx(ctx)
	studioID := r.PathValue("id")
	membershipID := r.PathValue("membershipID")

	if err := h.MembershipService.RemoveMember(ctx, identityID, studioID, membershipID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleLeave handles POST /v1/studios/{id}/leave
//
//	@Summary		Leave a studio
//	@Description	Removes the caller's own membership. The owner cannot leave their studio.
//	@Tags			Members
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Studio ID"
//	@Success		204	"Left the studio"
//	@Failure		403	{object}	studiosdk.ErrorResponse	"Owner cannot leave"
//	@Router			/v1/studios/{id}/leave [post].
func (h *MembersHandler) HandleLeave(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identityID := httpx.IdentityIDFromCtx(ctx)
	studioID := r.PathValue("id")

	if err := h.MembershipService.Leave(ctx, identityID, studioID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
