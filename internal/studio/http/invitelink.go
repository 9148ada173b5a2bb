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

// InviteLinkHandler handles the studio's reusable invite link.
type InviteLinkHandler struct {
	InviteLinkService *service.InviteLinkService
}

// HandleGet handles GET /v1/studios/{id}/invite-link
//
//	@Summary		Get the invite link
//	@Description	Returns the studio's invite-link settings. The raw token is only shown at rotation time.
//	@Tags			InviteLinks
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string					true	"Studio ID"
//	@Success		200	{object}	studiosdk.InviteLink	"Link settings"
//	@Failure		403	{object}	studiosdk.ErrorResponse	"Insufficient role"
//	@Failure		404	{object}	studiosdk.ErrorResponse	"No link configured"
//	@Router			/v1/studios/{id}/invite-link [get].
func (h *InviteLinkHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identityID := httpx.IdentityIDFromCtx(ctx)
	studioID := r.PathValue("id")

	link, err := h.InviteLinkService.GetLink(ctx, identityID, studioID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toInviteLink(link))
}

// HandleRotate handles POST /v1/studios/{id}/invite-link/rotate
//
//	@Summary		Rotate the invite link
//	@Description	Mints a fresh link token, invalidating the previous one. The raw token is returned exactly once. Requires the admin role.
//	@Tags			InviteLinks
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string									true	"Studio ID"
//	@Param			request	body		studiosdk.RotateInviteLinkRequest		true	"Default role for joiners"
//	@Success		200		{object}	studiosdk.RotateInviteLinkResponse	"Raw token, shown once"
//	@Failure		403		{object}	studiosdk.ErrorResponse				"Insufficient role"
//	@Router			/v1/studios/{id}/invite-link/rotate [post].
func (h *InviteLinkHandler) HandleRotate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	identityID := httpx.IdentityIDFromCtx(ctx)
	studioID := r.PathValue("id")

	var req studiosdk.RotateInviteLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		studiosdk.ErrInvalidRequest.WriteError(w)
		return
	}

	role, ok := domain.ParseRole(req.DefaultRole)
	if !ok {
		studiosdk.NewAPIError(http.StatusBadRequest, studiosdk.ErrorCodeValidation, "unknown role").WriteError(w)
		return
	}

	raw, link, err := h.InviteLinkService.RotateLink(ctx, identityID, studioID, role)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, studiosdk.RotateInviteLinkResponse{
		Token: raw,
		Link:  toInviteLink(link),
	})
}

// HandleSetEnabled handles PUT /v1/studios/{id}/invite-link/enabled
//
//	@Summary		Enable or disable the invite link
//	@Description	Toggles the invite link without rotating its token. Requires the admin role.
//	@Tags			InviteLinks
//	@Security		BearerAuth
//	@Accept			json
//	@Param			id		path	string									true	"Studio ID"
//	@Param			request	body	studiosdk.SetInviteLinkEnabledRequest	true	"Enabled flag"
//	@Success		204		"Updated"
//	@Failure		403		{object}	studiosdk.ErrorResponse	"Insufficient role"
//	@Router			/v1/studios/{id}/invite-link/enabled [put].
func (h *InviteLinkHandler) HandleSetEnabled(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	identityID := httpx.IdentityIDFromCtx(ctx)
	studioID := r.PathValue("id")

	var req studiosdk.SetInviteLinkEnabledRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		studiosdk.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.InviteLinkService.SetEnabled(ctx, identityID, studioID, req.Enabled); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleJoin handles POST /v1/invite-links/join
//
//	@Summary		Join a studio by link
//	@Description	Joins the studio behind an enabled invite link. The caller becomes a member with the link's default role.
//	@Tags			InviteLinks
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		studiosdk.JoinByLinkRequest	true	"Raw link token"
//	@Success		200		{object}	studiosdk.AcceptResponse	"Membership established"
//	@Failure		400		{object}	studiosdk.ErrorResponse		"Unknown or disabled link"
//	@Router			/v1/invite-links/join [post].
func (h *InviteLinkHandler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	identityID := httpx.IdentityIDFromCtx(ctx)

	var req studiosdk.JoinByLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		studiosdk.ErrInvalidRequest.WriteError(w)
		return
	}

	result, err := h.InviteLinkService.Join(ctx, identityID, req.Token)
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
