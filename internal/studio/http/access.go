package http

import (
	"encoding/json"
	"net/http"

	"github.com/trackroomhq/trackroom/internal/studio/service"
	"github.com/trackroomhq/trackroom/pkg/httpx"
	"github.com/trackroomhq/trackroom/pkg/jwtx"
	"github.com/trackroomhq/trackroom/pkg/slogx"
	"github.com/trackroomhq/trackroom/pkg/studiosdk"
)

// AccessHandler resolves which studio context applies to the session.
type AccessHandler struct {
	AccessService *service.AccessService
	StudioService *service.StudioService
	Cookies       httpx.CookieConfig
}

// HandleResolve handles GET /v1/access
//
//	@Summary		Resolve studio access
//	@Description	Resolves the session's studio context: auto-accepts a single pending invitation, validates the stored current-studio reference, and reports whether a picker is needed.
//	@Description	The reference comes from the studio cookie, or the studio_id query parameter for API clients.
//	@Tags			Access
//	@Security		BearerAuth
//	@Produce		json
//	@Param			studio_id	query		string					false	"Current-studio reference override"
//	@Success		200			{object}	studiosdk.AccessResponse	"Resolution outcome"
//	@Failure		401			{object}	studiosdk.ErrorResponse		"Not authenticated"
//	@Router			/v1/access [get].
func (h *AccessHandler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identityID := httpx.IdentityIDFromCtx(ctx)
	currentRef := r.URL.Query().Get("studio_id")
	if currentRef == "" {
		currentRef = httpx.StudioRefFromCookie(r)
	}

	res, err := h.AccessService.Resolve(ctx, identityID, currentRef)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if res.CommitStudioRef {
		httpx.SetStudioCookie(w, res.StudioID, jwtx.DefaultSessionTTL, h.Cookies)
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, toAccessResponse(res))
}

// HandleSwitch handles POST /v1/access/switch
//
//	@Summary		Switch the current studio
//	@Description	Selects a studio as the session's current context. The identity must be an active member of the target studio.
//	@Tags			Access
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		studiosdk.SwitchStudioRequest	true	"Target studio"
//	@Success		200		{object}	studiosdk.AccessResponse		"New studio context"
//	@Failure		401		{object}	studiosdk.ErrorResponse			"Not authenticated"
//	@Failure		403		{object}	studiosdk.ErrorResponse			"Not a member of the target studio"
//	@Router			/v1/access/switch [post].
func (h *AccessHandler) HandleSwitch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	identityID := httpx.IdentityIDFromCtx(ctx)

	var req studiosdk.SwitchStudioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		studiosdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.StudioID == "" {
		studiosdk.ErrInvalidRequest.WriteError(w)
		return
	}

	// Membership is re-validated; the cookie only ever stores a reference
	// the server has confirmed.
	if _, err := h.StudioService.GetStudio(ctx, identityID, req.StudioID); err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.SetStudioCookie(w, req.StudioID, jwtx.DefaultSessionTTL, h.Cookies)

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, studiosdk.AccessResponse{
		State:    string(service.StateReady),
		StudioID: req.StudioID,
	})
}

func toAccessResponse(res service.Resolution) studiosdk.AccessResponse {
	out := studiosdk.AccessResponse{
		State:    string(res.State),
		StudioID: res.StudioID,
	}
	if len(res.Memberships) > 0 {
		out.Memberships = toMemberships(res.Memberships)
	}
	if len(res.Invitations) > 0 {
		out.Invitations = toInvitations(res.Invitations)
	}
	if res.Accepted != nil {
		out.AcceptedInvitation = &studiosdk.AcceptResponse{
			StudioID:      res.Accepted.StudioID,
			AlreadyMember: res.Accepted.AlreadyMember,
		}
	}
	return out
}
