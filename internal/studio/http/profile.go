package http

import (
	"encoding/json"
	"net/http"

	"github.com/trackroomhq/trackroom/internal/studio/service"
	"github.com/trackroomhq/trackroom/pkg/httpx"
	"github.com/trackroomhq/trackroom/pkg/slogx"
	"github.com/trackroomhq/trackroom/pkg/studiosdk"
)

// ProfileHandler handles the authenticated identity's own profile.
type ProfileHandler struct {
	IdentityService *service.IdentityService
}

// HandleGet handles GET /v1/me
//
//	@Summary		Get own profile
//	@Tags			Profile
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	studiosdk.Identity		"Authenticated identity"
//	@Failure		401	{object}	studiosdk.ErrorResponse	"Not authenticated"
//	@Router			/v1/me [get].
func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identityID := httpx.IdentityIDFromCtx(ctx)

	identity, err := h.IdentityService.GetIdentity(ctx, identityID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toIdentity(identity))
}

// HandleUpdate handles PUT /v1/me
//
//	@Summary		Update own profile
//	@Description	Changes the identity's display name.
//	@Tags			Profile
//	@Security		BearerAuth
//	@Accept			json
//	@Param			request	body	studiosdk.UpdateProfileRequest	true	"New display name"
//	@Success		204		"Updated"
//	@Failure		400		{object}	studiosdk.ErrorResponse	"Empty display name"
//	@Router			/v1/me [put].
func (h *ProfileHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	identityID := httpx.IdentityIDFromCtx(ctx)

	var req studiosdk.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		studiosdk.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.IdentityService.UpdateProfile(ctx, identityID, req.DisplayName); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
