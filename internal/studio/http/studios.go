package http

import (
	"encoding/json"
	"net/http"

	"github.com/trackroomhq/trackroom/internal/studio/service"
	"github.com/trackroomhq/trackroom/pkg/httpx"
	"github.com/trackroomhq/trackroom/pkg/slogx"
	"github.com/trackroomhq/trackroom/pkg/studiosdk"
)

// StudiosHandler handles studio CRUD.
type StudiosHandler struct {
	StudioService *service.StudioService
}

// HandleCreate handles POST /v1/studios
//
//	@Summary		Create a studio
//	@Description	Creates a studio and makes the caller its owner. The slug is derived from the name and immutable afterwards.
//	@Tags			Studios
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		studiosdk.CreateStudioRequest	true	"Studio name"
//	@Success		201		{object}	studiosdk.Studio				"Created studio"
//	@Failure		400		{object}	studiosdk.ErrorResponse			"Invalid name"
//	@Failure		401		{object}	studiosdk.ErrorResponse			"Not authenticated"
//	@Router			/v1/studios [post].
func (h *StudiosHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	identityID := httpx.IdentityIDFromCtx(ctx)

	var req studiosdk.CreateStudioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		studiosdk.ErrInvalidRequest.WriteError(w)
		return
	}

	studio, err := h.StudioService.CreateStudio(ctx, identityID, req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toStudio(studio))
}

// HandleGet handles GET /v1/studios/{id}
//
//	@Summary		Get a studio
//	@Description	Returns a studio the caller is an active member of.
//	@Tags			Studios
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string					true	"Studio ID"
//	@Success		200	{object}	studiosdk.Studio		"Studio"
//	@Failure		403	{object}	studiosdk.ErrorResponse	"Not a member"
//	@Router			/v1/studios/{id} [get].
func (h *StudiosHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identityID := httpx.IdentityIDFromCtx(ctx)
	studioID := r.PathValue("id")

	studio, err := h.StudioService.GetStudio(ctx, identityID, studioID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toStudio(studio))
}

// HandleRename handles PUT /v1/studios/{id}
//
//	@Summary		Rename a studio
//	@Description	Changes a studio's display name. The slug never changes. Requires the admin role.
//	@Tags			Studios
//	@Security		BearerAuth
//	@Accept			json
//	@Param			id		path	string							true	"Studio ID"
//	@Param			request	body	studiosdk.CreateStudioRequest	true	"New name"
//	@Success		204		"Renamed"
//	@Failure		403		{object}	studiosdk.ErrorResponse	"Insufficient role"
//	@Router			/v1/studios/{id} [put].
func (h *StudiosHandler) HandleRename(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	identityID := httpx.IdentityIDFromCtx(ctx)
	studioID := r.PathValue("id")

	var req studiosdk.CreateStudioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		studiosdk.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.StudioService.RenameStudio(ctx, identityID, studioID, req.Name); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
