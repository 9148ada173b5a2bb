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

// GearHandler handles the studio's equipment inventory.
type GearHandler struct {
	GearService *service.GearService
}

// HandleAdd handles POST /v1/studios/{id}/gear
//
//	@Summary		Add a gear item
//	@Description	Adds an item to the studio's inventory. Requires the admin role.
//	@Tags			Gear
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Studio ID"
//	@Param			request	body		studiosdk.AddGearRequest	true	"Item details"
//	@Success		201		{object}	studiosdk.GearItem		"Created item"
//	@Failure		403		{object}	studiosdk.ErrorResponse	"Insufficient role"
//	@Router			/v1/studios/{id}/gear [post].
func (h *GearHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	identityID := httpx.IdentityIDFromCtx(ctx)
	studioID := r.PathValue("id")

	var req studiosdk.AddGearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		studiosdk.ErrInvalidRequest.WriteError(w)
		return
	}

	item, err := h.GearService.AddItem(ctx, identityID, studioID, req.Name, req.Category, req.SerialNumber, req.Notes)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toGearItem(item))
}

// HandleList handles GET /v1/studios/{id}/gear
//
//	@Summary		List gear
//	@Tags			Gear
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string					true	"Studio ID"
//	@Success		200	{array}		studiosdk.GearItem		"Inventory"
//	@Failure		403	{object}	studiosdk.ErrorResponse	"Not a member"
//	@Router			/v1/studios/{id}/gear [get].
func (h *GearHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identityID := httpx.IdentityIDFromCtx(ctx)
	studioID := r.PathValue("id")

	items, err := h.GearService.ListItems(ctx, identityID, studioID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]studiosdk.GearItem, 0, len(items))
	for _, item := range items {
		out = append(out, toGearItem(item))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleSetStatus handles PUT /v1/studios/{id}/gear/{itemID}/status
//
//	@Summary		Set a gear item's status
//	@Description	Marks an item available, in-use, or retired. Any member may update status.
//	@Tags			Gear
//	@Security		BearerAuth
//	@Accept			json
//	@Param			id		path	string							true	"Studio ID"
//	@Param			itemID	path	string							true	"Item ID"
//	@Param			request	body	studiosdk.SetGearStatusRequest	true	"New status"
//	@Success		204		"Updated"
//	@Failure		400		{object}	studiosdk.ErrorResponse	"Unknown status or item"
//	@Failure		403		{object}	studiosdk.ErrorResponse	"Not a member"
//	@Router			/v1/studios/{id}/gear/{itemID}/status [put].
func (h *GearHandler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	identityID := httpx.IdentityIDFromCtx(ctx)
	studioID := r.PathValue("id")
	itemID := r.PathValue("itemID")

	var req studiosdk.SetGearStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		studiosdk.ErrInvalidRequest.WriteError(w)
		return
	}

	status, ok := domain.ParseGearStatus(req.Status)
	if !ok {
		studiosdk.NewAPIError(http.StatusBadRequest, studiosdk.ErrorCodeValidation, "unknown gear status").WriteError(w)
		return
	}

	if err := h.GearService.SetItemStatus(ctx, identityID, studioID, itemID, status); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleRemove handles DELETE /v1/studios/{id}/gear/{itemID}
//
//	@Summary		Remove a gear item
//	@Description	Removes an item from the inventory. Requires the admin role.
//	@Tags			Gear
//	@Security		BearerAuth
//	@Param			id		path	string	true	"Studio ID"
//	@Param			itemID	path	string	true	"Item ID"
//	@Success		204		"Removed"
//	@Failure		403		{object}	studiosdk.ErrorResponse	"Insufficient role"
//	@Router			/v1/studios/{id}/gear/{itemID} [delete].
func (h *GearHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identityID := httpx.IdentityIDFromCtx(ctx)
	studioID := r.PathValue("id")
	itemID := r.PathValue("itemID")

	if err := h.GearService.RemoveItem(ctx, identityID, studioID, itemID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
