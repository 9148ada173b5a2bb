package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/trackroomhq/trackroom/internal/studio/service"
	"github.com/trackroomhq/trackroom/pkg/httpx"
	"github.com/trackroomhq/trackroom/pkg/slogx"
	"github.com/trackroomhq/trackroom/pkg/studiosdk"
)

// ScheduleHandler handles rooms and session bookings.
type ScheduleHandler struct {
	ScheduleService *service.ScheduleService
}

// HandleCreateRoom handles POST /v1/studios/{id}/rooms
//
//	@Summary		Create a room
//	@Description	Adds a bookable room to the studio. Requires the admin role.
//	@Tags			Schedule
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Studio ID"
//	@Param			request	body		studiosdk.CreateRoomRequest	true	"Room details"
//	@Success		201		{object}	studiosdk.Room				"Created room"
//	@Failure		403		{object}	studiosdk.ErrorResponse		"Insufficient role"
//	@Router			/v1/studios/{id}/rooms [post].
func (h *ScheduleHandler) HandleCreateRoom(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	identityID := httpx.IdentityIDFromCtx(ctx)
	studioID := r.PathValue("id")

	var req studiosdk.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		studiosdk.ErrInvalidRequest.WriteError(w)
		return
	}

	room, err := h.ScheduleService.CreateRoom(ctx, identityID, studioID, req.Name, req.HourlyRateCents)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toRoom(room))
}

// HandleListRooms handles GET /v1/studios/{id}/rooms
//
//	@Summary		List rooms
//	@Tags			Schedule
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string					true	"Studio ID"
//	@Success		200	{array}		studiosdk.Room			"Rooms"
//	@Failure		403	{object}	studiosdk.ErrorResponse	"Not a member"
//	@Router			/v1/studios/{id}/rooms [get].
func (h *ScheduleHandler) HandleListRooms(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identityID := httpx.IdentityIDFromCtx(ctx)
	studioID := r.PathValue("id")

	rooms, err := h.ScheduleService.ListRooms(ctx, identityID, studioID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]studiosdk.Room, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, toRoom(room))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleDeleteRoom handles DELETE /v1/studios/{id}/rooms/{roomID}
//
//	@Summary		Delete a room
//	@Description	Deletes a room and cascades to its sessions. Requires the admin role.
//	@Tags			Schedule
//	@Security		BearerAuth
//	@Param			id		path	string	true	"Studio ID"
//	@Param			roomID	path	string	true	"Room ID"
//	@Success		204		"Deleted"
//	@Failure		403		{object}	studiosdk.ErrorResponse	"Insufficient role"
//	@Router			/v1/studios/{id}/rooms/{roomID} [delete].
func (h *ScheduleHandler) HandleDeleteRoom(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identityID := httpx.IdentityIDFromCtx(ctx)
	studioID := r.PathValue("id")
	roomID := r.PathValue("roomID")

	if err := h.ScheduleService.DeleteRoom(ctx, identityID, studioID, roomID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleBookSession handles POST /v1/studios/{id}/sessions
//
//	@Summary		Book a session
//	@Description	Books a room for a time slot. Slots are half-open intervals; back-to-back bookings do not clash.
//	@Tags			Schedule
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Studio ID"
//	@Param			request	body		studiosdk.BookSessionRequest	true	"Booking details"
//	@Success		201		{object}	studiosdk.StudioSession			"Booked session"
//	@Failure		400		{object}	studiosdk.ErrorResponse			"Invalid slot or room already booked"
//	@Failure		403		{object}	studiosdk.ErrorResponse			"Not a member"
//	@Router			/v1/studios/{id}/sessions [post].
func (h *ScheduleHandler) HandleBookSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	identityID := httpx.IdentityIDFromCtx(ctx)
	studioID := r.PathValue("id")

	var req studiosdk.BookSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		studiosdk.ErrInvalidRequest.WriteError(w)
		return
	}

	session, err := h.ScheduleService.BookSession(ctx, identityID, studioID, req.RoomID, req.Title, req.StartsAt, req.EndsAt)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toSession(session))
}

// HandleListSessions handles GET /v1/studios/{id}/sessions
//
//	@Summary		List sessions in a range
//	@Description	Lists sessions overlapping the [from, to) window. Both bounds are required RFC 3339 timestamps.
//	@Tags			Schedule
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id		path		string						true	"Studio ID"
//	@Param			from	query		string						true	"Window start (RFC 3339)"
//	@Param			to		query		string						true	"Window end (RFC 3339)"
//	@Success		200		{array}		studiosdk.StudioSession		"Sessions"
//	@Failure		400		{object}	studiosdk.ErrorResponse		"Missing or malformed bounds"
//	@Failure		403		{object}	studiosdk.ErrorResponse		"Not a member"
//	@Router			/v1/studios/{id}/sessions [get].
func (h *ScheduleHandler) HandleListSessions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identityID := httpx.IdentityIDFromCtx(ctx)
	studioID := r.PathValue("id")

	from, err := time.Parse(time.RFC3339, r.URL.Query().Get("from"))
	if err != nil {
		studiosdk.NewAPIError(http.StatusBadRequest, studiosdk.ErrorCodeValidation, "from must be an RFC 3339 timestamp").WriteError(w)
		return
	}
	to, err := time.Parse(time.RFC3339, r.URL.Query().Get("to"))
	if err != nil {
		studiosdk.NewAPIError(http.StatusBadRequest, studiosdk.ErrorCodeValidation, "to must be an RFC 3339 timestamp").WriteError(w)
		return
	}

	sessions, err := h.ScheduleService.ListSessions(ctx, identityID, studioID, from, to)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]studiosdk.StudioSession, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toSession(s))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleCancelSession handles DELETE /v1/studios/{id}/sessions/{sessionID}
//
//	@Summary		Cancel a session
//	@Description	Cancels a scheduled session, freeing its slot. Only the booker or an admin may cancel.
//	@Tags			Schedule
//	@Security		BearerAuth
//	@Param			id			path	string	true	"Studio ID"
//	@Param			sessionID	path	string	true	"Session ID"
//	@Success		204			"Cancelled"
//	@Failure		403			{object}	studiosdk.ErrorResponse	"Not the booker or an admin"
//	@Router			/v1/studios/{id}/sessions/{sessionID} [delete].
func (h *ScheduleHandler) HandleCancelSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identityID := httpx.IdentityIDFromCtx(ctx)
	studioID := r.PathValue("id")
	sessionID := r.PathValue("sessionID")

	if err := h.ScheduleService.CancelSession(ctx, identityID, studioID, sessionID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
