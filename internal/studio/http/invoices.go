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

// InvoicesHandler handles client invoicing.
type InvoicesHandler struct {
	InvoiceService *service.InvoiceService
}

// HandleCreate handles POST /v1/studios/{id}/invoices
//
//	@Summary		Create an invoice
//	@Description	Creates a draft invoice with at least one line. All amounts are integer cents; the tax rate is basis points. Requires the admin role.
//	@Tags			Invoices
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Studio ID"
//	@Param			request	body		studiosdk.CreateInvoiceRequest	true	"Invoice details"
//	@Success		201		{object}	studiosdk.Invoice				"Created invoice with computed totals"
//	@Failure		400		{object}	studiosdk.ErrorResponse			"Invalid lines, duplicate number"
//	@Failure		403		{object}	studiosdk.ErrorResponse			"Insufficient role"
//	@Router			/v1/studios/{id}/invoices [post].
func (h *InvoicesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	identityID := httpx.IdentityIDFromCtx(ctx)
	studioID := r.PathValue("id")

	var req studiosdk.CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		studiosdk.ErrInvalidRequest.WriteError(w)
		return
	}

	lines := make([]service.InvoiceLineInput, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, service.InvoiceLineInput{
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitCents:   l.UnitCents,
		})
	}

	inv, err := h.InvoiceService.CreateInvoice(ctx, identityID, studioID, req.Number, req.ClientName, req.ClientEmail, req.TaxRateBps, lines)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toInvoice(inv))
}

// HandleGet handles GET /v1/studios/{id}/invoices/{invoiceID}
//
//	@Summary		Get an invoice
//	@Tags			Invoices
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id			path		string					true	"Studio ID"
//	@Param			invoiceID	path		string					true	"Invoice ID"
//	@Success		200			{object}	studiosdk.Invoice		"Invoice with lines and totals"
//	@Failure		400			{object}	studiosdk.ErrorResponse	"Invoice not found"
//	@Failure		403			{object}	studiosdk.ErrorResponse	"Not a member"
//	@Router			/v1/studios/{id}/invoices/{invoiceID} [get].
func (h *InvoicesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identityID := httpx.IdentityIDFromCtx(ctx)
	studioID := r.PathValue("id")
	invoiceID := r.PathValue("invoiceID")

	inv, err := h.InvoiceService.GetInvoice(ctx, identityID, studioID, invoiceID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toInvoice(inv))
}

// HandleList handles GET /v1/studios/{id}/invoices
//
//	@Summary		List invoices
//	@Tags			Invoices
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string					true	"Studio ID"
//	@Success		200	{array}		studiosdk.Invoice		"Invoices, newest first"
//	@Failure		403	{object}	studiosdk.ErrorResponse	"Not a member"
//	@Router			/v1/studios/{id}/invoices [get].
func (h *InvoicesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identityID := httpx.IdentityIDFromCtx(ctx)
	studioID := r.PathValue("id")

	invs, err := h.InvoiceService.ListInvoices(ctx, identityID, studioID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]studiosdk.Invoice, 0, len(invs))
	for _, inv := range invs {
		out = append(out, toInvoice(inv))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleSetStatus handles PUT /v1/studios/{id}/invoices/{invoiceID}/status
//
//	@Summary		Change an invoice's status
//	@Description	Moves an invoice along its lifecycle: draft to sent, sent to paid or void. Requires the admin role.
//	@Tags			Invoices
//	@Security		BearerAuth
//	@Accept			json
//	@Param			id			path	string								true	"Studio ID"
//	@Param			invoiceID	path	string								true	"Invoice ID"
//	@Param			request		body	studiosdk.SetInvoiceStatusRequest	true	"Target status"
//	@Success		204			"Status changed"
//	@Failure		400			{object}	studiosdk.ErrorResponse	"Disallowed transition"
//	@Failure		403			{object}	studiosdk.ErrorResponse	"Insufficient role"
//	@Router			/v1/studios/{id}/invoices/{invoiceID}/status [put].
func (h *InvoicesHandler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	identityID := httpx.IdentityIDFromCtx(ctx)
	studioID := r.PathValue("id")
	invoiceID := r.PathValue("invoiceID")

	var req studiosdk.SetInvoiceStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		studiosdk.ErrInvalidRequest.WriteError(w)
		return
	}

	status := domain.InvoiceStatus(req.Status)
	switch status {
	case domain.InvoiceDraft, domain.InvoiceSent, domain.InvoicePaid, domain.InvoiceVoid:
	default:
		studiosdk.NewAPIError(http.StatusBadRequest, studiosdk.ErrorCodeValidation, "unknown invoice status").WriteError(w)
		return
	}

	if err := h.InvoiceService.SetInvoiceStatus(ctx, identityID, studioID, invoiceID, status); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
