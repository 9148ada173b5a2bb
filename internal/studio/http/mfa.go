package http

import (
	"encoding/json"
	"net/http"

	"github.com/trackroomhq/trackroom/internal/studio/service"
	"github.com/trackroomhq/trackroom/pkg/httpx"
	"github.com/trackroomhq/trackroom/pkg/slogx"
	"github.com/trackroomhq/trackroom/pkg/studiosdk"
)

// MFAHandler handles TOTP enrollment and lifecycle.
type MFAHandler struct {
	MFAService *service.MFAService
}

// HandleEnroll handles POST /v1/mfa/enroll
//
//	@Summary		Enroll in TOTP MFA
//	@Description	Generates a TOTP secret for the identity and returns it with an otpauth URL. MFA is not active until a code is verified via activate.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	studiosdk.MFAEnrollResponse	"TOTP secret and provisioning URL"
//	@Failure		400	{object}	studiosdk.ErrorResponse		"MFA already active"
//	@Failure		401	{object}	studiosdk.ErrorResponse		"Not authenticated"
//	@Router			/v1/mfa/enroll [post].
func (h *MFAHandler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identityID := httpx.IdentityIDFromCtx(ctx)

	enrollment, err := h.MFAService.Enroll(ctx, identityID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, studiosdk.MFAEnrollResponse{
		Secret:  enrollment.Secret,
		URL:     enrollment.URL,
		Issuer:  enrollment.Issuer,
		Account: enrollment.Account,
	})
}

// HandleActivate handles POST /v1/mfa/activate
//
//	@Summary		Activate MFA
//	@Description	Verifies a TOTP code against the enrolled secret and activates MFA. Subsequent logins require a code.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Param			request	body	studiosdk.MFACodeRequest	true	"TOTP code"
//	@Success		204		"MFA active"
//	@Failure		400		{object}	studiosdk.ErrorResponse	"Invalid code or not enrolled"
//	@Router			/v1/mfa/activate [post].
func (h *MFAHandler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	identityID := httpx.IdentityIDFromCtx(ctx)

	var req studiosdk.MFACodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		studiosdk.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.MFAService.Activate(ctx, identityID, req.Code); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleDisable handles POST /v1/mfa/disable
//
//	@Summary		Disable MFA
//	@Description	Disables MFA after verifying a current TOTP code.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Param			request	body	studiosdk.MFACodeRequest	true	"TOTP code"
//	@Success		204		"MFA disabled"
//	@Failure		400		{object}	studiosdk.ErrorResponse	"Invalid code or MFA not active"
//	@Router			/v1/mfa/disable [post].
func (h *MFAHandler) HandleDisable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	identityID := httpx.IdentityIDFromCtx(ctx)

	var req studiosdk.MFACodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		studiosdk.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.MFAService.Disable(ctx, identityID, req.Code); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
