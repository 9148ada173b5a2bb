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

// AuthHandler handles magic-link login and session lifecycle.
type AuthHandler struct {
	IdentityService *service.IdentityService
	Signer          *jwtx.Signer
	Cookies         httpx.CookieConfig

	// ExposeDebugToken returns the raw login token in the response instead
	// of relying on email delivery. Only set outside production.
	ExposeDebugToken bool
}

// HandleLogin handles POST /v1/auth/login
//
//	@Summary		Request a magic-link login
//	@Description	Sends a single-use login link to the given email address. The identity is created on first login.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		studiosdk.LoginRequest	true	"Email to send the link to"
//	@Success		200		{object}	studiosdk.LoginResponse	"Login email dispatched"
//	@Failure		400		{object}	studiosdk.ErrorResponse	"Invalid email"
//	@Failure		429		{object}	studiosdk.ErrorResponse	"Too many requests"
//	@Router			/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req studiosdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		studiosdk.ErrInvalidRequest.WriteError(w)
		return
	}

	raw, err := h.IdentityService.RequestLogin(ctx, req.Email, req.DisplayName)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := studiosdk.LoginResponse{Sent: true}
	if h.ExposeDebugToken {
		resp.DebugToken = raw
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleRedeem handles POST /v1/auth/redeem
//
//	@Summary		Redeem a magic-link token
//	@Description	Exchanges a single-use login token for a session. Sets the session cookie and returns the token for API clients.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		studiosdk.RedeemRequest		true	"Login token and optional TOTP code"
//	@Success		200		{object}	studiosdk.SessionResponse	"Authenticated session"
//	@Failure		400		{object}	studiosdk.ErrorResponse		"Malformed token"
//	@Failure		401		{object}	studiosdk.ErrorResponse		"Invalid, expired, or already-used token"
//	@Router			/v1/auth/redeem [post].
func (h *AuthHandler) HandleRedeem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req studiosdk.RedeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		studiosdk.ErrInvalidRequest.WriteError(w)
		return
	}

	identity, amr, err := h.IdentityService.RedeemLogin(ctx, req.Token, req.TOTPCode)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	token, _, err := h.Signer.Issue(identity.ID, identity.Email, amr, jwtx.DefaultSessionTTL)
	if err != nil {
		log.Error("failed to sign session token", "err", err)
		studiosdk.ErrServerError.WriteError(w)
		return
	}

	httpx.SetSessionCookie(w, token, jwtx.DefaultSessionTTL, h.Cookies)

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, studiosdk.SessionResponse{
		Token:     token,
		ExpiresIn: int(jwtx.DefaultSessionTTL.Seconds()),
		Identity:  toIdentity(identity),
	})
}

// HandleLogout handles POST /v1/auth/logout
//
//	@Summary		Log out
//	@Description	Clears the session and current-studio cookies. The stateless session token itself simply expires.
//	@Tags			Auth
//	@Produce		json
//	@Success		204	"Cookies cleared"
//	@Router			/v1/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	httpx.ClearSessionCookies(w, h.Cookies)
	w.WriteHeader(http.StatusNoContent)
}
