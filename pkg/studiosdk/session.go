package studiosdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Session is an authenticated client bound to one session token. Methods
// mirror the service's HTTP surface; studio-scoped calls take the studio id
// explicitly rather than relying on the cookie, which only browsers carry.
type Session struct {
	client   *SDKClient
	token    string
	identity Identity
}

func newSession(c *SDKClient, resp SessionResponse) *Session {
	return &Session{client: c, token: resp.Token, identity: resp.Identity}
}

// Token returns the raw session token.
func (s *Session) Token() string { return s.token }

// Identity returns the identity captured at login, when known.
func (s *Session) Identity() Identity { return s.identity }

func (s *Session) doAuthRequest(
	ctx context.Context,
	method, path string,
	body io.Reader,
	headers map[string]string,
) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, s.client.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.token)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := s.client.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

func (s *Session) getJSON(ctx context.Context, path string, target any) error {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, target, http.StatusOK)
}

func (s *Session) sendJSON(ctx context.Context, method, path string, body, target any, expectedStatus int) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	resp, err := s.doAuthRequest(ctx, method, path, bytes.NewReader(payload), map[string]string{
		"Content-Type": "application/json",
	})
	if err != nil {
		return err
	}
	if expectedStatus == http.StatusNoContent {
		return checkStatusNoContent(resp)
	}
	return decodeJSON(resp, target, expectedStatus)
}

// ============================================================================
// Access & Studios
// ============================================================================

// ResolveAccess runs the access resolution for the session, optionally with
// a current-studio reference.
func (s *Session) ResolveAccess(ctx context.Context, currentStudioID string) (AccessResponse, error) {
	path := "/v1/access"
	if currentStudioID != "" {
		path += "?studio_id=" + url.QueryEscape(currentStudioID)
	}
	var out AccessResponse
	err := s.getJSON(ctx, path, &out)
	return out, err
}

// SwitchStudio validates and selects the session's current studio.
func (s *Session) SwitchStudio(ctx context.Context, studioID string) (AccessResponse, error) {
	var out AccessResponse
	err := s.sendJSON(ctx, http.MethodPost, "/v1/access/switch", SwitchStudioRequest{StudioID: studioID}, &out, http.StatusOK)
	return out, err
}

// CreateStudio creates a studio owned by the session's identity.
func (s *Session) CreateStudio(ctx context.Context, name string) (Studio, error) {
	var out Studio
	err := s.sendJSON(ctx, http.MethodPost, "/v1/studios", CreateStudioRequest{Name: name}, &out, http.StatusCreated)
	return out, err
}

// GetStudio fetches a studio the identity belongs to.
func (s *Session) GetStudio(ctx context.Context, studioID string) (Studio, error) {
	var out Studio
	err := s.getJSON(ctx, "/v1/studios/"+studioID, &out)
	return out, err
}

// RenameStudio changes a studio's display name. The slug never changes.
func (s *Session) RenameStudio(ctx context.Context, studioID, name string) error {
	return s.sendJSON(ctx, http.MethodPut, "/v1/studios/"+studioID, CreateStudioRequest{Name: name}, nil, http.StatusNoContent)
}

// Me fetches the session identity's profile.
func (s *Session) Me(ctx context.Context) (Identity, error) {
	var out Identity
	err := s.getJSON(ctx, "/v1/me", &out)
	return out, err
}

// UpdateProfile changes the identity's display name.
func (s *Session) UpdateProfile(ctx context.Context, displayName string) error {
	return s.sendJSON(ctx, http.MethodPut, "/v1/me", UpdateProfileRequest{DisplayName: displayName}, nil, http.StatusNoContent)
}

// ============================================================================
// Members & Invitations
// ============================================================================

// ListMembers returns a studio's roster.
func (s *Session) ListMembers(ctx context.Context, studioID string) ([]Membership, error) {
	var out []Membership
	err := s.getJSON(ctx, "/v1/studios/"+studioID+"/members", &out)
	return out, err
}

// ChangeMemberRole sets a member's role.
func (s *Session) ChangeMemberRole(ctx context.Context, studioID, membershipID, role string) error {
	path := "/v1/studios/" + studioID + "/members/" + membershipID + "/role"
	return s.sendJSON(ctx, http.MethodPut, path, ChangeRoleRequest{Role: role}, nil, http.StatusNoContent)
}

// RemoveMember soft-removes a member.
func (s *Session) RemoveMember(ctx context.Context, studioID, membershipID string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/v1/studios/"+studioID+"/members/"+membershipID, nil, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// LeaveStudio removes the session's own membership.
func (s *Session) LeaveStudio(ctx context.Context, studioID string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/studios/"+studioID+"/leave", nil, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// SendInvite invites an email address to a studio.
func (s *Session) SendInvite(ctx context.Context, studioID, email, role string) (Invitation, error) {
	var out Invitation
	err := s.sendJSON(ctx, http.MethodPost, "/v1/studios/"+studioID+"/invites", SendInviteRequest{Email: email, Role: role}, &out, http.StatusCreated)
	return out, err
}

// ListInvites lists a studio's invitations.
func (s *Session) ListInvites(ctx context.Context, studioID string) ([]Invitation, error) {
	var out []Invitation
	err := s.getJSON(ctx, "/v1/studios/"+studioID+"/invites", &out)
	return out, err
}

// RevokeInvite cancels a pending invitation.
func (s *Session) RevokeInvite(ctx context.Context, studioID, invitationID string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/v1/studios/"+studioID+"/invites/"+invitationID, nil, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// AcceptInvite redeems an invitation by raw token or by invitation id.
func (s *Session) AcceptInvite(ctx context.Context, req AcceptInviteRequest) (AcceptResponse, error) {
	var out AcceptResponse
	err := s.sendJSON(ctx, http.MethodPost, "/v1/invites/accept", req, &out, http.StatusOK)
	return out, err
}

// GetInviteLink returns the studio's invite link state.
func (s *Session) GetInviteLink(ctx context.Context, studioID string) (InviteLink, error) {
	var out InviteLink
	err := s.getJSON(ctx, "/v1/studios/"+studioID+"/invite-link", &out)
	return out, err
}

// RotateInviteLink mints a fresh link token, returning the raw token once.
func (s *Session) RotateInviteLink(ctx context.Context, studioID, defaultRole string) (RotateInviteLinkResponse, error) {
	var out RotateInviteLinkResponse
	err := s.sendJSON(ctx, http.MethodPost, "/v1/studios/"+studioID+"/invite-link/rotate", RotateInviteLinkRequest{DefaultRole: defaultRole}, &out, http.StatusOK)
	return out, err
}

// SetInviteLinkEnabled toggles the invite link.
func (s *Session) SetInviteLinkEnabled(ctx context.Context, studioID string, enabled bool) error {
	path := "/v1/studios/" + studioID + "/invite-link/enabled"
	return s.sendJSON(ctx, http.MethodPut, path, SetInviteLinkEnabledRequest{Enabled: enabled}, nil, http.StatusNoContent)
}

// JoinByLink self-enrolls through an invite link token.
func (s *Session) JoinByLink(ctx context.Context, token string) (AcceptResponse, error) {
	var out AcceptResponse
	err := s.sendJSON(ctx, http.MethodPost, "/v1/invite-links/join", JoinByLinkRequest{Token: token}, &out, http.StatusOK)
	return out, err
}

// ============================================================================
// Scheduling
// ============================================================================

// CreateRoom adds a room to a studio.
func (s *Session) CreateRoom(ctx context.Context, studioID, name string, hourlyRateCents int64) (Room, error) {
	var out Room
	err := s.sendJSON(ctx, http.MethodPost, "/v1/studios/"+studioID+"/rooms", CreateRoomRequest{Name: name, HourlyRateCents: hourlyRateCents}, &out, http.StatusCreated)
	return out, err
}

// ListRooms lists a studio's rooms.
func (s *Session) ListRooms(ctx context.Context, studioID string) ([]Room, error) {
	var out []Room
	err := s.getJSON(ctx, "/v1/studios/"+studioID+"/rooms", &out)
	return out, err
}

// BookSession books a room session.
func (s *Session) BookSession(ctx context.Context, studioID string, req BookSessionRequest) (StudioSession, error) {
	var out StudioSession
	err := s.sendJSON(ctx, http.MethodPost, "/v1/studios/"+studioID+"/sessions", req, &out, http.StatusCreated)
	return out, err
}

// ListSessions lists scheduled sessions intersecting [from, to).
func (s *Session) ListSessions(ctx context.Context, studioID string, from, to time.Time) ([]StudioSession, error) {
	path := fmt.Sprintf("/v1/studios/%s/sessions?from=%s&to=%s",
		studioID,
		url.QueryEscape(from.Format(time.RFC3339)),
		url.QueryEscape(to.Format(time.RFC3339)),
	)
	var out []StudioSession
	err := s.getJSON(ctx, path, &out)
	return out, err
}

// CancelSession cancels a scheduled session.
func (s *Session) CancelSession(ctx context.Context, studioID, sessionID string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/v1/studios/"+studioID+"/sessions/"+sessionID, nil, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// ============================================================================
// Gear & Invoices
// ============================================================================

// AddGear adds an inventory item.
func (s *Session) AddGear(ctx context.Context, studioID string, req AddGearRequest) (GearItem, error) {
	var out GearItem
	err := s.sendJSON(ctx, http.MethodPost, "/v1/studios/"+studioID+"/gear", req, &out, http.StatusCreated)
	return out, err
}

// ListGear lists a studio's inventory.
func (s *Session) ListGear(ctx context.Context, studioID string) ([]GearItem, error) {
	var out []GearItem
	err := s.getJSON(ctx, "/v1/studios/"+studioID+"/gear", &out)
	return out, err
}

// SetGearStatus updates an item's status.
func (s *Session) SetGearStatus(ctx context.Context, studioID, itemID, status string) error {
	path := "/v1/studios/" + studioID + "/gear/" + itemID + "/status"
	return s.sendJSON(ctx, http.MethodPut, path, SetGearStatusRequest{Status: status}, nil, http.StatusNoContent)
}

// RemoveGear deletes an inventory item.
func (s *Session) RemoveGear(ctx context.Context, studioID, itemID string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/v1/studios/"+studioID+"/gear/"+itemID, nil, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// CreateInvoice records a draft invoice.
func (s *Session) CreateInvoice(ctx context.Context, studioID string, req CreateInvoiceRequest) (Invoice, error) {
	var out Invoice
	err := s.sendJSON(ctx, http.MethodPost, "/v1/studios/"+studioID+"/invoices", req, &out, http.StatusCreated)
	return out, err
}

// GetInvoice fetches an invoice with lines and totals.
func (s *Session) GetInvoice(ctx context.Context, studioID, invoiceID string) (Invoice, error) {
	var out Invoice
	err := s.getJSON(ctx, "/v1/studios/"+studioID+"/invoices/"+invoiceID, &out)
	return out, err
}

// ListInvoices returns a studio's invoices, newest first.
func (s *Session) ListInvoices(ctx context.Context, studioID string) ([]Invoice, error) {
	var out []Invoice
	err := s.getJSON(ctx, "/v1/studios/"+studioID+"/invoices", &out)
	return out, err
}

// SetInvoiceStatus advances an invoice's lifecycle.
func (s *Session) SetInvoiceStatus(ctx context.Context, studioID, invoiceID, status string) error {
	path := "/v1/studios/" + studioID + "/invoices/" + invoiceID + "/status"
	return s.sendJSON(ctx, http.MethodPut, path, SetInvoiceStatusRequest{Status: status}, nil, http.StatusNoContent)
}

// ============================================================================
// MFA
// ============================================================================

// EnrollMFA starts TOTP enrollment.
func (s *Session) EnrollMFA(ctx context.Context) (MFAEnrollResponse, error) {
	var out MFAEnrollResponse
	err := s.sendJSON(ctx, http.MethodPost, "/v1/mfa/enroll", struct{}{}, &out, http.StatusOK)
	return out, err
}

// ActivateMFA verifies a TOTP code and switches MFA on.
func (s *Session) ActivateMFA(ctx context.Context, code string) error {
	return s.sendJSON(ctx, http.MethodPost, "/v1/mfa/activate", MFACodeRequest{Code: code}, nil, http.StatusNoContent)
}

// DisableMFA turns MFA off after verifying a current code.
func (s *Session) DisableMFA(ctx context.Context, code string) error {
	return s.sendJSON(ctx, http.MethodPost, "/v1/mfa/disable", MFACodeRequest{Code: code}, nil, http.StatusNoContent)
}
