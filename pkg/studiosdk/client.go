package studiosdk

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the Trackroom studio service. It provides
// unauthenticated operations and creates authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a studio service client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// RequestLogin asks the service to email a magic-link login token. In dev and
// test environments the response carries the raw token directly.
func (c *SDKClient) RequestLogin(ctx context.Context, email, displayName string) (LoginResponse, error) {
	var out LoginResponse
	err := c.postJSON(ctx, "/v1/auth/login", LoginRequest{Email: email, DisplayName: displayName}, &out, http.StatusOK)
	return out, err
}

// RedeemLogin exchanges a magic-link token for an authenticated Session.
func (c *SDKClient) RedeemLogin(ctx context.Context, token, totpCode string) (*Session, error) {
	var out SessionResponse
	err := c.postJSON(ctx, "/v1/auth/redeem", RedeemRequest{Token: token, TOTPCode: totpCode}, &out, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return newSession(c, out), nil
}

// Livez checks the service's liveness endpoint.
func (c *SDKClient) Livez(ctx context.Context) (HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/livez", nil, nil)
	if err != nil {
		return HealthResponse{}, err
	}
	var out HealthResponse
	err = decodeJSON(resp, &out, http.StatusOK)
	return out, err
}

// Readyz checks the service's readiness endpoint.
func (c *SDKClient) Readyz(ctx context.Context) (HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/readyz", nil, nil)
	if err != nil {
		return HealthResponse{}, err
	}
	var out HealthResponse
	err = decodeJSON(resp, &out, http.StatusOK)
	return out, err
}

// NewSessionFromToken wraps an existing session token.
func (c *SDKClient) NewSessionFromToken(token string) *Session {
	return &Session{client: c, token: token}
}

func (c *SDKClient) postJSON(ctx context.Context, path string, body, target any, expectedStatus int) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, path, bytes.NewReader(payload), map[string]string{
		"Content-Type": "application/json",
	})
	if err != nil {
		return err
	}
	return decodeJSON(resp, target, expectedStatus)
}
