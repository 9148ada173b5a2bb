package studiosdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/trackroomhq/trackroom/pkg/httpx"
)

// Wire error codes. These mirror the service error taxonomy one to one so
// SDK consumers can switch on the code without parsing messages.
const (
	ErrorCodeAuthenticationRequired  = "authentication_required"
	ErrorCodeNotAMember              = "not_a_member"
	ErrorCodeInsufficientPermissions = "insufficient_permissions"
	ErrorCodeMembershipNotFound      = "membership_not_found"
	ErrorCodeCannotChangeOwner       = "cannot_change_owner"
	ErrorCodeValidation              = "validation_error"
	ErrorCodeServerError             = "server_error"
)

// APIError is the error body every endpoint returns on failure. It doubles
// as the server-side writer and the client-side parsed error.
type APIError struct {
	// StatusCode is the HTTP status code for this error.
	StatusCode int `json:"-"`

	// Code is the machine-readable error code.
	Code string `json:"error"`

	// Description is a human-readable description safe to show to users.
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

var (
	// ErrAuthenticationRequired is returned when no valid session accompanies
	// the request.
	ErrAuthenticationRequired = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeAuthenticationRequired,
		Description: "sign in to continue",
	}

	// ErrInvalidRequest is returned for malformed request bodies.
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeValidation,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrServerError is returned for unexpected internal failures.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// NewAPIError creates an APIError with a custom message.
func NewAPIError(statusCode int, code, description string) *APIError {
	return &APIError{StatusCode: statusCode, Code: code, Description: description}
}

// parseErrorResponse turns a non-2xx response into a typed *APIError.
// Returns nil for 2xx responses.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
