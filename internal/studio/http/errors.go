package http

import (
	"errors"
	"net/http"

	"github.com/trackroomhq/trackroom/internal/studio/service"
	"github.com/trackroomhq/trackroom/pkg/studiosdk"
)

// writeServiceError maps a service error kind onto the wire error taxonomy.
// Database and internal errors never leak their underlying message.
func writeServiceError(w http.ResponseWriter, err error) {
	var se *service.Error
	msg := ""
	if errors.As(err, &se) && se.Kind != service.KindDatabase && se.Kind != service.KindInternal {
		msg = se.Message
	}

	switch service.KindOf(err) {
	case service.KindAuthenticationRequired:
		studiosdk.NewAPIError(http.StatusUnauthorized, studiosdk.ErrorCodeAuthenticationRequired, orDefault(msg, "sign in to continue")).WriteError(w)
	case service.KindNotAMember:
		studiosdk.NewAPIError(http.StatusForbidden, studiosdk.ErrorCodeNotAMember, orDefault(msg, "you are not a member of this studio")).WriteError(w)
	case service.KindInsufficientPermissions:
		studiosdk.NewAPIError(http.StatusForbidden, studiosdk.ErrorCodeInsufficientPermissions, orDefault(msg, "your role does not allow this")).WriteError(w)
	case service.KindMembershipNotFound:
		studiosdk.NewAPIError(http.StatusNotFound, studiosdk.ErrorCodeMembershipNotFound, orDefault(msg, "membership not found")).WriteError(w)
	case service.KindCannotChangeOwner:
		studiosdk.NewAPIError(http.StatusForbidden, studiosdk.ErrorCodeCannotChangeOwner, orDefault(msg, "the owner role is immutable")).WriteError(w)
	case service.KindValidation:
		studiosdk.NewAPIError(http.StatusBadRequest, studiosdk.ErrorCodeValidation, orDefault(msg, "invalid request")).WriteError(w)
	default:
		studiosdk.ErrServerError.WriteError(w)
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
