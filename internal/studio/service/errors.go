package service

import (
	"errors"
	"fmt"
)

// Kind classifies a service failure. Every public operation returns either a
// success value or an *Error carrying exactly one of these kinds, so callers
// (the HTTP layer, mostly) can map outcomes without string matching.
type Kind string

const (
	KindAuthenticationRequired  Kind = "AUTHENTICATION_REQUIRED"
	KindNotAMember              Kind = "NOT_A_MEMBER"
	KindInsufficientPermissions Kind = "INSUFFICIENT_PERMISSIONS"
	KindMembershipNotFound      Kind = "MEMBERSHIP_NOT_FOUND"
	KindCannotChangeOwner       Kind = "CANNOT_CHANGE_OWNER"
	KindValidation              Kind = "VALIDATION_ERROR"
	KindDatabase                Kind = "DATABASE_ERROR"

	// KindInternal covers process-local failures that are neither the
	// caller's fault nor the store's (entropy exhaustion, hashing).
	KindInternal Kind = "INTERNAL_ERROR"
)

// Error is a tagged service failure. Message is safe to show to end users;
// the wrapped error (if any) is for logs only.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// E constructs a tagged error with a user-facing message.
func E(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// dbError wraps an unexpected store failure. The underlying error stays out
// of the user-facing message.
func dbError(err error) *Error {
	return &Error{Kind: KindDatabase, Message: "internal storage error", Err: err}
}

// internalError wraps a process-local failure (crypto, encoding) that has
// nothing to do with the store.
func internalError(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", Err: err}
}

// KindOf extracts the Kind from an error chain. Unknown errors report
// KindInternal, the catch-all for unexpected failures.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}
