package httpx

import "context"

type ctxKey string

const (
	CtxKeyIdentityID ctxKey = "identity_id"
	CtxKeyEmail      ctxKey = "email"
	CtxKeySessionID  ctxKey = "session_id"
)

// IdentityIDFromCtx returns the authenticated identity id, or "" when the
// request is anonymous.
func IdentityIDFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyIdentityID).(string); ok {
		return v
	}
	return ""
}

// EmailFromCtx returns the authenticated identity's email, or "".
func EmailFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyEmail).(string); ok {
		return v
	}
	return ""
}
