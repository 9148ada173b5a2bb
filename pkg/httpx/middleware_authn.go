package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/trackroomhq/trackroom/pkg/jwtx"
	"github.com/trackroomhq/trackroom/pkg/slogx"
)

// SessionVerifier verifies a raw session token.
type SessionVerifier interface {
	Verify(raw string) (jwtx.SessionClaims, error)
}

// AuthnMiddleware authenticates requests via the session cookie, or via an
// Authorization bearer header for API clients, and injects the identity into
// the request context.
func AuthnMiddleware(v SessionVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, ok := sessionTokenFromRequest(r)
			if !ok {
				writeAuthnError(w, "missing session token")
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("session token verification failed", "err", err)
				writeAuthnError(w, "session invalid or expired")
				return
			}

			ctx = contextWithSession(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionTokenFromRequest(r *http.Request) (string, bool) {
	if authz := r.Header.Get("Authorization"); strings.HasPrefix(authz, "Bearer ") {
		token := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))
		if token != "" {
			return token, true
		}
	}
	return SessionTokenFromCookie(r)
}

func contextWithSession(ctx context.Context, c jwtx.SessionClaims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyIdentityID, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyEmail, c.Email)
	ctx = context.WithValue(ctx, CtxKeySessionID, c.SID)
	return ctx
}

func writeAuthnError(w http.ResponseWriter, desc string) {
	WriteJSON(w, http.StatusUnauthorized, map[string]string{
		"error":             "authentication_required",
		"error_description": desc,
	})
}
