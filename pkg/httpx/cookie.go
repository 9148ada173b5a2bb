package httpx

import (
	"net/http"
	"time"
)

// Cookie names used by the service. The session cookie carries the signed
// session token; the studio cookie carries the current-studio reference, which
// is never trusted without revalidation against the membership table.
const (
	SessionCookieName = "trackroom_session"
	StudioCookieName  = "trackroom_studio"
)

// CookieConfig holds shared cookie attributes.
type CookieConfig struct {
	Domain   string
	Path     string
	Secure   bool // true in production (HTTPS)
	SameSite http.SameSite
}

// DefaultCookieConfig returns the defaults used outside production.
func DefaultCookieConfig() CookieConfig {
	return CookieConfig{
		Path:     "/",
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
	}
}

// SetSessionCookie sets the HttpOnly session-token cookie.
func SetSessionCookie(w http.ResponseWriter, token string, ttl time.Duration, cfg CookieConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     cfg.Path,
		Domain:   cfg.Domain,
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: cfg.SameSite,
	})
}

// SetStudioCookie sets the current-studio reference cookie.
func SetStudioCookie(w http.ResponseWriter, studioID string, ttl time.Duration, cfg CookieConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     StudioCookieName,
		Value:    studioID,
		Path:     cfg.Path,
		Domain:   cfg.Domain,
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: cfg.SameSite,
	})
}

// ClearSessionCookies clears both the session and studio cookies.
func ClearSessionCookies(w http.ResponseWriter, cfg CookieConfig) {
	for _, name := range []string{SessionCookieName, StudioCookieName} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     cfg.Path,
			Domain:   cfg.Domain,
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   cfg.Secure,
			SameSite: cfg.SameSite,
		})
	}
}

// SessionTokenFromCookie extracts the session token from the cookie.
func SessionTokenFromCookie(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// StudioRefFromCookie extracts the current-studio reference from the cookie.
func StudioRefFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(StudioCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
