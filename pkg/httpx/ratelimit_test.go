package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/trackroomhq/trackroom/pkg/httpx"
)

func TestIPKeyExtractor(t *testing.T) {
	t.Run("extracts from RemoteAddr", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"

		require.Equal(t, "192.168.1.1", httpx.IPKeyExtractor(req))
	})

	t.Run("prefers X-Forwarded-For", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		req.Header.Set("X-Forwarded-For", "203.0.113.1, 192.168.1.1")

		require.Equal(t, "203.0.113.1", httpx.IPKeyExtractor(req))
	})

	t.Run("uses X-Real-IP when X-Forwarded-For absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		req.Header.Set("X-Real-IP", "203.0.113.2")

		require.Equal(t, "203.0.113.2", httpx.IPKeyExtractor(req))
	})
}

func TestFormFieldKeyExtractor(t *testing.T) {
	t.Run("extracts from GET params", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?email=amy@example.com", nil)

		extractor := httpx.FormFieldKeyExtractor("email")
		require.Equal(t, "amy@example.com", extractor(req))
	})

	t.Run("extracts from POST form", func(t *testing.T) {
		form := url.Values{}
		form.Set("email", "bob@example.com")

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		extractor := httpx.FormFieldKeyExtractor("email")
		require.Equal(t, "bob@example.com", extractor(req))
	})

	t.Run("returns empty for missing field", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		extractor := httpx.FormFieldKeyExtractor("email")
		require.Equal(t, "", extractor(req))
	})
}

func TestCompositeKeyExtractor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?email=amy@example.com", nil)
	req.RemoteAddr = "192.168.1.1:12345"

	extractor := httpx.CompositeKeyExtractor(":",
		httpx.IPKeyExtractor,
		httpx.FormFieldKeyExtractor("email"),
	)
	require.Equal(t, "192.168.1.1:amy@example.com", extractor(req))

	// Empty components are skipped rather than producing dangling separators.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	require.Equal(t, "192.168.1.1", extractor(req))
}

func TestRateLimitMiddleware(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("allows requests under the limit", func(t *testing.T) {
		config := httpx.RateLimitConfig{RequestsPerWindow: 5, Window: time.Second, Burst: 5}
		limited := httpx.RateLimitMiddleware(config, httpx.IPKeyExtractor)(okHandler)

		for i := range 5 {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "192.168.1.1:12345"
			rec := httptest.NewRecorder()

			limited.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code, "request %d should succeed", i+1)
		}
	})

	t.Run("blocks requests over the limit", func(t *testing.T) {
		config := httpx.RateLimitConfig{RequestsPerWindow: 3, Window: time.Minute, Burst: 3}
		limited := httpx.RateLimitMiddleware(config, httpx.IPKeyExtractor)(okHandler)

		for range 3 {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "192.168.1.1:12345"
			rec := httptest.NewRecorder()
			limited.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code)
		}

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)

		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		require.NotEmpty(t, rec.Header().Get("Retry-After"))
	})

	t.Run("limits keys independently", func(t *testing.T) {
		config := httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}
		limited := httpx.RateLimitMiddleware(config, httpx.IPKeyExtractor)(okHandler)

		for _, addr := range []string{"10.0.0.1:1", "10.0.0.2:1"} {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = addr
			rec := httptest.NewRecorder()
			limited.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code, "first request from %s", addr)
		}
	})

	t.Run("allows requests with no extractable key", func(t *testing.T) {
		config := httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}
		empty := func(*http.Request) string { return "" }
		limited := httpx.RateLimitMiddleware(config, empty)(okHandler)

		for range 3 {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			limited.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code)
		}
	})
}
