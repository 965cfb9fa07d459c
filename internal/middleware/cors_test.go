package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newCORSRouter(cfg CORSConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSWithConfig(cfg))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func doCORS(r *gin.Engine, method, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCORS_WildcardOrigin(t *testing.T) {
	r := newCORSRouter(DefaultCORSConfig())

	w := doCORS(r, http.MethodGet, "https://console.example.com")
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q, want *", got)
	}
	if got := w.Header().Get("Vary"); got != "Origin" {
		t.Errorf("Vary = %q, want Origin", got)
	}
	allowHeaders := w.Header().Get("Access-Control-Allow-Headers")
	if !strings.Contains(allowHeaders, "Authorization") {
		t.Errorf("Allow-Headers = %q, must cover the bearer token header", allowHeaders)
	}
}

func TestCORS_NoOriginHeaderSkipsProcessing(t *testing.T) {
	r := newCORSRouter(DefaultCORSConfig())

	w := doCORS(r, http.MethodGet, "")
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Allow-Origin = %q, want none for same-origin requests", got)
	}
}

func TestCORS_ExplicitAllowList(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowOrigins = []string{"https://console.example.com"}
	r := newCORSRouter(cfg)

	w := doCORS(r, http.MethodGet, "https://console.example.com")
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://console.example.com" {
		t.Errorf("Allow-Origin = %q, want the listed origin echoed", got)
	}

	w = doCORS(r, http.MethodGet, "https://evil.example.com")
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Allow-Origin = %q, want none for an unlisted origin", got)
	}
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, unlisted origins still reach the handler", w.Code)
	}
}

func TestCORS_CredentialsEchoOrigin(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowCredentials = true
	r := newCORSRouter(cfg)

	w := doCORS(r, http.MethodGet, "https://console.example.com")
	// With credentials the wildcard is not allowed; the origin is echoed.
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://console.example.com" {
		t.Errorf("Allow-Origin = %q, want the origin echoed when credentials are on", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("Allow-Credentials = %q, want true", got)
	}
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	r := newCORSRouter(DefaultCORSConfig())

	w := doCORS(r, http.MethodOptions, "https://console.example.com")
	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204 for preflight", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, "DELETE") {
		t.Errorf("Allow-Methods = %q, want the row-action verbs included", got)
	}
	if got := w.Header().Get("Access-Control-Max-Age"); got != "86400" {
		t.Errorf("Max-Age = %q", got)
	}
}
