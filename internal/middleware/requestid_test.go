package middleware

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/gin-gonic/gin"
)

var hexID = regexp.MustCompile(`^[0-9a-f]{32}$`)

func newRequestIDRouter(cfg RequestIDConfig) (*gin.Engine, *string) {
	gin.SetMode(gin.TestMode)
	var seen string
	r := gin.New()
	r.Use(RequestIDWithConfig(cfg))
	r.GET("/", func(c *gin.Context) {
		seen = GetRequestID(c)
		c.Status(http.StatusOK)
	})
	return r, &seen
}

func TestRequestID_GeneratedAndEchoed(t *testing.T) {
	r, seen := newRequestIDRouter(RequestIDConfig{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	header := w.Header().Get("X-Request-ID")
	if !hexID.MatchString(header) {
		t.Errorf("X-Request-ID = %q, want 32 hex chars", header)
	}
	if *seen != header {
		t.Errorf("context id %q != response header %q", *seen, header)
	}
}

func TestRequestID_UniquePerRequest(t *testing.T) {
	r, _ := newRequestIDRouter(RequestIDConfig{})

	ids := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		ids[w.Header().Get("X-Request-ID")] = struct{}{}
	}
	if len(ids) != 50 {
		t.Errorf("got %d distinct ids from 50 requests", len(ids))
	}
}

func TestRequestID_UpstreamIgnoredByDefault(t *testing.T) {
	r, _ := newRequestIDRouter(RequestIDConfig{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "upstream-id-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got == "upstream-id-123" {
		t.Error("untrusted upstream id must not be reused")
	}
}

func TestRequestID_TrustUpstream(t *testing.T) {
	r, seen := newRequestIDRouter(RequestIDConfig{TrustUpstream: true})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "upstream-id-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "upstream-id-123" {
		t.Errorf("X-Request-ID = %q, want the upstream id reused", got)
	}
	if *seen != "upstream-id-123" {
		t.Errorf("context id = %q", *seen)
	}
}

func TestRequestID_TrustUpstreamRejectsMalformed(t *testing.T) {
	r, _ := newRequestIDRouter(RequestIDConfig{TrustUpstream: true})

	tests := []string{
		"",
		"has spaces",
		"semi;colon",
		"way-too-long-" + string(make([]byte, 80)),
	}
	for _, upstream := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if upstream != "" {
			req.Header.Set("X-Request-ID", upstream)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if got := w.Header().Get("X-Request-ID"); !hexID.MatchString(got) {
			t.Errorf("upstream %q: X-Request-ID = %q, want a fresh generated id", upstream, got)
		}
	}
}

func TestGetRequestID_WithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if id := GetRequestID(c); id != "" {
		t.Errorf("id = %q, want empty without the middleware", id)
	}
}
