package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// skipLogPaths are endpoints polled by infrastructure; logging every probe
// drowns out real traffic.
var skipLogPaths = map[string]struct{}{
	"/health": {},
}

// Logger returns a gin middleware that writes one structured log line per
// request: method, path, status, latency, and client IP. The level follows
// the response status (2xx/3xx info, 4xx warn, 5xx error), and the request's
// context is passed through so the request_id attached by RequestID shows up
// on every line.
func Logger(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}

	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		if _, skip := skipLogPaths[c.Request.URL.Path]; skip {
			return
		}

		status := c.Writer.Status()
		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
		}

		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}
		logger.LogAttrs(c.Request.Context(), level, "request", attrs...)
	}
}
