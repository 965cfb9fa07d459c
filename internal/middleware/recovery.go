package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/ledgerdesk/ledgerdesk/internal/pkg"
)

// Recovery returns a gin middleware that recovers from handler panics, logs
// the panic value and stack through slog, and answers with the API's JSON
// error shape. It replaces gin.Recovery() so panic logs go through the same
// structured pipeline as everything else.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}

	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.ErrorContext(c.Request.Context(), "panic recovered",
					slog.Any("panic", err),
					slog.String("method", c.Request.Method),
					slog.String("path", c.Request.URL.Path),
					slog.String("stack", string(debug.Stack())),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, pkg.ErrorResponse{
					Message: "internal server error",
				})
			}
		}()
		c.Next()
	}
}
