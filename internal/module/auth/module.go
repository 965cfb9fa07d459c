package auth

import "github.com/gin-gonic/gin"

// AuthModule implements the app.Module interface for the auth domain.
type AuthModule struct {
	handler *AuthHandler
}

// NewModule creates a new AuthModule with the given handler.
// Panics if h is nil.
func NewModule(h *AuthHandler) *AuthModule {
	if h == nil {
		panic("auth.NewModule: handler must not be nil")
	}
	return &AuthModule{handler: h}
}

// RegisterRoutes registers auth API routes. Login and register stay public;
// the profile endpoint requires a verified token.
func (m *AuthModule) RegisterRoutes(public *gin.RouterGroup, protected *gin.RouterGroup) {
	grp := public.Group("/auth")
	grp.POST("/login", m.handler.Login)
	grp.POST("/register", m.handler.Register)

	protected.GET("/auth/me", m.handler.Me)
}
