package admin

import "github.com/gin-gonic/gin"

// AdminModule implements the app.Module interface for admin management.
type AdminModule struct {
	handler *AdminHandler
}

// NewModule creates a new AdminModule with the given handler.
// Panics if h is nil.
func NewModule(h *AdminHandler) *AdminModule {
	if h == nil {
		panic("admin.NewModule: handler must not be nil")
	}
	return &AdminModule{handler: h}
}

// RegisterRoutes registers the admin management API routes. All of them
// require authentication.
func (m *AdminModule) RegisterRoutes(_ *gin.RouterGroup, protected *gin.RouterGroup) {
	grp := protected.Group("/admins")
	grp.POST("", m.handler.Create)
	grp.GET("", m.handler.List)
	grp.GET("/:id", m.handler.Get)
	grp.PUT("/:id", m.handler.Update)
	grp.PUT("/status/:id", m.handler.ToggleStatus)
	grp.DELETE("/:id", m.handler.Delete)
}
