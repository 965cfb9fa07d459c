package role

import "github.com/gin-gonic/gin"

// RoleModule implements the app.Module interface for role management.
type RoleModule struct {
	handler *RoleHandler
}

// NewModule creates a new RoleModule with the given handler.
// Panics if h is nil.
func NewModule(h *RoleHandler) *RoleModule {
	if h == nil {
		panic("role.NewModule: handler must not be nil")
	}
	return &RoleModule{handler: h}
}

// RegisterRoutes registers the role management API routes. All of them
// require authentication. The permission catalog route is registered before
// the :id routes so gin does not treat "permissions" as an ID.
func (m *RoleModule) RegisterRoutes(_ *gin.RouterGroup, protected *gin.RouterGroup) {
	grp := protected.Group("/roles")
	grp.GET("/permissions", m.handler.ListPermissions)
	grp.POST("", m.handler.Create)
	grp.GET("", m.handler.List)
	grp.GET("/:id", m.handler.Get)
	grp.PUT("/:id", m.handler.Update)
	grp.PUT("/status/:id", m.handler.ToggleStatus)
	grp.DELETE("/:id", m.handler.Delete)
}
