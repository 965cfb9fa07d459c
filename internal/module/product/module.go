package product

import "github.com/gin-gonic/gin"

// ProductModule implements the app.Module interface for the product catalog.
type ProductModule struct {
	handler *ProductHandler
}

// NewModule creates a new ProductModule with the given handler.
// Panics if h is nil.
func NewModule(h *ProductHandler) *ProductModule {
	if h == nil {
		panic("product.NewModule: handler must not be nil")
	}
	return &ProductModule{handler: h}
}

// RegisterRoutes registers the product catalog API routes. All of them
// require authentication.
func (m *ProductModule) RegisterRoutes(_ *gin.RouterGroup, protected *gin.RouterGroup) {
	grp := protected.Group("/products")
	grp.POST("", m.handler.Create)
	grp.GET("", m.handler.List)
	grp.GET("/:id", m.handler.Get)
	grp.PUT("/:id", m.handler.Update)
	grp.PUT("/status/:id", m.handler.ToggleStatus)
	grp.DELETE("/:id", m.handler.Delete)
}
