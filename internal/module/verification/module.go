package verification

import "github.com/gin-gonic/gin"

// VerificationModule implements the app.Module interface for KYC verifications.
type VerificationModule struct {
	handler *VerificationHandler
}

// NewModule creates a new VerificationModule with the given handler.
// Panics if h is nil.
func NewModule(h *VerificationHandler) *VerificationModule {
	if h == nil {
		panic("verification.NewModule: handler must not be nil")
	}
	return &VerificationModule{handler: h}
}

// RegisterRoutes registers the verification API routes. All of them require
// authentication.
func (m *VerificationModule) RegisterRoutes(_ *gin.RouterGroup, protected *gin.RouterGroup) {
	grp := protected.Group("/verifications")
	grp.POST("", m.handler.Submit)
	grp.GET("", m.handler.List)
	grp.GET("/:id", m.handler.Get)
	grp.PUT("/status/:id", m.handler.ToggleStatus)
	grp.PUT("/reject/:id", m.handler.Reject)
	grp.DELETE("/:id", m.handler.Delete)
}
